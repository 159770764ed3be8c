package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDirectionFor(t *testing.T) {
	transfer := TransferRecord{ID: 1, FromAccountID: 10, ToAccountID: 20, Amount: 100}

	require.Equal(t, DirectionOutgoing, transfer.DirectionFor(10))
	require.Equal(t, DirectionIncoming, transfer.DirectionFor(20))
	require.Equal(t, DirectionUnknown, transfer.DirectionFor(30))
}

func TestOtherAccount(t *testing.T) {
	transfer := TransferRecord{FromAccountID: 10, ToAccountID: 20}

	other, ok := transfer.OtherAccount(10)
	require.True(t, ok)
	require.Equal(t, int64(20), other)

	other, ok = transfer.OtherAccount(20)
	require.True(t, ok)
	require.Equal(t, int64(10), other)

	_, ok = transfer.OtherAccount(99)
	require.False(t, ok)
}

func TestTimestampBothShapes(t *testing.T) {
	var fromString Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-01T12:30:45Z"`), &fromString))
	require.Equal(t, time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC), fromString.Time)

	var fromProto Timestamp
	require.NoError(t, json.Unmarshal([]byte(`{"seconds": 1767225600, "nanos": 500000000}`), &fromProto))
	require.Equal(t, time.Unix(1767225600, 500000000).UTC(), fromProto.Time)

	var fromNull Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &fromNull))
	require.True(t, fromNull.IsZero())
}

func TestTimestampInsideAccount(t *testing.T) {
	// The account endpoints emit the protobuf object form.
	payload := `{"id": 5, "owner": "alice", "balance": 1200, "currency": "USD",
		"created_at": {"seconds": 1767225600, "nanos": 0}}`

	var account Account
	require.NoError(t, json.Unmarshal([]byte(payload), &account))
	require.Equal(t, int64(5), account.ID)
	require.Equal(t, time.Unix(1767225600, 0).UTC(), account.CreatedAt.Time)
}

func TestIsSupportedCurrency(t *testing.T) {
	for _, currency := range Currencies {
		require.True(t, IsSupportedCurrency(currency), currency)
	}
	require.False(t, IsSupportedCurrency("BTC"))
	require.False(t, IsSupportedCurrency("usd"))
	require.False(t, IsSupportedCurrency(""))
}
