package models

import (
	"encoding/json"
	"time"
)

// Timestamp tolerates the two shapes the backend emits for created_at:
// an RFC 3339 string on most paths, and a protobuf-style
// {"seconds": ..., "nanos": ...} object on the account endpoints.
type Timestamp struct {
	time.Time
}

type protoTimestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		ts.Time = time.Time{}
		return nil
	}

	if data[0] == '{' {
		var pt protoTimestamp
		if err := json.Unmarshal(data, &pt); err != nil {
			return err
		}
		ts.Time = time.Unix(pt.Seconds, pt.Nanos).UTC()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(ts.Format(time.RFC3339Nano))
}
