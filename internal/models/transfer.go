package models

// Direction of a transfer relative to a selected account.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
	DirectionUnknown  Direction = "unknown"
)

// CreateTransferRequest is the normalized wire payload for POST /v1/transfers.
// Amount is in minor currency units; the validator is the only producer.
type CreateTransferRequest struct {
	FromAccountID int64  `json:"from_account_id"`
	ToAccountID   int64  `json:"to_account_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
}

// TransferRecord is a completed transfer as returned by the server.
// Read-only from the client's perspective.
type TransferRecord struct {
	ID            int64     `json:"id"`
	FromAccountID int64     `json:"from_account_id"`
	ToAccountID   int64     `json:"to_account_id"`
	Amount        int64     `json:"amount"`
	CreatedAt     Timestamp `json:"created_at"`
}

// DirectionFor classifies the transfer relative to the given account.
func (t TransferRecord) DirectionFor(accountID int64) Direction {
	switch accountID {
	case t.FromAccountID:
		return DirectionOutgoing
	case t.ToAccountID:
		return DirectionIncoming
	}
	return DirectionUnknown
}

// OtherAccount returns the counterparty account id, or false when the given
// account took no part in the transfer.
func (t TransferRecord) OtherAccount(accountID int64) (int64, bool) {
	switch accountID {
	case t.FromAccountID:
		return t.ToAccountID, true
	case t.ToAccountID:
		return t.FromAccountID, true
	}
	return 0, false
}

// CreateTransferResponse wraps the transfer the server just recorded.
type CreateTransferResponse struct {
	Transfer TransferRecord `json:"transfer"`
}

// ListTransfersResponse wraps a page of transfer history.
type ListTransfersResponse struct {
	Transfers []TransferRecord `json:"transfers"`
}
