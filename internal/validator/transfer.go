// Package validator decides whether a proposed transfer is well-formed and
// affordable before anything touches the network. It is pure: the account
// snapshot arrives as an argument, no globals, no side effects.
package validator

import (
	"vaultguard-client/internal/models"
	"vaultguard-client/internal/money"
)

// Snapshot is a read-only view of cached accounts. *cache.AccountCache
// satisfies it.
type Snapshot interface {
	Get(id int64) (models.Account, bool)
}

// TransferInput is the raw form state: selections may be absent (zero) and
// the amount is still the decimal string the user typed.
type TransferInput struct {
	FromAccountID int64
	ToAccountID   int64
	Amount        string
	Currency      string
}

// ValidationError is a local rejection. Code is stable for the UI;
// Reason is the message shown to the user.
type ValidationError struct {
	Code   string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// The checks run in this order and stop at the first failure, so the user
// always sees the same message for the same mistake.
var (
	ErrMissingSource       = &ValidationError{"MISSING_SOURCE", "please select a source account"}
	ErrMissingDestination  = &ValidationError{"MISSING_DESTINATION", "please enter a destination account ID"}
	ErrSameAccount         = &ValidationError{"SAME_ACCOUNT", "source and destination accounts cannot be the same"}
	ErrInvalidAmount       = &ValidationError{"INVALID_AMOUNT", "please enter a valid positive amount"}
	ErrUnknownSource       = &ValidationError{"UNKNOWN_SOURCE", "source account not found, refresh your accounts"}
	ErrCurrencyMismatch    = &ValidationError{"CURRENCY_MISMATCH", "currency does not match the source account"}
	ErrInsufficientBalance = &ValidationError{"INSUFFICIENT_BALANCE", "insufficient balance"}
)

// Validate checks the input against the snapshot. On success it returns
// the normalized request, amount converted to minor units, ready for
// submission. A rejected request is never sent to the server.
func Validate(input TransferInput, snapshot Snapshot) (models.CreateTransferRequest, error) {
	var req models.CreateTransferRequest

	if input.FromAccountID == 0 {
		return req, ErrMissingSource
	}
	if input.ToAccountID == 0 {
		return req, ErrMissingDestination
	}
	if input.FromAccountID == input.ToAccountID {
		return req, ErrSameAccount
	}

	amount, err := money.ParseMajor(input.Amount)
	if err != nil || amount <= 0 {
		return req, ErrInvalidAmount
	}

	source, ok := snapshot.Get(input.FromAccountID)
	if !ok {
		return req, ErrUnknownSource
	}
	if input.Currency != source.Currency {
		return req, ErrCurrencyMismatch
	}
	if amount > source.Balance {
		return req, ErrInsufficientBalance
	}

	req = models.CreateTransferRequest{
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        amount,
		Currency:      input.Currency,
	}
	return req, nil
}
