package models

// Supported currencies, matching the set the backend accepts.
const (
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
	CAD = "CAD"
	JPY = "JPY"
	INR = "INR"
)

// Currencies lists the supported set in display order.
var Currencies = []string{USD, EUR, GBP, CAD, JPY, INR}

// IsSupportedCurrency reports whether the given currency is supported.
func IsSupportedCurrency(currency string) bool {
	switch currency {
	case USD, EUR, GBP, CAD, JPY, INR:
		return true
	}
	return false
}

// Account is the server's view of a single account. Balance is in minor
// currency units (cents).
type Account struct {
	ID        int64     `json:"id"`
	Owner     string    `json:"owner"`
	Balance   int64     `json:"balance"`
	Currency  string    `json:"currency"`
	CreatedAt Timestamp `json:"created_at"`
}

// CreateAccountRequest opens a new account in the given currency. The
// balance always starts at zero server-side.
type CreateAccountRequest struct {
	Currency string `json:"currency"`
}

// ListAccountsResponse wraps the paginated account list.
type ListAccountsResponse struct {
	Accounts []Account `json:"accounts"`
}
