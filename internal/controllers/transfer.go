package controllers

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"vaultguard-client/internal/cache"
	"vaultguard-client/internal/gateway"
	"vaultguard-client/internal/logging"
	"vaultguard-client/internal/money"
	"vaultguard-client/internal/validator"
)

// TransferController is the transfer form: validate locally against the
// cached snapshot, submit, refresh balances.
type TransferController struct {
	gw    *gateway.Client
	cache *cache.AccountCache
	Flash *Flash
	log   zerolog.Logger
}

func NewTransferController(gw *gateway.Client, accounts *cache.AccountCache, flash *Flash) *TransferController {
	return &TransferController{
		gw:    gw,
		cache: accounts,
		Flash: flash,
		log:   logging.ForComponent("transfer"),
	}
}

// Load fetches the accounts the form needs for its source selector.
func (c *TransferController) Load() error {
	if _, err := c.cache.Refresh(); err != nil {
		c.Flash.ShowError(err)
		return err
	}
	if c.cache.Len() == 0 {
		c.Flash.Show("You need to create at least one account before making transfers.", LevelWarning)
	}
	return nil
}

// CurrencyFor mirrors the form locking the currency to the selected source
// account.
func (c *TransferController) CurrencyFor(fromAccountID int64) (string, bool) {
	account, ok := c.cache.Get(fromAccountID)
	if !ok {
		return "", false
	}
	return account.Currency, true
}

// Submit validates the proposal and, only if every check passes, sends it.
// A rejected transfer never reaches the network. On success the account
// snapshot is refreshed so the new balances render everywhere.
func (c *TransferController) Submit(input validator.TransferInput) error {
	req, err := validator.Validate(input, c.cache)
	if err != nil {
		c.Flash.ShowError(err)
		return err
	}

	transfer, err := c.gw.CreateTransfer(req)
	if err != nil {
		c.Flash.ShowError(err)
		return err
	}

	c.log.Info().Int64("transfer", transfer.ID).
		Int64("from", req.FromAccountID).Int64("to", req.ToAccountID).
		Int64("amount", req.Amount).Str("currency", req.Currency).
		Msg("transfer created")
	c.Flash.Show(fmt.Sprintf("Transfer successful! Transfer ID: %d", transfer.ID), LevelSuccess)

	if _, err := c.cache.Refresh(); err != nil {
		c.log.Warn().Err(err).Msg("post-transfer refresh failed")
	}
	return nil
}

// RemainingAfter previews the source balance after a proposed amount, for
// form feedback. Returns false when the preview cannot be computed.
func (c *TransferController) RemainingAfter(fromAccountID int64, amount string) (int64, bool) {
	account, ok := c.cache.Get(fromAccountID)
	if !ok {
		return 0, false
	}
	minor, err := money.ParseMajor(amount)
	if err != nil || minor <= 0 {
		return 0, false
	}
	return account.Balance - minor, true
}

// Render writes the form state as text.
func (c *TransferController) Render(w io.Writer) {
	if text, level, ok := c.Flash.Get(); ok {
		fmt.Fprintf(w, "[%s] %s\n\n", level, text)
	}
	for _, account := range c.cache.List() {
		fmt.Fprintf(w, "Account #%-6d available %s\n",
			account.ID, money.FormatWithCurrency(account.Balance, account.Currency))
	}
}
