package controllers

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"vaultguard-client/internal/cache"
	"vaultguard-client/internal/gateway"
	"vaultguard-client/internal/logging"
	"vaultguard-client/internal/models"
	"vaultguard-client/internal/money"
)

// AccountManagerController is the account list screen: refresh the cached
// snapshot, create accounts, render balances.
type AccountManagerController struct {
	gw    *gateway.Client
	cache *cache.AccountCache
	Flash *Flash
	log   zerolog.Logger
}

func NewAccountManagerController(gw *gateway.Client, accounts *cache.AccountCache, flash *Flash) *AccountManagerController {
	return &AccountManagerController{
		gw:    gw,
		cache: accounts,
		Flash: flash,
		log:   logging.ForComponent("account-manager"),
	}
}

// Refresh replaces the account snapshot. Failures keep the previous
// snapshot and surface a classified message; retrying is up to the user.
func (c *AccountManagerController) Refresh() error {
	if _, err := c.cache.Refresh(); err != nil {
		c.Flash.ShowError(err)
		return err
	}
	c.Flash.Show("Accounts loaded successfully", LevelSuccess)
	return nil
}

// CreateAccount opens a new account in the given currency, then refreshes
// so the new account shows up with its server-assigned id.
func (c *AccountManagerController) CreateAccount(currency string) error {
	if !models.IsSupportedCurrency(currency) {
		c.Flash.Show("Please select a valid currency.", LevelWarning)
		return fmt.Errorf("unsupported currency %q", currency)
	}

	account, err := c.gw.CreateAccount(currency)
	if err != nil {
		c.Flash.ShowError(err)
		return err
	}

	c.log.Info().Int64("account", account.ID).Str("currency", currency).Msg("account created")
	c.Flash.Show(fmt.Sprintf("Account created successfully! Account ID: %d", account.ID), LevelSuccess)

	if _, err := c.cache.Refresh(); err != nil {
		c.log.Warn().Err(err).Msg("post-create refresh failed")
	}
	return nil
}

// Accounts returns the cached snapshot in server order.
func (c *AccountManagerController) Accounts() []models.Account {
	return c.cache.List()
}

// Render writes the account list as text.
func (c *AccountManagerController) Render(w io.Writer) {
	if text, level, ok := c.Flash.Get(); ok {
		fmt.Fprintf(w, "[%s] %s\n\n", level, text)
	}

	accounts := c.cache.List()
	if len(accounts) == 0 {
		fmt.Fprintln(w, "No accounts found. Create your first account to get started!")
		return
	}

	for _, account := range accounts {
		fmt.Fprintf(w, "Account #%-6d %12s   created %s\n",
			account.ID,
			money.FormatWithCurrency(account.Balance, account.Currency),
			account.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}
