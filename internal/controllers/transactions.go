package controllers

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"vaultguard-client/internal/cache"
	"vaultguard-client/internal/gateway"
	"vaultguard-client/internal/logging"
	"vaultguard-client/internal/models"
	"vaultguard-client/internal/money"
)

// TransactionsController is the transaction history screen: pick an
// account, page through its transfers. Page 1 replaces the listing, later
// pages append, and a short page means the history is exhausted.
type TransactionsController struct {
	gw       *gateway.Client
	cache    *cache.AccountCache
	pageSize int
	Flash    *Flash
	log      zerolog.Logger

	mu        sync.Mutex
	selected  int64
	transfers []models.TransferRecord
	page      int
	hasMore   bool
}

func NewTransactionsController(gw *gateway.Client, accounts *cache.AccountCache, pageSize int, flash *Flash) *TransactionsController {
	return &TransactionsController{
		gw:       gw,
		cache:    accounts,
		pageSize: pageSize,
		Flash:    flash,
		log:      logging.ForComponent("transactions"),
	}
}

// SelectAccount switches the screen to another account and resets the
// pagination state.
func (c *TransactionsController) SelectAccount(accountID int64) {
	c.mu.Lock()
	c.selected = accountID
	c.transfers = nil
	c.page = 0
	c.hasMore = true
	c.mu.Unlock()
}

// LoadMore fetches the next page for the selected account.
func (c *TransactionsController) LoadMore() error {
	c.mu.Lock()
	if c.selected == 0 {
		c.mu.Unlock()
		return nil
	}
	accountID := c.selected
	page := c.page + 1
	c.mu.Unlock()

	transfers, err := c.gw.ListTransfers(accountID, page, c.pageSize)
	if err != nil {
		c.Flash.ShowError(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The selection may have changed while the request was in flight;
	// results for the old account must not bleed into the new listing.
	if c.selected != accountID {
		c.log.Debug().Int64("account", accountID).Msg("discarding page for deselected account")
		return nil
	}

	if page == 1 {
		c.transfers = transfers
	} else {
		c.transfers = append(c.transfers, transfers...)
	}
	c.page = page
	c.hasMore = len(transfers) == c.pageSize
	return nil
}

// Transfers returns the loaded listing.
func (c *TransactionsController) Transfers() []models.TransferRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.TransferRecord(nil), c.transfers...)
}

// HasMore reports whether another page might exist.
func (c *TransactionsController) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Render writes the history table as text.
func (c *TransactionsController) Render(w io.Writer) {
	if text, level, ok := c.Flash.Get(); ok {
		fmt.Fprintf(w, "[%s] %s\n\n", level, text)
	}

	c.mu.Lock()
	selected := c.selected
	transfers := append([]models.TransferRecord(nil), c.transfers...)
	hasMore := c.hasMore
	c.mu.Unlock()

	if selected == 0 {
		fmt.Fprintln(w, "Choose an account to view its transactions.")
		return
	}

	currency := ""
	if account, ok := c.cache.Get(selected); ok {
		currency = account.Currency
		fmt.Fprintf(w, "Account #%d  balance %s\n\n", account.ID,
			money.FormatWithCurrency(account.Balance, account.Currency))
	}

	if len(transfers) == 0 {
		fmt.Fprintln(w, "No transactions found for this account.")
		return
	}

	for _, transfer := range transfers {
		sign := "+"
		if transfer.DirectionFor(selected) == models.DirectionOutgoing {
			sign = "-"
		}
		other := "N/A"
		if id, ok := transfer.OtherAccount(selected); ok {
			other = fmt.Sprintf("#%d", id)
		}
		fmt.Fprintf(w, "%s  %-8s  %s%s  %-8s  transfer #%d\n",
			transfer.CreatedAt.Format("2006-01-02 15:04"),
			transfer.DirectionFor(selected),
			sign, money.FormatWithCurrency(transfer.Amount, currency),
			other, transfer.ID)
	}
	if hasMore {
		fmt.Fprintln(w, "\n(more available)")
	}
}
