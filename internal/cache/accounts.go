// Package cache keeps the per-view snapshot of the authenticated user's
// accounts. The snapshot is read-mostly: Refresh is the only mutator and
// replaces the contents wholesale, so rendered balances are always from a
// single consistent server response.
package cache

import (
	"sync"

	"github.com/rs/zerolog"

	"vaultguard-client/internal/logging"
	"vaultguard-client/internal/models"
)

// AccountLister is the slice of the gateway the cache needs.
type AccountLister interface {
	ListAccounts(pageID, pageSize int) ([]models.Account, error)
}

// AccountCache maps account id to account, preserving server order for
// rendering. Safe for concurrent use.
type AccountCache struct {
	lister   AccountLister
	pageSize int
	log      zerolog.Logger

	mu       sync.Mutex
	accounts map[int64]models.Account
	order    []int64

	// Refresh sequencing: a refresh that started earlier but finished
	// later must not clobber a newer snapshot. Last one wins on render.
	nextSeq    uint64
	appliedSeq uint64
}

func NewAccountCache(lister AccountLister, pageSize int) *AccountCache {
	return &AccountCache{
		lister:   lister,
		pageSize: pageSize,
		log:      logging.ForComponent("account-cache"),
		accounts: make(map[int64]models.Account),
	}
}

// Refresh fetches the first page of accounts and replaces the snapshot.
// On failure the previous snapshot stays untouched and the error is
// returned for the view to classify.
func (c *AccountCache) Refresh() ([]models.Account, error) {
	c.mu.Lock()
	c.nextSeq++
	seq := c.nextSeq
	c.mu.Unlock()

	accounts, err := c.lister.ListAccounts(1, c.pageSize)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.appliedSeq {
		c.log.Debug().Uint64("seq", seq).Uint64("applied", c.appliedSeq).Msg("discarding superseded refresh")
		return c.listLocked(), nil
	}
	c.appliedSeq = seq

	c.accounts = make(map[int64]models.Account, len(accounts))
	c.order = c.order[:0]
	for _, account := range accounts {
		c.accounts[account.ID] = account
		c.order = append(c.order, account.ID)
	}

	c.log.Debug().Int("accounts", len(accounts)).Msg("snapshot replaced")
	return c.listLocked(), nil
}

// Get returns the cached account with the given id.
func (c *AccountCache) Get(id int64) (models.Account, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	account, ok := c.accounts[id]
	return account, ok
}

// List returns the snapshot in server order.
func (c *AccountCache) List() []models.Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listLocked()
}

// Len reports how many accounts are cached.
func (c *AccountCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// TotalsByCurrency sums balances per currency in minor units. No
// cross-currency conversion happens here or anywhere else in the client.
func (c *AccountCache) TotalsByCurrency() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	totals := make(map[string]int64)
	for _, id := range c.order {
		account := c.accounts[id]
		totals[account.Currency] += account.Balance
	}
	return totals
}

func (c *AccountCache) listLocked() []models.Account {
	out := make([]models.Account, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.accounts[id])
	}
	return out
}
