package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"vaultguard-client/internal/models"
)

type fakeLister struct {
	mu    sync.Mutex
	fn    func() ([]models.Account, error)
	calls int
}

func (f *fakeLister) ListAccounts(pageID, pageSize int) ([]models.Account, error) {
	f.mu.Lock()
	f.calls++
	fn := f.fn
	f.mu.Unlock()
	return fn()
}

func (f *fakeLister) set(fn func() ([]models.Account, error)) {
	f.mu.Lock()
	f.fn = fn
	f.mu.Unlock()
}

func accountsFixture() []models.Account {
	return []models.Account{
		{ID: 1, Balance: 10000, Currency: models.USD},
		{ID: 2, Balance: 2500, Currency: models.USD},
		{ID: 3, Balance: 999, Currency: models.EUR},
	}
}

func TestRefreshReplacesWholesale(t *testing.T) {
	lister := &fakeLister{}
	lister.set(func() ([]models.Account, error) { return accountsFixture(), nil })
	c := NewAccountCache(lister, 10)

	got, err := c.Refresh()
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 3, c.Len())

	account, ok := c.Get(2)
	require.True(t, ok)
	require.Equal(t, int64(2500), account.Balance)

	// The next refresh drops account 2 entirely; no incremental merge.
	lister.set(func() ([]models.Account, error) {
		return []models.Account{{ID: 1, Balance: 7000, Currency: models.USD}}, nil
	})
	got, err = c.Refresh()
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, ok = c.Get(2)
	require.False(t, ok)
	account, ok = c.Get(1)
	require.True(t, ok)
	require.Equal(t, int64(7000), account.Balance)
}

func TestFailedRefreshKeepsSnapshot(t *testing.T) {
	lister := &fakeLister{}
	lister.set(func() ([]models.Account, error) { return accountsFixture(), nil })
	c := NewAccountCache(lister, 10)

	_, err := c.Refresh()
	require.NoError(t, err)

	lister.set(func() ([]models.Account, error) { return nil, errors.New("boom") })
	_, err = c.Refresh()
	require.Error(t, err)

	// Previous snapshot untouched.
	require.Equal(t, 3, c.Len())
	account, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, int64(10000), account.Balance)
}

func TestTotalsByCurrency(t *testing.T) {
	lister := &fakeLister{}
	lister.set(func() ([]models.Account, error) { return accountsFixture(), nil })
	c := NewAccountCache(lister, 10)

	_, err := c.Refresh()
	require.NoError(t, err)

	totals := c.TotalsByCurrency()
	require.Equal(t, map[string]int64{
		models.USD: 12500,
		models.EUR: 999,
	}, totals)
}

func TestTotalsEmptyCache(t *testing.T) {
	c := NewAccountCache(&fakeLister{}, 10)
	require.Empty(t, c.TotalsByCurrency())
	require.Empty(t, c.List())
}

// A refresh that started first but finished last must not overwrite the
// newer snapshot: last one wins on render.
func TestStaleRefreshIsDiscarded(t *testing.T) {
	lister := &fakeLister{}
	c := NewAccountCache(lister, 10)

	release := make(chan struct{})
	started := make(chan struct{})
	lister.set(func() ([]models.Account, error) {
		close(started)
		<-release
		return []models.Account{{ID: 1, Balance: 1, Currency: models.USD}}, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.Refresh() // stale: starts now, finishes after the fresh one
		require.NoError(t, err)
	}()
	<-started

	lister.set(func() ([]models.Account, error) {
		return []models.Account{{ID: 1, Balance: 42, Currency: models.USD}}, nil
	})
	_, err := c.Refresh()
	require.NoError(t, err)

	close(release)
	wg.Wait()

	account, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, int64(42), account.Balance, "stale refresh clobbered the newer snapshot")
}
