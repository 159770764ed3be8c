package controllers

import (
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"vaultguard-client/internal/cache"
	"vaultguard-client/internal/gateway"
	"vaultguard-client/internal/logging"
	"vaultguard-client/internal/models"
	"vaultguard-client/internal/money"
)

const recentTransfersCount = 5

// DashboardController is the overview screen: totals per currency and
// recent activity on the first account.
type DashboardController struct {
	gw    *gateway.Client
	cache *cache.AccountCache
	Flash *Flash
	log   zerolog.Logger

	recent   []models.TransferRecord
	recentOf int64
}

func NewDashboardController(gw *gateway.Client, accounts *cache.AccountCache, flash *Flash) *DashboardController {
	return &DashboardController{
		gw:    gw,
		cache: accounts,
		Flash: flash,
		log:   logging.ForComponent("dashboard"),
	}
}

// Refresh loads the account snapshot, then recent transfers for the first
// account. Transfer history failing is not fatal to the dashboard; the
// totals still render.
func (d *DashboardController) Refresh() error {
	accounts, err := d.cache.Refresh()
	if err != nil {
		d.Flash.ShowError(err)
		return err
	}

	d.recent = nil
	d.recentOf = 0
	if len(accounts) > 0 {
		recent, err := d.gw.ListTransfers(accounts[0].ID, 1, recentTransfersCount)
		if err != nil {
			d.log.Warn().Err(err).Msg("recent transfers unavailable")
		} else {
			d.recent = recent
			d.recentOf = accounts[0].ID
		}
	}
	return nil
}

// Totals returns per-currency balance sums in minor units.
func (d *DashboardController) Totals() map[string]int64 {
	return d.cache.TotalsByCurrency()
}

// Render writes the overview as text.
func (d *DashboardController) Render(w io.Writer) {
	if text, level, ok := d.Flash.Get(); ok {
		fmt.Fprintf(w, "[%s] %s\n\n", level, text)
	}

	totals := d.cache.TotalsByCurrency()
	if len(totals) == 0 {
		fmt.Fprintln(w, "No accounts created yet.")
		return
	}

	currencies := make([]string, 0, len(totals))
	for currency := range totals {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	fmt.Fprintln(w, "Total balance:")
	for _, currency := range currencies {
		fmt.Fprintf(w, "  %s\n", money.FormatWithCurrency(totals[currency], currency))
	}
	fmt.Fprintf(w, "Active accounts: %d\n", d.cache.Len())

	if len(d.recent) == 0 {
		return
	}
	// Classify against the account the activity was fetched for; the
	// shared cache may have been refreshed since.
	fmt.Fprintln(w, "\nRecent activity:")
	for _, transfer := range d.recent {
		sign := "+"
		if transfer.DirectionFor(d.recentOf) == models.DirectionOutgoing {
			sign = "-"
		}
		fmt.Fprintf(w, "  %s  %s%s  transfer #%d\n",
			transfer.CreatedAt.Format("2006-01-02"),
			sign, money.FormatMinor(transfer.Amount), transfer.ID)
	}
}
