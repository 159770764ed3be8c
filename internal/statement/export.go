// Package statement renders an account's transfer history to PDF or XLSX.
// It is the offline counterpart of the transaction history screen.
package statement

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/tealeg/xlsx"

	"vaultguard-client/internal/logging"
	"vaultguard-client/internal/models"
	"vaultguard-client/internal/money"
	"vaultguard-client/internal/worker"
)

// Fetcher is the slice of the gateway the exporter needs.
type Fetcher interface {
	ListTransfers(accountID int64, pageID, pageSize int) ([]models.TransferRecord, error)
}

type Exporter struct {
	fetcher  Fetcher
	pageSize int
	pool     *worker.Pool
	log      zerolog.Logger
}

// NewExporter builds an exporter. The pool bounds how many accounts are
// fetched concurrently during a full export; it may be nil, in which case
// everything runs inline.
func NewExporter(fetcher Fetcher, pageSize int, pool *worker.Pool) *Exporter {
	return &Exporter{
		fetcher:  fetcher,
		pageSize: pageSize,
		pool:     pool,
		log:      logging.ForComponent("statement"),
	}
}

// History pages through the full transfer history of one account. A page
// shorter than the page size marks the end.
func (e *Exporter) History(accountID int64) ([]models.TransferRecord, error) {
	var all []models.TransferRecord
	for page := 1; ; page++ {
		transfers, err := e.fetcher.ListTransfers(accountID, page, e.pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, transfers...)
		if len(transfers) < e.pageSize {
			return all, nil
		}
	}
}

// HistoryAll fetches every account's history, one pool job per account.
// The first error wins; partial results are discarded so a statement never
// silently omits an account.
func (e *Exporter) HistoryAll(accounts []models.Account) (map[int64][]models.TransferRecord, error) {
	results := make(map[int64][]models.TransferRecord, len(accounts))

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	for _, account := range accounts {
		id := account.ID
		job := worker.Job{
			ID: fmt.Sprintf("history-%d", id),
			Task: func() error {
				transfers, err := e.History(id)
				if err != nil {
					return err
				}
				mu.Lock()
				results[id] = transfers
				mu.Unlock()
				return nil
			},
			OnDone: func(err error) {
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
				wg.Done()
			},
		}

		wg.Add(1)
		if e.pool == nil {
			job.OnDone(job.Task())
			continue
		}
		if err := e.pool.Submit(job); err != nil {
			// Full queue: do the work inline rather than dropping it.
			e.log.Warn().Int64("account", id).Msg("worker queue full, fetching inline")
			job.OnDone(job.Task())
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// WritePDF renders a statement document for one account.
func (e *Exporter) WritePDF(w io.Writer, account models.Account, transfers []models.TransferRecord) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Account #%d Statement (%s)", account.ID, account.Currency))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(40, 7, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 7, "Type", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Other Account", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Transfer ID", "1", 0, "", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 11)
	for _, transfer := range transfers {
		pdf.CellFormat(40, 7, transfer.CreatedAt.Format("2006-01-02 15:04:05"), "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 7, string(transfer.DirectionFor(account.ID)), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 7, signedAmount(transfer, account), "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, otherAccountLabel(transfer, account.ID), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, strconv.FormatInt(transfer.ID, 10), "1", 0, "", false, 0, "")
		pdf.Ln(7)
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(40, 7, "Generated "+time.Now().Format("2006-01-02 15:04:05"))

	return pdf.Output(w)
}

// WriteXLSX renders the same statement as a spreadsheet.
func (e *Exporter) WriteXLSX(w io.Writer, account models.Account, transfers []models.TransferRecord) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(fmt.Sprintf("Account %d", account.ID))
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	header.AddCell().SetValue("Date")
	header.AddCell().SetValue("Type")
	header.AddCell().SetValue("Amount")
	header.AddCell().SetValue("Other Account")
	header.AddCell().SetValue("Transfer ID")

	for _, transfer := range transfers {
		row := sheet.AddRow()
		row.AddCell().SetValue(transfer.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(string(transfer.DirectionFor(account.ID)))
		row.AddCell().SetValue(signedAmount(transfer, account))
		row.AddCell().SetValue(otherAccountLabel(transfer, account.ID))
		row.AddCell().SetValue(strconv.FormatInt(transfer.ID, 10))
	}

	return file.Write(w)
}

func signedAmount(transfer models.TransferRecord, account models.Account) string {
	sign := "+"
	if transfer.DirectionFor(account.ID) == models.DirectionOutgoing {
		sign = "-"
	}
	return sign + money.FormatWithCurrency(transfer.Amount, account.Currency)
}

func otherAccountLabel(transfer models.TransferRecord, accountID int64) string {
	other, ok := transfer.OtherAccount(accountID)
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("Account #%d", other)
}
