// Package writer serializes parsed transactions for export.
package writer

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-engine/internal/domain/statement/parser"
)

// csvRow is the flat export shape. Amounts are rendered at two decimals so
// spreadsheets do not reinterpret float noise.
type csvRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Provider    string `csv:"provider"`
	Amount      string `csv:"amount"`
}

// WriteCSV writes transactions as CSV with a header row.
func WriteCSV(w io.Writer, txs []parser.Transaction) error {
	rows := make([]csvRow, len(txs))
	for i, tx := range txs {
		rows[i] = csvRow{
			Date:        tx.Date,
			Description: tx.Description,
			Provider:    tx.Provider,
			Amount:      formatAmount(tx.Amount),
		}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func formatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
