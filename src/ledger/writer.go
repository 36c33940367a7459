// src/ledger/writer.go
package ledger

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/dbimport/src/models"
)

// Writer renders ledger entries as beancount text. Output is deterministic:
// entries keep their input order and metadata keys are sorted.
type Writer struct {
	// Flag marks the transaction status, "*" for cleared.
	Flag string
}

func New() *Writer {
	return &Writer{Flag: "*"}
}

// Write renders the entries to out, separated by blank lines.
//
//	2020-01-03 * "EMPLOYER AG" "Salary January"
//	  id: "9f86d08..."
//	  line: "7"
//	  Assets:DB:Current  2500.00 EUR
func (w *Writer) Write(out io.Writer, entries []models.LedgerEntry) error {
	for i := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if err := w.writeEntry(out, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteBalance emits a balance assertion for the statement's closing
// balance. Beancount asserts balances at the start of the day, so the
// caller should date this the day after the statement period ends.
func (w *Writer) WriteBalance(out io.Writer, date time.Time, account string, amount decimal.Decimal, currency string) error {
	_, err := fmt.Fprintf(out, "%s balance %s  %s %s\n",
		date.Format("2006-01-02"), account, formatAmount(amount, currency), currency)
	return err
}

func (w *Writer) writeEntry(out io.Writer, e *models.LedgerEntry) error {
	flag := w.Flag
	if flag == "" {
		flag = "*"
	}

	if _, err := fmt.Fprintf(out, "%s %s %q %q\n",
		e.PostingDate.Format("2006-01-02"), flag, e.Payee, e.Narration); err != nil {
		return err
	}

	keys := make([]string, 0, len(e.Metadata))
	for k := range e.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(out, "  %s: %q\n", k, e.Metadata[k]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(out, "  %s  %s %s\n",
		e.Account, formatAmount(e.Amount, e.Currency), e.Currency); err != nil {
		return err
	}
	if e.Balancing != nil {
		if _, err := fmt.Fprintf(out, "  %s  %s %s\n",
			e.Balancing.Account, formatAmount(e.Balancing.Amount, e.Balancing.Currency), e.Balancing.Currency); err != nil {
			return err
		}
	}
	return nil
}

func formatAmount(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(models.MinorUnits(currency))
}
