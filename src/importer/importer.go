// src/importer/importer.go
package importer

import (
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/username/dbimport/src/logger"
	"github.com/username/dbimport/src/models"
)

const (
	// balanceRowMarker starts the trailing summary row of the data table.
	// Its balance value sits in the payment details column and its currency
	// in the IBAN column.
	balanceRowMarker = "Account balance"

	// pendingNoticeLine is the fixed fourth header line of every export.
	pendingNoticeLine = "Transactions pending are not included in this report."
)

var (
	periodRe     = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4}) - (\d{2}/\d{2}/\d{4})$`)
	oldBalanceRe = regexp.MustCompile(`^Old balance:;;;;(-?[0-9,]+\.[0-9]{2});([A-Z]{3})$`)
)

type state int

const (
	stateUnmatched state = iota
	stateMatched
	stateParsed
	stateDone
)

func (s state) String() string {
	switch s {
	case stateUnmatched:
		return "unmatched"
	case stateMatched:
		return "matched"
	case stateParsed:
		return "parsed"
	case stateDone:
		return "done"
	}
	return "unknown"
}

// Importer runs the full pipeline for one configured account:
// match -> decode -> map -> build. A failure on any single row aborts the
// whole file; a partial import would silently omit transactions, which is
// worse than an all-or-nothing failure.
type Importer struct {
	cfg     models.AccountConfig
	matcher Matcher
	schema  *Schema
	builder *Builder
}

// New returns an importer bound to one account configuration. Importers
// hold no cross-file state, so one importer per config can safely be used
// against many files, and different files may be processed in parallel by
// the caller.
func New(cfg models.AccountConfig) *Importer {
	return &Importer{
		cfg:     cfg,
		matcher: NewMatcher(cfg.Identity),
		schema:  CurrentAccount,
		builder: NewBuilder(cfg),
	}
}

// Result is the outcome of importing one file. When Matched is false the
// file belongs to some other account and every other field is zero; that is
// a normal outcome, not an error.
type Result struct {
	Matched        bool
	RunID          string
	Config         models.AccountConfig
	Entries        []models.LedgerEntry
	Period         models.StatementPeriod
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
}

// Identify reports whether the file belongs to this importer's account.
// Only the first header line is decoded, so probing many configs against a
// file stays cheap.
func (imp *Importer) Identify(path string) (bool, error) {
	r, err := DecodeFile(path, imp.cfg.FileEncoding)
	if err != nil {
		return false, err
	}
	defer r.Close()

	line, _, err := r.NextLine()
	if err == io.EOF {
		return false, &HeaderFormatError{Line: 1, Reason: "empty file"}
	}
	if err != nil {
		return false, err
	}
	return imp.matcher.Match(line)
}

// Import processes one statement file and returns its ledger entries in
// file order. Importing the same file twice produces element-wise identical
// entries (same ids, same values).
func (imp *Importer) Import(path string) (*Result, error) {
	logger.L.Debug("importing statement",
		"path", path,
		"account", imp.cfg.Identity.String())

	r, err := DecodeFile(path, imp.cfg.FileEncoding)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	st := stateUnmatched

	// Account identity runs first: it is the cheapest check and avoids
	// wasted decode work on files belonging to other accounts.
	headerLine, _, err := r.NextLine()
	if err == io.EOF {
		return nil, &HeaderFormatError{Line: 1, Reason: "empty file"}
	}
	if err != nil {
		return nil, err
	}
	matched, err := imp.matcher.Match(headerLine)
	if err != nil {
		return nil, err
	}
	if !matched {
		logger.L.Debug("statement belongs to another account", "path", path)
		return &Result{Matched: false}, nil
	}
	st = stateMatched
	logger.L.Debug("statement matched", "path", path, "state", st.String())

	res := &Result{
		Matched: true,
		RunID:   uuid.NewString(),
		Config:  imp.cfg,
	}

	if res.Period, err = imp.readPeriod(r); err != nil {
		return nil, err
	}
	if res.OpeningBalance, err = imp.readOpeningBalance(r); err != nil {
		return nil, err
	}
	if err = imp.readPendingNotice(r); err != nil {
		return nil, err
	}
	if err = imp.readDataHeader(r); err != nil {
		return nil, err
	}

	r.ExpectFields(imp.schema.FieldCount())
	sawBalanceRow := false
	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if strings.TrimSpace(imp.schema.column(row.Fields, FieldBookingDate)) == balanceRowMarker {
			if res.ClosingBalance, err = imp.readClosingBalance(row); err != nil {
				return nil, err
			}
			sawBalanceRow = true
			continue
		}

		tx, err := MapRow(row, imp.schema)
		if err != nil {
			return nil, err
		}
		entry, err := imp.builder.Build(tx)
		if err != nil {
			return nil, err
		}
		res.Entries = append(res.Entries, *entry)
	}
	st = stateParsed
	logger.L.Debug("statement rows parsed", "path", path, "rows", len(res.Entries), "state", st.String())

	st = stateDone
	logger.L.Info("statement imported",
		"path", path,
		"account", imp.cfg.TargetAccount,
		"entries", len(res.Entries),
		"hasClosingBalance", sawBalanceRow,
		"runID", res.RunID,
		"state", st.String())
	return res, nil
}

// readPeriod parses the second header line, "MM/DD/YYYY - MM/DD/YYYY".
func (imp *Importer) readPeriod(r *RowReader) (models.StatementPeriod, error) {
	line, n, err := r.NextLine()
	if err == io.EOF {
		return models.StatementPeriod{}, &HeaderFormatError{Line: r.line, Reason: "unexpected end of file before period line"}
	}
	if err != nil {
		return models.StatementPeriod{}, err
	}

	m := periodRe.FindStringSubmatch(line)
	if m == nil {
		return models.StatementPeriod{}, &HeaderFormatError{Line: n, Raw: line, Reason: "unexpected from and to dates"}
	}

	var p models.StatementPeriod
	if p.From, err = parseHeaderDate(m[1], n, line, imp.schema.DateFormat); err != nil {
		return models.StatementPeriod{}, err
	}
	if p.To, err = parseHeaderDate(m[2], n, line, imp.schema.DateFormat); err != nil {
		return models.StatementPeriod{}, err
	}
	return p, nil
}

// readOpeningBalance parses the third header line,
// "Old balance:;;;;<amount>;<currency>".
func (imp *Importer) readOpeningBalance(r *RowReader) (decimal.Decimal, error) {
	line, n, err := r.NextLine()
	if err == io.EOF {
		return decimal.Decimal{}, &HeaderFormatError{Line: r.line, Reason: "unexpected end of file before old balance line"}
	}
	if err != nil {
		return decimal.Decimal{}, err
	}

	m := oldBalanceRe.FindStringSubmatch(line)
	if m == nil {
		return decimal.Decimal{}, &HeaderFormatError{Line: n, Raw: line, Reason: "unexpected old balance"}
	}
	if m[2] != imp.cfg.Currency {
		return decimal.Decimal{}, &CurrencyMismatchError{Line: n, Expected: imp.cfg.Currency, Got: m[2]}
	}
	return parseAmount(imp.schema, m[1], "old_balance", n)
}

// readPendingNotice checks the fixed fourth header line.
func (imp *Importer) readPendingNotice(r *RowReader) error {
	line, n, err := r.NextLine()
	if err == io.EOF {
		return &HeaderFormatError{Line: r.line, Reason: "unexpected end of file before pending notice"}
	}
	if err != nil {
		return err
	}
	if strings.TrimSpace(line) != pendingNoticeLine {
		return &HeaderFormatError{Line: n, Raw: line, Reason: "unexpected line, expected pending transactions notice"}
	}
	return nil
}

// readDataHeader validates the column header of the data table against the
// schema so silent column drift cannot misfile amounts.
func (imp *Importer) readDataHeader(r *RowReader) error {
	row, err := r.Next()
	if err == io.EOF {
		return &HeaderFormatError{Line: r.line, Reason: "unexpected end of file before data header"}
	}
	if err != nil {
		return err
	}
	if len(row.Fields) != imp.schema.FieldCount() {
		return &HeaderFormatError{Line: row.Line, Raw: row.Raw, Reason: "unexpected data header"}
	}
	for i, want := range imp.schema.Columns {
		if strings.TrimSpace(row.Fields[i]) != want {
			return &HeaderFormatError{Line: row.Line, Raw: row.Raw, Reason: "unexpected data header column " + row.Fields[i]}
		}
	}
	return nil
}

// readClosingBalance parses the trailing "Account balance" summary row.
func (imp *Importer) readClosingBalance(row *RawRow) (decimal.Decimal, error) {
	currency := strings.TrimSpace(imp.schema.column(row.Fields, FieldIBAN))
	if currency != imp.cfg.Currency {
		return decimal.Decimal{}, &CurrencyMismatchError{Line: row.Line, Expected: imp.cfg.Currency, Got: currency}
	}
	value := strings.TrimSpace(imp.schema.column(row.Fields, FieldDetails))
	return parseAmount(imp.schema, value, "account_balance", row.Line)
}

func parseHeaderDate(value string, line int, raw, format string) (t time.Time, err error) {
	t, err = time.Parse(format, value)
	if err != nil {
		return time.Time{}, &HeaderFormatError{Line: line, Raw: raw, Reason: "unparseable date " + value}
	}
	return t, nil
}

// ImportFirstMatch probes each configured account against the file in
// order and imports with the first one that claims it. When no account
// matches, the returned result has Matched false and err is nil.
func ImportFirstMatch(cfgs []models.AccountConfig, path string) (*Result, error) {
	for _, cfg := range cfgs {
		res, err := New(cfg).Import(path)
		if err != nil {
			return nil, err
		}
		if res.Matched {
			return res, nil
		}
	}
	return &Result{Matched: false}, nil
}
