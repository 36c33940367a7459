// src/models/models.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountIdentity is the bank-assigned identity of one physical account.
// Branch and account number together are unique within the bank's numbering
// scheme. Values are compared exactly, including zero-padding.
type AccountIdentity struct {
	Branch string
	Number string
}

func (a AccountIdentity) Equals(other AccountIdentity) bool {
	return a.Branch == other.Branch && a.Number == other.Number
}

func (a AccountIdentity) String() string {
	return a.Branch + " " + a.Number
}

// AccountConfig binds a bank account identity to the ledger account its
// transactions are posted against. Supplied once per import run by the
// caller and never mutated afterwards.
type AccountConfig struct {
	Identity      AccountIdentity
	TargetAccount string // ledger account path, e.g. "Assets:DB:Current"
	Currency      string // ISO 4217 code the export must be denominated in
	FileEncoding  string // text encoding of the export, e.g. "iso-8859-1"

	// BalancingAccount, when set, makes the entry builder emit the
	// offsetting posting of each transaction inline. When empty the
	// downstream ledger system is expected to complete the pair.
	BalancingAccount string
}

// ParsedTransaction is one data row of the export after field mapping.
// Amount is already sign-normalized: money leaving the account is negative,
// money entering is positive.
type ParsedTransaction struct {
	ValueDate   time.Time
	Amount      decimal.Decimal
	Currency    string
	Description string
	Payee       string // beneficiary / originator, may be empty
	Line        int    // 1-based source line, kept for identity and diagnostics
}

// Posting is a single leg of a double-entry transaction.
type Posting struct {
	Account  string
	Amount   decimal.Decimal
	Currency string
}

// LedgerEntry is the importer's output artifact: one dated, signed monetary
// movement against the configured target account. Metadata carries the
// stable row identifier ("id") and the source line ("line") for downstream
// duplicate suppression.
type LedgerEntry struct {
	PostingDate time.Time
	Account     string
	Amount      decimal.Decimal
	Currency    string
	Payee       string
	Narration   string // never empty, falls back to a placeholder
	Metadata    map[string]string

	// Balancing is the optional inline offsetting posting, present only
	// when the matched AccountConfig sets a balancing account.
	Balancing *Posting
}

// StatementPeriod is the date range the export covers, declared in its
// header region.
type StatementPeriod struct {
	From time.Time
	To   time.Time
}

// minorUnits maps currency codes to their minor-unit decimal scale.
// Currencies not listed default to two decimal places.
var minorUnits = map[string]int32{
	"EUR": 2,
	"USD": 2,
	"GBP": 2,
	"CHF": 2,
	"JPY": 0,
	"ISK": 0,
	"KWD": 3,
}

// MinorUnits returns the decimal scale of a currency's smallest denomination.
func MinorUnits(currency string) int32 {
	if scale, ok := minorUnits[currency]; ok {
		return scale
	}
	return 2
}
