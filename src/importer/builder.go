// src/importer/builder.go
package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/username/dbimport/src/models"
)

// placeholderNarration is used when the source row has no payment details,
// because a ledger entry must never have an empty narration.
const placeholderNarration = "(no description)"

// Builder assembles ledger entries for one matched account.
type Builder struct {
	cfg models.AccountConfig
}

func NewBuilder(cfg models.AccountConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build produces one ledger entry from a parsed transaction. The
// transaction's currency must equal the configured currency; the importer
// never performs conversion.
func (b *Builder) Build(tx *models.ParsedTransaction) (*models.LedgerEntry, error) {
	if tx.Currency != b.cfg.Currency {
		return nil, &CurrencyMismatchError{
			Line:     tx.Line,
			Expected: b.cfg.Currency,
			Got:      tx.Currency,
		}
	}

	narration := tx.Description
	if narration == "" {
		narration = placeholderNarration
	}

	entry := &models.LedgerEntry{
		PostingDate: tx.ValueDate,
		Account:     b.cfg.TargetAccount,
		Amount:      tx.Amount,
		Currency:    b.cfg.Currency,
		Payee:       tx.Payee,
		Narration:   narration,
		Metadata: map[string]string{
			"id":   stableID(tx),
			"line": strconv.Itoa(tx.Line),
		},
	}

	if b.cfg.BalancingAccount != "" {
		entry.Balancing = &models.Posting{
			Account:  b.cfg.BalancingAccount,
			Amount:   tx.Amount.Neg(),
			Currency: b.cfg.Currency,
		}
	}

	return entry, nil
}

// stableID creates a deterministic identifier for the transaction based on
// source data. The source line is part of the input so rows that are
// textually identical but occur at different positions keep distinct ids.
func stableID(tx *models.ParsedTransaction) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s|%d",
		tx.ValueDate.Format("2006-01-02"),
		tx.Currency,
		tx.Amount.String(),
		tx.Payee,
		tx.Description,
		tx.Line,
	)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}
