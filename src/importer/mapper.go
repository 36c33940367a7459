// src/importer/mapper.go
package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/dbimport/src/models"
)

// MapRow converts one raw data row into a typed transaction per the schema.
// The returned amount is sign-normalized: a debit row is always negative and
// a credit row always positive, regardless of how the bank signs the source
// columns.
func MapRow(row *RawRow, schema *Schema) (*models.ParsedTransaction, error) {
	get := func(field string) string {
		return strings.TrimSpace(schema.column(row.Fields, field))
	}

	dateStr := get(FieldValueDate)
	valueDate, err := time.Parse(schema.DateFormat, dateStr)
	if err != nil {
		return nil, &FieldMappingError{
			Line:   row.Line,
			Field:  FieldValueDate,
			Value:  dateStr,
			Reason: "date field not in expected format " + schema.DateFormat,
		}
	}

	currency := get(FieldCurrency)
	if currency == "" {
		return nil, &FieldMappingError{
			Line:   row.Line,
			Field:  FieldCurrency,
			Value:  "",
			Reason: "currency field is empty",
		}
	}

	debit := get(FieldDebit)
	credit := get(FieldCredit)

	var amount decimal.Decimal
	switch {
	case debit != "" && credit != "":
		return nil, &FieldMappingError{
			Line:   row.Line,
			Field:  FieldDebit,
			Value:  debit,
			Reason: "row has both debit and credit values",
		}
	case debit == "" && credit == "":
		return nil, &FieldMappingError{
			Line:   row.Line,
			Field:  FieldDebit,
			Value:  "",
			Reason: "row has neither debit nor credit value",
		}
	case debit != "":
		amount, err = parseAmount(schema, debit, FieldDebit, row.Line)
		if err != nil {
			return nil, err
		}
		// Outflow: force negative whether or not the bank pre-signed it.
		amount = amount.Abs().Neg()
	default:
		amount, err = parseAmount(schema, credit, FieldCredit, row.Line)
		if err != nil {
			return nil, err
		}
		amount = amount.Abs()
	}

	if -amount.Exponent() > models.MinorUnits(currency) {
		return nil, &FieldMappingError{
			Line:   row.Line,
			Field:  FieldCurrency,
			Value:  amount.String(),
			Reason: "amount has more decimal places than " + currency + " allows",
		}
	}

	return &models.ParsedTransaction{
		ValueDate:   valueDate,
		Amount:      amount,
		Currency:    currency,
		Description: get(FieldDetails),
		Payee:       get(FieldPayee),
		Line:        row.Line,
	}, nil
}

// parseAmount parses a monetary value using the schema's separators,
// preserving exact minor-unit precision. No floats anywhere.
func parseAmount(schema *Schema, value, field string, line int) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(value, schema.ThousandsSep, "")
	if schema.DecimalSep != "." {
		cleaned = strings.ReplaceAll(cleaned, schema.DecimalSep, ".")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, &FieldMappingError{
			Line:   line,
			Field:  field,
			Value:  value,
			Reason: "amount field not a valid decimal",
		}
	}
	return d, nil
}
