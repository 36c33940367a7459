// src/importer/schema.go
package importer

// Semantic field names of the export's data table. The schema maps each one
// to a column index so a future bank layout is a new table, not new code.
const (
	FieldBookingDate = "booking_date"
	FieldValueDate   = "value_date"
	FieldPayee       = "payee"
	FieldDetails     = "payment_details"
	FieldIBAN        = "iban"
	FieldDebit       = "debit"
	FieldCredit      = "credit"
	FieldCurrency    = "currency"
)

// Schema describes one bank export layout: the exact data header, the
// source date format, the number separators the bank writes (never the
// runtime locale), and where each semantic field lives.
type Schema struct {
	Columns      []string // expected data header, in file order
	DateFormat   string
	ThousandsSep string
	DecimalSep   string
	Index        map[string]int // semantic field name -> column index
}

// FieldCount is the number of columns every data row must have.
func (s *Schema) FieldCount() int {
	return len(s.Columns)
}

func (s *Schema) column(fields []string, field string) string {
	return fields[s.Index[field]]
}

// CurrentAccount is the schema of the Deutsche Bank current account CSV
// export (English locale): semicolon separated, month-first dates, comma
// thousands grouping.
var CurrentAccount = &Schema{
	Columns: []string{
		"Booking date",
		"Value date",
		"Transaction Type",
		"Beneficiary / Originator",
		"Payment Details",
		"IBAN",
		"BIC",
		"Customer Reference",
		"Mandate Reference",
		"Creditor ID",
		"Compensation amount",
		"Original Amount",
		"Ultimate creditor",
		"Number of transactions",
		"Number of cheques",
		"Debit",
		"Credit",
		"Currency",
	},
	DateFormat:   "01/02/2006",
	ThousandsSep: ",",
	DecimalSep:   ".",
	Index: map[string]int{
		FieldBookingDate: 0,
		FieldValueDate:   1,
		FieldPayee:       3,
		FieldDetails:     4,
		FieldIBAN:        5,
		FieldDebit:       15,
		FieldCredit:      16,
		FieldCurrency:    17,
	},
}
