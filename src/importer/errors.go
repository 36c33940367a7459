// src/importer/errors.go
package importer

import "fmt"

// DecodeError reports a byte sequence that is not valid for the declared
// file encoding. The pipeline never substitutes replacement characters;
// an undecodable file is rejected outright.
type DecodeError struct {
	Path     string
	Encoding string
	Offset   int64 // byte offset of the offending byte from the start of the file
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid byte for encoding %s at offset %d in %s", e.Encoding, e.Offset, e.Path)
}

// MalformedRowError reports a data row whose field count does not match the
// schema. Raw keeps the offending line verbatim so the failure can be
// diagnosed without re-running the import.
type MalformedRowError struct {
	Line     int
	Expected int
	Got      int
	Raw      string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row at line %d: expected %d fields, got %d (%q)", e.Line, e.Expected, e.Got, e.Raw)
}

// FieldMappingError reports a field whose content violates its type or
// format expectation.
type FieldMappingError struct {
	Line   int
	Field  string
	Value  string
	Reason string
}

func (e *FieldMappingError) Error() string {
	return fmt.Sprintf("field %q at line %d: %s (value %q)", e.Field, e.Line, e.Reason, e.Value)
}

// HeaderFormatError reports a header region from which the account identity
// or statement metadata cannot be determined at all. This is distinct from
// a well-formed header naming some other account, which is not an error.
type HeaderFormatError struct {
	Line   int
	Raw    string
	Reason string
}

func (e *HeaderFormatError) Error() string {
	return fmt.Sprintf("unreadable statement header at line %d: %s (%q)", e.Line, e.Reason, e.Raw)
}

// CurrencyMismatchError reports a row (or balance line) denominated in a
// currency other than the configured one. The importer never converts.
type CurrencyMismatchError struct {
	Line     int
	Expected string
	Got      string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch at line %d: statement has %q, account is configured for %q", e.Line, e.Got, e.Expected)
}
