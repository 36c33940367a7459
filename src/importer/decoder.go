// src/importer/decoder.go
package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fieldSeparator is the delimiter the bank's export format uses.
const fieldSeparator = ';'

// RawRow is one non-blank line of the source file after delimiter splitting.
type RawRow struct {
	Line   int // 1-based physical line number
	Raw    string
	Fields []string
}

// RowReader yields the rows of a statement file in file order. It is a
// forward-only, non-restartable sequence: a fresh decode must reopen the
// file via DecodeFile. The underlying file handle is held until Close.
type RowReader struct {
	f        *os.File
	br       *bufio.Reader
	cm       *charmap.Charmap // nil means UTF-8
	path     string
	encoding string
	offset   int64
	line     int
	expect   int // enforced field count, 0 disables the check
	closed   bool
}

// DecodeFile opens path for reading with the declared text encoding.
// The caller must Close the returned reader on every path.
func DecodeFile(path, encodingName string) (*RowReader, error) {
	cm, ok := resolveEncoding(encodingName)
	if !ok {
		return nil, fmt.Errorf("unsupported file encoding %q", encodingName)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement file %s: %w", path, err)
	}

	return &RowReader{
		f:        f,
		br:       bufio.NewReader(f),
		cm:       cm,
		path:     path,
		encoding: encodingName,
	}, nil
}

// ExpectFields turns on field-count validation for subsequent rows. A row
// with a different count fails with MalformedRowError instead of being
// skipped, since silent skipping would corrupt balance totals.
func (r *RowReader) ExpectFields(n int) {
	r.expect = n
}

// NextLine returns the next non-blank decoded line without splitting it,
// together with its line number. Returns io.EOF when the file is exhausted.
func (r *RowReader) NextLine() (string, int, error) {
	if r.closed {
		return "", 0, fmt.Errorf("row reader for %s is closed", r.path)
	}
	for {
		text, n, err := r.readLine()
		if err != nil {
			return "", 0, err
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		return text, n, nil
	}
}

// Next returns the next non-blank row split on the field separator.
// Returns io.EOF when the file is exhausted.
func (r *RowReader) Next() (*RawRow, error) {
	text, n, err := r.NextLine()
	if err != nil {
		return nil, err
	}

	fields, err := splitFields(text)
	if err != nil {
		return nil, &MalformedRowError{Line: n, Expected: r.expect, Got: 0, Raw: text}
	}
	if r.expect > 0 && len(fields) != r.expect {
		return nil, &MalformedRowError{Line: n, Expected: r.expect, Got: len(fields), Raw: text}
	}

	return &RawRow{Line: n, Raw: text, Fields: fields}, nil
}

// Close releases the underlying file handle. Safe to call more than once.
func (r *RowReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.f.Close()
}

// readLine reads one physical line, strips the line terminator and decodes
// the remaining bytes strictly with the declared encoding.
func (r *RowReader) readLine() (string, int, error) {
	raw, err := r.br.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return "", 0, fmt.Errorf("error reading %s: %w", r.path, err)
	}
	if len(raw) == 0 && err == io.EOF {
		return "", 0, io.EOF
	}

	start := r.offset
	r.offset += int64(len(raw))
	r.line++

	raw = trimLineEnding(raw)
	text, decErr := r.decode(raw, start)
	if decErr != nil {
		return "", 0, decErr
	}
	return text, r.line, nil
}

// decode converts raw bytes to text, failing on the first byte that is not
// valid for the declared encoding. No replacement characters are ever
// substituted: a lossy import is worse than a hard failure.
func (r *RowReader) decode(raw []byte, base int64) (string, error) {
	if r.cm == nil {
		for i := 0; i < len(raw); {
			ru, size := utf8.DecodeRune(raw[i:])
			if ru == utf8.RuneError && size == 1 {
				return "", &DecodeError{Path: r.path, Encoding: "utf-8", Offset: base + int64(i)}
			}
			i += size
		}
		return string(raw), nil
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i, c := range raw {
		ru := r.cm.DecodeByte(c)
		if ru == utf8.RuneError {
			return "", &DecodeError{Path: r.path, Encoding: r.encoding, Offset: base + int64(i)}
		}
		b.WriteRune(ru)
	}
	return b.String(), nil
}

// splitFields splits one decoded line on the field separator, honoring the
// format's minimal quoting convention.
func splitFields(text string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = fieldSeparator
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = false
	return cr.Read()
}

func trimLineEnding(raw []byte) []byte {
	if n := len(raw); n > 0 && raw[n-1] == '\n' {
		raw = raw[:n-1]
	}
	if n := len(raw); n > 0 && raw[n-1] == '\r' {
		raw = raw[:n-1]
	}
	return raw
}
