package importer

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRaw(t *testing.T, raw []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestDecodeFile_UnsupportedEncoding(t *testing.T) {
	path := writeRaw(t, []byte("a;b\n"))

	_, err := DecodeFile(path, "ebcdic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file encoding")
}

func TestDecodeFile_MissingFile(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "nope.csv"), "utf-8")
	require.Error(t, err)
}

func TestRowReader_SkipsBlankLinesAndKeepsLineNumbers(t *testing.T) {
	path := writeRaw(t, []byte("a;b\n\n   \nc;d\n"))

	r, err := DecodeFile(path, "utf-8")
	require.NoError(t, err)
	defer r.Close()

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, row.Line)
	assert.Equal(t, []string{"a", "b"}, row.Fields)

	row, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, 4, row.Line, "blank lines still count towards line numbers")
	assert.Equal(t, []string{"c", "d"}, row.Fields)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err, "the sequence is finite and stays exhausted")
}

func TestRowReader_LastLineWithoutNewline(t *testing.T) {
	path := writeRaw(t, []byte("a;b\nc;d"))

	r, err := DecodeFile(path, "utf-8")
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.NoError(t, err)
	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, row.Fields)
}

func TestRowReader_CRLF(t *testing.T) {
	path := writeRaw(t, []byte("a;b\r\nc;d\r\n"))

	r, err := DecodeFile(path, "iso-8859-1")
	require.NoError(t, err)
	defer r.Close()

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, row.Fields)
}

func TestRowReader_FieldCountEnforcement(t *testing.T) {
	path := writeRaw(t, []byte("a;b;c\nd;e\n"))

	r, err := DecodeFile(path, "utf-8")
	require.NoError(t, err)
	defer r.Close()
	r.ExpectFields(3)

	_, err = r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)

	var rowErr *MalformedRowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Line)
	assert.Equal(t, 3, rowErr.Expected)
	assert.Equal(t, 2, rowErr.Got)
	assert.Equal(t, "d;e", rowErr.Raw)
}

func TestRowReader_QuotedFields(t *testing.T) {
	path := writeRaw(t, []byte("\"x;y\";z\n"))

	r, err := DecodeFile(path, "utf-8")
	require.NoError(t, err)
	defer r.Close()

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"x;y", "z"}, row.Fields)
}

func TestRowReader_InvalidUTF8ByteOffset(t *testing.T) {
	// Line two starts at offset 4; the bad byte sits one past 'x'.
	raw := []byte{'a', ';', 'b', '\n', 'x', 0xFF, 'y', '\n'}
	path := writeRaw(t, raw)

	r, err := DecodeFile(path, "utf-8")
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, int64(5), decErr.Offset)
	assert.Equal(t, "utf-8", decErr.Encoding)
}

func TestRowReader_DecodesWindows1252(t *testing.T) {
	// 0x80 is the euro sign in windows-1252 but not in the ISO 8859 maps.
	raw := []byte{'1', '0', ' ', 0x80, ';', 'x', '\n'}
	path := writeRaw(t, raw)

	r, err := DecodeFile(path, "windows-1252")
	require.NoError(t, err)
	defer r.Close()

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "10 €", row.Fields[0])
}

func TestRowReader_DecodesLatin1(t *testing.T) {
	raw := []byte{'M', 0xFC, 'n', 'c', 'h', 'e', 'n', ';', 'x', '\n'}
	path := writeRaw(t, raw)

	r, err := DecodeFile(path, "iso-8859-1")
	require.NoError(t, err)
	defer r.Close()

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "München", row.Fields[0])
}

func TestRowReader_ClosedReader(t *testing.T) {
	path := writeRaw(t, []byte("a;b\n"))

	r, err := DecodeFile(path, "utf-8")
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close(), "closing twice is safe")

	_, _, err = r.NextLine()
	require.Error(t, err)
}

func TestSupportedEncoding(t *testing.T) {
	assert.True(t, SupportedEncoding("utf-8"))
	assert.True(t, SupportedEncoding(""))
	assert.True(t, SupportedEncoding("ISO-8859-1"))
	assert.True(t, SupportedEncoding("windows-1252"))
	assert.False(t, SupportedEncoding("ebcdic"))
}
