package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/username/dbimport/src/logger"
)

// allowedExtensions lists the file extensions accepted for statement
// import. Bank exports are delimited text whatever the extension says, but
// anything else is almost certainly the wrong file.
var allowedExtensions = map[string]bool{
	".csv": true,
	".txt": true,
}

// ValidateStatementFile runs cheap pre-parse checks on a local statement
// file before the importer touches it.
func ValidateStatementFile(path string, maxSizeBytes int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot stat statement file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a statement file", path)
	}
	if maxSizeBytes > 0 && info.Size() > maxSizeBytes {
		logger.L.Warn("Statement file exceeds size limit",
			"path", path, "size", info.Size(), "limit", maxSizeBytes)
		return fmt.Errorf("statement file %s is %d bytes, above the %d byte limit", path, info.Size(), maxSizeBytes)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExtensions[ext] {
		return fmt.Errorf("file extension %q is not allowed for statement import", ext)
	}
	return nil
}
