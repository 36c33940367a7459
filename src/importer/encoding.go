// src/importer/encoding.go
package importer

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// charmaps lists the single-byte encodings bank exports are known to use.
// UTF-8 is handled separately by the row reader.
var charmaps = map[string]*charmap.Charmap{
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// resolveEncoding returns the charmap table for name, or nil when name means
// UTF-8. ok is false for encodings the decoder cannot handle.
func resolveEncoding(name string) (cm *charmap.Charmap, ok bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "utf-8" || n == "utf8" {
		return nil, true
	}
	cm, ok = charmaps[n]
	return cm, ok
}

// SupportedEncoding reports whether name is a file encoding the row decoder
// can handle. Used by config validation so a typo fails at load time, not
// mid-import.
func SupportedEncoding(name string) bool {
	_, ok := resolveEncoding(name)
	return ok
}
