// src/importer/matcher.go
package importer

import (
	"regexp"
	"strings"

	"github.com/username/dbimport/src/models"
)

// The export's first line carries the owning account's identity:
//
//	Transactions <account name>;;;Customer number: <branch> <number>
var customerNumberRe = regexp.MustCompile(`^Transactions\s.*;;;Customer number:\s+(\S+)\s+(\S+)\s*$`)

// ParseHeaderIdentity extracts the branch and account number from the first
// header line. Fails with HeaderFormatError when the identity cannot be
// determined at all.
func ParseHeaderIdentity(headerLine string) (models.AccountIdentity, error) {
	m := customerNumberRe.FindStringSubmatch(headerLine)
	if m == nil {
		return models.AccountIdentity{}, &HeaderFormatError{
			Line:   1,
			Raw:    headerLine,
			Reason: "customer number marker not found",
		}
	}
	return models.AccountIdentity{
		Branch: strings.TrimSpace(m[1]),
		Number: strings.TrimSpace(m[2]),
	}, nil
}

// Matcher tests a statement header against one configured account identity.
// A false result is not an error: it lets the caller probe several
// configured accounts against the same file, each rejecting files that are
// not theirs.
type Matcher interface {
	Match(headerLine string) (bool, error)
}

type identityMatcher struct {
	identity models.AccountIdentity
}

// NewMatcher returns a Matcher that recognizes files belonging to identity.
// Matching is exact string equality on branch and number after trimming
// surrounding whitespace; no fuzzy matching.
func NewMatcher(identity models.AccountIdentity) Matcher {
	return &identityMatcher{identity: identity}
}

func (m *identityMatcher) Match(headerLine string) (bool, error) {
	id, err := ParseHeaderIdentity(headerLine)
	if err != nil {
		return false, err
	}
	return m.identity.Equals(id), nil
}
