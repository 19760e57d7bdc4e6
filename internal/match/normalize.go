package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds a marker option or format name to lower case and
// drops word separators, so spellings like "subject_id", "Subject-ID" and
// "subjectId" compare equal.
func NormalizeIdent(s string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, strings.TrimSpace(s))
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', ' ':
		return true
	}

	return false
}
