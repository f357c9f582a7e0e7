package archive

import (
	"strings"

	"github.com/mattiajb/library-management-system-sub000/pkg/constants"
)

// NormalizeISBN strips spaces and hyphens from an ISBN. All identity
// comparisons and collection keys use the normalized form, so
// "978-0-13-235088-4" and "9780132350884" name the same book.
func NormalizeISBN(isbn string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, isbn)
}

// ValidISBN reports whether the normalized ISBN is 10 or 13 digits.
func ValidISBN(isbn string) bool {
	normalized := NormalizeISBN(isbn)
	if len(normalized) != constants.ISBN10Length && len(normalized) != constants.ISBN13Length {
		return false
	}
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
