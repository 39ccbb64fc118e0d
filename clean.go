package annex

import (
	"regexp"
	"strings"
	"unicode"
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\v", "\n")

// CleanText removes non-printable control characters except newlines and
// tabs and trims surrounding whitespace. Carriage returns and vertical
// tabs, which the word processor uses as paragraph and line marks, become
// newlines.
func CleanText(s string) string {
	s = lineBreaks.Replace(s)
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

var leadingNumber = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?`)

// CleanRef cleans a reference number cell and keeps only its leading
// numeric token, an integer or a single decimal like "2.14", dropping any
// trailing annotation. Text without such a token, including multi-part
// references like "3.1.2", is returned cleaned but otherwise as-is.
func CleanRef(s string) string {
	s = CleanText(s)
	ref, ok := numericToken(s)
	if !ok {
		return s
	}
	return ref
}

func numericToken(s string) (string, bool) {
	loc := leadingNumber.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	if rest := s[loc[1]:]; rest != "" && (rest[0] == '.' || (rest[0] >= '0' && rest[0] <= '9')) {
		return "", false
	}
	return s[:loc[1]], true
}
