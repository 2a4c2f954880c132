package strutil

import (
	"regexp"
	"strings"
)

var nonAlphaRe = regexp.MustCompile(`[^a-zA-Z]+`)

// NormalizeCode turns user input into a currency code
// For example NormalizeCode(" usd\n") return "USD"
func NormalizeCode(s string) string {
	return strings.ToUpper(nonAlphaRe.ReplaceAllString(s, ""))
}

// TrimControl removes leading and trailing spaces and control characters
func TrimControl(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r <= ' '
	})
}
