package strutil

import "strings"

// IsBlank reports whether s holds nothing but white space
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// NormalizeDecimal prepares a number published with a decimal comma for strconv.ParseFloat.
// Surrounding white space is trimmed and the comma becomes a dot, inner characters are kept so that
// a malformed value still fails to parse. For example NormalizeDecimal(" 78,9615\n") return "78.9615"
func NormalizeDecimal(s string) string {
	return strings.Replace(strings.TrimSpace(s), ",", ".", 1)
}
