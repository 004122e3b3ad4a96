package utils

import (
	"strings"
)

const nationalNumberLength = 10

// NormalizeMobile converts user input into the canonical "+<cc><10 digits>" form.
//
// Accepted shapes, after removing spaces, dashes, dots and parentheses:
//   - 10 digits, the default country code is prepended
//   - country code followed by 10 digits, with or without a leading "+"
//
// Everything else is rejected, including letters, a "+" in front of a bare
// national number and a foreign prefix.
func NormalizeMobile(raw, countryCode string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" || countryCode == "" {
		return "", false
	}

	hasPlus := strings.HasPrefix(value, "+")
	if hasPlus {
		value = value[1:]
	}

	digits := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		switch c := value[i]; {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		case c == ' ', c == '-', c == '.', c == '(', c == ')':
		default:
			return "", false
		}
	}

	switch {
	case !hasPlus && len(digits) == nationalNumberLength:
		return "+" + countryCode + string(digits), true
	case len(digits) == len(countryCode)+nationalNumberLength &&
		strings.HasPrefix(string(digits), countryCode):
		return "+" + string(digits), true
	default:
		return "", false
	}
}

// IsDigits reports whether s is non-empty and made of ASCII digits only.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
