package envsecret

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Numeric values are parsed from their longest valid prefix: leading
// whitespace is skipped and trailing noise after the number is ignored,
// so "123abc" is 123 and " 8 " is 8. A string with no leading number at
// all is rejected.

// isLeadingSpace matches the whitespace skipped before a number.
// NEL (U+0085) is not whitespace here; BOM (U+FEFF) is.
func isLeadingSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// splitSign consumes an optional leading '+' or '-'.
func splitSign(s string) (sign, rest string) {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[:1], s[1:]
	}
	return "", s
}

// countDigits returns the number of leading ASCII digits in s.
func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// parseIntPrefix parses the leading base-10 integer of s.
// Leading zeros are decimal ("08" is 8). Returns false when s has no
// leading digits or the number does not fit in an int64.
func parseIntPrefix(s string) (int64, bool) {
	sign, rest := splitSign(strings.TrimLeftFunc(s, isLeadingSpace))
	n := countDigits(rest)
	if n == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(sign+rest[:n], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFloatPrefix parses the leading decimal floating-point number of s:
// optional sign, "Infinity", or digits with an optional fraction and an
// optional exponent. An exponent marker without digits ("1e") is left
// out of the number. Returns false when s has no leading number.
func parseFloatPrefix(s string) (float64, bool) {
	sign, rest := splitSign(strings.TrimLeftFunc(s, isLeadingSpace))

	if strings.HasPrefix(rest, "Infinity") {
		if sign == "-" {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	end := countDigits(rest)
	mantissa := end
	if end < len(rest) && rest[end] == '.' {
		frac := countDigits(rest[end+1:])
		mantissa += frac
		end += 1 + frac
	}
	if mantissa == 0 {
		return 0, false
	}

	if end < len(rest) && (rest[end] == 'e' || rest[end] == 'E') {
		expSign, expRest := splitSign(rest[end+1:])
		if d := countDigits(expRest); d > 0 {
			end += 1 + len(expSign) + d
		}
	}

	v, err := strconv.ParseFloat(sign+rest[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	// Out-of-range literals saturate to ±Inf or 0, as ParseFloat reports.
	return v, true
}
