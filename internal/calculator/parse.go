package calculator

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount parses the text of an amount field.
//
// Leading whitespace is skipped and the longest numeric prefix is parsed, so
// "12abc" reads as 12 and ".5" as 0.5. Text without a numeric prefix, and
// values that overflow, read as 0.
func ParseAmount(text string) float64 {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	n := numericPrefix(s)
	if n == 0 {
		return 0
	}

	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// numericPrefix returns the length of the decimal literal at the start of s:
// an optional sign, digits with an optional fraction, and an optional exponent.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}

	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	// The exponent only counts when at least one digit follows it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}

	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
