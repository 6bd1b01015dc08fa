package ledger

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// leadingInt reads an optionally signed run of decimal digits from the start
// of s, ignoring leading space and anything after the digits ("12abc" -> 12).
func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// maxExponent bounds the exponent leadingDecimal accepts; larger ones would
// expand to millions of digits when the amount is printed.
const maxExponent = 30

// leadingDecimal is leadingInt for decimal numbers with an optional fraction
// and exponent ("55.5kg" -> 55.5, ".5" -> 0.5). Exponents beyond ±maxExponent
// are rejected.
func leadingDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && isDigit(s[frac]) {
			frac++
			digits++
		}
		if digits > 0 {
			end = frac
		}
	}
	if digits == 0 {
		return decimal.Zero, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		expDigits := exp
		for exp < len(s) && isDigit(s[exp]) {
			exp++
		}
		if exp > expDigits {
			n, err := strconv.Atoi(s[expDigits:exp])
			if err != nil || n > maxExponent {
				return decimal.Zero, false
			}
			end = exp
		}
	}
	num := strings.TrimPrefix(s[:end], "+")
	neg := strings.HasPrefix(num, "-")
	num = strings.TrimPrefix(num, "-")
	if strings.HasPrefix(num, ".") {
		num = "0" + num
	}
	if i := strings.IndexAny(num, "eE"); i > 0 {
		num = strings.TrimSuffix(num[:i], ".") + num[i:]
	} else {
		num = strings.TrimSuffix(num, ".")
	}
	if neg {
		num = "-" + num
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
