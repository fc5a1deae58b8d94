package services

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// whitespace follows the ECMAScript definition (\s) so that the email check
// treats no-break and other Unicode spaces the same way browsers do
const emailChars = `[^\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}@]+`

var emailRegex = regexp.MustCompile(`^` + emailChars + `@` + emailChars + `\.` + emailChars + `$`)

// numericRegex matches the string forms browsers accept as numbers:
// signed decimals with optional exponent, signed Infinity, and unsigned
// hex, octal and binary integer literals
var numericRegex = regexp.MustCompile(`^(?:[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)|0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+)$`)

// IsValidEmail reports whether input looks like local@domain.tld.
// The whole string must match; it is not trimmed or lowercased.
func IsValidEmail(input string) bool {
	return emailRegex.MatchString(input)
}

// FormatThousands renders a number with a comma every three digits of its
// integral part. The fractional part, if any, is kept as is.
// Missing or non-numeric input renders as "0".
func FormatThousands(input any) string {
	text, ok := numberText(input)
	if !ok {
		return "0"
	}

	integral, fractional, _ := strings.Cut(text, ".")
	integral = groupThousands(integral)
	if fractional == "" {
		return integral
	}
	return integral + "." + fractional
}

// numberText returns the base-10 text of a numeric value
func numberText(input any) (string, bool) {
	switch v := input.(type) {
	case nil:
		return "", false
	case json.Number:
		return numericString(string(v))
	case string:
		return numericString(v)
	case bool:
		return "", false
	}

	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "", false
		}
		return numberText(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return floatText(rv.Float(), 32)
	case reflect.Float64:
		return floatText(rv.Float(), 64)
	case reflect.String:
		return numericString(rv.String())
	default:
		return "", false
	}
}

// numericString accepts any string that reads as a number and returns it
// trimmed but otherwise untouched, so "12.50" keeps both fraction digits.
// Underscores, NaN and spellings of Infinity other than "Infinity" are rejected.
func numericString(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !numericRegex.MatchString(s) {
		return "", false
	}
	return s, true
}

// floatText mirrors how browsers print numbers: plain decimals for
// 1e-6 <= |f| < 1e21, exponent notation outside that range
func floatText(f float64, bitSize int) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "", false
	case math.IsInf(f, 1):
		return "Infinity", true
	case math.IsInf(f, -1):
		return "-Infinity", true
	case f == 0:
		return "0", true
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize), true
	}

	mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, bitSize), "e")
	sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits, true
}

// groupThousands inserts a comma before every digit that sits inside a word
// and starts a run of digits whose length is a multiple of three.
// A leading sign is never followed by a comma.
func groupThousands(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/3)

	for i := 0; i < len(s); i++ {
		if i > 0 && isWordByte(s[i-1]) && isDigit(s[i]) {
			run := 0
			for j := i; j < len(s) && isDigit(s[j]); j++ {
				run++
			}
			if run%3 == 0 {
				b.WriteByte(',')
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordByte(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
