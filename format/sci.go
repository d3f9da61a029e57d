// Package format renders force values as normalized scientific notation and
// builds the textual results panel.
package format

import (
	"math"
	"strconv"
	"strings"
)

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'-': '⁻', '+': '⁺',
}

// Superscript maps digits and signs to their superscript forms
func Superscript(s string) string {
	var b strings.Builder
	for _, r := range s {
		if sup, ok := superscripts[r]; ok {
			b.WriteRune(sup)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// split returns mantissa text and exponent of v with the given fraction digits
func split(v float64, digits int) (string, int) {
	s := strconv.FormatFloat(v, 'e', digits, 64)
	i := strings.IndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[i+1:])
	return s[:i], exp
}

// Sci formats v as m.mm×10ⁿ with digits fraction digits
// Zero prints as "0"; non-finite values use strconv's spelling
func Sci(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if v == 0 {
		return "0"
	}
	m, exp := split(v, digits)
	return m + "×10" + Superscript(strconv.Itoa(exp))
}

// SciPlain formats v as m.mme±n for ASCII-only output
func SciPlain(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if v == 0 {
		return "0"
	}
	m, exp := split(v, digits)
	return m + "e" + strconv.Itoa(exp)
}

// Angle formats degrees with digits decimals and a degree sign
func Angle(deg float64, digits int) string {
	return Fixed(deg, digits) + "°"
}

// Fixed formats with digits decimals; negative zero prints unsigned
func Fixed(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'f', digits, 64)
	if s == "-0" || strings.TrimRight(strings.TrimPrefix(s, "-0"), "0") == "." {
		return strings.TrimPrefix(s, "-")
	}
	return s
}
