// Package inr formats rupee amounts: Indian-numbering amount-in-words and
// en-IN locale currency strings.
package inr

import (
	"fmt"
	"math"
	"strings"
)

// Overflow is returned by Words for amounts of 100 crore or more (more
// than nine digits), which the fixed crore/lakh/thousand decomposition
// cannot represent.
const Overflow = "overflow"

// units covers 0-19; index 0 is empty so zero-valued groups render blank.
var units = [20]string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = [10]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

// Words spells a rupee amount in the Indian numbering system: crore, lakh,
// thousand, hundred, plus a two-digit remainder. The amount is rounded to
// a whole rupee first; fractional paise are never spelled. Every token of
// the result is capitalized. Zero maps to "Zero", negative amounts have no
// spelled form and return "", and amounts needing more than nine digits
// return the Overflow sentinel.
func Words(amount float64) string {
	n := int64(math.Round(amount))
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return ""
	}

	digits := fmt.Sprintf("%d", n)
	if len(digits) > 9 {
		return Overflow
	}
	padded := strings.Repeat("0", 9-len(digits)) + digits

	// Fixed-width groups: crore(2) lakh(2) thousand(2) hundred(1) rest(2).
	crore := groupValue(padded[0:2])
	lakh := groupValue(padded[2:4])
	thousand := groupValue(padded[4:6])
	hundred := groupValue(padded[6:7])
	rest := groupValue(padded[7:9])

	var b strings.Builder
	appendGroup(&b, crore, "crore")
	appendGroup(&b, lakh, "lakh")
	appendGroup(&b, thousand, "thousand")
	appendGroup(&b, hundred, "hundred")
	appendGroup(&b, rest, "")

	return capitalize(b.String())
}

func groupValue(s string) int {
	v := 0
	for _, c := range s {
		v = v*10 + int(c-'0')
	}
	return v
}

// appendGroup renders a two-digit (or one-digit) group followed by its
// scale suffix. Values below twenty use the literal word; larger values
// combine the tens word with the ones word.
func appendGroup(b *strings.Builder, v int, suffix string) {
	if v == 0 {
		return
	}
	if v < 20 {
		b.WriteString(units[v])
		b.WriteByte(' ')
	} else {
		b.WriteString(tens[v/10])
		b.WriteByte(' ')
		if v%10 != 0 {
			b.WriteString(units[v%10])
			b.WriteByte(' ')
		}
	}
	if suffix != "" {
		b.WriteString(suffix)
		b.WriteByte(' ')
	}
}

func capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
