package invoice

import "strings"

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Indian periods above the first three digits, largest first. Everything at or
// above a crore is spelled recursively, so 10^9 is "One Hundred Crore".
var periods = []struct {
	value int64
	name  string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
}

// AmountInWords spells n using Indian grouping (thousand, lakh, crore).
// Zero and negative numbers give an empty string. No "and" is inserted.
func AmountInWords(n int64) string {
	if n <= 0 {
		return ""
	}
	return strings.Join(spell(n), " ")
}

// RupeesInWords is AmountInWords suffixed with "Rupees Only", or "" for zero.
func RupeesInWords(n int64) string {
	w := AmountInWords(n)
	if w == "" {
		return ""
	}
	return w + " Rupees Only"
}

func spell(n int64) []string {
	var out []string
	for _, p := range periods {
		if n >= p.value {
			out = append(out, spell(n/p.value)...)
			out = append(out, p.name)
			n %= p.value
		}
	}
	return append(out, belowThousand(n)...)
}

func belowThousand(n int64) []string {
	var out []string
	if n >= 100 {
		out = append(out, ones[n/100], "Hundred")
		n %= 100
	}
	switch {
	case n == 0:
	case n < 20:
		out = append(out, ones[n])
	default:
		out = append(out, tens[n/10])
		if n%10 != 0 {
			out = append(out, ones[n%10])
		}
	}
	return out
}
