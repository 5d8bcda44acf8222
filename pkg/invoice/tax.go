package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultGSTRate is the combined GST applied to jewellery, split evenly into
// CGST and SGST.
var DefaultGSTRate = decimal.RequireFromString("0.03")

// Totals is the result of a tax computation. CGST and SGST keep full precision;
// use the String helpers for display.
type Totals struct {
	TaxableValue decimal.Decimal
	CGSTAmount   decimal.Decimal
	SGSTAmount   decimal.Decimal
	GrandTotal   int64
}

// CGSTString returns the CGST amount to two decimal places.
func (t Totals) CGSTString() string { return t.CGSTAmount.StringFixed(2) }

// SGSTString returns the SGST amount to two decimal places.
func (t Totals) SGSTString() string { return t.SGSTAmount.StringFixed(2) }

// TaxCalculator computes invoice totals. It holds no mutable state and is safe
// for concurrent use.
type TaxCalculator struct {
	cgstRate decimal.Decimal
	sgstRate decimal.Decimal
}

// NewTaxCalculator returns a calculator for the given combined GST rate.
// A non-positive rate falls back to DefaultGSTRate.
func NewTaxCalculator(gstRate decimal.Decimal) *TaxCalculator {
	if !gstRate.IsPositive() {
		gstRate = DefaultGSTRate
	}
	half := gstRate.Div(decimal.NewFromInt(2))
	return &TaxCalculator{cgstRate: half, sgstRate: half}
}

// CGSTRate returns the central component rate, e.g. 0.015.
func (c *TaxCalculator) CGSTRate() decimal.Decimal { return c.cgstRate }

// SGSTRate returns the state component rate, e.g. 0.015.
func (c *TaxCalculator) SGSTRate() decimal.Decimal { return c.sgstRate }

// Calculate sums item amounts and applies the split GST. The grand total is
// rounded half away from zero on the unrounded sum.
func (c *TaxCalculator) Calculate(items []LineItem) Totals {
	taxable := decimal.Zero
	for _, item := range items {
		taxable = taxable.Add(ParseAmount(item.Amount))
	}

	cgst := taxable.Mul(c.cgstRate)
	sgst := taxable.Mul(c.sgstRate)
	grand := taxable.Add(cgst).Add(sgst).Round(0)

	return Totals{
		TaxableValue: taxable,
		CGSTAmount:   cgst,
		SGSTAmount:   sgst,
		GrandTotal:   grand.IntPart(),
	}
}

// ParseAmount reads the leading decimal number of s. Empty or non-numeric input
// yields zero; trailing garbage is ignored ("12.5g" is 12.5).
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	end := numericPrefix(s)
	if end == 0 {
		return decimal.Zero
	}
	num := strings.TrimPrefix(s[:end], "+")
	switch {
	case strings.HasPrefix(num, "."):
		num = "0" + num
	case strings.HasPrefix(num, "-."):
		num = "-0" + num[1:]
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// numericPrefix returns the length of the longest prefix of s shaped like
// [+-]digits[.digits][e[+-]digits].
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
		if frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
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

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
