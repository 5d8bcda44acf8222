package invoice

// Recompute derives the totals and the amount in words from b.Items. It must be
// called after every change to the item list; nothing else writes these fields.
func Recompute(b *Bill, calc *TaxCalculator) Totals {
	t := calc.Calculate(b.Items)
	b.TaxableValue = t.TaxableValue
	b.CGSTAmount = t.CGSTAmount
	b.SGSTAmount = t.SGSTAmount
	b.GrandTotal = t.GrandTotal
	b.AmountInWords = RupeesInWords(t.GrandTotal)
	return t
}

// Discrepancy compares a stored grand total against a fresh computation of the
// same items. Stored records are never corrected; callers surface the result.
type Discrepancy struct {
	Stored     int64 `json:"stored_total"`
	Recomputed int64 `json:"recomputed_total"`
}

// Mismatch reports whether the stored and recomputed totals differ.
func (d Discrepancy) Mismatch() bool { return d.Stored != d.Recomputed }

// CheckStoredTotal recomputes items and reports how the stored total compares.
func CheckStoredTotal(calc *TaxCalculator, items []LineItem, stored int64) Discrepancy {
	return Discrepancy{Stored: stored, Recomputed: calc.Calculate(items).GrandTotal}
}
