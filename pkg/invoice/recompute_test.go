package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecompute_FillsDerivedFields(t *testing.T) {
	calc := NewTaxCalculator(DefaultGSTRate)
	bill := &Bill{Items: []LineItem{{Particulars: "Ring", Amount: "1000"}}}

	Recompute(bill, calc)

	assert.True(t, bill.TaxableValue.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "15.00", bill.CGSTAmount.StringFixed(2))
	assert.Equal(t, "15.00", bill.SGSTAmount.StringFixed(2))
	assert.Equal(t, int64(1030), bill.GrandTotal)
	assert.Equal(t, "One Thousand Thirty Rupees Only", bill.AmountInWords)
}

func TestRecompute_EmptyBillHasNoWords(t *testing.T) {
	calc := NewTaxCalculator(DefaultGSTRate)
	bill := &Bill{}

	Recompute(bill, calc)

	assert.Equal(t, int64(0), bill.GrandTotal)
	assert.Empty(t, bill.AmountInWords)
}

func TestBill_ItemMutationsRecompute(t *testing.T) {
	calc := NewTaxCalculator(DefaultGSTRate)
	bill := &Bill{}

	bill.AddItem(calc, LineItem{Amount: "500"})
	bill.AddItem(calc, LineItem{Amount: "500"})
	require.Len(t, bill.Items, 2)
	assert.Equal(t, int64(1030), bill.GrandTotal)

	bill.SetItem(calc, 1, LineItem{Amount: "abc"})
	assert.Equal(t, int64(515), bill.GrandTotal)

	bill.RemoveItem(calc, 0)
	assert.Equal(t, int64(0), bill.GrandTotal)
	assert.Empty(t, bill.AmountInWords)

	bill.SetItem(calc, 5, LineItem{Amount: "1"})
	assert.Len(t, bill.Items, 1)
}

func TestRecompute_CancelledBillSameTotals(t *testing.T) {
	calc := NewTaxCalculator(DefaultGSTRate)
	active := &Bill{Items: []LineItem{{Amount: "2500"}}, Status: StatusActive}
	cancelled := &Bill{Items: []LineItem{{Amount: "2500"}}, Status: StatusCancelled}

	Recompute(active, calc)
	Recompute(cancelled, calc)

	assert.Equal(t, active.GrandTotal, cancelled.GrandTotal)
	assert.True(t, cancelled.IsCancelled())
	assert.False(t, active.IsCancelled())
}

func TestCheckStoredTotal(t *testing.T) {
	calc := NewTaxCalculator(DefaultGSTRate)
	items := []LineItem{{Amount: "1000"}}

	assert.False(t, CheckStoredTotal(calc, items, 1030).Mismatch())

	// a bill saved under the old plain-sum formula
	d := CheckStoredTotal(calc, items, 1000)
	assert.True(t, d.Mismatch())
	assert.Equal(t, int64(1030), d.Recomputed)
}
