// Package invoice holds the plain bill records and the pure computations
// (tax totals, amount in words) that every invoice is built from.
package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a bill.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
)

// Customer is the buyer block printed on the invoice.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin,omitempty"`
}

// LineItem is one row of the invoice table. Amount is entered independently of
// weight and rate (negotiated price) and is the taxable basis for the row.
type LineItem struct {
	Particulars string `json:"particulars"`
	Purity      string `json:"purity,omitempty"`
	GrossWeight string `json:"grossWeight"`
	NetWeight   string `json:"netWeight"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// Bill is the record handed to the composer. The derived fields are only ever
// written by Recompute.
type Bill struct {
	ID          string     `json:"_id"`
	InvoiceNo   string     `json:"invoiceNo"`
	InvoiceDate time.Time  `json:"invoiceDate"`
	OrderDate   *time.Time `json:"orderDate,omitempty"`
	Customer    Customer   `json:"customer"`
	Items       []LineItem `json:"items"`
	PaymentMode string     `json:"paymentMode"`
	Status      Status     `json:"status"`

	TaxableValue  decimal.Decimal `json:"taxableValue"`
	CGSTAmount    decimal.Decimal `json:"cgstAmount"`
	SGSTAmount    decimal.Decimal `json:"sgstAmount"`
	GrandTotal    int64           `json:"grandTotal"`
	AmountInWords string          `json:"amountInWords"`
}

// IsCancelled reports whether the bill must be rendered with the watermark.
func (b *Bill) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// AddItem appends an item and recomputes the derived fields.
func (b *Bill) AddItem(calc *TaxCalculator, item LineItem) {
	b.Items = append(b.Items, item)
	Recompute(b, calc)
}

// SetItem replaces the item at index i and recomputes the derived fields.
// Out of range indexes are ignored.
func (b *Bill) SetItem(calc *TaxCalculator, i int, item LineItem) {
	if i < 0 || i >= len(b.Items) {
		return
	}
	b.Items[i] = item
	Recompute(b, calc)
}

// RemoveItem deletes the item at index i and recomputes the derived fields.
func (b *Bill) RemoveItem(calc *TaxCalculator, i int) {
	if i < 0 || i >= len(b.Items) {
		return
	}
	b.Items = append(b.Items[:i], b.Items[i+1:]...)
	Recompute(b, calc)
}
