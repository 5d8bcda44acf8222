package request

import (
	"strings"
	"time"

	"github.com/sangkips/jewel-billing/pkg/invoice"
)

// Text is a lenient free-text item field: strings and numbers are kept, any
// other JSON value becomes empty.
type Text = invoice.Text

// CustomerRequest is the buyer block of a bill
type CustomerRequest struct {
	Name    string `json:"name" binding:"max=255"`
	Phone   string `json:"phone" binding:"max=32"`
	Address string `json:"address" binding:"max=1000"`
	GSTIN   string `json:"gstin" binding:"max=20"`
}

// BillItemRequest is a single line of the item table
type BillItemRequest struct {
	Particulars Text `json:"particulars" binding:"max=255"`
	Purity      Text `json:"purity" binding:"max=32"`
	GrossWeight Text `json:"grossWeight" binding:"max=32"`
	NetWeight   Text `json:"netWeight" binding:"max=32"`
	Rate        Text `json:"rate" binding:"max=32"`
	Amount      Text `json:"amount" binding:"max=32"`
}

// CreateBillRequest represents a bill creation or preview request. Totals sent
// by the client are ignored.
type CreateBillRequest struct {
	Customer    CustomerRequest   `json:"customer"`
	InvoiceDate string            `json:"invoiceDate"`
	OrderDate   string            `json:"orderDate"`
	Items       []BillItemRequest `json:"items" binding:"dive"`
	PaymentMode string            `json:"paymentMode" binding:"max=100"`
}

// LineItems converts the request items to core records
func (r *CreateBillRequest) LineItems() []invoice.LineItem {
	items := make([]invoice.LineItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = invoice.LineItem{
			Particulars: strings.TrimSpace(string(it.Particulars)),
			Purity:      strings.TrimSpace(string(it.Purity)),
			GrossWeight: strings.TrimSpace(string(it.GrossWeight)),
			NetWeight:   strings.TrimSpace(string(it.NetWeight)),
			Rate:        strings.TrimSpace(string(it.Rate)),
			Amount:      strings.TrimSpace(string(it.Amount)),
		}
	}
	return items
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2/1/2006"}

// ParseDate reads a calendar date in ISO, RFC 3339 or day/month/year form.
// An empty string yields nil.
func ParseDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}
