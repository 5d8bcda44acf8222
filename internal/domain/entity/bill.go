package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewel-billing/internal/domain/enum"
	"github.com/sangkips/jewel-billing/pkg/invoice"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Column widths of the free-text bill fields, in characters.
const (
	MaxCustomerNameLen  = 255
	MaxCustomerPhoneLen = 32
	MaxGSTINLen         = 20
	MaxPaymentModeLen   = 100
	MaxParticularsLen   = 255
	MaxItemFieldLen     = 32
)

// CustomerInfo is the buyer block stored inline on the bill
type CustomerInfo struct {
	Name    string `gorm:"size:255;not null" json:"name"`
	Phone   string `gorm:"size:32" json:"phone"`
	Address string `gorm:"type:text" json:"address"`
	GSTIN   string `gorm:"size:20" json:"gstin,omitempty"`
}

// Bill represents a retail tax invoice
type Bill struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"_id"`
	InvoiceNo     string          `gorm:"size:32;unique;not null" json:"invoiceNo"`
	InvoiceDate   time.Time       `gorm:"type:date;not null" json:"invoiceDate"`
	OrderDate     *time.Time      `gorm:"type:date" json:"orderDate,omitempty"`
	Customer      CustomerInfo    `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	PaymentMode   string          `gorm:"size:100;not null" json:"paymentMode"`
	Status        enum.BillStatus `gorm:"size:16;not null;default:ACTIVE;index" json:"status"`
	TaxableValue  decimal.Decimal `gorm:"type:numeric(16,4);not null" json:"-"`
	CGSTAmount    decimal.Decimal `gorm:"type:numeric(16,4);not null" json:"-"`
	SGSTAmount    decimal.Decimal `gorm:"type:numeric(16,4);not null" json:"-"`
	GrandTotal    int64           `gorm:"not null" json:"grandTotal"`
	AmountInWords string          `gorm:"size:512" json:"amountInWords"`
	CancelledAt   *time.Time      `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	// Relationships
	Items []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items"`
}

// MarshalJSON renders money with two decimals the way the invoice prints it
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		TaxableValue string `json:"taxableValue"`
		CGSTAmount   string `json:"cgstAmount"`
		SGSTAmount   string `json:"sgstAmount"`
	}{
		Alias:        Alias(b),
		TaxableValue: b.TaxableValue.StringFixed(2),
		CGSTAmount:   b.CGSTAmount.StringFixed(2),
		SGSTAmount:   b.SGSTAmount.StringFixed(2),
	})
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = enum.BillStatusActive
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// IsCancelled reports whether the bill has been cancelled
func (b *Bill) IsCancelled() bool {
	return b.Status == enum.BillStatusCancelled
}

// LineItems returns the items in display order as core records
func (b *Bill) LineItems() []invoice.LineItem {
	items := make([]invoice.LineItem, len(b.Items))
	for i, it := range b.Items {
		items[i] = it.LineItem()
	}
	return items
}

// Invoice converts the bill to the plain record the invoice core works on
func (b *Bill) Invoice() *invoice.Bill {
	var id string
	if b.ID != uuid.Nil {
		id = b.ID.String()
	}
	return &invoice.Bill{
		ID:          id,
		InvoiceNo:   b.InvoiceNo,
		InvoiceDate: b.InvoiceDate,
		OrderDate:   b.OrderDate,
		Customer: invoice.Customer{
			Name:    b.Customer.Name,
			Phone:   b.Customer.Phone,
			Address: b.Customer.Address,
			GSTIN:   b.Customer.GSTIN,
		},
		Items:         b.LineItems(),
		PaymentMode:   b.PaymentMode,
		Status:        b.Status.Invoice(),
		TaxableValue:  b.TaxableValue,
		CGSTAmount:    b.CGSTAmount,
		SGSTAmount:    b.SGSTAmount,
		GrandTotal:    b.GrandTotal,
		AmountInWords: b.AmountInWords,
	}
}

// ApplyTotals copies derived fields computed by the invoice core
func (b *Bill) ApplyTotals(src *invoice.Bill) {
	b.TaxableValue = src.TaxableValue
	b.CGSTAmount = src.CGSTAmount
	b.SGSTAmount = src.SGSTAmount
	b.GrandTotal = src.GrandTotal
	b.AmountInWords = src.AmountInWords
}

// BillItem represents a line item in a bill
type BillItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	BillID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position    int       `gorm:"not null" json:"srNo"`
	Particulars string    `gorm:"size:255" json:"particulars"`
	Purity      string    `gorm:"size:32" json:"purity,omitempty"`
	GrossWeight string    `gorm:"size:32" json:"grossWeight"`
	NetWeight   string    `gorm:"size:32" json:"netWeight"`
	Rate        string    `gorm:"size:32" json:"rate"`
	Amount      string    `gorm:"size:32" json:"amount"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}

// LineItem converts the row to its core representation
func (bi BillItem) LineItem() invoice.LineItem {
	return invoice.LineItem{
		Particulars: bi.Particulars,
		Purity:      bi.Purity,
		GrossWeight: bi.GrossWeight,
		NetWeight:   bi.NetWeight,
		Rate:        bi.Rate,
		Amount:      bi.Amount,
	}
}

// NewBillItems numbers core items from 1 in their given order
func NewBillItems(items []invoice.LineItem) []BillItem {
	rows := make([]BillItem, len(items))
	for i, it := range items {
		rows[i] = BillItem{
			Position:    i + 1,
			Particulars: it.Particulars,
			Purity:      it.Purity,
			GrossWeight: it.GrossWeight,
			NetWeight:   it.NetWeight,
			Rate:        it.Rate,
			Amount:      it.Amount,
		}
	}
	return rows
}

// InvoiceSequence tracks the last serial issued in a financial year
type InvoiceSequence struct {
	FiscalYear string `gorm:"size:4;primary_key"`
	LastValue  int    `gorm:"not null;default:0"`
}

// TableName returns the table name for the InvoiceSequence model
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}

// FiscalYearCode returns the Indian financial year (April to March) of t as
// four digits, e.g. "2526" for any date from 1 Apr 2025 to 31 Mar 2026.
func FiscalYearCode(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%02d%02d", start%100, (start+1)%100)
}

// FormatInvoiceNo joins a financial year code and serial, e.g. "252601".
func FormatInvoiceNo(fiscalYear string, serial int) string {
	return fmt.Sprintf("%s%02d", fiscalYear, serial)
}
