package response

import (
	"github.com/sangkips/jewel-billing/internal/application/service"
	"github.com/sangkips/jewel-billing/internal/domain/entity"
	"github.com/sangkips/jewel-billing/pkg/invoicepdf"
)

// BillViewResponse is a stored bill with the result of recomputing it
type BillViewResponse struct {
	Bill            *entity.Bill `json:"bill"`
	RecomputedTotal int64        `json:"recomputed_total"`
	TotalMismatch   bool         `json:"total_mismatch"`
}

// NewBillViewResponse maps a service view
func NewBillViewResponse(v *service.BillView) *BillViewResponse {
	return &BillViewResponse{
		Bill:            v.Bill,
		RecomputedTotal: v.RecomputedTotal,
		TotalMismatch:   v.TotalMismatch,
	}
}

// PreviewResponse carries totals for an unsaved bill
type PreviewResponse struct {
	TaxableValue  string `json:"taxableValue"`
	CGSTAmount    string `json:"cgstAmount"`
	SGSTAmount    string `json:"sgstAmount"`
	GrandTotal    int64  `json:"grandTotal"`
	AmountInWords string `json:"amountInWords"`
}

// NewPreviewResponse maps preview totals
func NewPreviewResponse(p *service.PreviewOutput) *PreviewResponse {
	return &PreviewResponse{
		TaxableValue:  p.TaxableValue.StringFixed(2),
		CGSTAmount:    p.CGSTString(),
		SGSTAmount:    p.SGSTString(),
		GrandTotal:    p.GrandTotal,
		AmountInWords: p.AmountInWords,
	}
}

// StoreResponse is the letterhead shown on the verification page
type StoreResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	TaxLine string `json:"tax_line"`
	Contact string `json:"contact"`
}

// VerifyResponse is the public verification view
type VerifyResponse struct {
	Store           StoreResponse `json:"store"`
	InvoiceNo       string        `json:"invoiceNo"`
	InvoiceDate     string        `json:"invoiceDate"`
	CustomerName    string        `json:"customerName"`
	Status          string        `json:"status"`
	GrandTotal      int64         `json:"grandTotal"`
	RecomputedTotal int64         `json:"recomputed_total"`
	TotalMismatch   bool          `json:"total_mismatch"`
}

// NewVerifyResponse maps the service verification output
func NewVerifyResponse(v *service.VerifyOutput) *VerifyResponse {
	return &VerifyResponse{
		Store: StoreResponse{
			Name:    v.Store.Name,
			Address: v.Store.Address,
			TaxLine: v.Store.TaxLine,
			Contact: v.Store.Contact,
		},
		InvoiceNo:       v.InvoiceNo,
		InvoiceDate:     v.InvoiceDate.Format(invoicepdf.DateLayout),
		CustomerName:    v.CustomerName,
		Status:          v.Status.String(),
		GrandTotal:      v.GrandTotal,
		RecomputedTotal: v.RecomputedTotal,
		TotalMismatch:   v.TotalMismatch,
	}
}
