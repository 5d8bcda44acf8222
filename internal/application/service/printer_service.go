package service

import (
	"context"
	"fmt"
	"log"

	"github.com/sangkips/jewel-billing/internal/domain/entity"
	"github.com/sangkips/jewel-billing/pkg/invoice"
	"github.com/sangkips/jewel-billing/pkg/invoicepdf"
	"github.com/sangkips/jewel-billing/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	bills       *BillService
	printerType string
	charWidth   int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, bills *BillService, printerType string, charWidth int) *PrinterService {
	if charWidth <= 0 {
		charWidth = 48
	}
	return &PrinterService{
		printer:     p,
		bills:       bills,
		printerType: printerType,
		charWidth:   charWidth,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintBillReceipt prints a summary of the bill. The receipt is returned even
// when printing fails so the caller can show it.
func (s *PrinterService) PrintBillReceipt(ctx context.Context, invoiceNo string) (*entity.Receipt, error) {
	bill, err := s.bills.getByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}

	receipt := s.buildReceipt(bill)
	data := FormatReceipt(receipt, s.charWidth)
	if err := s.printer.Print(ctx, data); err != nil {
		log.Printf("Printer error (bill %s): %v", bill.InvoiceNo, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

func (s *PrinterService) buildReceipt(bill *entity.Bill) *entity.Receipt {
	lh := s.bills.composer.Letterhead()
	calc := s.bills.calc

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: lh.Name,
			Address:   lh.Address,
			Phone:     lh.Contact,
			TaxID:     lh.TaxLine,
		},
		InvoiceNo:   bill.InvoiceNo,
		Date:        bill.InvoiceDate.Format(invoicepdf.DateLayout),
		Customer:    bill.Customer.Name,
		PaymentMode: bill.PaymentMode,
		Status:      bill.Status.String(),
		Taxable:     bill.TaxableValue.StringFixed(2),
		CGSTLabel:   "CGST " + calc.CGSTRate().Shift(2).String() + "%",
		CGST:        bill.CGSTAmount.StringFixed(2),
		SGSTLabel:   "SGST " + calc.SGSTRate().Shift(2).String() + "%",
		SGST:        bill.SGSTAmount.StringFixed(2),
		Total:       fmt.Sprintf("%d", bill.GrandTotal),
		InWords:     bill.AmountInWords,
		VerifyURL:   invoicepdf.VerificationURL(s.bills.composer.VerifyBaseURL(), bill.ID.String()),
	}

	for _, it := range bill.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			SrNo:      it.Position,
			Name:      it.Particulars,
			Purity:    it.Purity,
			NetWeight: invoice.ParseAmount(it.NetWeight).StringFixed(3) + "g",
			Amount:    invoice.ParseAmount(it.Amount).StringFixed(2),
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Wrapped(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.Text(r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	if r.Status == "CANCELLED" {
		doc.SetAlign(printer.AlignCenter).
			SetBold(true).
			Text("*** CANCELLED ***").
			SetBold(false).
			SetAlign(printer.AlignLeft)
	}

	// Invoice info
	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", r.Date)

	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.PaymentMode != "" {
		doc.KeyValue("Payment:", r.PaymentMode)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		name := item.Name
		if item.Purity != "" {
			name += " " + item.Purity
		}
		doc.ItemLine(item.SrNo, name, item.NetWeight, item.Amount)
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Taxable:", r.Taxable).
		KeyValue(r.CGSTLabel+":", r.CGST).
		KeyValue(r.SGSTLabel+":", r.SGST).
		SetBold(true).
		KeyValue("TOTAL:", r.Total).
		SetBold(false)

	if r.InWords != "" {
		doc.Wrapped(r.InWords)
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		QRCode(r.VerifyURL, 6).
		LineFeed().
		Text("Thank you for your business!").
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
