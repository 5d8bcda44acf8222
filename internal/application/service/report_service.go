package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/jewel-billing/internal/domain/entity"
	"github.com/sangkips/jewel-billing/pkg/apperror"
	"github.com/sangkips/jewel-billing/pkg/invoicepdf"
	"github.com/xuri/excelize/v2"
)

const historySheet = "History"

var historyColumns = []interface{}{
	"Invoice No", "Invoice Date", "Customer", "Phone", "Payment Mode",
	"Status", "Taxable Value", "CGST", "SGST", "Grand Total", "Total Mismatch",
}

// ReportService builds spreadsheet exports of bills
type ReportService struct {
	bills *BillService
	now   func() time.Time
}

// NewReportService creates a new report service
func NewReportService(bills *BillService) *ReportService {
	return &ReportService{bills: bills, now: time.Now}
}

// Export is a generated file ready to download
type Export struct {
	FileName string
	Content  []byte
}

// ExportHistory writes the bill history list to an xlsx workbook
func (s *ReportService) ExportHistory(ctx context.Context) (*Export, error) {
	bills, err := s.bills.History(ctx)
	if err != nil {
		return nil, err
	}

	content, err := s.historyWorkbook(bills)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to build history export")
	}

	return &Export{
		FileName: fmt.Sprintf("Bill_History_%s.xlsx", s.now().Format("20060102")),
		Content:  content,
	}, nil
}

func (s *ReportService) historyWorkbook(bills []entity.Bill) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(historySheet, "A1", &historyColumns); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(historySheet, "A1", "K1", header); err != nil {
		return nil, err
	}

	for i := range bills {
		b := &bills[i]
		v := s.bills.view(b)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			b.InvoiceNo,
			b.InvoiceDate.Format(invoicepdf.DateLayout),
			b.Customer.Name,
			b.Customer.Phone,
			b.PaymentMode,
			b.Status.String(),
			b.TaxableValue.InexactFloat64(),
			b.CGSTAmount.Round(2).InexactFloat64(),
			b.SGSTAmount.Round(2).InexactFloat64(),
			b.GrandTotal,
			v.TotalMismatch,
		}
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(historySheet, "A", "K", 16); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(historySheet, "C", "C", 28); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
