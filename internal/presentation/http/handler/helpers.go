package handler

import (
	"github.com/sangkips/jewel-billing/internal/application/service"
	"github.com/sangkips/jewel-billing/internal/presentation/http/dto/request"
	"github.com/sangkips/jewel-billing/pkg/apperror"
	"github.com/sangkips/jewel-billing/pkg/invoice"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// toBillInput converts a create request, collecting date format errors
func toBillInput(req *request.CreateBillRequest) (*service.BillInput, error) {
	var errs []apperror.FieldError

	invoiceDate, ok := request.ParseDate(req.InvoiceDate)
	if !ok {
		errs = append(errs, apperror.FieldError{Field: "invoiceDate", Message: "Invalid date"})
	}
	orderDate, ok := request.ParseDate(req.OrderDate)
	if !ok {
		errs = append(errs, apperror.FieldError{Field: "orderDate", Message: "Invalid date"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	return &service.BillInput{
		Customer: invoice.Customer{
			Name:    req.Customer.Name,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
			GSTIN:   req.Customer.GSTIN,
		},
		InvoiceDate: invoiceDate,
		OrderDate:   orderDate,
		Items:       req.LineItems(),
		PaymentMode: req.PaymentMode,
	}, nil
}
