package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sangkips/jewel-billing/internal/domain/entity"
	"github.com/sangkips/jewel-billing/internal/domain/enum"
	"github.com/sangkips/jewel-billing/internal/domain/repository"
	"github.com/sangkips/jewel-billing/pkg/apperror"
	"github.com/sangkips/jewel-billing/pkg/invoice"
	"github.com/sangkips/jewel-billing/pkg/invoicepdf"
)

// BillService handles the bill workflow: create, look up, cancel, verify and
// render.
type BillService struct {
	billRepo     repository.BillRepository
	calc         *invoice.TaxCalculator
	composer     *invoicepdf.Composer
	maxItems     int
	historyLimit int
	now          func() time.Time
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	calc *invoice.TaxCalculator,
	composer *invoicepdf.Composer,
	maxItems int,
	historyLimit int,
) *BillService {
	if maxItems <= 0 {
		maxItems = 12
	}
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &BillService{
		billRepo:     billRepo,
		calc:         calc,
		composer:     composer,
		maxItems:     maxItems,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

// BillInput represents the editable part of a bill. Derived totals are never
// taken from the caller.
type BillInput struct {
	Customer    invoice.Customer
	InvoiceDate *time.Time
	OrderDate   *time.Time
	Items       []invoice.LineItem
	PaymentMode string
}

// PreviewOutput is the result of recomputing an unsaved bill
type PreviewOutput struct {
	invoice.Totals
	AmountInWords string
}

// BillView is a stored bill together with a fresh recomputation of its total
type BillView struct {
	Bill            *entity.Bill
	RecomputedTotal int64
	TotalMismatch   bool
}

// VerifyOutput is the public verification view of a bill
type VerifyOutput struct {
	Store           invoicepdf.Letterhead
	InvoiceNo       string
	InvoiceDate     time.Time
	CustomerName    string
	Status          enum.BillStatus
	GrandTotal      int64
	RecomputedTotal int64
	TotalMismatch   bool
}

// MaxItems returns the item table capacity
func (s *BillService) MaxItems() int { return s.maxItems }

// Create validates input, computes the totals and stores a new bill. The
// store assigns the id and the invoice number.
func (s *BillService) Create(ctx context.Context, input *BillInput) (*entity.Bill, error) {
	if errs := s.validate(input, true); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	invoiceDate := s.now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}
	invoiceDate = dateOnly(invoiceDate)

	var orderDate *time.Time
	if input.OrderDate != nil {
		d := dateOnly(*input.OrderDate)
		orderDate = &d
	}

	core := &invoice.Bill{
		InvoiceDate: invoiceDate,
		OrderDate:   orderDate,
		Customer:    trimCustomer(input.Customer),
		Items:       input.Items,
		PaymentMode: strings.TrimSpace(input.PaymentMode),
		Status:      invoice.StatusActive,
	}
	invoice.Recompute(core, s.calc)
	if err := s.checkFits(core); err != nil {
		return nil, err
	}

	bill := &entity.Bill{
		InvoiceDate: core.InvoiceDate,
		OrderDate:   core.OrderDate,
		Customer: entity.CustomerInfo{
			Name:    core.Customer.Name,
			Phone:   core.Customer.Phone,
			Address: core.Customer.Address,
			GSTIN:   core.Customer.GSTIN,
		},
		PaymentMode: core.PaymentMode,
		Status:      enum.BillStatusActive,
		Items:       entity.NewBillItems(core.Items),
	}
	bill.ApplyTotals(core)

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, storeError("create bill", err)
	}

	log.Printf("Bill %s created (total %d)", bill.InvoiceNo, bill.GrandTotal)
	return bill, nil
}

// Preview recomputes the totals for items without storing anything
func (s *BillService) Preview(input *BillInput) (*PreviewOutput, error) {
	if errs := s.validate(input, false); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	core := &invoice.Bill{Items: input.Items}
	totals := invoice.Recompute(core, s.calc)
	if err := s.checkFits(core); err != nil {
		return nil, err
	}
	return &PreviewOutput{Totals: totals, AmountInWords: core.AmountInWords}, nil
}

// Search looks a bill up by its invoice number
func (s *BillService) Search(ctx context.Context, invoiceNo string) (*BillView, error) {
	bill, err := s.getByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	return s.view(bill), nil
}

// Get looks a bill up by its id
func (s *BillService) Get(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get bill", err)
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// Cancel moves an active bill to CANCELLED. Cancelling twice is a conflict.
func (s *BillService) Cancel(ctx context.Context, invoiceNo string) (*entity.Bill, error) {
	bill, err := s.getByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if !bill.Status.CanTransitionTo(enum.BillStatusCancelled) {
		return nil, apperror.NewConflictError("Bill is already cancelled")
	}

	at := s.now()
	changed, err := s.billRepo.Cancel(ctx, bill.ID, at)
	if err != nil {
		return nil, storeError("cancel bill", err)
	}
	if !changed {
		// Lost a race with another cancel.
		return nil, apperror.NewConflictError("Bill is already cancelled")
	}

	bill.Status = enum.BillStatusCancelled
	bill.CancelledAt = &at
	log.Printf("Bill %s cancelled", bill.InvoiceNo)
	return bill, nil
}

// History returns the most recent bills, newest first
func (s *BillService) History(ctx context.Context) ([]entity.Bill, error) {
	bills, err := s.billRepo.History(ctx, s.historyLimit)
	if err != nil {
		return nil, storeError("bill history", err)
	}
	return bills, nil
}

// Verify builds the public view of a bill from its id. Unknown or malformed
// ids are reported the same way.
func (s *BillService) Verify(ctx context.Context, id string) (*VerifyOutput, error) {
	billID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, errInvalidBill
	}
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, storeError("verify bill", err)
	}
	if bill == nil {
		return nil, errInvalidBill
	}

	v := s.view(bill)
	return &VerifyOutput{
		Store:           s.composer.Letterhead(),
		InvoiceNo:       bill.InvoiceNo,
		InvoiceDate:     bill.InvoiceDate,
		CustomerName:    bill.Customer.Name,
		Status:          bill.Status,
		GrandTotal:      bill.GrandTotal,
		RecomputedTotal: v.RecomputedTotal,
		TotalMismatch:   v.TotalMismatch,
	}, nil
}

// RenderPDF composes the invoice document for a stored bill
func (s *BillService) RenderPDF(ctx context.Context, invoiceNo string) (*invoicepdf.Document, error) {
	bill, err := s.getByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	// Stored totals are printed as they are; view only logs a mismatch.
	s.view(bill)

	doc, err := s.composer.Compose(bill.Invoice())
	if err != nil {
		return nil, composeError(bill.InvoiceNo, err)
	}
	return doc, nil
}

func (s *BillService) getByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Bill, error) {
	invoiceNo = strings.TrimSpace(invoiceNo)
	if invoiceNo == "" {
		return nil, apperror.NewBadRequestError("Invoice number is required")
	}
	bill, err := s.billRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, storeError("get bill", err)
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// view recomputes the stored items. A differing total is logged and
// reported, never written back.
func (s *BillService) view(bill *entity.Bill) *BillView {
	d := invoice.CheckStoredTotal(s.calc, bill.LineItems(), bill.GrandTotal)
	if d.Mismatch() {
		log.Printf("Warning: bill %s stored total %d differs from recomputed %d", bill.InvoiceNo, d.Stored, d.Recomputed)
	}
	return &BillView{Bill: bill, RecomputedTotal: d.Recomputed, TotalMismatch: d.Mismatch()}
}

func (s *BillService) validate(input *BillInput, requirePayment bool) []apperror.FieldError {
	var errs []apperror.FieldError
	if input == nil || len(input.Items) == 0 {
		errs = append(errs, apperror.FieldError{Field: "items", Message: "At least one item is required"})
	} else if len(input.Items) > s.maxItems {
		errs = append(errs, apperror.FieldError{Field: "items", Message: fmt.Sprintf("A bill can hold at most %d items", s.maxItems)})
	}
	if requirePayment && (input == nil || strings.TrimSpace(input.PaymentMode) == "") {
		errs = append(errs, apperror.FieldError{Field: "paymentMode", Message: "Please enter Payment Details"})
	}
	if input != nil {
		errs = append(errs, lengthErrors(input)...)
	}
	return errs
}

// lengthErrors rejects text that would not fit the bill's columns, so an
// oversized field is reported to the caller instead of failing in the store.
func lengthErrors(input *BillInput) []apperror.FieldError {
	var errs []apperror.FieldError
	check := func(field, value string, max int) {
		if utf8.RuneCountInString(strings.TrimSpace(value)) > max {
			errs = append(errs, apperror.FieldError{Field: field, Message: fmt.Sprintf("Must be at most %d characters", max)})
		}
	}

	check("customer.name", input.Customer.Name, entity.MaxCustomerNameLen)
	check("customer.phone", input.Customer.Phone, entity.MaxCustomerPhoneLen)
	check("customer.gstin", input.Customer.GSTIN, entity.MaxGSTINLen)
	check("paymentMode", input.PaymentMode, entity.MaxPaymentModeLen)
	for i, item := range input.Items {
		prefix := fmt.Sprintf("items[%d].", i)
		check(prefix+"particulars", item.Particulars, entity.MaxParticularsLen)
		check(prefix+"purity", item.Purity, entity.MaxItemFieldLen)
		check(prefix+"grossWeight", item.GrossWeight, entity.MaxItemFieldLen)
		check(prefix+"netWeight", item.NetWeight, entity.MaxItemFieldLen)
		check(prefix+"rate", item.Rate, entity.MaxItemFieldLen)
		check(prefix+"amount", item.Amount, entity.MaxItemFieldLen)
	}
	return errs
}

// checkFits rejects a bill whose items would not lay out on the invoice page.
// Wrapped particulars use more than one table row, so the item count alone
// does not guarantee the bill can be printed.
func (s *BillService) checkFits(core *invoice.Bill) error {
	err := s.composer.Fits(core)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, invoicepdf.ErrTableCapacity), errors.Is(err, invoicepdf.ErrPageOverflow):
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "Items do not fit on the invoice page, shorten the particulars or split the bill"},
		})
	default:
		return composeError(core.InvoiceNo, err)
	}
}

var errInvalidBill = apperror.NewAppError(http.StatusNotFound, "Invalid Bill")

// storeError hides record store failures behind a retryable 503
func storeError(op string, err error) error {
	log.Printf("Store error (%s): %v", op, err)
	return apperror.ErrServiceUnavailable
}

func composeError(invoiceNo string, err error) error {
	log.Printf("Invoice %s could not be rendered: %v", invoiceNo, err)
	switch {
	case errors.Is(err, invoicepdf.ErrTableCapacity), errors.Is(err, invoicepdf.ErrPageOverflow):
		return apperror.NewAppError(http.StatusUnprocessableEntity, "Bill content does not fit on the invoice page")
	case errors.Is(err, invoicepdf.ErrMissingIdentity):
		return apperror.NewAppError(http.StatusUnprocessableEntity, "Bill has no invoice number")
	default:
		return apperror.NewInternalError("Failed to render invoice")
	}
}

func trimCustomer(c invoice.Customer) invoice.Customer {
	return invoice.Customer{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
		GSTIN:   strings.ToUpper(strings.TrimSpace(c.GSTIN)),
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
