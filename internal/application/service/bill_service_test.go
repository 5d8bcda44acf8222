package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewel-billing/internal/domain/entity"
	"github.com/sangkips/jewel-billing/internal/domain/enum"
	"github.com/sangkips/jewel-billing/pkg/apperror"
	"github.com/sangkips/jewel-billing/pkg/invoice"
	"github.com/sangkips/jewel-billing/pkg/invoicepdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.October, 5, 14, 30, 0, 0, time.UTC)

func newTestBillService(repo *mockBillRepository) *BillService {
	composer := invoicepdf.NewComposer(invoicepdf.Options{
		Letterhead: invoicepdf.Letterhead{
			Name:    "MARUTI JEWELLERS",
			Address: "Bhayander East, Thane",
			TaxLine: "GSTIN: 27AAAPJ6532C1Z5",
			Contact: "Mob: 9029136249",
		},
		Caption:       "This is a computer generated invoice",
		VerifyBaseURL: "https://example.test/verify/",
	})
	svc := NewBillService(repo, invoice.NewTaxCalculator(invoice.DefaultGSTRate), composer, 12, 10)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func storedBill(status enum.BillStatus, grandTotal int64) *entity.Bill {
	return &entity.Bill{
		ID:            uuid.New(),
		InvoiceNo:     "252601",
		InvoiceDate:   time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
		Customer:      entity.CustomerInfo{Name: "Asha Patil", Address: "Navghar Road"},
		PaymentMode:   "Cash",
		Status:        status,
		TaxableValue:  decimal.NewFromInt(1000),
		CGSTAmount:    decimal.NewFromInt(15),
		SGSTAmount:    decimal.NewFromInt(15),
		GrandTotal:    grandTotal,
		AmountInWords: "One Thousand Thirty Rupees Only",
		Items: entity.NewBillItems([]invoice.LineItem{
			{Particulars: "Gold Ring", Purity: "22K", GrossWeight: "4.6", NetWeight: "4.5", Rate: "6000", Amount: "1000"},
		}),
	}
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err))
	return apperror.GetAppError(err).Code
}

func TestBillService_CreateComputesTotals(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Bill")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Bill).InvoiceNo = "252601"
		}).
		Return(nil)

	bill, err := svc.Create(context.Background(), &BillInput{
		Customer:    invoice.Customer{Name: "  Asha  ", GSTIN: "27abc"},
		Items:       []invoice.LineItem{{Particulars: "Ring", Amount: "1000"}},
		PaymentMode: "Cash",
	})

	require.NoError(t, err)
	assert.Equal(t, "252601", bill.InvoiceNo)
	assert.Equal(t, "Asha", bill.Customer.Name)
	assert.Equal(t, "27ABC", bill.Customer.GSTIN)
	assert.Equal(t, time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC), bill.InvoiceDate)
	assert.Equal(t, "1000.00", bill.TaxableValue.StringFixed(2))
	assert.Equal(t, "15.00", bill.CGSTAmount.StringFixed(2))
	assert.Equal(t, int64(1030), bill.GrandTotal)
	assert.Equal(t, "One Thousand Thirty Rupees Only", bill.AmountInWords)
	assert.Equal(t, enum.BillStatusActive, bill.Status)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, 1, bill.Items[0].Position)
	repo.AssertExpectations(t)
}

func TestBillService_CreateValidation(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)

	_, err := svc.Create(context.Background(), &BillInput{})
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "items", appErr.Errors[0].Field)
	assert.Equal(t, "Please enter Payment Details", appErr.Errors[1].Message)

	tooMany := make([]invoice.LineItem, 13)
	_, err = svc.Create(context.Background(), &BillInput{Items: tooMany, PaymentMode: "UPI"})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBillService_CreateAcceptsOnlyPrintableItemCounts(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Bill")).
		Run(func(args mock.Arguments) {
			b := args.Get(1).(*entity.Bill)
			b.ID = uuid.New()
			b.InvoiceNo = "252601"
		}).
		Return(nil)

	items := make([]invoice.LineItem, svc.MaxItems())
	for i := range items {
		items[i] = invoice.LineItem{Particulars: "Gold Ring", Purity: "916", Amount: "1000"}
	}
	bill, err := svc.Create(context.Background(), &BillInput{Items: items, PaymentMode: "Cash"})
	require.NoError(t, err)
	require.Len(t, bill.Items, 12)

	repo.On("GetByInvoiceNo", mock.Anything, "252601").Return(bill, nil)
	doc, err := svc.RenderPDF(context.Background(), "252601")
	require.NoError(t, err)
	assert.Equal(t, 12, doc.Layout.Rows)

	_, err = svc.Create(context.Background(), &BillInput{
		Items:       append(items, invoice.LineItem{Particulars: "Gold Ring", Amount: "1000"}),
		PaymentMode: "Cash",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestBillService_CreateRejectsWrappedItemsThatOverflow(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)

	items := make([]invoice.LineItem, 8)
	for i := range items {
		items[i] = invoice.LineItem{
			Particulars: "Antique temple necklace set with ruby drops, matching jhumkas and a detachable pendant",
			Amount:      "25000",
		}
	}

	_, err := svc.Create(context.Background(), &BillInput{Items: items, PaymentMode: "Cash"})
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "items", appErr.Errors[0].Field)

	_, err = svc.Preview(&BillInput{Items: items})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBillService_CreateRejectsOversizedText(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)

	_, err := svc.Create(context.Background(), &BillInput{
		Items: []invoice.LineItem{
			{Particulars: "Ring", Amount: "1000 (negotiated with the customer on visit)"},
		},
		PaymentMode: strings.Repeat("UPI ", 30),
	})

	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"paymentMode", "items[0].amount"}, fields)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBillService_CreateStoreFailureIsUnavailable(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := svc.Create(context.Background(), &BillInput{
		Items:       []invoice.LineItem{{Amount: "10"}},
		PaymentMode: "Cash",
	})
	assert.Equal(t, http.StatusServiceUnavailable, appCode(t, err))
}

func TestBillService_Preview(t *testing.T) {
	svc := newTestBillService(new(mockBillRepository))

	out, err := svc.Preview(&BillInput{Items: []invoice.LineItem{
		{Amount: "100"}, {Amount: "250.50"}, {Amount: "abc"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "350.50", out.TaxableValue.StringFixed(2))
	assert.Equal(t, int64(361), out.GrandTotal)
	assert.Equal(t, "Three Hundred Sixty One Rupees Only", out.AmountInWords)

	_, err = svc.Preview(&BillInput{})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
}

func TestBillService_SearchNotFoundVsTransport(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)

	repo.On("GetByInvoiceNo", mock.Anything, "999999").Return(nil, nil)
	repo.On("GetByInvoiceNo", mock.Anything, "252602").Return(nil, errors.New("timeout"))

	_, err := svc.Search(context.Background(), "999999")
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	_, err = svc.Search(context.Background(), "252602")
	assert.Equal(t, http.StatusServiceUnavailable, appCode(t, err))

	_, err = svc.Search(context.Background(), "  ")
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}

func TestBillService_SearchReportsMismatch(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)

	repo.On("GetByInvoiceNo", mock.Anything, "252601").Return(storedBill(enum.BillStatusActive, 1040), nil)

	view, err := svc.Search(context.Background(), "252601")
	require.NoError(t, err)
	assert.True(t, view.TotalMismatch)
	assert.Equal(t, int64(1030), view.RecomputedTotal)
	assert.Equal(t, int64(1040), view.Bill.GrandTotal)
}

func TestBillService_Cancel(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)
	bill := storedBill(enum.BillStatusActive, 1030)

	repo.On("GetByInvoiceNo", mock.Anything, "252601").Return(bill, nil).Once()
	repo.On("Cancel", mock.Anything, bill.ID, fixedNow).Return(true, nil).Once()

	got, err := svc.Cancel(context.Background(), "252601")
	require.NoError(t, err)
	assert.Equal(t, enum.BillStatusCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.Equal(t, int64(1030), got.GrandTotal)

	// A second cancel is a conflict and never reaches the store.
	repo.On("GetByInvoiceNo", mock.Anything, "252601").Return(got, nil).Once()
	_, err = svc.Cancel(context.Background(), "252601")
	assert.Equal(t, http.StatusConflict, appCode(t, err))

	repo.AssertNumberOfCalls(t, "Cancel", 1)
}

func TestBillService_CancelLostRace(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)
	bill := storedBill(enum.BillStatusActive, 1030)

	repo.On("GetByInvoiceNo", mock.Anything, "252601").Return(bill, nil)
	repo.On("Cancel", mock.Anything, bill.ID, fixedNow).Return(false, nil)

	_, err := svc.Cancel(context.Background(), "252601")
	assert.Equal(t, http.StatusConflict, appCode(t, err))
}

func TestBillService_History(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)

	repo.On("History", mock.Anything, 10).Return([]entity.Bill{*storedBill(enum.BillStatusActive, 1030)}, nil)

	bills, err := svc.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, bills, 1)
}

func TestBillService_VerifyCancelled(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)
	bill := storedBill(enum.BillStatusCancelled, 1030)

	repo.On("GetByID", mock.Anything, bill.ID).Return(bill, nil)

	out, err := svc.Verify(context.Background(), bill.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "252601", out.InvoiceNo)
	assert.Equal(t, enum.BillStatusCancelled, out.Status)
	assert.Equal(t, "Asha Patil", out.CustomerName)
	assert.Equal(t, int64(1030), out.GrandTotal)
	assert.False(t, out.TotalMismatch)
	assert.Equal(t, "MARUTI JEWELLERS", out.Store.Name)
}

func TestBillService_VerifyUnknown(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)
	missing := uuid.New()

	repo.On("GetByID", mock.Anything, missing).Return(nil, nil)

	_, err := svc.Verify(context.Background(), missing.String())
	require.Error(t, err)
	assert.Equal(t, "Invalid Bill", apperror.GetAppError(err).Message)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	_, err = svc.Verify(context.Background(), "not-a-uuid")
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestBillService_RenderPDF(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)
	bill := storedBill(enum.BillStatusCancelled, 1030)

	repo.On("GetByInvoiceNo", mock.Anything, "252601").Return(bill, nil)

	doc, err := svc.RenderPDF(context.Background(), "252601")
	require.NoError(t, err)
	assert.Equal(t, "Invoice_252601.pdf", doc.FileName)
	assert.True(t, doc.Layout.Watermark)
	assert.Equal(t, "%PDF", string(doc.Content[:4]))
}

func TestBillService_RenderPDFTooManyLines(t *testing.T) {
	repo := new(mockBillRepository)
	svc := newTestBillService(repo)
	bill := storedBill(enum.BillStatusActive, 0)

	var items []invoice.LineItem
	for i := 0; i < 40; i++ {
		items = append(items, invoice.LineItem{Particulars: "Bangle", Amount: "1"})
	}
	bill.Items = entity.NewBillItems(items)

	repo.On("GetByInvoiceNo", mock.Anything, "252601").Return(bill, nil)

	_, err := svc.RenderPDF(context.Background(), "252601")
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
}
