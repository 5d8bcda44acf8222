package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewel-billing/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

type mockBillRepository struct {
	mock.Mock
}

func (m *mockBillRepository) Create(ctx context.Context, bill *entity.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *mockBillRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	args := m.Called(ctx, id)
	bill, _ := args.Get(0).(*entity.Bill)
	return bill, args.Error(1)
}

func (m *mockBillRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Bill, error) {
	args := m.Called(ctx, invoiceNo)
	bill, _ := args.Get(0).(*entity.Bill)
	return bill, args.Error(1)
}

func (m *mockBillRepository) Cancel(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *mockBillRepository) History(ctx context.Context, limit int) ([]entity.Bill, error) {
	args := m.Called(ctx, limit)
	bills, _ := args.Get(0).([]entity.Bill)
	return bills, args.Error(1)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}

type recordingPrinter struct {
	data      []byte
	err       error
	connected bool
}

func (p *recordingPrinter) Print(ctx context.Context, data []byte) error {
	p.data = append([]byte(nil), data...)
	return p.err
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return p.connected }
