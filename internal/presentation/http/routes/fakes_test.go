package routes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewel-billing/internal/domain/entity"
	"github.com/sangkips/jewel-billing/internal/domain/enum"
)

type memBillRepository struct {
	mu    sync.Mutex
	bills map[uuid.UUID]entity.Bill
	seq   map[string]int
	err   error
}

func newMemBillRepository() *memBillRepository {
	return &memBillRepository{bills: map[uuid.UUID]entity.Bill{}, seq: map[string]int{}}
}

func (r *memBillRepository) Create(ctx context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	fy := entity.FiscalYearCode(bill.InvoiceDate)
	r.seq[fy]++
	bill.ID = uuid.New()
	bill.InvoiceNo = entity.FormatInvoiceNo(fy, r.seq[fy])
	bill.CreatedAt = time.Now()
	r.bills[bill.ID] = *bill
	return nil
}

func (r *memBillRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.bills[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *memBillRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, b := range r.bills {
		if b.InvoiceNo == invoiceNo {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (r *memBillRepository) Cancel(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok || b.Status != enum.BillStatusActive {
		return false, nil
	}
	b.Status = enum.BillStatusCancelled
	b.CancelledAt = &at
	r.bills[id] = b
	return true, nil
}

func (r *memBillRepository) History(ctx context.Context, limit int) ([]entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Bill
	for _, b := range r.bills {
		out = append(out, b)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memBillRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bills)
}

type memSessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]entity.Session
}

func (r *memSessionRepository) Create(ctx context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

func (r *memSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memSessionRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok && s.RevokedAt == nil {
		s.RevokedAt = &at
		r.sessions[id] = s
	}
	return nil
}

func (r *memSessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	return nil
}

type memIdempotencyRepository struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

func (r *memIdempotencyRepository) GetByKey(ctx context.Context, key string, sessionID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.keys[sessionID.String()+"/"+key]
	if !ok {
		return nil, nil
	}
	return &k, nil
}

func (r *memIdempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[ikey.SessionID.String()+"/"+ikey.Key] = *ikey
	return nil
}

func (r *memIdempotencyRepository) DeleteExpired(ctx context.Context) error {
	return nil
}
