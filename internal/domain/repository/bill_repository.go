package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewel-billing/internal/domain/entity"
)

// BillRepository defines the interface for bill persistence.
// Lookups return (nil, nil) when the bill does not exist.
type BillRepository interface {
	// Create assigns the next invoice number for the bill's financial year
	// and stores the bill with its items atomically
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Bill, error)
	// Cancel marks an active bill cancelled and reports whether a row changed
	Cancel(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	// History returns the most recently created bills, newest first
	History(ctx context.Context, limit int) ([]entity.Bill, error)
}
