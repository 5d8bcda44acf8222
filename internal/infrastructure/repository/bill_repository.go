package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewel-billing/internal/domain/entity"
	"github.com/sangkips/jewel-billing/internal/domain/enum"
	domainRepo "github.com/sangkips/jewel-billing/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fy := entity.FiscalYearCode(bill.InvoiceDate)

		// The first bill of a year inserts the counter row; concurrent
		// creators then serialize on the row lock below.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.InvoiceSequence{FiscalYear: fy}).Error; err != nil {
			return err
		}

		var seq entity.InvoiceSequence
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq, "fiscal_year = ?", fy).Error; err != nil {
			return err
		}

		seq.LastValue++
		if err := tx.Model(&seq).Update("last_value", seq.LastValue).Error; err != nil {
			return err
		}

		bill.InvoiceNo = entity.FormatInvoiceNo(fy, seq.LastValue)
		return tx.Create(bill).Error
	})
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(WithItems).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(WithItems).
		First(&bill, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Cancel(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ? AND status = ?", id, enum.BillStatusActive).
		Updates(map[string]interface{}{
			"status":       enum.BillStatusCancelled,
			"cancelled_at": at,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *billRepository) History(ctx context.Context, limit int) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(WithItems, NewestFirst).
		Limit(limit).
		Find(&bills).Error
	return bills, err
}
