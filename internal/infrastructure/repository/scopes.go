package repository

import (
	"gorm.io/gorm"
)

// WithItems preloads bill items in their printed order
func WithItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("bill_items.position ASC")
	})
}

// NewestFirst orders bills by creation time, latest first, with a stable
// tiebreak on invoice number
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("invoice_no DESC")
}
