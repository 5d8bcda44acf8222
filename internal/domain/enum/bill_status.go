package enum

import (
	"database/sql/driver"
	"fmt"

	"github.com/sangkips/jewel-billing/pkg/invoice"
)

// BillStatus represents the lifecycle state of a bill
type BillStatus string

const (
	BillStatusActive    BillStatus = "ACTIVE"
	BillStatusCancelled BillStatus = "CANCELLED"
)

func (s BillStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known status
func (s BillStatus) IsValid() bool {
	return s == BillStatusActive || s == BillStatusCancelled
}

// CanTransitionTo reports whether s may move to next. The only transition is
// ACTIVE to CANCELLED and it cannot be undone.
func (s BillStatus) CanTransitionTo(next BillStatus) bool {
	return s == BillStatusActive && next == BillStatusCancelled
}

// Invoice converts the status to its core representation
func (s BillStatus) Invoice() invoice.Status {
	if s == BillStatusCancelled {
		return invoice.StatusCancelled
	}
	return invoice.StatusActive
}

func (s BillStatus) Value() (driver.Value, error) {
	if s == "" {
		return string(BillStatusActive), nil
	}
	return string(s), nil
}

func (s *BillStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = BillStatusActive
	case string:
		*s = BillStatus(v)
	case []byte:
		*s = BillStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into BillStatus", value)
	}
	return nil
}
