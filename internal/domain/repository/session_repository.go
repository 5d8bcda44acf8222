package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewel-billing/internal/domain/entity"
)

// SessionRepository defines the interface for back-office login sessions
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
	// DeleteExpired removes sessions that expired before now
	DeleteExpired(ctx context.Context, now time.Time) error
}
