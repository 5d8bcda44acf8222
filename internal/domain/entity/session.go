package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is an explicit back-office login. It is created at login, referenced
// by the bearer token and revoked at logout.
type Session struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ClientIP  string     `gorm:"size:64" json:"client_ip"`
	UserAgent string     `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}

// IsActive reports whether the session can still authorize requests at now
func (s *Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
