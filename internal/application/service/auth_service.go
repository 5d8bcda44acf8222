package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewel-billing/internal/domain/entity"
	"github.com/sangkips/jewel-billing/internal/domain/repository"
	"github.com/sangkips/jewel-billing/pkg/apperror"
	"github.com/sangkips/jewel-billing/pkg/utils"
)

// AuthService handles back-office login sessions. There is a single admin
// password; each successful login gets its own session record.
type AuthService struct {
	sessionRepo  repository.SessionRepository
	jwtManager   *utils.JWTManager
	passwordHash string
	expiry       time.Duration
	now          func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	sessionRepo repository.SessionRepository,
	jwtManager *utils.JWTManager,
	passwordHash string,
	expiry time.Duration,
) *AuthService {
	if expiry <= 0 {
		expiry = 12 * time.Hour
	}
	return &AuthService{
		sessionRepo:  sessionRepo,
		jwtManager:   jwtManager,
		passwordHash: passwordHash,
		expiry:       expiry,
		now:          time.Now,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Password  string
	ClientIP  string
	UserAgent string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Session     *entity.Session
	AccessToken string
}

// Login checks the admin password and opens a new session
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if !utils.CheckPasswordHash(input.Password, s.passwordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	now := s.now()
	session := &entity.Session{
		ID:        uuid.New(),
		ClientIP:  input.ClientIP,
		UserAgent: truncate(input.UserAgent, 255),
		CreatedAt: now,
		ExpiresAt: now.Add(s.expiry),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, storeError("create session", err)
	}

	token, err := s.jwtManager.GenerateSessionToken(session.ID, now, session.ExpiresAt)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to issue token")
	}

	log.Printf("Session %s opened from %s", session.ID, session.ClientIP)
	return &LoginOutput{Session: session, AccessToken: token}, nil
}

// Authenticate resolves a bearer token to an active session
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	sessionID, err := s.jwtManager.ValidateSessionToken(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, storeError("get session", err)
	}
	if session == nil {
		return nil, apperror.ErrInvalidToken
	}
	if !session.IsActive(s.now()) {
		return nil, apperror.ErrSessionExpired
	}
	return session, nil
}

// Logout revokes the session. Revoking an already revoked session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessionRepo.Revoke(ctx, sessionID, s.now()); err != nil {
		return storeError("revoke session", err)
	}
	log.Printf("Session %s closed", sessionID)
	return nil
}

// PurgeExpired deletes sessions past their expiry
func (s *AuthService) PurgeExpired(ctx context.Context) error {
	return s.sessionRepo.DeleteExpired(ctx, s.now())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
