package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/jewel-billing/internal/domain/entity"
	"github.com/sangkips/jewel-billing/internal/presentation/http/dto/response"
)

const (
	// SessionKey holds the *entity.Session of an authenticated request
	SessionKey = "session"
	// SessionIDKey holds the session ID of an authenticated request
	SessionIDKey = "session_id"
)

// SessionAuthenticator resolves a bearer token to an active session
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
}

// AuthMiddleware requires a bearer token that names an active session
func AuthMiddleware(auth SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		session, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(SessionKey, session)
		c.Set(SessionIDKey, session.ID)

		c.Next()
	}
}

// GetSessionID extracts the session ID set by AuthMiddleware
func GetSessionID(c *gin.Context) uuid.UUID {
	v, exists := c.Get(SessionIDKey)
	if !exists {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
