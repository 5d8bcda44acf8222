package request

// LoginRequest represents a login request
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}
