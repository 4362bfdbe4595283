package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DVTecno/mailsend/internal/core/domain"
	"github.com/DVTecno/mailsend/internal/infra/logger"
)

// ErrorResponse is the error payload returned by every endpoint.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response carrying the request id
// from the request context.
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	requestID, _ := c.Request.Context().Value(logger.RequestIDKey{}).(string)

	return ErrorResponse{
		Error:     errorMsg,
		RequestID: requestID,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name            string `json:"name"`
	NaturalID       string `json:"natural_id"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// IdentitySummary is the public view of an identity. It never carries
// the credential hash.
type IdentitySummary struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	NaturalID string  `json:"natural_id"`
	Email     string  `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
}

func newIdentitySummary(identity domain.Identity) IdentitySummary {
	return IdentitySummary{
		ID:        identity.ID,
		Name:      identity.Name,
		NaturalID: identity.NaturalID,
		Email:     identity.Email,
		Phone:     identity.Phone,
		Role:      string(identity.Role),
	}
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message  string          `json:"message"`
	Identity IdentitySummary `json:"identity"`
}

// LoginRequest is the authentication payload.
type LoginRequest struct {
	NaturalID string `json:"natural_id"`
	Password  string `json:"password"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message     string   `json:"message"`
	NaturalID   string   `json:"natural_id"`
	Authorities []string `json:"authorities"`
}

// ForgotPasswordRequest asks for a reset link by email.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetTokenResponse reports whether a reset token is outstanding.
type ResetTokenResponse struct {
	Valid     bool   `json:"valid"`
	NaturalID string `json:"natural_id,omitempty"`
}

// ResetPasswordRequest carries the token and the replacement credential.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports per-dependency readiness.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
