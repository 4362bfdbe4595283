package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DVTecno/mailsend/internal/core/domain"
	"github.com/DVTecno/mailsend/internal/usecase"
)

const (
	// IdentityKey is the gin context key holding the session identity.
	IdentityKey = "identity"
	// SessionIDKey is the gin context key holding the session identifier.
	SessionIDKey = "session_id"
)

// ErrorResponse matches the handlers.ErrorResponse structure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RequireSession resolves the session cookie and loads the bound
// identity into the gin context. Requests without a valid session are
// rejected with 401.
func RequireSession(binder *usecase.SessionBinder, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				ErrorResponse{Error: "authentication required"})
			return
		}

		identity, err := binder.Resolve(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, usecase.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					ErrorResponse{Error: "session expired or invalid"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				ErrorResponse{Error: "session lookup failed"})
			return
		}

		c.Set(IdentityKey, identity)
		c.Set(SessionIDKey, sessionID)

		c.Next()
	}
}

// GetSessionIdentity retrieves the bound identity from context.
func GetSessionIdentity(c *gin.Context) (*domain.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}

	identity, ok := value.(*domain.Identity)
	return identity, ok
}

// GetSessionID retrieves the session identifier from context.
func GetSessionID(c *gin.Context) (string, bool) {
	value, exists := c.Get(SessionIDKey)
	if !exists {
		return "", false
	}

	id, ok := value.(string)
	return id, ok
}
