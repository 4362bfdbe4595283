package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DVTecno/mailsend/internal/infra/config"
	"github.com/DVTecno/mailsend/internal/transport/http/middleware"
	"github.com/DVTecno/mailsend/internal/usecase"
)

// AuthHandler exposes registration, login, logout, and the
// authenticated-identity endpoint.
type AuthHandler struct {
	identities *usecase.IdentityService
	binder     *usecase.SessionBinder
	session    config.SessionSettings
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(identities *usecase.IdentityService, binder *usecase.SessionBinder, session config.SessionSettings) *AuthHandler {
	return &AuthHandler{
		identities: identities,
		binder:     binder,
		session:    session,
	}
}

// Register creates a new identity from the submitted payload.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid registration payload"))
		return
	}

	identity, err := h.identities.Register(c.Request.Context(), usecase.RegisterInput{
		Name:            req.Name,
		NaturalID:       req.NaturalID,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		var validation *usecase.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, validation.Message))
			return
		}
		if errors.Is(err, usecase.ErrDuplicateIdentity) {
			c.JSON(http.StatusConflict, NewErrorResponse(c, "identity already registered"))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to register identity"))
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		Message:  "identity registered",
		Identity: newIdentitySummary(identity),
	})
}

// Login authenticates the credential and binds the identity to a fresh
// session. The bind happens exactly once per successful authentication.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid login payload"))
		return
	}

	principal, identity, err := h.identities.Authenticate(c.Request.Context(), req.NaturalID, req.Password)
	if err != nil {
		var validation *usecase.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, validation.Message))
			return
		}
		if errors.Is(err, usecase.ErrIdentityNotFound) || errors.Is(err, usecase.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "invalid credentials"))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "authentication failed"))
		return
	}

	sessionID := uuid.NewString()
	if err := h.binder.Bind(c.Request.Context(), sessionID, *identity); err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to establish session"))
		return
	}

	c.SetCookie(h.session.CookieName, sessionID, int(h.session.TTL.Seconds()), "/", "", h.session.Secure, true)

	c.JSON(http.StatusOK, LoginResponse{
		Message:     "authenticated",
		NaturalID:   principal.NaturalID,
		Authorities: principal.Authorities,
	})
}

// Logout invalidates the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	if err := h.binder.Invalidate(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to invalidate session"))
		return
	}

	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.Secure, true)

	c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

// Me returns the identity bound to the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.GetSessionIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	c.JSON(http.StatusOK, newIdentitySummary(*identity))
}
