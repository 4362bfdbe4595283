package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DVTecno/mailsend/internal/core/port"
	"github.com/DVTecno/mailsend/internal/usecase"
)

// RecoveryHandler exposes the password recovery workflow: requesting a
// reset link, checking an outstanding token, and completing the reset.
type RecoveryHandler struct {
	recovery *usecase.RecoveryService
	baseURL  string
}

// NewRecoveryHandler builds a RecoveryHandler. The base URL is embedded
// in mailed reset links.
func NewRecoveryHandler(recovery *usecase.RecoveryService, baseURL string) *RecoveryHandler {
	return &RecoveryHandler{
		recovery: recovery,
		baseURL:  baseURL,
	}
}

// Forgot issues a reset token and mails the reset link.
func (h *RecoveryHandler) Forgot(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid payload"))
		return
	}

	err := h.recovery.Request(c.Request.Context(), req.Email, h.baseURL)
	if err != nil {
		var validation *usecase.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, validation.Message))
			return
		}
		var delivery *port.DeliveryError
		if errors.As(err, &delivery) {
			c.JSON(http.StatusBadGateway, NewErrorResponse(c, "failed to send reset email"))
			return
		}
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrIdentityNotFound, Status: http.StatusNotFound, Message: "no identity registered with this email"},
		}, http.StatusInternalServerError, "failed to process recovery request")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "reset link sent"})
}

// CheckToken reports whether the supplied token is outstanding. It never
// mutates state, so a valid token stays usable afterwards.
func (h *RecoveryHandler) CheckToken(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "token is required"))
		return
	}

	identity, err := h.recovery.Resolve(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, usecase.ErrIdentityNotFound) {
			c.JSON(http.StatusNotFound, ResetTokenResponse{Valid: false})
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to resolve token"))
		return
	}

	c.JSON(http.StatusOK, ResetTokenResponse{
		Valid:     true,
		NaturalID: identity.NaturalID,
	})
}

// Reset replaces the credential bound to the token. The token is
// consumed on success; replays observe 404.
func (h *RecoveryHandler) Reset(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid payload"))
		return
	}

	if strings.TrimSpace(req.Token) == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "token is required"))
		return
	}

	err := h.recovery.Complete(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		var delivery *port.DeliveryError
		if errors.As(err, &delivery) {
			// Credential already replaced; report the delivery problem
			// without suggesting the reset failed.
			c.JSON(http.StatusOK, MessageResponse{Message: "password updated, confirmation email could not be sent"})
			return
		}
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrIdentityNotFound, Status: http.StatusNotFound, Message: "token is invalid or already used"},
		}, http.StatusInternalServerError, "failed to reset password")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Your password has been updated successfully."})
}
