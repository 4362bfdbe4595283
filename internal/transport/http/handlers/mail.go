package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DVTecno/mailsend/internal/core/port"
)

// maxAttachmentBytes bounds uploaded attachments at 10 MiB.
const maxAttachmentBytes = 10 << 20

// MailHandler exposes the attachment mail endpoint.
type MailHandler struct {
	notifier port.Notifier
}

// NewMailHandler builds a MailHandler.
func NewMailHandler(notifier port.Notifier) *MailHandler {
	return &MailHandler{notifier: notifier}
}

// SendAttachment delivers a mail with a file attachment submitted as a
// multipart form: fields "to", "subject", "body", and file part "file".
func (h *MailHandler) SendAttachment(c *gin.Context) {
	to := strings.TrimSpace(c.PostForm("to"))
	if to == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "recipient is required"))
		return
	}

	subject := strings.TrimSpace(c.PostForm("subject"))
	body := c.PostForm("body")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "attachment file is required"))
		return
	}
	if fileHeader.Size > maxAttachmentBytes {
		c.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse(c, "attachment exceeds size limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to read attachment"))
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxAttachmentBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to read attachment"))
		return
	}
	if len(payload) > maxAttachmentBytes {
		c.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse(c, "attachment exceeds size limit"))
		return
	}

	filename := filepath.Base(fileHeader.Filename)

	if err := h.notifier.SendWithAttachment(c.Request.Context(), to, subject, body, payload, filename); err != nil {
		var delivery *port.DeliveryError
		if errors.As(err, &delivery) {
			c.JSON(http.StatusBadGateway, NewErrorResponse(c, "failed to deliver mail"))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to send mail"))
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "mail sent"})
}
