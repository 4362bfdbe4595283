package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func multipartMailRequest(t *testing.T, to, subject, body string, attachment []byte, filename string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if to != "" {
		_ = writer.WriteField("to", to)
	}
	_ = writer.WriteField("subject", subject)
	_ = writer.WriteField("body", body)

	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(attachment); err != nil {
			t.Fatalf("write attachment: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/mail/attachment", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestSendAttachmentEndpoint(t *testing.T) {
	env := newTestEnv(t)

	req := multipartMailRequest(t, "ana@example.com", "Invoice", "see attached",
		[]byte("%PDF-1.4 fake"), "invoice.pdf")

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	mail := env.notifier.last()
	if mail.to != "ana@example.com" || mail.subject != "Invoice" {
		t.Fatalf("unexpected delivered mail: %+v", mail)
	}
}

func TestSendAttachmentRequiresRecipient(t *testing.T) {
	env := newTestEnv(t)

	req := multipartMailRequest(t, "", "Invoice", "body", []byte("data"), "file.bin")

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSendAttachmentRequiresFile(t *testing.T) {
	env := newTestEnv(t)

	req := multipartMailRequest(t, "ana@example.com", "Invoice", "body", nil, "")

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
