package mail

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

func TestBuildMessagePlain(t *testing.T) {
	msg := buildMessage(fromAddress{Address: "no-reply@portal.test", Name: "Portal Support"},
		"ana@x.com", "Password updated", contentPlain, "Your password has been updated successfully.", nil, "")

	text := string(msg)
	if !strings.Contains(text, "To: ana@x.com\r\n") {
		t.Fatalf("missing To header: %s", text)
	}
	if !strings.Contains(text, "no-reply@portal.test") {
		t.Fatalf("missing From address: %s", text)
	}
	if !strings.Contains(text, "Content-Type: text/plain") {
		t.Fatalf("missing plain content type: %s", text)
	}
	if !strings.HasSuffix(text, "Your password has been updated successfully.") {
		t.Fatalf("body not at end of message: %s", text)
	}
}

func TestBuildMessageHTML(t *testing.T) {
	msg := buildMessage(fromAddress{Address: "no-reply@portal.test"},
		"ana@x.com", "Reset", contentHTML, "<p>link</p>", nil, "")

	text := string(msg)
	if !strings.Contains(text, "Content-Type: text/html") {
		t.Fatalf("missing html content type: %s", text)
	}
	if !strings.Contains(text, "MIME-Version: 1.0\r\n") {
		t.Fatalf("missing MIME version header: %s", text)
	}
}

func TestBuildMessageWithAttachment(t *testing.T) {
	payload := []byte{0x25, 0x50, 0x44, 0x46, 0x2d}
	msg := buildMessage(fromAddress{Address: "no-reply@portal.test"},
		"ana@x.com", "Invoice", contentPlain, "see attached", payload, "invoice.pdf")

	text := string(msg)
	if !strings.Contains(text, "multipart/mixed") {
		t.Fatalf("expected multipart message: %s", text)
	}
	if !strings.Contains(text, `attachment; filename="invoice.pdf"`) {
		t.Fatalf("missing attachment disposition: %s", text)
	}

	encoded := base64.StdEncoding.EncodeToString(payload)
	if !bytes.Contains(msg, []byte(encoded)) {
		t.Fatal("attachment payload not base64-encoded into message")
	}
}
