package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
)

type contentType string

const (
	contentPlain contentType = "text/plain; charset=\"utf-8\""
	contentHTML  contentType = "text/html; charset=\"utf-8\""
)

type fromAddress struct {
	Address string
	Name    string
}

func (f fromAddress) header() string {
	if f.Name == "" {
		return f.Address
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", f.Name), f.Address)
}

// buildMessage assembles an RFC 5322 message. Without an attachment the
// body is a single part; with one it becomes multipart/mixed with the
// attachment base64-encoded.
func buildMessage(from fromAddress, to, subject string, ct contentType, body string, attachment []byte, filename string) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from.header())
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(attachment) == 0 {
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", ct)
		buf.WriteString("\r\n")
		buf.WriteString(body)
		return buf.Bytes()
	}

	writer := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", string(ct))
	bodyPart, err := writer.CreatePart(bodyHeader)
	if err == nil {
		_, _ = bodyPart.Write([]byte(body))
	}

	attachmentHeader := textproto.MIMEHeader{}
	attachmentHeader.Set("Content-Type", "application/octet-stream")
	attachmentHeader.Set("Content-Transfer-Encoding", "base64")
	attachmentHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	attachmentPart, err := writer.CreatePart(attachmentHeader)
	if err == nil {
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(attachment)))
		base64.StdEncoding.Encode(encoded, attachment)
		_, _ = attachmentPart.Write(encoded)
	}

	_ = writer.Close()

	return buf.Bytes()
}
