package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/DVTecno/mailsend/internal/core/port"
	"github.com/DVTecno/mailsend/internal/infra/config"
	"github.com/DVTecno/mailsend/internal/infra/logger"
)

// SMTPNotifier implements port.Notifier over SMTP with implicit TLS
// (port 465 style). Each send dials a fresh connection; the mail volume
// here does not justify connection pooling.
type SMTPNotifier struct {
	cfg    config.SMTPSettings
	logger *zap.Logger
}

// NewSMTPNotifier constructs an SMTP-backed notifier.
func NewSMTPNotifier(cfg config.SMTPSettings, log *zap.Logger) *SMTPNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &SMTPNotifier{cfg: cfg, logger: log}
}

// SendPlain delivers a text/plain message.
func (n *SMTPNotifier) SendPlain(ctx context.Context, to, subject, text string) error {
	msg := buildMessage(n.from(), to, subject, contentPlain, text, nil, "")
	return n.deliver(ctx, to, subject, msg)
}

// SendHTML delivers a text/html message.
func (n *SMTPNotifier) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	msg := buildMessage(n.from(), to, subject, contentHTML, htmlBody, nil, "")
	return n.deliver(ctx, to, subject, msg)
}

// SendWithAttachment delivers a multipart message with a single binary
// attachment.
func (n *SMTPNotifier) SendWithAttachment(ctx context.Context, to, subject, text string, attachment []byte, filename string) error {
	msg := buildMessage(n.from(), to, subject, contentPlain, text, attachment, filename)
	return n.deliver(ctx, to, subject, msg)
}

func (n *SMTPNotifier) from() fromAddress {
	return fromAddress{Address: n.cfg.From, Name: n.cfg.FromName}
}

func (n *SMTPNotifier) deliver(ctx context.Context, to, subject string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return &port.DeliveryError{To: to, Err: err}
	}

	if err := n.send(to, msg); err != nil {
		n.logger.Error("mail delivery failed",
			zap.String("to", logger.MaskEmail(to)),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return &port.DeliveryError{To: to, Err: err}
	}

	n.logger.Info("mail delivered",
		zap.String("to", logger.MaskEmail(to)),
		zap.String("subject", subject),
	)
	return nil
}

func (n *SMTPNotifier) send(to string, msg []byte) error {
	serverAddr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	tlsConfig := &tls.Config{
		ServerName: n.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Quit()

	if n.cfg.Username != "" {
		auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(n.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}

	return nil
}
