// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Email is one outbound message. HTMLBody is optional.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email. Callers treat delivery as best effort.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// SMTP sends mail through an SMTP relay.
type SMTP struct {
	cfg Config
	log *zap.Logger
}

// New returns an SMTP sender, or a LogSender when no host is configured.
func New(cfg Config, logger *zap.Logger) Sender {
	if cfg.Host == "" {
		logger.Info("smtp host not set; outbound email will only be logged")
		return &LogSender{Log: logger}
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTP{cfg: cfg, log: logger}
}

// Send builds a multipart text/HTML message and delivers it.
func (s *SMTP) Send(ctx context.Context, e Email) error {
	m := mail.NewMsg()
	if err := m.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := m.To(e.To); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	m.Subject(e.Subject)
	m.SetBodyString(mail.TypeTextPlain, e.TextBody)
	if e.HTMLBody != "" {
		m.AddAlternativeString(mail.TypeTextHTML, e.HTMLBody)
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.User),
			mail.WithPassword(s.cfg.Pass),
		)
	}
	c, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	s.log.Info("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}

// LogSender records messages in the log instead of sending them.
type LogSender struct {
	Log *zap.Logger
}

// Send logs e and never fails.
func (l *LogSender) Send(_ context.Context, e Email) error {
	l.Log.Info("email (not sent)",
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.String("body", e.TextBody))
	return nil
}
