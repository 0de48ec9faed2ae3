package email

import (
	"fmt"

	"aula_backend/internal/config"
	"aula_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Provider sends transactional mail. The only message the backend sends is
// the registration verification code.
type Provider interface {
	SendVerificationCode(to, code string) error
}

// SMTPProvider sends mail through the configured SMTP server.
type SMTPProvider struct {
	cfg *config.Config
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) SendVerificationCode(to, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.cfg.Email.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Your registration code is <strong>%s</strong>. It expires in 15 minutes.</p>", code))

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

// LogProvider logs codes instead of sending mail. Used in development and
// tests where no SMTP server is configured.
type LogProvider struct{}

func (LogProvider) SendVerificationCode(to, code string) error {
	logger.Info("verification code issued", "to", to, "code", code)
	return nil
}

// NewProvider picks the SMTP provider when email is enabled, the log
// provider otherwise.
func NewProvider(cfg *config.Config) Provider {
	if cfg.Email.Enabled && cfg.Email.SMTPHost != "" {
		return NewSMTPProvider(cfg)
	}
	return LogProvider{}
}
