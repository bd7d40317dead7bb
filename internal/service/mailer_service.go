package service

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/Raghugowd/Internx-sub001/internal/config"
	"github.com/rs/zerolog"
)

// Mailer dispatches verification emails. The SMTP transport is the only
// implementation in production; a logging fallback is used when SMTP is
// unconfigured so local development does not require a mail server.
type Mailer interface {
	SendOTP(to, code string, expiry time.Duration) error
}

// NewMailer returns the SMTP mailer, or a log-only mailer when SMTP_HOST
// is unset.
func NewMailer(cfg *config.Config, log zerolog.Logger) Mailer {
	if cfg.SMTPHost == "" {
		log.Warn().Msg("SMTP not configured, OTP codes will be logged instead of emailed")
		return &logMailer{log: log}
	}
	return &smtpMailer{cfg: cfg}
}

type smtpMailer struct {
	cfg *config.Config
}

func (m *smtpMailer) SendOTP(to, code string, expiry time.Duration) error {
	subject := "Your InternX verification code"
	body := fmt.Sprintf("Your verification code is: %s\nThis code expires in %d minutes.",
		code, int(expiry.Minutes()))

	msg := "From: " + m.cfg.SMTPFrom + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, m.cfg.SMTPFrom, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

type logMailer struct {
	log zerolog.Logger
}

func (m *logMailer) SendOTP(to, code string, expiry time.Duration) error {
	m.log.Info().
		Str("to", to).
		Str("code", code).
		Dur("expiry", expiry).
		Msg("OTP (dev-only, SMTP disabled)")
	return nil
}
