// Copyright (c) 2026 ComicHub. All rights reserved.

/*
Package email sends transactional mail for account flows.

It covers the two mails the platform produces: email-address verification on
registration and password-reset links. Delivery uses plain SMTP; the mailer is
injected into the account service behind a small interface so tests can fake it.
*/
package email

import (
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer delivers transactional mail over SMTP.
type Mailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
	baseURL  string
	logger   *slog.Logger
}

// Config holds the SMTP connection settings and the public base URL used to
// build clickable links.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
	BaseURL  string
}

// NewMailer constructs an SMTP mailer.
func NewMailer(cfg Config, logger *slog.Logger) *Mailer {
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		baseURL:  cfg.BaseURL,
		logger:   logger,
	}
}

// SendVerificationEmail mails a link that verifies the recipient's address.
func (m *Mailer) SendVerificationEmail(to, token string) error {
	url := fmt.Sprintf("%s/verify/%s", m.baseURL, token)
	body := fmt.Sprintf(
		"Thank you for creating an account on ComicHub.\r\n\r\n"+
			"Please verify your email address by visiting %s\r\n", url)
	return m.send(to, "Email Verification", body)
}

// SendPasswordResetEmail mails a link that authorizes a password reset.
func (m *Mailer) SendPasswordResetEmail(to, token string) error {
	url := fmt.Sprintf("%s/reset/%s", m.baseURL, token)
	body := fmt.Sprintf(
		"You requested a password reset for ComicHub.\r\n\r\n"+
			"Change your password by visiting %s\r\n\r\n"+
			"If you did not request this, you can ignore this email.\r\n", url)
	return m.send(to, "Password Reset", body)
}

// send assembles RFC 5322 headers and submits the message.
//
// When no SMTP host is configured (local development), the mail is logged and
// dropped instead of failing account flows.
func (m *Mailer) send(to, subject, body string) error {
	if m.host == "" {
		m.logger.Warn("smtp not configured, dropping outbound email",
			slog.String("to", to),
			slog.String("subject", subject),
		)
		return nil
	}

	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.from, to, subject, body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	addr := m.host + ":" + m.port

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("email: failed to send %q to %s: %w", subject, to, err)
	}

	m.logger.Info("email_sent",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}
