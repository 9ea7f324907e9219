// Package email sends transactional mail over SMTP.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/hugovasko/intern-com-backend/internal/config"
)

type Sender struct {
	cfg *config.Config
}

// NewSender returns nil when no SMTP host is configured; callers treat a
// nil sender as "email disabled".
func NewSender(cfg *config.Config) *Sender {
	if cfg.Email.SMTPHost == "" {
		return nil
	}
	return &Sender{cfg: cfg}
}

func (s *Sender) Send(to, subject, htmlBody string) error {
	if s == nil {
		return nil
	}

	m := gomail.NewMessage()
	from := s.cfg.Email.FromEmail
	if s.cfg.Email.FromName != "" {
		from = m.FormatAddress(s.cfg.Email.FromEmail, s.cfg.Email.FromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		s.cfg.Email.SMTPHost,
		s.cfg.Email.SMTPPort,
		s.cfg.Email.SMTPUsername,
		s.cfg.Email.SMTPPassword,
	)
	return d.DialAndSend(m)
}

// SendWelcome greets a freshly registered user.
func (s *Sender) SendWelcome(to, firstName string) error {
	body := fmt.Sprintf(
		"<h2>Welcome to Intern.com, %s!</h2>"+
			"<p>Your account has been created. Sign in to complete your profile "+
			"and start exploring opportunities.</p>",
		firstName,
	)
	return s.Send(to, "Welcome to Intern.com", body)
}
