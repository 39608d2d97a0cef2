package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from, adminEmail string) *EmailSender {
	return &EmailSender{
		Host:       host,
		Port:       port,
		User:       user,
		Password:   password,
		From:       from,
		AdminEmail: adminEmail,
	}
}

// SendStepEmail delivers a send_email automation step. The body comes from
// the step config as-is; an empty body falls back to the subject so the mail
// is never blank.
func (s *EmailSender) SendStepEmail(to, subject, body string) error {
	if body == "" {
		body = "<p>" + subject + "</p>"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send step email: %w", err)
	}
	return nil
}

// NotifyAdmin delivers a notify_admin automation step to the configured
// admin inbox.
func (s *EmailSender) NotifyAdmin(message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.AdminEmail)
	m.SetHeader("Subject", "CRM automation notification")
	m.SetBody("text/plain", message)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("notify admin: %w", err)
	}
	return nil
}
