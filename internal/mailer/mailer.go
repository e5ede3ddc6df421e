package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends transactional email via gomail. All sends are
// best-effort; callers log failures and continue.
type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from, password: password}
}

// Configured reports whether SMTP credentials were provided.
func (m *SMTPMailer) Configured() bool {
	return m.from != "" && m.password != ""
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp sender not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}

func (m *SMTPMailer) SendWelcomeEmail(toEmail, firstName string) error {
	body := fmt.Sprintf("Hi %s,\n\nWelcome to ProRental! Your account is ready.\n", firstName)
	return m.send(toEmail, "Welcome to ProRental", body)
}

func (m *SMTPMailer) SendListingCreatedEmail(toEmail, listingTitle string) error {
	body := fmt.Sprintf("Your listing %q has been created successfully.\n", listingTitle)
	return m.send(toEmail, "New Listing Created", body)
}
