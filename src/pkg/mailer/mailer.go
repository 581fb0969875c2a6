package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/spf13/viper"
)

// Mailer is the outbound email boundary. Delivery is always best-effort,
// callers log failures and move on.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(v *viper.Viper) Mailer {
	return &smtpMailer{
		host:     v.GetString("mail.host"),
		port:     v.GetInt("mail.port"),
		username: v.GetString("mail.username"),
		password: v.GetString("mail.password"),
		from:     v.GetString("mail.from"),
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n" +
		"\r\n" + body + "\r\n")

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}
