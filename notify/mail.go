package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer : alertes d'échec d'extraction, envoi en clair via un relais interne
type Mailer struct {
	Host string
	Port int
	From string
	To   []string
}

func (m *Mailer) Send(subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + strings.Join(m.To, ", "),
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	return smtp.SendMail(addr, nil, m.From, m.To, []byte(msg))
}
