package mail

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

func NewAlertSender(host string, port int, user, password, to string) *AlertSender {
	return &AlertSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     "nao-responda@liguemedicina.com",
		To:       to,
	}
}

// Enabled indica se há SMTP e destinatário configurados.
func (s *AlertSender) Enabled() bool {
	return s != nil && s.Host != "" && s.To != ""
}

// SendAlert manda um e-mail de falha operacional para o time (texto puro).
func (s *AlertSender) SendAlert(subject, body string) error {
	if !s.Enabled() {
		return fmt.Errorf("alerta por e-mail não configurado")
	}

	m := s.newMessage(subject, body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

func (s *AlertSender) newMessage(subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", "[ligue-conversions] "+subject)
	m.SetBody("text/plain", fmt.Sprintf("%s\n\n%s", time.Now().UTC().Format(time.RFC3339), body))
	return m
}
