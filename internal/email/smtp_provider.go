package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config *SMTPConfig) (*SMTPProvider, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", config.Port)
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}, nil
}

func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendVerification(to string, token string) error {
	return p.Send(&Email{To: []string{to}, Subject: subjectVerification, Body: renderVerification(token)})
}

func (p *SMTPProvider) SendVerificationCode(to string, code string) error {
	return p.Send(&Email{To: []string{to}, Subject: subjectVerificationCode, Body: renderVerificationCode(code)})
}

func (p *SMTPProvider) SendPasswordReset(to string, token string) error {
	return p.Send(&Email{To: []string{to}, Subject: subjectPasswordReset, Body: renderPasswordReset(token)})
}

func (p *SMTPProvider) Close() error { return nil }
