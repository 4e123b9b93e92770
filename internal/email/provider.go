package email

// Email - одно исходящее письмо
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendVerification отправляет письмо подтверждения аккаунта
	SendVerification(to string, token string) error

	// SendVerificationCode отправляет одноразовый код проверки
	SendVerificationCode(to string, code string) error

	// SendPasswordReset отправляет ссылку для сброса пароля
	SendPasswordReset(to string, token string) error

	// Close закрывает соединение с провайдером
	Close() error
}

// MockProvider - заглушка для тестов и development-окружения.
// Письма не отправляются, только запоминаются.
type MockProvider struct {
	Sent []Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(email *Email) error {
	p.Sent = append(p.Sent, *email)
	return nil
}

func (p *MockProvider) SendVerification(to string, token string) error {
	return p.Send(&Email{To: []string{to}, Subject: subjectVerification, Body: renderVerification(token)})
}

func (p *MockProvider) SendVerificationCode(to string, code string) error {
	return p.Send(&Email{To: []string{to}, Subject: subjectVerificationCode, Body: renderVerificationCode(code)})
}

func (p *MockProvider) SendPasswordReset(to string, token string) error {
	return p.Send(&Email{To: []string{to}, Subject: subjectPasswordReset, Body: renderPasswordReset(token)})
}

func (p *MockProvider) Close() error { return nil }
