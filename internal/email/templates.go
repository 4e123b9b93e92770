package email

import "fmt"

const (
	subjectVerification     = "Подтверждение аккаунта CollabHub"
	subjectVerificationCode = "Код подтверждения CollabHub"
	subjectPasswordReset    = "Сброс пароля CollabHub"
)

func renderVerification(token string) string {
	return fmt.Sprintf(
		"Здравствуйте!\n\nДля подтверждения аккаунта перейдите по ссылке:\nhttps://collabhub.app/verify-email?token=%s\n\nЕсли вы не регистрировались, просто проигнорируйте это письмо.",
		token,
	)
}

func renderVerificationCode(code string) string {
	return fmt.Sprintf(
		"Ваш код подтверждения: %s\n\nКод действителен 15 минут. Никому его не сообщайте.",
		code,
	)
}

func renderPasswordReset(token string) string {
	return fmt.Sprintf(
		"Вы запросили сброс пароля.\n\nПерейдите по ссылке, чтобы задать новый пароль:\nhttps://collabhub.app/reset-password?token=%s\n\nСсылка действительна 1 час.",
		token,
	)
}
