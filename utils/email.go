package utils

import (
	"fmt"
	"net/smtp"
	"trading-platform/config"
)

type EmailService struct {
	config *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{config: cfg}
}

// SendEmail отправляет email через SMTP
func (s *EmailService) SendEmail(to, subject, body string) error {
	if s.config.SMTPHost == "" || s.config.SMTPUser == "" {
		return fmt.Errorf("SMTP not configured")
	}

	auth := smtp.PlainAuth("", s.config.SMTPUser, s.config.SMTPPassword, s.config.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=utf-8\r\n"+
		"\r\n"+
		"%s\r\n", to, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.EmailFrom, []string{to}, msg)
}

// SendRecoveryEmail отправляет токен восстановления пароля
func (s *EmailService) SendRecoveryEmail(to, name, token string) error {
	subject := "🔐 Восстановление пароля - NovaTrade"

	body := fmt.Sprintf(`
        <h2>Восстановление пароля</h2>
        <p>Здравствуйте, <strong>%s</strong>!</p>
        <p>Ваш код восстановления:</p>
        <h1 style="font-size: 24px; letter-spacing: 3px; background: #f0f0f0; padding: 10px; text-align: center;">%s</h1>
        <p>Если вы не запрашивали восстановление, проигнорируйте это письмо.</p>
        <p>С уважением,<br>Команда NovaTrade</p>
    `, name, token)

	return s.SendEmail(to, subject, body)
}

// SendTransactionResolved уведомляет пользователя о решении по заявке
func (s *EmailService) SendTransactionResolved(to, kind, status string, amount float64) error {
	var subject, verdict string
	if status == "approved" {
		subject = "✅ Заявка одобрена - NovaTrade"
		verdict = "одобрена"
	} else {
		subject = "❌ Заявка отклонена - NovaTrade"
		verdict = "отклонена"
	}

	var kindText string
	if kind == "deposit" {
		kindText = "пополнение"
	} else {
		kindText = "вывод средств"
	}

	body := fmt.Sprintf(`
        <h2>Решение по заявке</h2>
        <p>Ваша заявка на %s суммой <strong>%.2f USD</strong> %s.</p>
        <p>Актуальный баланс доступен в личном кабинете.</p>
        <p>С уважением,<br>Команда NovaTrade</p>
    `, kindText, amount, verdict)

	return s.SendEmail(to, subject, body)
}
