package utils

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"trading-platform/config"
)

// TelegramNotifier шлёт алерты в админский чат: новые заявки, обращения в поддержку
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier возвращает nil, если токен или чат не настроены –
// алерты тогда просто не отправляются
func NewTelegramNotifier(cfg *config.Config) *TelegramNotifier {
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == 0 {
		log.Println("⚠️ Telegram-алерты отключены (нет TELEGRAM_BOT_TOKEN / TELEGRAM_ADMIN_CHAT_ID)")
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Printf("❌ Не удалось подключить Telegram-бота: %v", err)
		return nil
	}
	log.Printf("✅ Telegram-алерты включены: @%s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: cfg.TelegramChatID}
}

func (t *TelegramNotifier) send(text string) {
	if t == nil {
		return
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("❌ Ошибка отправки Telegram-алерта: %v", err)
	}
}

// NotifyNewDeposit – алерт о новой заявке на пополнение
func (t *TelegramNotifier) NotifyNewDeposit(email string, amount float64, network string) {
	t.send(fmt.Sprintf(`💰 <b>Новая заявка на пополнение</b>

Пользователь: %s
Сумма: %.2f USD
Сеть: %s`, email, amount, network))
}

// NotifyNewWithdrawal – алерт о новой заявке на вывод
func (t *TelegramNotifier) NotifyNewWithdrawal(email string, amount float64, network string) {
	t.send(fmt.Sprintf(`📤 <b>Новая заявка на вывод</b>

Пользователь: %s
Сумма: %.2f USD
Сеть: %s`, email, amount, network))
}

// NotifySupportMessage – алерт о новом обращении в поддержку
func (t *TelegramNotifier) NotifySupportMessage(name, email string) {
	t.send(fmt.Sprintf(`📨 <b>Новое обращение в поддержку</b>

От: %s (%s)`, name, email))
}
