package handlers

import (
	"log"

	"trading-platform/config"
	"trading-platform/utils"
)

var (
	cfg      *config.Config
	mailer   *utils.EmailService
	telegram *utils.TelegramNotifier
)

// Init инициализирует обработчики: конфиг, почту, Telegram-алерты
func Init(c *config.Config) {
	cfg = c
	mailer = utils.NewEmailService(c)
	telegram = utils.NewTelegramNotifier(c)
	log.Println("✅ Handlers initialized")
}
