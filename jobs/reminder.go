package jobs

import (
	"go.uber.org/zap"

	"trading-platform/models"
)

const reminderText = "У вас нет активных инвестиций. Выберите план и позвольте AI-трейдингу работать на вас."

// runReminder – ежедневное напоминание пользователям без активных инвестиций.
// Повторно не отправляется, пока не пройдут сутки с прошлого напоминания.
func (s *Scheduler) runReminder() {
	users, err := models.GetUsersForReminder()
	if err != nil {
		s.log.Error("reminder query failed", zap.Error(err))
		return
	}

	sent := 0
	for _, userID := range users {
		if err := models.CreateNotification(userID, "Начните инвестировать", reminderText); err != nil {
			s.log.Warn("reminder notification failed",
				zap.String("user_id", userID), zap.Error(err))
			continue
		}
		if err := models.StampReminderSent(userID); err != nil {
			s.log.Warn("reminder stamp failed",
				zap.String("user_id", userID), zap.Error(err))
			continue
		}
		sent++
	}

	s.log.Info("daily reminder finished", zap.Int("sent", sent))
}
