package jobs

import (
	"fmt"

	"go.uber.org/zap"

	"trading-platform/models"
	"trading-platform/monitoring"
)

// runSettlement – еженедельное зачисление: накопленная прибыль каждого
// профиля переносится в баланс, счётчик обнуляется, пользователь получает
// уведомление. Профили обрабатываются последовательно и независимо: ошибка
// на одном пропускается и не останавливает остальных.
func (s *Scheduler) runSettlement() {
	s.log.Info("weekly settlement started")

	accruals, err := models.GetProfilesWithProfit()
	if err != nil {
		s.log.Error("settlement sweep query failed", zap.Error(err))
		return
	}

	credited := 0
	for _, a := range accruals {
		ok, err := models.CreditWeeklyProfit(a.UserID, a.Amount)
		if err != nil {
			s.log.Warn("settlement credit failed, skipping profile",
				zap.String("user_id", a.UserID), zap.Error(err))
			continue
		}
		if !ok {
			// Прибыль изменилась между выборкой и зачислением
			s.log.Warn("settlement credit skipped, accrual changed",
				zap.String("user_id", a.UserID))
			continue
		}

		credited++
		monitoring.SettlementCredited.Inc()

		msg := fmt.Sprintf("Прибыль за неделю %.2f USD зачислена на ваш баланс.", a.Amount)
		if err := models.CreateNotification(a.UserID, "Еженедельное зачисление", msg); err != nil {
			s.log.Warn("settlement notification failed",
				zap.String("user_id", a.UserID), zap.Error(err))
		}
	}

	s.log.Info("weekly settlement finished",
		zap.Int("eligible", len(accruals)),
		zap.Int("credited", credited),
	)
}
