package jobs

import (
	"go.uber.org/zap"

	"trading-platform/models"
)

// runAccrual – ежедневное начисление по активным позициям: 1/7 недельной
// ставки плана от суммы позиции добавляется к накопленной прибыли владельца.
// Само зачисление в баланс делает еженедельный расчёт.
func (s *Scheduler) runAccrual() {
	positions, err := models.GetActiveInvestmentPositions()
	if err != nil {
		s.log.Error("accrual query failed", zap.Error(err))
		return
	}

	accrued := 0
	for _, pos := range positions {
		daily := DailyAccrual(pos.Amount, pos.WeeklyROI)
		if daily <= 0 {
			continue
		}
		if err := models.AddWeeklyProfit(pos.UserID, daily); err != nil {
			s.log.Warn("accrual update failed, skipping position",
				zap.String("user_id", pos.UserID), zap.Error(err))
			continue
		}
		accrued++
	}

	s.log.Info("daily accrual finished",
		zap.Int("positions", len(positions)),
		zap.Int("accrued", accrued),
	)
}

// DailyAccrual – дневная доля недельной доходности позиции.
// roi задаётся в процентах за неделю.
func DailyAccrual(amount, weeklyROI float64) float64 {
	return amount * weeklyROI / 100 / 7
}
