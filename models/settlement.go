package models

import (
	"context"

	"trading-platform/database"
)

// ProfitAccrual – профиль с накопленной, но не зачисленной прибылью
type ProfitAccrual struct {
	UserID string
	Amount float64
}

// GetProfilesWithProfit возвращает профили, которым есть что зачислить
func GetProfilesWithProfit() ([]ProfitAccrual, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT id, weekly_profit FROM profiles WHERE weekly_profit > 0
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accruals []ProfitAccrual
	for rows.Next() {
		var a ProfitAccrual
		if err := rows.Scan(&a.UserID, &a.Amount); err != nil {
			return nil, err
		}
		accruals = append(accruals, a)
	}
	return accruals, nil
}

// CreditWeeklyProfit переносит amount из накопленной прибыли в баланс одним
// атомарным UPDATE – условие weekly_profit >= $2 защищает от двойного
// зачисления при гонке с параллельной корректировкой
func CreditWeeklyProfit(userID string, amount float64) (bool, error) {
	tag, err := database.Pool.Exec(context.Background(), `
	UPDATE profiles
	SET balance = balance + $2, weekly_profit = weekly_profit - $2, updated_at = NOW()
	WHERE id = $1 AND weekly_profit >= $2
	`, userID, amount)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetUsersForReminder возвращает пользователей без активных инвестиций,
// которым за последние сутки не отправлялось напоминание
func GetUsersForReminder() ([]string, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT p.id FROM profiles p
	WHERE p.banned = false
	  AND p.role = 'user'
	  AND NOT EXISTS (SELECT 1 FROM investments i WHERE i.user_id = p.id AND i.status = 'active')
	  AND (p.last_reminder_at IS NULL OR p.last_reminder_at < NOW() - INTERVAL '24 hours')
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// StampReminderSent выставляет отметку отправленного напоминания
func StampReminderSent(userID string) error {
	_, err := database.Pool.Exec(context.Background(), `
	UPDATE profiles SET last_reminder_at = NOW() WHERE id = $1
	`, userID)
	return err
}
