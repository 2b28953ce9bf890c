package models

import (
	"context"
	"trading-platform/database"
)

type AdminStats struct {
	TotalUsers         int64   `json:"total_users"`
	NewUsersToday      int64   `json:"new_users_today"`
	PendingDeposits    int64   `json:"pending_deposits"`
	PendingWithdrawals int64   `json:"pending_withdrawals"`
	ActiveInvestments  int64   `json:"active_investments"`
	TotalDeposited     float64 `json:"total_deposited"`
	TotalWithdrawn     float64 `json:"total_withdrawn"`
	TotalInvested      float64 `json:"total_invested"`
	PopularPlan        string  `json:"popular_plan"`
	PlanCounts         []PlanCount `json:"plan_counts"`
}

type PlanCount struct {
	PlanName string `json:"plan_name"`
	Count    int64  `json:"count"`
}

// GetAdminStats возвращает статистику для дашборда администратора
func GetAdminStats() (*AdminStats, error) {
	stats := &AdminStats{}

	// Общее количество пользователей
	err := database.Pool.QueryRow(context.Background(), `
	SELECT COUNT(*) FROM profiles
	`).Scan(&stats.TotalUsers)
	if err != nil {
		return nil, err
	}

	// Новые пользователи за сегодня
	err = database.Pool.QueryRow(context.Background(), `
	SELECT COUNT(*) FROM profiles
	WHERE created_at::date = CURRENT_DATE
	`).Scan(&stats.NewUsersToday)
	if err != nil {
		return nil, err
	}

	// Очереди модерации
	err = database.Pool.QueryRow(context.Background(), `
	SELECT COUNT(*) FROM deposits WHERE status = 'pending'
	`).Scan(&stats.PendingDeposits)
	if err != nil {
		stats.PendingDeposits = 0
	}
	err = database.Pool.QueryRow(context.Background(), `
	SELECT COUNT(*) FROM withdrawals WHERE status = 'pending'
	`).Scan(&stats.PendingWithdrawals)
	if err != nil {
		stats.PendingWithdrawals = 0
	}

	// Активные позиции
	err = database.Pool.QueryRow(context.Background(), `
	SELECT COUNT(*) FROM investments WHERE status = 'active'
	`).Scan(&stats.ActiveInvestments)
	if err != nil {
		stats.ActiveInvestments = 0
	}

	// Обороты по одобренным заявкам
	err = database.Pool.QueryRow(context.Background(), `
	SELECT COALESCE(SUM(amount), 0) FROM deposits WHERE status = 'approved'
	`).Scan(&stats.TotalDeposited)
	if err != nil {
		stats.TotalDeposited = 0
	}
	err = database.Pool.QueryRow(context.Background(), `
	SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE status = 'approved'
	`).Scan(&stats.TotalWithdrawn)
	if err != nil {
		stats.TotalWithdrawn = 0
	}
	err = database.Pool.QueryRow(context.Background(), `
	SELECT COALESCE(SUM(amount), 0) FROM investments WHERE status = 'active'
	`).Scan(&stats.TotalInvested)
	if err != nil {
		stats.TotalInvested = 0
	}

	// Самый популярный план
	err = database.Pool.QueryRow(context.Background(), `
	SELECT p.name
	FROM investment_plans p
	LEFT JOIN investments i ON p.id = i.plan_id AND i.status = 'active'
	GROUP BY p.id, p.name
	ORDER BY COUNT(i.id) DESC
	LIMIT 1
	`).Scan(&stats.PopularPlan)
	if err != nil {
		stats.PopularPlan = "Нет данных"
	}

	// Распределение позиций по планам
	rows, err := database.Pool.Query(context.Background(), `
	SELECT p.name, COUNT(i.id)
	FROM investment_plans p
	LEFT JOIN investments i ON p.id = i.plan_id AND i.status = 'active'
	GROUP BY p.id, p.name
	ORDER BY COUNT(i.id) DESC
	`)
	if err == nil {
		defer rows.Close()
		var planCounts []PlanCount
		for rows.Next() {
			var pc PlanCount
			err = rows.Scan(&pc.PlanName, &pc.Count)
			if err == nil {
				planCounts = append(planCounts, pc)
			}
		}
		stats.PlanCounts = planCounts
	}

	return stats, nil
}
