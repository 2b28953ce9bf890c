package models

import (
	"context"
	"trading-platform/database"
)

type Plan struct {
	ID            int     `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Code          string  `json:"code" db:"code"`
	Description   string  `json:"description" db:"description"`
	MinAmount     float64 `json:"min_amount" db:"min_amount"`
	MaxAmount     float64 `json:"max_amount" db:"max_amount"`
	WeeklyROI     float64 `json:"weekly_roi" db:"weekly_roi"`
	DurationWeeks int     `json:"duration_weeks" db:"duration_weeks"`
	IsActive      bool    `json:"is_active" db:"is_active"`
	SortOrder     int     `json:"sort_order" db:"sort_order"`
}

// GetAllActivePlans возвращает все активные планы, отсортированные по порядку
func GetAllActivePlans() ([]Plan, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT id, name, code, description, min_amount, max_amount, weekly_roi, duration_weeks, is_active, sort_order
	FROM investment_plans
	WHERE is_active = true
	ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.MinAmount, &p.MaxAmount,
			&p.WeeklyROI, &p.DurationWeeks, &p.IsActive, &p.SortOrder)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// GetPlanByID получает активный план по ID
func GetPlanByID(id int) (*Plan, error) {
	var p Plan
	err := database.Pool.QueryRow(context.Background(), `
	SELECT id, name, code, description, min_amount, max_amount, weekly_roi, duration_weeks, is_active, sort_order
	FROM investment_plans
	WHERE id = $1 AND is_active = true
	`, id).Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.MinAmount, &p.MaxAmount,
		&p.WeeklyROI, &p.DurationWeeks, &p.IsActive, &p.SortOrder)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAllPlans возвращает ВСЕ планы (не только активные) – для админки
func GetAllPlans() ([]Plan, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT id, name, code, description, min_amount, max_amount, weekly_roi, duration_weeks, is_active, sort_order
	FROM investment_plans
	ORDER BY sort_order ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.MinAmount, &p.MaxAmount,
			&p.WeeklyROI, &p.DurationWeeks, &p.IsActive, &p.SortOrder)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}
