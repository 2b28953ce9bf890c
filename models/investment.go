package models

import (
	"context"
	"errors"
	"time"

	"trading-platform/database"
)

// Статусы позиций. Закрытие планов не реализовано – статус 'closed' зарезервирован.
const (
	InvestmentActive = "active"
	InvestmentClosed = "closed"
)

// ErrInsufficientBalance – на балансе меньше, чем сумма покупки
var ErrInsufficientBalance = errors.New("insufficient balance")

type Investment struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	PlanID    int       `json:"plan_id" db:"plan_id"`
	PlanName  string    `json:"plan_name" db:"plan_name"`
	Amount    float64   `json:"amount" db:"amount"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PurchaseInvestment конвертирует баланс в позицию по плану. Списание,
// установка активного плана и вставка позиции выполняются в одной транзакции.
// Достаточность баланса проверяется условием списания: UPDATE с balance >= amount
// не находит строку при нехватке средств, и покупка откатывается целиком.
// Граница включительно: balance == amount проходит.
func PurchaseInvestment(userID string, plan *Plan, amount float64) (*Investment, error) {
	ctx := context.Background()
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
	UPDATE profiles SET balance = balance - $1, active_plan = $2, updated_at = NOW()
	WHERE id = $3 AND balance >= $1
	`, amount, plan.Name, userID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrInsufficientBalance
	}

	var inv Investment
	err = tx.QueryRow(ctx, `
	INSERT INTO investments (user_id, plan_id, plan_name, amount)
	VALUES ($1, $2, $3, $4)
	RETURNING id, user_id, plan_id, plan_name, amount, status, created_at
	`, userID, plan.ID, plan.Name, amount).Scan(
		&inv.ID, &inv.UserID, &inv.PlanID, &inv.PlanName, &inv.Amount, &inv.Status, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &inv, nil
}

func GetUserInvestments(userID string) ([]Investment, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT id, user_id, plan_id, plan_name, amount, status, created_at
	FROM investments
	WHERE user_id = $1
	ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []Investment
	for rows.Next() {
		var inv Investment
		err := rows.Scan(&inv.ID, &inv.UserID, &inv.PlanID, &inv.PlanName, &inv.Amount, &inv.Status, &inv.CreatedAt)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	return investments, nil
}

// ActiveInvestmentPosition – активная позиция с недельной ставкой плана,
// используется джобой начисления прибыли
type ActiveInvestmentPosition struct {
	UserID    string
	Amount    float64
	WeeklyROI float64
}

// GetActiveInvestmentPositions возвращает все активные позиции со ставкой плана
func GetActiveInvestmentPositions() ([]ActiveInvestmentPosition, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT i.user_id, i.amount, p.weekly_roi
	FROM investments i
	JOIN investment_plans p ON i.plan_id = p.id
	WHERE i.status = 'active'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []ActiveInvestmentPosition
	for rows.Next() {
		var pos ActiveInvestmentPosition
		if err := rows.Scan(&pos.UserID, &pos.Amount, &pos.WeeklyROI); err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}
	return positions, nil
}
