package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"trading-platform/database"
)

type Withdrawal struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Amount       float64   `json:"amount" db:"amount"`
	Network      string    `json:"network" db:"network"`
	Address      string    `json:"address" db:"address"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	UserEmail    string    `json:"user_email,omitempty" db:"user_email"`
}

func CreateWithdrawal(userID string, amount float64, network, address, contactEmail string) (*Withdrawal, error) {
	var w Withdrawal
	query := `
	INSERT INTO withdrawals (user_id, amount, network, address, contact_email)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, user_id, amount, network, address, contact_email, status, created_at, updated_at
	`
	err := database.Pool.QueryRow(context.Background(), query, userID, amount, network, address, contactEmail).Scan(
		&w.ID, &w.UserID, &w.Amount, &w.Network, &w.Address, &w.ContactEmail, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func GetUserWithdrawals(userID string) ([]Withdrawal, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT id, user_id, amount, network, address, contact_email, status, created_at, updated_at
	FROM withdrawals
	WHERE user_id = $1
	ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []Withdrawal
	for rows.Next() {
		var w Withdrawal
		err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.Network, &w.Address, &w.ContactEmail,
			&w.Status, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, nil
}

// GetWithdrawalsByStatus возвращает очередь модерации для админки
func GetWithdrawalsByStatus(status string) ([]Withdrawal, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT w.id, w.user_id, w.amount, w.network, w.address, w.contact_email, w.status, w.created_at, w.updated_at, p.email
	FROM withdrawals w
	JOIN profiles p ON w.user_id = p.id
	WHERE ($1 = '' OR w.status = $1)
	ORDER BY w.created_at DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []Withdrawal
	for rows.Next() {
		var w Withdrawal
		err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.Network, &w.Address, &w.ContactEmail,
			&w.Status, &w.CreatedAt, &w.UpdatedAt, &w.UserEmail)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, nil
}

// ResolveWithdrawal переводит заявку на вывод в терминальный статус.
// Одобрение списывает сумму с баланса (не ниже нуля) в той же транзакции,
// что и смена статуса. Отклонение баланс не меняет.
func ResolveWithdrawal(id, newStatus string) (*Withdrawal, error) {
	if newStatus != StatusApproved && newStatus != StatusRejected {
		return nil, fmt.Errorf("invalid target status: %s", newStatus)
	}

	ctx := context.Background()
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var w Withdrawal
	err = tx.QueryRow(ctx, `
	UPDATE withdrawals SET status = $1, updated_at = NOW()
	WHERE id = $2 AND status = 'pending'
	RETURNING id, user_id, amount, network, address, contact_email, status, created_at, updated_at
	`, newStatus, id).Scan(
		&w.ID, &w.UserID, &w.Amount, &w.Network, &w.Address, &w.ContactEmail, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if qErr := database.Pool.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM withdrawals WHERE id = $1)`, id).Scan(&exists); qErr == nil {
				if exists {
					return nil, ErrAlreadyResolved
				}
				return nil, ErrTransactionNotFound
			}
		}
		return nil, err
	}

	if newStatus == StatusApproved {
		// Списание с нижней границей в ноль
		_, err = tx.Exec(ctx, `
		UPDATE profiles SET balance = GREATEST(balance - $1, 0), updated_at = NOW() WHERE id = $2
		`, w.Amount, w.UserID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &w, nil
}
