package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"trading-platform/database"
)

// Статусы заявок. Переход только pending → approved|rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ErrAlreadyResolved – заявка уже в терминальном статусе, повторное решение запрещено
var ErrAlreadyResolved = errors.New("transaction already resolved")

// ErrTransactionNotFound – заявки с таким id не существует
var ErrTransactionNotFound = errors.New("transaction not found")

type Deposit struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Amount    float64   `json:"amount" db:"amount"`
	Network   string    `json:"network" db:"network"`
	Address   string    `json:"address" db:"address"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	// Присоединённые данные владельца (для админки)
	UserEmail string `json:"user_email,omitempty" db:"user_email"`
}

func CreateDeposit(userID string, amount float64, network, address string) (*Deposit, error) {
	var d Deposit
	query := `
	INSERT INTO deposits (user_id, amount, network, address)
	VALUES ($1, $2, $3, $4)
	RETURNING id, user_id, amount, network, address, status, created_at, updated_at
	`
	err := database.Pool.QueryRow(context.Background(), query, userID, amount, network, address).Scan(
		&d.ID, &d.UserID, &d.Amount, &d.Network, &d.Address, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func GetUserDeposits(userID string) ([]Deposit, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT id, user_id, amount, network, address, status, created_at, updated_at
	FROM deposits
	WHERE user_id = $1
	ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []Deposit
	for rows.Next() {
		var d Deposit
		err := rows.Scan(&d.ID, &d.UserID, &d.Amount, &d.Network, &d.Address, &d.Status, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, d)
	}
	return deposits, nil
}

// GetDepositsByStatus возвращает очередь модерации для админки
func GetDepositsByStatus(status string) ([]Deposit, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT d.id, d.user_id, d.amount, d.network, d.address, d.status, d.created_at, d.updated_at, p.email
	FROM deposits d
	JOIN profiles p ON d.user_id = p.id
	WHERE ($1 = '' OR d.status = $1)
	ORDER BY d.created_at DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []Deposit
	for rows.Next() {
		var d Deposit
		err := rows.Scan(&d.ID, &d.UserID, &d.Amount, &d.Network, &d.Address, &d.Status,
			&d.CreatedAt, &d.UpdatedAt, &d.UserEmail)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, d)
	}
	return deposits, nil
}

// ResolveDeposit переводит заявку в терминальный статус. Смена статуса и
// зачисление на баланс выполняются в одной транзакции: одобрение либо
// применяется целиком, либо не применяется вовсе. Если заявка уже решена –
// ErrAlreadyResolved, баланс не меняется.
func ResolveDeposit(id, newStatus string) (*Deposit, error) {
	if newStatus != StatusApproved && newStatus != StatusRejected {
		return nil, fmt.Errorf("invalid target status: %s", newStatus)
	}

	ctx := context.Background()
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var d Deposit
	err = tx.QueryRow(ctx, `
	UPDATE deposits SET status = $1, updated_at = NOW()
	WHERE id = $2 AND status = 'pending'
	RETURNING id, user_id, amount, network, address, status, created_at, updated_at
	`, newStatus, id).Scan(
		&d.ID, &d.UserID, &d.Amount, &d.Network, &d.Address, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		// Нет строки в статусе pending – заявка не существует или уже решена
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if qErr := database.Pool.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM deposits WHERE id = $1)`, id).Scan(&exists); qErr == nil {
				if exists {
					return nil, ErrAlreadyResolved
				}
				return nil, ErrTransactionNotFound
			}
		}
		return nil, err
	}

	// Отклонение не трогает баланс
	if newStatus == StatusApproved {
		_, err = tx.Exec(ctx, `
		UPDATE profiles SET balance = balance + $1, updated_at = NOW() WHERE id = $2
		`, d.Amount, d.UserID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}
