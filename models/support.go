package models

import (
	"context"
	"time"

	"trading-platform/database"
)

type SupportMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func CreateSupportMessage(name, email, message string) (*SupportMessage, error) {
	var m SupportMessage
	err := database.Pool.QueryRow(context.Background(), `
	INSERT INTO support_messages (name, email, message)
	VALUES ($1, $2, $3)
	RETURNING id, name, email, message, created_at
	`, name, email, message).Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetSupportMessages возвращает обращения для админки, новые первыми
func GetSupportMessages() ([]SupportMessage, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT id, name, email, message, created_at
	FROM support_messages
	ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []SupportMessage
	for rows.Next() {
		var m SupportMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}
