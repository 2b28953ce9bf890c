package models

import (
	"context"
	"time"

	"trading-platform/database"
)

// UserWallet – сохранённый адрес для вывода средств
type UserWallet struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Network   string    `json:"network" db:"network"`
	Address   string    `json:"address" db:"address"`
	Label     string    `json:"label" db:"label"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func CreateUserWallet(userID, network, address, label string) (*UserWallet, error) {
	var w UserWallet
	err := database.Pool.QueryRow(context.Background(), `
	INSERT INTO user_wallets (user_id, network, address, label)
	VALUES ($1, $2, $3, $4)
	RETURNING id, user_id, network, address, label, created_at
	`, userID, network, address, label).Scan(&w.ID, &w.UserID, &w.Network, &w.Address, &w.Label, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func GetUserWallets(userID string) ([]UserWallet, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT id, user_id, network, address, label, created_at
	FROM user_wallets
	WHERE user_id = $1
	ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []UserWallet
	for rows.Next() {
		var w UserWallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.Network, &w.Address, &w.Label, &w.CreatedAt); err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, nil
}

// DeleteUserWallet удаляет адрес; чужой адрес удалить нельзя
func DeleteUserWallet(id, userID string) (bool, error) {
	tag, err := database.Pool.Exec(context.Background(), `
	DELETE FROM user_wallets WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
