package models

import (
	"context"
	"time"

	"trading-platform/database"
)

type VisitorLog struct {
	ID        string    `json:"id" db:"id"`
	UserID    *string   `json:"user_id,omitempty" db:"user_id"`
	Page      string    `json:"page" db:"page"`
	Device    string    `json:"device" db:"device"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	Country   string    `json:"country" db:"country"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateVisitorLog сохраняет запись о посещении; userID может быть пустым
func CreateVisitorLog(userID, page, device, ip, country string) error {
	var uid *string
	if userID != "" {
		uid = &userID
	}
	_, err := database.Pool.Exec(context.Background(), `
	INSERT INTO visitor_logs (user_id, page, device, ip_address, country)
	VALUES ($1, $2, $3, $4, $5)
	`, uid, page, device, ip, country)
	return err
}

// GetRecentVisits возвращает последние посещения для админки
func GetRecentVisits(limit int) ([]VisitorLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := database.Pool.Query(context.Background(), `
	SELECT id, user_id, page, device, ip_address, country, created_at
	FROM visitor_logs
	ORDER BY created_at DESC
	LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []VisitorLog
	for rows.Next() {
		var v VisitorLog
		err := rows.Scan(&v.ID, &v.UserID, &v.Page, &v.Device, &v.IPAddress, &v.Country, &v.CreatedAt)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, nil
}
