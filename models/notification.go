package models

import (
	"context"
	"time"

	"trading-platform/database"
)

type Notification struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Message     string    `json:"message" db:"message"`
	IsBroadcast bool      `json:"is_broadcast" db:"is_broadcast"`
	RecipientID *string   `json:"recipient_id,omitempty" db:"recipient_id"`
	IsRead      bool      `json:"is_read" db:"is_read"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateNotification создаёт адресное уведомление для одного пользователя
func CreateNotification(recipientID, title, message string) error {
	_, err := database.Pool.Exec(context.Background(), `
	INSERT INTO notifications (title, message, is_broadcast, recipient_id)
	VALUES ($1, $2, false, $3)
	`, title, message, recipientID)
	return err
}

// CreateBroadcast создаёт уведомление, видимое всем пользователям
func CreateBroadcast(title, message string) error {
	_, err := database.Pool.Exec(context.Background(), `
	INSERT INTO notifications (title, message, is_broadcast)
	VALUES ($1, $2, true)
	`, title, message)
	return err
}

// NotifyAdmins создаёт адресное уведомление каждому администратору
func NotifyAdmins(title, message string) error {
	admins, err := GetAdminIDs()
	if err != nil {
		return err
	}
	for _, id := range admins {
		if err := CreateNotification(id, title, message); err != nil {
			return err
		}
	}
	return nil
}

// GetUserNotifications возвращает рассылки и адресные уведомления пользователя
func GetUserNotifications(userID string) ([]Notification, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT id, title, message, is_broadcast, recipient_id, is_read, created_at
	FROM notifications
	WHERE is_broadcast = true OR recipient_id = $1
	ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.IsBroadcast, &n.RecipientID, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// CountUnread считает непрочитанные уведомления пользователя. Значение не
// кешируется – бейдж пересчитывается на каждый запрос.
func CountUnread(userID string) (int64, error) {
	var count int64
	err := database.Pool.QueryRow(context.Background(), `
	SELECT COUNT(*) FROM notifications
	WHERE (is_broadcast = true OR recipient_id = $1) AND is_read = false
	`, userID).Scan(&count)
	return count, err
}

// MarkAllRead помечает прочитанными все рассылки и адресные уведомления
// пользователя – вызывается при открытии страницы уведомлений
func MarkAllRead(userID string) (int64, error) {
	tag, err := database.Pool.Exec(context.Background(), `
	UPDATE notifications SET is_read = true
	WHERE (is_broadcast = true OR recipient_id = $1) AND is_read = false
	`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
