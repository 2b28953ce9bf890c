package models

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"trading-platform/database"
)

// Profile – корневая финансовая запись пользователя: баланс, накопленная
// недельная прибыль, активный план, флаг блокировки.
type Profile struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Password     string     `json:"-" db:"password_hash"`
	Name         string     `json:"name" db:"name"`
	Role         string     `json:"role" db:"role"`
	Balance      float64    `json:"balance" db:"balance"`
	WeeklyProfit float64    `json:"weekly_profit" db:"weekly_profit"`
	ActivePlan   *string    `json:"active_plan" db:"active_plan"`
	Banned       bool       `json:"banned" db:"banned"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty" db:"last_seen_at"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func FindProfileByEmail(email string) (*Profile, error) {
	var p Profile
	query := `SELECT id, email, password_hash, name, role, balance, weekly_profit, active_plan, banned, created_at, updated_at
	  FROM profiles WHERE email = $1`
	err := database.Pool.QueryRow(context.Background(), query, email).Scan(
		&p.ID, &p.Email, &p.Password, &p.Name, &p.Role, &p.Balance,
		&p.WeeklyProfit, &p.ActivePlan, &p.Banned, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProfile создаёт профиль со стартовым бонусом на балансе
func CreateProfile(email, password, name string, signupBonus float64) (*Profile, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	var p Profile
	query := `INSERT INTO profiles (email, password_hash, name, role, balance)
	  VALUES ($1, $2, $3, 'user', $4)
	  RETURNING id, email, name, role, balance, weekly_profit, banned, created_at, updated_at`
	err = database.Pool.QueryRow(context.Background(), query, email, hash, name, signupBonus).Scan(
		&p.ID, &p.Email, &p.Name, &p.Role, &p.Balance,
		&p.WeeklyProfit, &p.Banned, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func GetProfileByID(id string) (*Profile, error) {
	var p Profile
	query := `SELECT id, email, name, role, balance, weekly_profit, active_plan, banned, created_at, updated_at, last_seen_at
	  FROM profiles WHERE id = $1`
	err := database.Pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Email, &p.Name, &p.Role, &p.Balance, &p.WeeklyProfit,
		&p.ActivePlan, &p.Banned, &p.CreatedAt, &p.UpdatedAt, &p.LastSeenAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetUserRole возвращает роль из таблицы назначений; если записи нет – 'user'
func GetUserRole(userID string) string {
	var role string
	err := database.Pool.QueryRow(context.Background(),
		`SELECT role FROM user_roles WHERE user_id = $1`, userID).Scan(&role)
	if err != nil {
		return "user"
	}
	return role
}

// UpdateProfile обновляет имя и email пользователя
func UpdateProfile(id, name, email string) error {
	query := `UPDATE profiles SET name = $1, email = $2, updated_at = NOW() WHERE id = $3`
	_, err := database.Pool.Exec(context.Background(), query, name, email, id)
	return err
}

// UpdatePassword обновляет пароль пользователя
func UpdatePassword(id, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	query := `UPDATE profiles SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	_, err = database.Pool.Exec(context.Background(), query, hash, id)
	return err
}

// SetRecoveryToken сохраняет токен восстановления пароля
func SetRecoveryToken(id, token string) error {
	_, err := database.Pool.Exec(context.Background(),
		`UPDATE profiles SET recovery_token = $1, updated_at = NOW() WHERE id = $2`, token, id)
	return err
}

// ResetPasswordWithToken сверяет токен восстановления и меняет пароль.
// Возвращает false, если токен не совпал.
func ResetPasswordWithToken(email, token, newPassword string) (bool, error) {
	var id string
	var stored *string
	err := database.Pool.QueryRow(context.Background(),
		`SELECT id, recovery_token FROM profiles WHERE email = $1`, email).Scan(&id, &stored)
	if err != nil {
		return false, err
	}
	if stored == nil || *stored == "" || *stored != token {
		return false, nil
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return false, err
	}
	_, err = database.Pool.Exec(context.Background(),
		`UPDATE profiles SET password_hash = $1, recovery_token = NULL, updated_at = NOW() WHERE id = $2`,
		hash, id)
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetBanned включает/выключает блокировку пользователя
func SetBanned(id string, banned bool) error {
	_, err := database.Pool.Exec(context.Background(),
		`UPDATE profiles SET banned = $1, updated_at = NOW() WHERE id = $2`, banned, id)
	return err
}

// AddWeeklyProfit увеличивает накопленную недельную прибыль (ручная корректировка
// из админки или начисление по плану)
func AddWeeklyProfit(id string, amount float64) error {
	_, err := database.Pool.Exec(context.Background(),
		`UPDATE profiles SET weekly_profit = weekly_profit + $1, updated_at = NOW() WHERE id = $2`,
		amount, id)
	return err
}

// TouchLastSeen обновляет отметку последнего визита
func TouchLastSeen(id, page string) error {
	_, err := database.Pool.Exec(context.Background(),
		`UPDATE profiles SET last_seen_at = NOW(), last_seen_page = $1 WHERE id = $2`, page, id)
	return err
}

// GetAdminIDs возвращает идентификаторы всех администраторов
func GetAdminIDs() ([]string, error) {
	rows, err := database.Pool.Query(context.Background(),
		`SELECT user_id FROM user_roles WHERE role = 'admin'`)
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

// GetAllProfiles возвращает всех пользователей для админки
func GetAllProfiles() ([]Profile, error) {
	rows, err := database.Pool.Query(context.Background(), `
	SELECT id, email, name, role, balance, weekly_profit, active_plan, banned, created_at, updated_at, last_seen_at
	FROM profiles
	ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		err := rows.Scan(
			&p.ID, &p.Email, &p.Name, &p.Role, &p.Balance, &p.WeeklyProfit,
			&p.ActivePlan, &p.Banned, &p.CreatedAt, &p.UpdatedAt, &p.LastSeenAt,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
