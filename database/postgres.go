package database

import (
	"context"
	"fmt"
	"log"
	"trading-platform/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// PgxPool – срез методов pgxpool.Pool, которым пользуются модели.
// В тестах сюда подставляется мок.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var Pool PgxPool

func InitDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var err error
	Pool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := Pool.Ping(context.Background()); err != nil {
		return fmt.Errorf("unable to ping database: %w", err)
	}

	log.Println("✅ Подключение к PostgreSQL установлено")
	if err := createProfilesTables(); err != nil {
		return fmt.Errorf("failed to create profiles tables: %w", err)
	}
	if err := createWalletTables(); err != nil {
		return fmt.Errorf("failed to create wallet tables: %w", err)
	}
	if err := createInvestmentTables(); err != nil {
		return fmt.Errorf("failed to create investment tables: %w", err)
	}
	if err := createNotificationsTable(); err != nil {
		return fmt.Errorf("failed to create notifications table: %w", err)
	}
	if err := createTrackingTables(); err != nil {
		return fmt.Errorf("failed to create tracking tables: %w", err)
	}
	if err := createAdminUser(cfg); err != nil {
		return err
	}
	return nil
}

func CloseDB() {
	if Pool != nil {
		Pool.Close()
		log.Println("🛑 Соединение с PostgreSQL закрыто")
	}
}

func createProfilesTables() error {
	// pgcrypto для gen_random_uuid()
	_, err := Pool.Exec(context.Background(), `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`)
	if err != nil {
		return err
	}

	// Профиль – корневая финансовая запись пользователя
	_, err = Pool.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS profiles (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email VARCHAR(255) UNIQUE NOT NULL,
            password_hash VARCHAR(255) NOT NULL,
            name VARCHAR(100),
            role VARCHAR(20) DEFAULT 'user',
            balance DECIMAL(15,2) NOT NULL DEFAULT 0,
            weekly_profit DECIMAL(15,2) NOT NULL DEFAULT 0,
            active_plan VARCHAR(100),
            banned BOOLEAN DEFAULT false,
            recovery_token VARCHAR(64),
            last_seen_at TIMESTAMP,
            last_seen_page VARCHAR(255),
            last_reminder_at TIMESTAMP,
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email);`)
	if err != nil {
		return err
	}

	// Таблица назначения ролей – источник истины при логине
	_, err = Pool.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS user_roles (
            user_id UUID PRIMARY KEY REFERENCES profiles(id) ON DELETE CASCADE,
            role VARCHAR(20) NOT NULL DEFAULT 'user',
            created_at TIMESTAMP DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	log.Println("✅ Таблицы profiles и user_roles готовы")
	return nil
}

// createWalletTables создаёт таблицы заявок на пополнение/вывод и сохранённых адресов
func createWalletTables() error {
	_, err := Pool.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS deposits (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
            amount DECIMAL(15,2) NOT NULL,
            network VARCHAR(50) NOT NULL,
            address VARCHAR(255) NOT NULL,
            status VARCHAR(20) NOT NULL DEFAULT 'pending',
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS withdrawals (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
            amount DECIMAL(15,2) NOT NULL,
            network VARCHAR(50) NOT NULL,
            address VARCHAR(255) NOT NULL,
            contact_email VARCHAR(255),
            status VARCHAR(20) NOT NULL DEFAULT 'pending',
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	// Сохранённые адреса для вывода
	_, err = Pool.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS user_wallets (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
            network VARCHAR(50) NOT NULL,
            address VARCHAR(255) NOT NULL,
            label VARCHAR(100),
            created_at TIMESTAMP DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	// Индексы для очередей модерации
	_, err = Pool.Exec(context.Background(), `
        CREATE INDEX IF NOT EXISTS idx_deposits_user_id ON deposits(user_id);
        CREATE INDEX IF NOT EXISTS idx_deposits_status ON deposits(status);
        CREATE INDEX IF NOT EXISTS idx_withdrawals_user_id ON withdrawals(user_id);
        CREATE INDEX IF NOT EXISTS idx_withdrawals_status ON withdrawals(status);
        CREATE INDEX IF NOT EXISTS idx_user_wallets_user_id ON user_wallets(user_id);
    `)
	if err != nil {
		return err
	}

	log.Println("✅ Таблицы кошелька готовы")
	return nil
}

// createInvestmentTables создаёт таблицы планов и позиций
func createInvestmentTables() error {
	_, err := Pool.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS investment_plans (
            id SERIAL PRIMARY KEY,
            name VARCHAR(100) NOT NULL,
            code VARCHAR(50) UNIQUE NOT NULL,
            description TEXT,
            min_amount DECIMAL(15,2) NOT NULL,
            max_amount DECIMAL(15,2) NOT NULL,
            weekly_roi DECIMAL(5,2) NOT NULL,
            duration_weeks INTEGER DEFAULT 4,
            is_active BOOLEAN DEFAULT true,
            sort_order INTEGER DEFAULT 0,
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS investments (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
            plan_id INTEGER NOT NULL REFERENCES investment_plans(id),
            plan_name VARCHAR(100) NOT NULL,
            amount DECIMAL(15,2) NOT NULL,
            status VARCHAR(20) NOT NULL DEFAULT 'active',
            created_at TIMESTAMP DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
        CREATE INDEX IF NOT EXISTS idx_investments_user_id ON investments(user_id);
    `)
	if err != nil {
		return err
	}

	// Добавляем базовые планы, если таблица пуста
	var count int
	err = Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM investment_plans`).Scan(&count)
	if err != nil {
		return err
	}
	if count == 0 {
		_, err = Pool.Exec(context.Background(), `
            INSERT INTO investment_plans (name, code, description, min_amount, max_amount, weekly_roi, duration_weeks, sort_order) VALUES
            ('Starter', 'starter', 'Для первых шагов в AI-трейдинге', 50, 999, 2.5, 4, 1),
            ('Silver', 'silver', 'Сбалансированная стратегия', 1000, 4999, 4.0, 6, 2),
            ('Gold', 'gold', 'Агрессивная стратегия с повышенной доходностью', 5000, 19999, 6.5, 8, 3),
            ('Platinum', 'platinum', 'Максимальная доходность для крупных депозитов', 20000, 1000000, 9.0, 12, 4);
        `)
		if err != nil {
			return err
		}
		log.Println("✅ Базовые инвестиционные планы добавлены")
	}

	log.Println("✅ Таблицы инвестиций готовы")
	return nil
}

func createNotificationsTable() error {
	// recipient_id = NULL + is_broadcast = true – уведомление для всех
	_, err := Pool.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS notifications (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            title VARCHAR(255) NOT NULL,
            message TEXT NOT NULL,
            is_broadcast BOOLEAN NOT NULL DEFAULT false,
            recipient_id UUID REFERENCES profiles(id) ON DELETE CASCADE,
            is_read BOOLEAN NOT NULL DEFAULT false,
            created_at TIMESTAMP DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
        CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id);
        CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications(is_read) WHERE is_read = false;
    `)
	if err != nil {
		return err
	}

	log.Println("✅ Таблица notifications готова")
	return nil
}

// createTrackingTables создаёт таблицы журнала посещений и обращений в поддержку
func createTrackingTables() error {
	_, err := Pool.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS visitor_logs (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID REFERENCES profiles(id) ON DELETE SET NULL,
            page VARCHAR(255),
            device VARCHAR(255),
            ip_address VARCHAR(45),
            country VARCHAR(100),
            created_at TIMESTAMP DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS support_messages (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name VARCHAR(100) NOT NULL,
            email VARCHAR(255) NOT NULL,
            message TEXT NOT NULL,
            created_at TIMESTAMP DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = Pool.Exec(context.Background(), `
        CREATE INDEX IF NOT EXISTS idx_visitor_logs_created ON visitor_logs(created_at);
    `)
	if err != nil {
		return err
	}

	log.Println("✅ Таблицы visitor_logs и support_messages готовы")
	return nil
}

// createAdminUser создаёт администратора, если таблица профилей пуста
func createAdminUser(cfg *config.Config) error {
	var count int
	err := Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return err
	}
	if count == 0 {
		hashBytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hash := string(hashBytes)
		var adminID string
		err = Pool.QueryRow(context.Background(), `
            INSERT INTO profiles (email, password_hash, name, role, balance)
            VALUES ('admin@example.com', $1, 'Admin', 'admin', 0)
            RETURNING id
        `, hash).Scan(&adminID)
		if err != nil {
			return err
		}
		_, err = Pool.Exec(context.Background(), `
            INSERT INTO user_roles (user_id, role) VALUES ($1, 'admin')
        `, adminID)
		if err != nil {
			return err
		}
		log.Println("✅ Создан администратор: admin@example.com / admin123")
	}
	return nil
}
