package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trading-platform/config"
	"trading-platform/database"
	"trading-platform/handlers"
	"trading-platform/jobs"
	"trading-platform/logging"
	"trading-platform/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment")
	} else {
		fmt.Println("✅ .env file loaded and applied")
	}
	cfg := config.Load()

	if err := logging.InitLogger(cfg.Env == "release"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логгера: %v", err)
	}
	defer logging.Logger.Sync()

	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("❌ Ошибка подключения к БД: %v", err)
	}
	defer database.CloseDB()

	handlers.Init(cfg)

	// Фоновые задачи: еженедельный расчёт, начисление, напоминания
	scheduler, err := jobs.NewScheduler(cfg)
	if err != nil {
		log.Fatalf("❌ Ошибка запуска планировщика: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.Env == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.SetTrustedProxies(cfg.TrustedProxies)
	r.Use(middleware.SetupCORS(cfg))

	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ========== МЕТРИКИ ==========
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ========== ГРУППЫ МАРШРУТОВ ==========
	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthHandler)
		api.GET("/plans", handlers.GetPlansHandler)
		api.GET("/market-data", handlers.MarketDataHandler)
		api.POST("/track-visit", handlers.TrackVisitHandler)
		api.POST("/support", handlers.CreateSupportMessageHandler)

		authAPI := api.Group("/auth")
		authAPI.Use(middleware.RateLimit(authLimiter))
		{
			authAPI.POST("/register", handlers.RegisterHandler)
			authAPI.POST("/login", handlers.LoginHandler)
			authAPI.POST("/refresh", handlers.RefreshHandler)
			authAPI.POST("/forgot-password", handlers.ForgotPasswordHandler)
			authAPI.POST("/reset-password", handlers.ResetPasswordHandler)
		}

		// Личный кабинет
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/user/profile", handlers.GetProfileHandler)
			protected.POST("/user/profile", handlers.UpdateProfileHandler)
			protected.POST("/user/password", handlers.UpdatePasswordHandler)

			protected.GET("/deposits", handlers.GetDepositsHandler)
			protected.POST("/deposits", handlers.CreateDepositHandler)
			protected.GET("/withdrawals", handlers.GetWithdrawalsHandler)
			protected.POST("/withdrawals", handlers.CreateWithdrawalHandler)
			protected.GET("/investments", handlers.GetInvestmentsHandler)
			protected.POST("/investments", handlers.CreateInvestmentHandler)

			protected.GET("/wallets", handlers.GetWalletsHandler)
			protected.POST("/wallets", handlers.CreateWalletHandler)
			protected.DELETE("/wallets/:id", handlers.DeleteWalletHandler)

			protected.GET("/notifications", handlers.GetNotificationsHandler)
			protected.GET("/notifications/unread-count", handlers.GetUnreadCountHandler)
			protected.POST("/notifications/mark-read", handlers.MarkNotificationsReadHandler)
		}

		// ========== АДМИНКА ==========
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware(cfg))
		{
			admin.GET("/deposits", handlers.AdminListDepositsHandler)
			admin.POST("/deposits/:id/resolve", handlers.AdminResolveDepositHandler)
			admin.GET("/withdrawals", handlers.AdminListWithdrawalsHandler)
			admin.POST("/withdrawals/:id/resolve", handlers.AdminResolveWithdrawalHandler)

			admin.GET("/plans", handlers.AdminListPlansHandler)

			admin.GET("/users", handlers.AdminListUsersHandler)
			admin.POST("/users/:id/ban", handlers.AdminBanUserHandler)
			admin.POST("/users/:id/profit", handlers.AdminAdjustProfitHandler)

			admin.POST("/notifications", handlers.AdminCreateNotificationHandler)
			admin.GET("/stats", handlers.AdminStatsHandler)
			admin.GET("/visits", handlers.AdminListVisitsHandler)
			admin.GET("/support", handlers.AdminListSupportHandler)
		}
	}

	log.Printf("🚀 NovaTrade API запущен на порту %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Ошибка запуска сервера: %v", err)
	}
}
