package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trading-platform/auth"
	"trading-platform/models"
)

// LoginHandler обрабатывает вход пользователя
func LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Получаем профиль из БД
	profile, err := models.FindProfileByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// Проверяем пароль
	if !models.CheckPasswordHash(req.Password, profile.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// Заблокированный пользователь не входит
	if profile.Banned {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is banned. Contact support."})
		return
	}

	// Роль берём из таблицы назначений
	role := models.GetUserRole(profile.ID)

	accessToken, refreshToken, err := auth.GenerateTokenPair(cfg, profile.ID, profile.Email, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": gin.H{
			"id":      profile.ID,
			"email":   profile.Email,
			"name":    profile.Name,
			"role":    role,
			"balance": profile.Balance,
		},
	})
}

// RegisterHandler обрабатывает регистрацию: профиль создаётся со стартовым бонусом
func RegisterHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Name     string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Проверяем, не занят ли email
	_, err := models.FindProfileByEmail(req.Email)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	profile, err := models.CreateProfile(req.Email, req.Password, req.Name, cfg.SignupBonus)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Приветственное уведомление
	if err := models.CreateNotification(profile.ID, "Добро пожаловать!",
		"Ваш аккаунт создан. Стартовый бонус уже зачислен на баланс."); err != nil {
		log.Printf("❌ Не удалось создать приветственное уведомление: %v", err)
	}

	accessToken, refreshToken, err := auth.GenerateTokenPair(cfg, profile.ID, profile.Email, "user")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": gin.H{
			"id":      profile.ID,
			"email":   profile.Email,
			"name":    profile.Name,
			"role":    "user",
			"balance": profile.Balance,
		},
	})
}

// RefreshHandler обновляет пару токенов
func RefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, refreshToken, err := auth.RefreshTokens(cfg, req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// ForgotPasswordHandler генерирует токен восстановления и отправляет на почту.
// Ответ одинаковый для существующих и несуществующих адресов.
func ForgotPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := models.FindProfileByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "If the email exists, a recovery token was sent"})
		return
	}

	token := uuid.NewString()
	if err := models.SetRecoveryToken(profile.ID, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recovery token"})
		return
	}

	// Отправляем токен на email (в фоне)
	go func() {
		if err := mailer.SendRecoveryEmail(profile.Email, profile.Name, token); err != nil {
			log.Printf("❌ Не удалось отправить письмо восстановления: %v", err)
		} else {
			log.Printf("✅ Письмо восстановления отправлено на %s", profile.Email)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "If the email exists, a recovery token was sent"})
}

// ResetPasswordHandler сверяет токен восстановления и устанавливает новый пароль
func ResetPasswordHandler(c *gin.Context) {
	var req struct {
		Email         string `json:"email" binding:"required,email"`
		RecoveryToken string `json:"recovery_token" binding:"required"`
		NewPassword   string `json:"new_password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
		return
	}

	_, err := models.FindProfileByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	ok, err := models.ResetPasswordWithToken(req.Email, req.RecoveryToken, req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid recovery token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
