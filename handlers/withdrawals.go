package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"trading-platform/models"
)

// CreateWithdrawalHandler создаёт заявку на вывод. Минимум и достаточность
// баланса проверяются на сервере до записи.
func CreateWithdrawalHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Amount  float64 `json:"amount" binding:"required,gt=0"`
		Network string  `json:"network" binding:"required"`
		Address string  `json:"address" binding:"required"`
		Email   string  `json:"email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Amount < cfg.MinWithdrawal {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("minimum withdrawal amount is %.0f", cfg.MinWithdrawal),
		})
		return
	}

	profile, err := models.GetProfileByID(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile not found"})
		return
	}
	if req.Amount > profile.Balance {
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
		return
	}

	contactEmail := req.Email
	if contactEmail == "" {
		contactEmail = profile.Email
	}

	withdrawal, err := models.CreateWithdrawal(userID.(string), req.Amount, req.Network, req.Address, contactEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	msg := fmt.Sprintf("Пользователь %s создал заявку на вывод %.2f USD (%s)",
		profile.Email, req.Amount, req.Network)
	if err := models.NotifyAdmins("Новая заявка на вывод", msg); err != nil {
		log.Printf("❌ Не удалось уведомить админов: %v", err)
	}
	go telegram.NotifyNewWithdrawal(profile.Email, req.Amount, req.Network)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"withdrawal": withdrawal,
	})
}

// GetWithdrawalsHandler возвращает заявки текущего пользователя
func GetWithdrawalsHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	withdrawals, err := models.GetUserWithdrawals(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"withdrawals": withdrawals,
	})
}
