package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"trading-platform/models"
)

// CreateDepositHandler создаёт заявку на пополнение. Минимальная сумма
// проверяется на сервере, а не только в форме.
func CreateDepositHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Amount  float64 `json:"amount" binding:"required,gt=0"`
		Network string  `json:"network" binding:"required"`
		Address string  `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Amount < cfg.MinDeposit {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("minimum deposit amount is %.0f", cfg.MinDeposit),
		})
		return
	}

	deposit, err := models.CreateDeposit(userID.(string), req.Amount, req.Network, req.Address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Уведомляем админов о новой заявке
	profile, err := models.GetProfileByID(userID.(string))
	if err == nil {
		msg := fmt.Sprintf("Пользователь %s создал заявку на пополнение %.2f USD (%s)",
			profile.Email, req.Amount, req.Network)
		if err := models.NotifyAdmins("Новая заявка на пополнение", msg); err != nil {
			log.Printf("❌ Не удалось уведомить админов: %v", err)
		}
		go telegram.NotifyNewDeposit(profile.Email, req.Amount, req.Network)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deposit": deposit,
	})
}

// GetDepositsHandler возвращает заявки текущего пользователя
func GetDepositsHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	deposits, err := models.GetUserDeposits(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"deposits": deposits,
	})
}
