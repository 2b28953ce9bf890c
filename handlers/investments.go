package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"trading-platform/models"
)

// CreateInvestmentHandler конвертирует баланс в позицию по плану.
// Сумма проверяется против границ плана и баланса на сервере; списание и
// вставка позиции атомарны. balance == amount проходит, balance < amount – нет.
func CreateInvestmentHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		PlanID int     `json:"plan_id" binding:"required"`
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := models.GetPlanByID(req.PlanID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}

	if req.Amount < plan.MinAmount || req.Amount > plan.MaxAmount {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("amount must be between %.0f and %.0f for plan %s",
				plan.MinAmount, plan.MaxAmount, plan.Name),
		})
		return
	}

	investment, err := models.PurchaseInvestment(userID.(string), plan, req.Amount)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientBalance) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := models.CreateNotification(userID.(string), "Инвестиция активирована",
		fmt.Sprintf("План «%s» на сумму %.2f USD активирован. AI-трейдинг запущен.", plan.Name, req.Amount)); err != nil {
		log.Printf("❌ Не удалось создать уведомление об инвестиции: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"investment": investment,
	})
}

// GetInvestmentsHandler возвращает позиции текущего пользователя
func GetInvestmentsHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	investments, err := models.GetUserInvestments(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"investments": investments,
	})
}
