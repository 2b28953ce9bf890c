package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"trading-platform/models"
	"trading-platform/monitoring"
)

// ==================== МОДЕРАЦИЯ ЗАЯВОК ====================

// AdminListDepositsHandler – очередь пополнений (?status=pending|approved|rejected)
func AdminListDepositsHandler(c *gin.Context) {
	deposits, err := models.GetDepositsByStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deposits": deposits})
}

// AdminListWithdrawalsHandler – очередь выводов
func AdminListWithdrawalsHandler(c *gin.Context) {
	withdrawals, err := models.GetWithdrawalsByStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "withdrawals": withdrawals})
}

// AdminResolveDepositHandler одобряет или отклоняет пополнение. Повторное
// решение по той же заявке возвращает 409 и ничего не меняет.
func AdminResolveDepositHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=approved rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deposit, err := models.ResolveDeposit(c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyResolved) {
			c.JSON(http.StatusConflict, gin.H{"error": "deposit already resolved"})
			return
		}
		if errors.Is(err, models.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "deposit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	monitoring.TransactionsResolved.WithLabelValues("deposit", req.Status).Inc()
	notifyTransactionResolved(deposit.UserID, "deposit", req.Status, deposit.Amount)

	c.JSON(http.StatusOK, gin.H{"success": true, "deposit": deposit})
}

// AdminResolveWithdrawalHandler одобряет или отклоняет вывод
func AdminResolveWithdrawalHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=approved rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	withdrawal, err := models.ResolveWithdrawal(c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyResolved) {
			c.JSON(http.StatusConflict, gin.H{"error": "withdrawal already resolved"})
			return
		}
		if errors.Is(err, models.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "withdrawal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	monitoring.TransactionsResolved.WithLabelValues("withdrawal", req.Status).Inc()
	notifyTransactionResolved(withdrawal.UserID, "withdrawal", req.Status, withdrawal.Amount)

	c.JSON(http.StatusOK, gin.H{"success": true, "withdrawal": withdrawal})
}

// notifyTransactionResolved создаёт уведомление владельцу и шлёт письмо (в фоне)
func notifyTransactionResolved(userID, kind, status string, amount float64) {
	var title, kindText string
	if kind == "deposit" {
		kindText = "пополнение"
	} else {
		kindText = "вывод средств"
	}
	var verdict string
	if status == models.StatusApproved {
		title = "Заявка одобрена"
		verdict = "одобрена"
	} else {
		title = "Заявка отклонена"
		verdict = "отклонена"
	}

	msg := fmt.Sprintf("Ваша заявка на %s суммой %.2f USD %s.", kindText, amount, verdict)
	if err := models.CreateNotification(userID, title, msg); err != nil {
		log.Printf("❌ Не удалось создать уведомление о решении: %v", err)
	}

	go func() {
		profile, err := models.GetProfileByID(userID)
		if err != nil {
			return
		}
		if err := mailer.SendTransactionResolved(profile.Email, kind, status, amount); err != nil {
			log.Printf("📧 Письмо о решении не отправлено: %v", err)
		}
	}()
}

// ==================== ПОЛЬЗОВАТЕЛИ ====================

// AdminListUsersHandler возвращает всех пользователей
func AdminListUsersHandler(c *gin.Context) {
	profiles, err := models.GetAllProfiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": profiles})
}

// AdminBanUserHandler включает/выключает блокировку
func AdminBanUserHandler(c *gin.Context) {
	var req struct {
		Banned *bool `json:"banned" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := models.SetBanned(c.Param("id"), *req.Banned); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminAdjustProfitHandler – ручная корректировка накопленной недельной
// прибыли пользователя ("результаты AI-трейдинга")
func AdminAdjustProfitHandler(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := models.AddWeeklyProfit(c.Param("id"), req.Amount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ==================== ОБЗОР ====================

// AdminStatsHandler – статистика для дашборда администратора
func AdminStatsHandler(c *gin.Context) {
	stats, err := models.GetAdminStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// AdminListVisitsHandler – журнал посещений
func AdminListVisitsHandler(c *gin.Context) {
	visits, err := models.GetRecentVisits(100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "visits": visits})
}

// AdminListSupportHandler – входящие обращения в поддержку
func AdminListSupportHandler(c *gin.Context) {
	messages, err := models.GetSupportMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
}
