package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trading-platform/models"
)

// GetNotificationsHandler возвращает рассылки и адресные уведомления пользователя
func GetNotificationsHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	notifications, err := models.GetUserNotifications(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
	})
}

// GetUnreadCountHandler – счётчик для бейджа. Пересчитывается на каждый
// запрос, никакого фонового состояния.
func GetUnreadCountHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	count, err := models.CountUnread(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"unread":  count,
	})
}

// MarkNotificationsReadHandler помечает все уведомления пользователя
// прочитанными – фронт дёргает его при открытии страницы уведомлений
func MarkNotificationsReadHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	marked, err := models.MarkAllRead(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"marked":  marked,
	})
}

// AdminCreateNotificationHandler – рассылка или адресное сообщение от админа.
// Пустой user_id означает broadcast для всех.
func AdminCreateNotificationHandler(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
		UserID  string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if req.UserID == "" {
		err = models.CreateBroadcast(req.Title, req.Message)
	} else {
		err = models.CreateNotification(req.UserID, req.Title, req.Message)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
