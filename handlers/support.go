package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trading-platform/models"
)

// CreateSupportMessageHandler принимает обращение с формы поддержки
func CreateSupportMessageHandler(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := models.CreateSupportMessage(req.Name, req.Email, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go telegram.NotifySupportMessage(req.Name, req.Email)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msg,
	})
}
