package handlers

import (
	"net/http"
	"trading-platform/models"

	"github.com/gin-gonic/gin"
)

// GetPlansHandler возвращает список активных инвестиционных планов (API)
func GetPlansHandler(c *gin.Context) {
	plans, err := models.GetAllActivePlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plans":   plans,
	})
}

// AdminListPlansHandler возвращает все планы, включая выключенные
func AdminListPlansHandler(c *gin.Context) {
	plans, err := models.GetAllPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plans":   plans,
	})
}
