package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"trading-platform/database"
)

// ==================== API МАРШРУТЫ ====================
func HealthHandler(c *gin.Context) {
	dbStatus := "ok"
	if err := database.Pool.Ping(c.Request.Context()); err != nil {
		dbStatus = "unavailable"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"db":      dbStatus,
		"version": "1.0",
		"time":    time.Now().Unix(),
	})
}
