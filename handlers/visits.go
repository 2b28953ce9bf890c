package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"trading-platform/models"
)

// TrackVisitHandler регистрирует посещение страницы: страна по IP
// (best-effort), строка в журнале, отметка last_seen и уведомления админам
func TrackVisitHandler(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		Page   string `json:"page" binding:"required"`
		Device string `json:"device"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ip := c.ClientIP()
	country := lookupCountry(ip)

	if err := models.CreateVisitorLog(req.UserID, req.Page, req.Device, ip, country); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.UserID != "" {
		if err := models.TouchLastSeen(req.UserID, req.Page); err != nil {
			log.Printf("⚠️ Не удалось обновить last_seen: %v", err)
		}
	}

	who := "Гость"
	if req.UserID != "" {
		if profile, err := models.GetProfileByID(req.UserID); err == nil {
			who = profile.Email
		}
	}
	msg := fmt.Sprintf("%s открыл %s (%s, %s)", who, req.Page, country, req.Device)
	if err := models.NotifyAdmins("Визит на платформу", msg); err != nil {
		log.Printf("❌ Не удалось уведомить админов о визите: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// lookupCountry определяет страну по IP через гео-API. Любая ошибка
// молча превращается в пустую страну – визит важнее геометки.
func lookupCountry(ip string) string {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(fmt.Sprintf("%s/%s", cfg.GeoAPIURL, ip))
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var geo struct {
		Country string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return ""
	}
	return geo.Country
}
