package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIVersion is reported by the info and health routes.
const APIVersion = "1.0.0"

// Info handles GET / and GET /api/ requests
//
// @Summary API banner
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/ [get]
func Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Building Center Backend API",
		"version": APIVersion,
		"status":  "running",
	})
}

// Health handles GET /health requests
//
// @Summary Liveness check
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
