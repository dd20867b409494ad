package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PublicConfig is the client configuration served to the frontend.
type PublicConfig struct {
	SupabaseURL     string `json:"supabaseUrl"`
	SupabaseAnonKey string `json:"supabaseAnonKey"`
	GoogleClientID  string `json:"googleClientId"`
}

// ConfigHandler serves the frontend's public configuration
type ConfigHandler struct {
	config PublicConfig
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(cfg PublicConfig) *ConfigHandler {
	return &ConfigHandler{config: cfg}
}

// Get handles GET /api/config requests
//
// @Summary Public client configuration
// @Tags config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /api/config [get]
func (h *ConfigHandler) Get(c *gin.Context) {
	if h.config.SupabaseURL == "" || h.config.SupabaseAnonKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing required Supabase configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "config": h.config})
}
