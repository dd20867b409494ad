package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"moveasy-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GeoHandler handles geocoding requests
type GeoHandler struct {
	service GeoService
}

// GeoService interface for dependency injection
type GeoService interface {
	Search(ctx context.Context, q string, limit int, lang string) (models.GeocodeResult, error)
	Reverse(ctx context.Context, lat, lon float64, lang string) (models.GeocodeResult, error)
}

// NewGeoHandler creates a new geocode handler
func NewGeoHandler(svc GeoService) *GeoHandler {
	return &GeoHandler{service: svc}
}

// Search handles GET /api/geo/search requests
//
// @Summary Forward geocoding restricted to US results
// @Tags geo
// @Produce json
// @Param q query string true "Free-text address, Chinese or English"
// @Param limit query int false "Maximum candidates (1-10)" default(5)
// @Param lang query string false "Result language" default(en)
// @Success 200 {object} models.GeocodeResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/geo/search [get]
func (h *GeoHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing q"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil {
		limit = 0
	}
	lang := strings.TrimSpace(c.DefaultQuery("lang", "en"))

	result, err := h.service.Search(c.Request.Context(), query, limit, lang)
	if err != nil {
		log.Error().Err(err).Str("q", query).Msg("geocoding failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
