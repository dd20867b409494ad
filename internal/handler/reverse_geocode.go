package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"moveasy-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Reverse handles GET /api/geo/reverse requests
//
// @Summary Reverse geocoding
// @Tags geo
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param lang query string false "Result language" default(en)
// @Success 200 {object} models.GeocodeResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/geo/reverse [get]
func (h *GeoHandler) Reverse(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing lat/lon"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || math.IsNaN(lat) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || math.IsNaN(lon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	lang := strings.TrimSpace(c.DefaultQuery("lang", "en"))

	result, err := h.service.Reverse(c.Request.Context(), lat, lon, lang)
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("reverse geocoding failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
