package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"moveasy-api/internal/models"
	"moveasy-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// MapHandler serves the map feed
type MapHandler struct {
	service MapService
}

// MapService interface for dependency injection
type MapService interface {
	DataForZoom(ctx context.Context, zoom float64, filters models.MapFilters) (models.MapData, error)
}

// NewMapHandler creates a new map handler
func NewMapHandler(svc MapService) *MapHandler {
	return &MapHandler{service: svc}
}

// Map handles GET /api/map requests
//
// @Summary Areas or buildings for the current map zoom level
// @Tags map
// @Produce json
// @Param zoom query number true "Map zoom level; areas from 14.5 up, buildings below"
// @Param location query string false "Area, borough, city or building name; \"all\" lists everything"
// @Param tags query []string false "Area tags to filter by" collectionFormat(multi)
// @Success 200 {object} models.MapData
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/map [get]
func (h *MapHandler) Map(c *gin.Context) {
	zoomStr := strings.TrimSpace(c.Query("zoom"))
	if zoomStr == "" {
		fail(c, http.StatusBadRequest, "missing zoom")
		return
	}

	zoom, err := strconv.ParseFloat(zoomStr, 64)
	if err != nil || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		fail(c, http.StatusBadRequest, "invalid zoom format")
		return
	}

	filters := models.MapFilters{Location: c.Query("location"), Tags: parseTags(c)}

	data, err := h.service.DataForZoom(c.Request.Context(), zoom, filters)
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Float64("zoom", zoom).Msg("failed to load map data")
		fail(c, http.StatusInternalServerError, "Failed to load map data")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
