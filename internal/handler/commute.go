package handler

import (
	"context"
	"net/http"

	"moveasy-api/internal/models"

	"github.com/gin-gonic/gin"
)

const maxCommuteDestinations = 50

// CommuteHandler handles travel time requests
type CommuteHandler struct {
	service CommuteService
}

// CommuteService interface for dependency injection
type CommuteService interface {
	GetCommuteTime(ctx context.Context, origin, dest models.Coordinate, mode string) models.CommuteResult
	GetBatchCommuteTimes(ctx context.Context, origin models.Coordinate, dests []models.Coordinate, mode string) []models.CommuteResult
}

// NewCommuteHandler creates a new commute handler
func NewCommuteHandler(svc CommuteService) *CommuteHandler {
	return &CommuteHandler{service: svc}
}

type commuteRequest struct {
	Origin      *models.Coordinate `json:"origin" binding:"required"`
	Destination *models.Coordinate `json:"destination" binding:"required"`
	Mode        string             `json:"mode"`
}

type batchCommuteRequest struct {
	Origin       *models.Coordinate  `json:"origin" binding:"required"`
	Destinations []models.Coordinate `json:"destinations" binding:"required,min=1"`
	Mode         string              `json:"mode"`
}

func validCoordinate(c models.Coordinate) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Commute handles POST /api/commute requests
//
// @Summary Travel time between two points
// @Tags commute
// @Accept json
// @Produce json
// @Param request body commuteRequest true "Origin, destination and mode"
// @Success 200 {object} models.CommuteResult
// @Failure 400 {object} map[string]string
// @Router /api/commute [post]
func (h *CommuteHandler) Commute(c *gin.Context) {
	var req commuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}
	if !validCoordinate(*req.Origin) || !validCoordinate(*req.Destination) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}

	c.JSON(http.StatusOK, h.service.GetCommuteTime(c.Request.Context(), *req.Origin, *req.Destination, req.Mode))
}

// Batch handles POST /api/commute/batch requests
//
// @Summary Travel times from one origin to many destinations
// @Tags commute
// @Accept json
// @Produce json
// @Param request body batchCommuteRequest true "Origin, destinations and mode"
// @Success 200 {array} models.CommuteResult
// @Failure 400 {object} map[string]string
// @Router /api/commute/batch [post]
func (h *CommuteHandler) Batch(c *gin.Context) {
	var req batchCommuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destinations are required"})
		return
	}
	if len(req.Destinations) > maxCommuteDestinations {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many destinations"})
		return
	}
	if !validCoordinate(*req.Origin) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}
	for _, d := range req.Destinations {
		if !validCoordinate(d) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
			return
		}
	}

	c.JSON(http.StatusOK, h.service.GetBatchCommuteTimes(c.Request.Context(), *req.Origin, req.Destinations, req.Mode))
}
