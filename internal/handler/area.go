package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"moveasy-api/internal/models"
	"moveasy-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AreaHandler handles area import and status requests
type AreaHandler struct {
	service   AreaSyncService
	dataFiles []string
}

// AreaSyncService interface for dependency injection
type AreaSyncService interface {
	Sync(ctx context.Context, data []byte, fileType string, truncate bool) (service.SyncResult, error)
	SyncFiles(ctx context.Context, paths []string, truncate bool) (service.SyncResult, error)
	Status(ctx context.Context) (models.AreaStatus, error)
}

// NewAreaHandler creates a new area handler. dataFiles are the server-side GeoJSON
// files read by SyncFromFiles.
func NewAreaHandler(svc AreaSyncService, dataFiles []string) *AreaHandler {
	return &AreaHandler{service: svc, dataFiles: dataFiles}
}

type syncRequest struct {
	JSONData      json.RawMessage `json:"jsonData"`
	FileType      string          `json:"fileType"`
	TruncateFirst *bool           `json:"truncateFirst"`
}

type syncFilesRequest struct {
	TruncateFirst *bool `json:"truncateFirst"`
}

func truncateOrDefault(v *bool) bool {
	return v == nil || *v
}

// SyncFromJSON handles POST /api/areas/sync-from-json requests
//
// @Summary Replace areas from an uploaded NTA or NJ GeoJSON document
// @Tags areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body syncRequest true "GeoJSON payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/areas/sync-from-json [post]
func (h *AreaHandler) SyncFromJSON(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "JSON parsing failed: "+err.Error())
		return
	}
	if len(req.JSONData) == 0 || string(req.JSONData) == "null" {
		fail(c, http.StatusBadRequest, "Missing jsonData in request body")
		return
	}

	truncate := truncateOrDefault(req.TruncateFirst)
	log.Info().Str("file_type", req.FileType).Bool("truncate", truncate).Msg("starting areas sync")

	result, err := h.service.Sync(c.Request.Context(), req.JSONData, req.FileType, truncate)
	if err != nil {
		h.syncError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully synced %d areas", result.AreasCount),
		"data":    result,
	})
}

// SyncFromFiles handles POST /api/areas/sync-from-files requests
//
// @Summary Replace areas from the GeoJSON files shipped with the server
// @Tags areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body syncFilesRequest false "Options"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/areas/sync-from-files [post]
func (h *AreaHandler) SyncFromFiles(c *gin.Context) {
	var req syncFilesRequest
	// an empty body keeps the defaults
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "JSON parsing failed: "+err.Error())
			return
		}
	}

	result, err := h.service.SyncFiles(c.Request.Context(), h.dataFiles, truncateOrDefault(req.TruncateFirst))
	if err != nil {
		if errors.Is(err, service.ErrNoAreas) {
			fail(c, http.StatusBadRequest, "No areas loaded from JSON files")
			return
		}
		h.syncError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully synced %d areas from server files", result.AreasCount),
		"data":    result,
	})
}

// Status handles GET /api/areas/status requests
//
// @Summary Size of the areas table
// @Tags areas
// @Produce json
// @Success 200 {object} models.AreaStatus
// @Router /api/areas/status [get]
func (h *AreaHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("status check failed")
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": status})
}

func (h *AreaHandler) syncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoAreas):
		fail(c, http.StatusBadRequest, "No valid areas found in JSON data")
		return
	case errors.Is(err, service.ErrInvalidArgument):
		fail(c, http.StatusBadRequest, "JSON parsing failed: "+err.Error())
		return
	}
	log.Error().Err(err).Msg("areas sync failed")
	fail(c, http.StatusInternalServerError, err.Error())
}
