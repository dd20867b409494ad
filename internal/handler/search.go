package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"moveasy-api/internal/models"
	"moveasy-api/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SearchHandler handles area and building search requests
type SearchHandler struct {
	service SearchService
}

// SearchService interface for dependency injection
type SearchService interface {
	PerformSearch(ctx context.Context, rawQuery string, filters models.SearchFilters) models.SearchResult
	GetAreaDetails(ctx context.Context, id int64) (models.AreaDetails, error)
	LocateArea(ctx context.Context, keyword string) (models.LocateResult, bool)
	BuildingCategories(ctx context.Context) []models.BuildingCategory
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// parseTags accepts both repeated and comma separated tags parameters.
func parseTags(c *gin.Context) []string {
	var tags []string
	for _, raw := range c.QueryArray("tags") {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// Search handles GET /api/search requests
//
// @Summary Resolve a query to an area or to matching buildings
// @Tags search
// @Produce json
// @Param q query string true "Area, borough, city or building name"
// @Param tags query []string false "Area tags to filter by" collectionFormat(multi)
// @Success 200 {object} models.SearchResult
// @Router /api/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	filters := models.SearchFilters{Tags: parseTags(c)}

	// a failed search is an empty result with type "error", not an error status
	result := h.service.PerformSearch(c.Request.Context(), c.Query("q"), filters)
	if result.Type == models.SearchResultError {
		log.Warn().Str("query", c.Query("q")).Str("error", result.Error).Msg("search returned an error result")
	}

	c.JSON(http.StatusOK, result)
}

// Locate handles GET /api/areas/locate requests
//
// @Summary Find map coordinates for a keyword
// @Tags areas
// @Produce json
// @Param q query string true "Area name or address"
// @Success 200 {object} models.LocateResult
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/areas/locate [get]
func (h *SearchHandler) Locate(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		fail(c, http.StatusBadRequest, "missing q")
		return
	}

	result, ok := h.service.LocateArea(c.Request.Context(), keyword)
	if !ok {
		fail(c, http.StatusNotFound, "no area or place found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Details handles GET /api/areas/:id/details requests
//
// @Summary Area with its amenities, transport and buildings
// @Tags areas
// @Produce json
// @Param id path int true "Area id"
// @Success 200 {object} models.AreaDetails
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/areas/{id}/details [get]
func (h *SearchHandler) Details(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid area id")
		return
	}

	details, err := h.service.GetAreaDetails(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "area not found")
			return
		}
		log.Error().Err(err).Int64("area_id", id).Msg("failed to load area details")
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": details})
}

// Categories handles GET /api/buildings/categories requests
//
// @Summary Building categories for filter menus
// @Tags buildings
// @Produce json
// @Success 200 {array} models.BuildingCategory
// @Router /api/buildings/categories [get]
func (h *SearchHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.service.BuildingCategories(c.Request.Context())})
}
