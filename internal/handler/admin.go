package handler

import (
	"context"
	"errors"
	"net/http"

	"moveasy-api/internal/middleware"
	"moveasy-api/internal/models"
	"moveasy-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AdminHandler handles admin-only requests
type AdminHandler struct {
	service AdminService
}

// AdminService interface for dependency injection
type AdminService interface {
	Check(ctx context.Context, token string) (models.AdminCheck, error)
	ListUsers(ctx context.Context) ([]models.UserProfile, error)
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// Check handles GET /api/admin/check requests
//
// @Summary Whether the caller is an admin
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AdminCheck
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/check [get]
func (h *AdminHandler) Check(c *gin.Context) {
	token, present := middleware.BearerToken(c)
	if !present {
		fail(c, http.StatusUnauthorized, "No authorization header")
		return
	}

	check, err := h.service.Check(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			fail(c, http.StatusUnauthorized, "Invalid token")
		case errors.Is(err, service.ErrAuthNotConfigured):
			log.Error().Err(err).Msg("admin check unavailable")
			fail(c, http.StatusInternalServerError, "Token verification is not configured")
		default:
			log.Error().Err(err).Msg("failed to get user profile")
			fail(c, http.StatusInternalServerError, "Failed to get user profile")
		}
		return
	}

	c.JSON(http.StatusOK, check)
}

// ListUsers handles GET /api/users requests
//
// @Summary All user profiles
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserProfile
// @Failure 500 {object} map[string]interface{}
// @Router /api/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	profiles, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list user profiles")
		fail(c, http.StatusInternalServerError, "Failed to load users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": profiles})
}
