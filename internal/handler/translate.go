package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"moveasy-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const defaultSourceLanguage = "auto"

// Language is one entry of the language picker.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var supportedLanguages = []Language{
	{Code: "en", Name: "English"},
	{Code: "zh", Name: "简体中文"},
}

// TranslateHandler handles UI translation requests
type TranslateHandler struct {
	service TranslateService
}

// TranslateService interface for dependency injection
type TranslateService interface {
	Text(ctx context.Context, text, source, target string) (string, error)
	Batch(ctx context.Context, texts []string, source, target string) ([]string, error)
	JSON(ctx context.Context, data any, source, target string) (any, error)
	ClearCache(ctx context.Context, lang string) error
}

// NewTranslateHandler creates a new translate handler
func NewTranslateHandler(svc TranslateService) *TranslateHandler {
	return &TranslateHandler{service: svc}
}

type textRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type batchRequest struct {
	Texts  []string `json:"texts"`
	Source string   `json:"source"`
	Target string   `json:"target"`
}

type jsonRequest struct {
	Data   any    `json:"data"`
	Source string `json:"source"`
	Target string `json:"target"`
}

func sourceOrAuto(source string) string {
	if source = strings.TrimSpace(source); source != "" {
		return source
	}
	return defaultSourceLanguage
}

// Languages handles GET /api/translate/languages requests
//
// @Summary Supported UI languages
// @Tags translate
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/translate/languages [get]
func (h *TranslateHandler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "languages": supportedLanguages})
}

// Text handles POST /api/translate/text requests
//
// @Summary Translate one string
// @Tags translate
// @Accept json
// @Produce json
// @Param request body textRequest true "Text to translate"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/translate/text [post]
func (h *TranslateHandler) Text(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" || req.Target == "" {
		fail(c, http.StatusBadRequest, "Missing required parameters: text and target")
		return
	}
	source := sourceOrAuto(req.Source)

	translation, err := h.service.Text(c.Request.Context(), req.Text, source, req.Target)
	if err != nil {
		h.translateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"translation": translation,
		"source":      source,
		"target":      req.Target,
	})
}

// Batch handles POST /api/translate/batch requests
//
// @Summary Translate a list of strings
// @Tags translate
// @Accept json
// @Produce json
// @Param request body batchRequest true "Texts to translate"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/translate/batch [post]
func (h *TranslateHandler) Batch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Texts == nil || req.Target == "" {
		fail(c, http.StatusBadRequest, "Missing required parameters: texts (array) and target")
		return
	}
	source := sourceOrAuto(req.Source)

	translations, err := h.service.Batch(c.Request.Context(), req.Texts, source, req.Target)
	if err != nil {
		h.translateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"translations": translations,
		"source":       source,
		"target":       req.Target,
	})
}

// JSON handles POST /api/translate/json requests
//
// @Summary Translate every string leaf of a JSON document
// @Tags translate
// @Accept json
// @Produce json
// @Param request body jsonRequest true "Document to translate"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/translate/json [post]
func (h *TranslateHandler) JSON(c *gin.Context) {
	var req jsonRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Data == nil || req.Target == "" {
		fail(c, http.StatusBadRequest, "Missing required parameters: data and target")
		return
	}
	source := sourceOrAuto(req.Source)

	translated, err := h.service.JSON(c.Request.Context(), req.Data, source, req.Target)
	if err != nil {
		h.translateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"translatedData": translated,
		"source":         source,
		"target":         req.Target,
	})
}

// ClearCache handles DELETE /api/translate/cache requests
//
// @Summary Drop cached translations
// @Tags translate
// @Produce json
// @Security BearerAuth
// @Param lang query string false "Only clear translations into this language"
// @Success 200 {object} map[string]interface{}
// @Router /api/translate/cache [delete]
func (h *TranslateHandler) ClearCache(c *gin.Context) {
	lang := strings.TrimSpace(c.Query("lang"))
	if err := h.service.ClearCache(c.Request.Context(), lang); err != nil {
		log.Error().Err(err).Str("lang", lang).Msg("failed to clear translation cache")
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	msg := "Translation cache cleared"
	if lang != "" {
		msg = "Translation cache cleared for " + lang
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func (h *TranslateHandler) translateError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidArgument) {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("translation failed")
	fail(c, http.StatusInternalServerError, err.Error())
}
