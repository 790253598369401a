package handlers

import (
	"log/slog"
	"net/http"

	"github.com/currconv/currency_conversion_app/internal/core/ports"
	"github.com/currconv/currency_conversion_app/internal/dto"
	"github.com/currconv/currency_conversion_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// preferenceHandler handles HTTP requests for user conversion preferences.
type preferenceHandler struct {
	preferenceService ports.PreferenceSvcFacade
}

func newPreferenceHandler(ps ports.PreferenceSvcFacade) *preferenceHandler {
	return &preferenceHandler{preferenceService: ps}
}

// registerPreferenceRoutes registers routes related to user preferences.
func registerPreferenceRoutes(rg *gin.RouterGroup, preferenceService ports.PreferenceSvcFacade) {
	h := newPreferenceHandler(preferenceService)

	preferences := rg.Group("/preferences")
	{
		preferences.GET("", h.getPreferences)
		preferences.PUT("", h.updatePreferences)
	}
}

// getPreferences godoc
// @Summary Get own preferences
// @Description Returns the authenticated user's conversion preferences, creating defaults on first access
// @Tags preferences
// @Produce  json
// @Success 200 {object} dto.PreferenceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /preferences [get]
func (h *preferenceHandler) getPreferences(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pref, err := h.preferenceService.GetOrCreatePreferences(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get preferences", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPreferenceResponse(pref))
}

// updatePreferences godoc
// @Summary Update own preferences
// @Description Replaces the subscribed currencies and decimal precision atomically
// @Tags preferences
// @Accept  json
// @Produce  json
// @Param   preferences body dto.UpdatePreferenceRequest true "New preferences"
// @Success 200 {object} dto.PreferenceResponse
// @Failure 400 {object} map[string]string "Validation rejection"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Rate provider failure"
// @Security BearerAuth
// @Router /preferences [put]
func (h *preferenceHandler) updatePreferences(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updatePreferences", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	pref, err := h.preferenceService.UpdatePreferences(c.Request.Context(), userID, req)
	if err != nil {
		logger.Warn("Preference update rejected", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPreferenceResponse(pref))
}
