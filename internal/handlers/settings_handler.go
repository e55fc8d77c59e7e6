package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quiz-service/internal/services"
	"github.com/quizdesk/quiz-service/internal/utils"
)

type SettingsHandler struct {
	BaseHandler
	settingsService services.SettingsService
}

func NewSettingsHandler(settingsService services.SettingsService, logger utils.Logger) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler:     NewBaseHandler(logger),
		settingsService: settingsService,
	}
}

type updateSettingsRequest struct {
	AppName string `json:"appName"`
}

// GetSettings returns the application display name
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appName": settings.AppName})
}

// UpdateSettings replaces the application display name
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	h.LogRequest(c, "Updating settings")

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "appName is required"})
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), req.AppName)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appName": settings.AppName})
}
