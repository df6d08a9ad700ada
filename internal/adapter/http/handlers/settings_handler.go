package handlers

import (
	"net/http"

	request "instala_control/internal/adapter/http/dto/request"
	response "instala_control/internal/adapter/http/dto/response"
	"instala_control/internal/adapter/http/middleware"
	"instala_control/internal/usecase"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the company letterhead (Configurações).
type SettingsHandler struct {
	usecase usecase.ISettingsUseCase
}

func NewSettingsHandler(uc usecase.ISettingsUseCase) *SettingsHandler {
	return &SettingsHandler{usecase: uc}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.usecase.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		abortWith(c, mapCommonError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromSettings(s))
}

// Save godoc
// @Summary  Overwrite the company settings
// @Tags     settings
// @Param    body body request.SettingsRequest true "settings"
// @Success  200 {object} response.SettingsResponse
// @Router   /settings [put]
func (h *SettingsHandler) Save(c *gin.Context) {
	var payload request.SettingsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}
	s, err := h.usecase.Save(c.Request.Context(), middleware.UserID(c), payload.ToEntity())
	if err != nil {
		abortWith(c, mapCommonError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromSettings(s))
}
