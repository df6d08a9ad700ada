package handlers

import (
	"log"
	"net/http"

	request "instala_control/internal/adapter/http/dto/request"
	response "instala_control/internal/adapter/http/dto/response"
	"instala_control/internal/adapter/http/middleware"
	"instala_control/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the completed jobs list (Serviços).
type ServiceHandler struct {
	usecase usecase.IServiceUseCase
}

func NewServiceHandler(uc usecase.IServiceUseCase) *ServiceHandler {
	return &ServiceHandler{usecase: uc}
}

// List godoc
// @Summary  List services, newest first
// @Tags     services
// @Param    q query string false "case-insensitive search on client or type"
// @Success  200 {array} response.ServiceResponse
// @Router   /services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	list, err := h.usecase.List(c.Request.Context(), middleware.UserID(c), c.Query("q"))
	if err != nil {
		abortWith(c, mapServiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServices(list))
}

// Get godoc
// @Summary  Get a service
// @Tags     services
// @Success  200 {object} response.ServiceResponse
// @Router   /services/{id} [get]
func (h *ServiceHandler) Get(c *gin.Context) {
	s, err := h.usecase.GetByID(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		abortWith(c, mapServiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromService(s))
}

// Create godoc
// @Summary  Register a service; a future date also books an automatic visit
// @Tags     services
// @Param    body body request.ServiceRequest true "service"
// @Success  201 {object} response.ServiceResponse
// @Router   /services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}

	s, err := h.usecase.Create(c.Request.Context(), middleware.UserID(c), payload.ToInput())
	if err != nil {
		log.Printf("[service][handler] create failed service_id=%s err=%v", s.ID, err)
		abortWith(c, mapServiceError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromService(s))
}

// Update godoc
// @Summary  Replace a service
// @Tags     services
// @Param    body body request.ServiceRequest true "service"
// @Success  200 {object} response.ServiceResponse
// @Router   /services/{id} [put]
func (h *ServiceHandler) Update(c *gin.Context) {
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}

	s, err := h.usecase.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), payload.ToInput())
	if err != nil {
		abortWith(c, mapServiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromService(s))
}

// Delete godoc
// @Summary  Delete a service
// @Tags     services
// @Success  204
// @Router   /services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		abortWith(c, mapServiceError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
