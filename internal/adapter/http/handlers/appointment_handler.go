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

// AppointmentHandler serves the schedule (Agenda).
type AppointmentHandler struct {
	usecase usecase.IAppointmentUseCase
}

func NewAppointmentHandler(uc usecase.IAppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{usecase: uc}
}

// List godoc
// @Summary  List appointments in chronological order
// @Tags     appointments
// @Success  200 {array} response.AppointmentResponse
// @Router   /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	list, err := h.usecase.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		abortWith(c, mapAppointmentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAppointments(list))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	a, err := h.usecase.GetByID(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		abortWith(c, mapAppointmentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAppointment(a))
}

// Create godoc
// @Summary  Book a visit; a budget_id marks that budget as scheduled
// @Tags     appointments
// @Param    body body request.AppointmentRequest true "appointment"
// @Success  201 {object} response.AppointmentResponse
// @Router   /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var payload request.AppointmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}

	a, err := h.usecase.Create(c.Request.Context(), middleware.UserID(c), payload.ToInput())
	if err != nil {
		log.Printf("[appointment][handler] create failed appointment_id=%s err=%v", a.ID, err)
		abortWith(c, mapAppointmentError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromAppointment(a))
}

// Delete godoc
// @Summary  Cancel a visit
// @Tags     appointments
// @Success  204
// @Router   /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		abortWith(c, mapAppointmentError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// CompletionDraft godoc
// @Summary  Pre-filled service form for completing a visit
// @Tags     appointments
// @Success  200 {object} usecase.ServiceDraft
// @Router   /appointments/{id}/completion [get]
func (h *AppointmentHandler) CompletionDraft(c *gin.Context) {
	draft, err := h.usecase.CompletionDraft(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		abortWith(c, mapAppointmentError(err))
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Complete godoc
// @Summary  Promote a visit into a service and remove the visit
// @Tags     appointments
// @Param    body body request.ServiceRequest true "service"
// @Success  201 {object} response.ServiceResponse
// @Router   /appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(c *gin.Context) {
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}

	s, err := h.usecase.Complete(c.Request.Context(), middleware.UserID(c), c.Param("id"), payload.ToInput())
	if err != nil {
		log.Printf("[appointment][handler] complete failed appointment_id=%s service_id=%s err=%v", c.Param("id"), s.ID, err)
		abortWith(c, mapAppointmentError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromService(s))
}
