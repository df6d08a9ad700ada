package handlers

import (
	"fmt"
	"net/http"

	request "instala_control/internal/adapter/http/dto/request"
	response "instala_control/internal/adapter/http/dto/response"
	"instala_control/internal/adapter/http/middleware"
	"instala_control/internal/usecase"

	"github.com/gin-gonic/gin"
)

// BudgetHandler serves quotes (Orçamentos).
type BudgetHandler struct {
	usecase usecase.IBudgetUseCase
}

func NewBudgetHandler(uc usecase.IBudgetUseCase) *BudgetHandler {
	return &BudgetHandler{usecase: uc}
}

// List godoc
// @Summary  List budgets, newest first
// @Tags     budgets
// @Success  200 {array} response.BudgetResponse
// @Router   /budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	list, err := h.usecase.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		abortWith(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudgets(list))
}

func (h *BudgetHandler) Get(c *gin.Context) {
	b, err := h.usecase.GetByID(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		abortWith(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(b))
}

// Create godoc
// @Summary  Save a new budget; the total is derived from the items
// @Tags     budgets
// @Param    body body request.BudgetRequest true "budget"
// @Success  201 {object} response.BudgetResponse
// @Router   /budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	var payload request.BudgetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}
	b, err := h.usecase.Create(c.Request.Context(), middleware.UserID(c), payload.ToInput())
	if err != nil {
		abortWith(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromBudget(b))
}

// Update godoc
// @Summary  Replace a budget (edit mode)
// @Tags     budgets
// @Param    body body request.BudgetRequest true "budget"
// @Success  200 {object} response.BudgetResponse
// @Router   /budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	var payload request.BudgetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}
	b, err := h.usecase.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), payload.ToInput())
	if err != nil {
		abortWith(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(b))
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		abortWith(c, mapBudgetError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// AddItem godoc
// @Summary  Append a line to a saved budget
// @Tags     budgets
// @Param    body body request.BudgetItemRequest true "item"
// @Success  200 {object} response.BudgetResponse
// @Router   /budgets/{id}/items [post]
func (h *BudgetHandler) AddItem(c *gin.Context) {
	var payload request.BudgetItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidPayload)
		return
	}
	b, err := h.usecase.AddItem(c.Request.Context(), middleware.UserID(c), c.Param("id"), payload.ToInput())
	if err != nil {
		abortWith(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(b))
}

func (h *BudgetHandler) RemoveItem(c *gin.Context) {
	b, err := h.usecase.RemoveItem(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("item_id"))
	if err != nil {
		abortWith(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(b))
}

// NextNumber godoc
// @Summary  Next free sequential budget number
// @Tags     budgets
// @Success  200 {object} response.NextNumberResponse
// @Router   /budgets/next-number [get]
func (h *BudgetHandler) NextNumber(c *gin.Context) {
	n, err := h.usecase.NextNumber(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		abortWith(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.NextNumberResponse{BudgetNumber: n})
}

// AppointmentDraft godoc
// @Summary  Appointment form pre-filled from a budget
// @Tags     budgets
// @Success  200 {object} usecase.AppointmentInput
// @Router   /budgets/{id}/appointment-draft [get]
func (h *BudgetHandler) AppointmentDraft(c *gin.Context) {
	draft, err := h.usecase.AppointmentDraft(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		abortWith(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Document godoc
// @Summary  Printable budget
// @Tags     budgets
// @Produce  application/pdf
// @Router   /budgets/{id}/pdf [get]
func (h *BudgetHandler) Document(c *gin.Context) {
	doc, err := h.usecase.RenderDocument(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		abortWith(c, mapBudgetError(err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
