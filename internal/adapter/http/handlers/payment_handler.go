package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	request "instala_control/internal/adapter/http/dto/request"
	response "instala_control/internal/adapter/http/dto/response"
	"instala_control/internal/adapter/http/middleware"
	"instala_control/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PaymentHandler takes Mercado Pago charges against a budget.
type PaymentHandler struct {
	usecase  usecase.IPaymentUseCase
	mockMode bool
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, mockMode bool) *PaymentHandler {
	return &PaymentHandler{usecase: uc, mockMode: mockMode}
}

// Charge godoc
// @Summary  Charge against a budget (defaults to the open balance)
// @Tags     payments
// @Param    body body request.PaymentCreateRequest false "charge"
// @Success  201 {object} response.PaymentResponse
// @Router   /budgets/{id}/payments [post]
func (h *PaymentHandler) Charge(c *gin.Context) {
	budgetID := c.Param("id")
	log.Printf("[payment][handler] charge start budget_id=%s", budgetID)

	raw, err := c.GetRawData()
	var in usecase.ChargeInput
	if err == nil {
		in, err = request.ParseCharge(raw)
	}
	if err != nil {
		if !h.mockMode {
			log.Printf("[payment][handler] invalid payload budget_id=%s err=%v", budgetID, err)
			abortWith(c, errInvalidPayload)
			return
		}
		log.Printf("[payment][handler] payload invalid in mock mode; fallback to empty payload budget_id=%s err=%v", budgetID, err)
		in = usecase.ChargeInput{Payload: json.RawMessage("{}")}
	}

	created, err := h.usecase.Charge(c.Request.Context(), middleware.UserID(c), budgetID, in)
	if err != nil {
		log.Printf("[payment][handler] charge failed budget_id=%s err=%v", budgetID, err)
		abortWith(c, mapPaymentError(err))
		return
	}
	log.Printf("[payment][handler] charge success budget_id=%s payment_id=%s status=%s", budgetID, created.ID, created.Status)
	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// List godoc
// @Summary  Payments taken against a budget
// @Tags     payments
// @Success  200 {array} response.PaymentResponse
// @Router   /budgets/{id}/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.usecase.ListByBudget(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		abortWith(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}
