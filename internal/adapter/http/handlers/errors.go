package handlers

import (
	"errors"
	"net/http"

	"instala_control/internal/domain/quote"
	"instala_control/internal/usecase"
	"instala_control/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errMissingUser    = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing session", http.StatusUnauthorized)
)

func abortWith(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapCommonError covers the errors every resource can return.
func mapCommonError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID):
		return errMissingUser
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapServiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidServiceID),
		errors.Is(err, usecase.ErrInvalidServiceClient),
		errors.Is(err, usecase.ErrInvalidServiceDate),
		errors.Is(err, usecase.ErrInvalidServicePrice),
		errors.Is(err, usecase.ErrInvalidServiceCost),
		errors.Is(err, usecase.ErrInvalidExpense):
		return pkg.NewDomainError("INVALID_SERVICE", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrAutoScheduleFailed):
		return pkg.NewDomainError("AUTO_SCHEDULE_FAILED", "Service saved but the automatic appointment could not be created", err, http.StatusInternalServerError)
	default:
		return mapCommonError(err)
	}
}

func mapAppointmentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidAppointmentID),
		errors.Is(err, usecase.ErrInvalidAppointmentClient),
		errors.Is(err, usecase.ErrInvalidAppointmentDate),
		errors.Is(err, usecase.ErrInvalidAppointmentTime):
		return pkg.NewDomainError("INVALID_APPOINTMENT", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		return pkg.NewDomainErrorSimple("APPOINTMENT_NOT_FOUND", "Appointment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBudgetNotFound):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_FOUND", "Budget not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBudgetLinkFailed):
		return pkg.NewDomainError("BUDGET_LINK_FAILED", "Appointment saved but the budget was not marked as scheduled", err, http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrPromotionIncomplete):
		return pkg.NewDomainError("PROMOTION_INCOMPLETE", "Service saved but the appointment could not be removed", err, http.StatusInternalServerError)
	default:
		return mapServiceError(err)
	}
}

func mapBudgetError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBudgetID),
		errors.Is(err, quote.ErrBlankDescription),
		errors.Is(err, quote.ErrInvalidItemPrice),
		errors.Is(err, quote.ErrInvalidItemQty),
		errors.Is(err, quote.ErrBlankClient),
		errors.Is(err, quote.ErrNoItems):
		return pkg.NewDomainError("INVALID_BUDGET", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, quote.ErrItemNotFound):
		return pkg.NewDomainErrorSimple("BUDGET_ITEM_NOT_FOUND", "Budget item not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBudgetNotFound):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_FOUND", "Budget not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRendererUnavailable):
		return pkg.NewDomainErrorSimple("PDF_UNAVAILABLE", "Document rendering is not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrBudgetRenderFailed):
		return pkg.NewDomainError("PDF_RENDER_FAILED", "Could not render the budget document", err, http.StatusInternalServerError)
	default:
		return mapCommonError(err)
	}
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBudgetID), errors.Is(err, usecase.ErrInvalidPaymentPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPaymentAmount):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_AMOUNT", "Payment amount must be positive", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentExceedsBalance):
		return pkg.NewDomainErrorSimple("PAYMENT_EXCEEDS_BALANCE", "Payment amount exceeds the budget balance", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrBudgetNotFound):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_FOUND", "Budget not found", http.StatusNotFound)
	default:
		return mapCommonError(err)
	}
}
