package routes

import (
	"instala_control/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addBudgetRoutes(rg *gin.RouterGroup, budgetHandler *handlers.BudgetHandler, paymentHandler *handlers.PaymentHandler) {
	budgets := rg.Group(PathBudgets)
	{
		budgets.GET("", budgetHandler.List)
		budgets.POST("", budgetHandler.Create)
		budgets.GET("/next-number", budgetHandler.NextNumber)
		budgets.GET("/:id", budgetHandler.Get)
		budgets.PUT("/:id", budgetHandler.Update)
		budgets.DELETE("/:id", budgetHandler.Delete)
		budgets.POST("/:id/items", budgetHandler.AddItem)
		budgets.DELETE("/:id/items/:item_id", budgetHandler.RemoveItem)
		budgets.GET("/:id/appointment-draft", budgetHandler.AppointmentDraft)
		budgets.GET("/:id/pdf", budgetHandler.Document)

		// Sinal/pagamentos via Mercado Pago.
		budgets.GET("/:id/payments", paymentHandler.List)
		budgets.POST("/:id/payments", paymentHandler.Charge)
	}
}
