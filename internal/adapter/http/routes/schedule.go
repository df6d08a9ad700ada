package routes

import (
	"instala_control/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addDashboardRoutes(rg *gin.RouterGroup, h *handlers.DashboardHandler) {
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/schedule/calendar", h.Calendar)
}

func addServiceRoutes(rg *gin.RouterGroup, h *handlers.ServiceHandler) {
	services := rg.Group(PathServices)
	{
		services.GET("", h.List)
		services.POST("", h.Create)
		services.GET("/:id", h.Get)
		services.PUT("/:id", h.Update)
		services.DELETE("/:id", h.Delete)
	}
}

func addAppointmentRoutes(rg *gin.RouterGroup, h *handlers.AppointmentHandler) {
	appointments := rg.Group(PathAppointments)
	{
		appointments.GET("", h.List)
		appointments.POST("", h.Create)
		appointments.GET("/:id", h.Get)
		appointments.DELETE("/:id", h.Delete)
		// Concluir: formulário pré-preenchido e promoção para serviço.
		appointments.GET("/:id/completion", h.CompletionDraft)
		appointments.POST("/:id/complete", h.Complete)
	}
}

func addSettingsRoutes(rg *gin.RouterGroup, h *handlers.SettingsHandler) {
	settings := rg.Group(PathSettings)
	{
		settings.GET("", h.Get)
		settings.PUT("", h.Save)
	}
}
