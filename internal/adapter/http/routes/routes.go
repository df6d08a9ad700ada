package routes

import (
	"log"
	"net/http"

	_ "instala_control/docs" // swag generated
	"instala_control/internal/adapter/http/handlers"
	"instala_control/internal/adapter/http/middleware"
	"instala_control/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	PathServices     = "/services"
	PathAppointments = "/appointments"
	PathBudgets      = "/budgets"
	PathSettings     = "/settings"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Services     *handlers.ServiceHandler
	Appointments *handlers.AppointmentHandler
	Budgets      *handlers.BudgetHandler
	Payments     *handlers.PaymentHandler
	Settings     *handlers.SettingsHandler
	Dashboard    *handlers.DashboardHandler
	Auth         *handlers.AuthHandler
	Stream       *handlers.StreamHandler
}

// NewRouter mounts the public routes and, behind the session middleware,
// every per-user route.
func NewRouter(h Handlers, issuer interfaces.ITokenIssuer) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	v1.GET("/catalog", handlers.Catalog)
	v1.POST("/auth/anonymous", h.Auth.StartAnonymous)

	private := v1.Group("")
	private.Use(middleware.RequireSession(issuer))
	addDashboardRoutes(private, h.Dashboard)
	addServiceRoutes(private, h.Services)
	addAppointmentRoutes(private, h.Appointments)
	addBudgetRoutes(private, h.Budgets, h.Payments)
	addSettingsRoutes(private, h.Settings)

	// EventSource não envia cabeçalhos: token também pela query, só aqui.
	v1.GET("/stream", middleware.RequireStreamSession(issuer), h.Stream.Stream)

	return router
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func setMiddlewares(router *gin.Engine) {
	router.Use(middleware.AccessLog())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
