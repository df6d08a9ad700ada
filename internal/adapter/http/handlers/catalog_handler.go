package handlers

import (
	"net/http"

	"instala_control/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

// Catalog lists the options offered by the service and appointment forms.
func Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service_types":     entities.ServiceTypes,
		"appointment_types": entities.AppointmentTypes,
		"payment_terms":     entities.DefaultPaymentTerms,
		"validity":          entities.DefaultValidity,
	})
}
