package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"instala_control/internal/adapter/http/middleware"
	"instala_control/internal/usecase"
	"instala_control/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPeriod = pkg.NewDomainErrorSimple("INVALID_PERIOD", "month must be 1-12 and year positive", http.StatusBadRequest)

// DashboardHandler serves the read-only views: the financial dashboard and
// the schedule calendar.
type DashboardHandler struct {
	usecase usecase.IDashboardUseCase
}

func NewDashboardHandler(uc usecase.IDashboardUseCase) *DashboardHandler {
	return &DashboardHandler{usecase: uc}
}

// Dashboard godoc
// @Summary  Monthly summary, year series, overall totals and today's visits
// @Tags     dashboard
// @Param    month query int false "1-12, defaults to the current month"
// @Param    year  query int false "defaults to the current year"
// @Success  200 {object} usecase.Dashboard
// @Router   /dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	month, err1 := queryInt(c, "month")
	year, err2 := queryInt(c, "year")
	if err1 != nil || err2 != nil {
		abortWith(c, errInvalidPeriod)
		return
	}

	d, err := h.usecase.Dashboard(c.Request.Context(), middleware.UserID(c), time.Month(month), year)
	if err != nil {
		abortWith(c, mapDashboardError(err))
		return
	}
	c.JSON(http.StatusOK, d)
}

// Calendar godoc
// @Summary  Month grid with appointments and the selected day's agenda
// @Tags     dashboard
// @Param    year     query int    false "base year"
// @Param    month    query int    false "base month 1-12"
// @Param    offset   query int    false "months to move from the base"
// @Param    selected query string false "YYYY-MM-DD"
// @Success  200 {object} usecase.CalendarView
// @Router   /schedule/calendar [get]
func (h *DashboardHandler) Calendar(c *gin.Context) {
	year, err1 := queryInt(c, "year")
	month, err2 := queryInt(c, "month")
	offset, err3 := queryInt(c, "offset")
	if err1 != nil || err2 != nil || err3 != nil {
		abortWith(c, errInvalidPeriod)
		return
	}

	view, err := h.usecase.Calendar(c.Request.Context(), middleware.UserID(c), usecase.CalendarRequest{
		Year:     year,
		Month:    time.Month(month),
		Offset:   offset,
		Selected: c.Query("selected"),
	})
	if err != nil {
		abortWith(c, mapDashboardError(err))
		return
	}
	c.JSON(http.StatusOK, view)
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func mapDashboardError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPeriod):
		return errInvalidPeriod
	case errors.Is(err, usecase.ErrInvalidAppointmentDate):
		return pkg.NewDomainError("INVALID_DATE", "selected must be YYYY-MM-DD", err, http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}
