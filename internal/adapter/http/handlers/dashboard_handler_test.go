package handlers

import (
	"net/http"
	"testing"
	"time"

	"instala_control/internal/adapter/http/handlers/mocks"
	"instala_control/internal/domain/calendar"
	"instala_control/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestDashboardHandler_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIDashboardUseCase(ctrl)
	h := NewDashboardHandler(uc)
	r := newTestRouter()
	r.GET("/v1/dashboard", h.Dashboard)

	uc.EXPECT().Dashboard(gomock.Any(), testUser, time.March, 2026).Return(usecase.Dashboard{VisitsToday: 2}, nil)
	uc.EXPECT().Dashboard(gomock.Any(), testUser, time.Month(13), 2026).Return(usecase.Dashboard{}, usecase.ErrInvalidPeriod)

	if w := do(r, http.MethodGet, "/v1/dashboard?month=3&year=2026", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/v1/dashboard?month=13&year=2026", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/v1/dashboard?month=abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDashboardHandler_Calendar(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIDashboardUseCase(ctrl)
	h := NewDashboardHandler(uc)
	r := newTestRouter()
	r.GET("/v1/schedule/calendar", h.Calendar)

	uc.EXPECT().Calendar(gomock.Any(), testUser, usecase.CalendarRequest{Year: 2026, Month: time.October, Offset: -1, Selected: "2026-09-15"}).
		Return(usecase.CalendarView{Cursor: calendar.Cursor{Year: 2026, Month: time.September}}, nil)
	uc.EXPECT().Calendar(gomock.Any(), testUser, gomock.Any()).Return(usecase.CalendarView{}, usecase.ErrInvalidAppointmentDate)

	if w := do(r, http.MethodGet, "/v1/schedule/calendar?year=2026&month=10&offset=-1&selected=2026-09-15", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/v1/schedule/calendar?selected=15/09", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
