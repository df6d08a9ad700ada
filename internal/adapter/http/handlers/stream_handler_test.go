package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"instala_control/internal/domain/entities"
	"instala_control/internal/infrastructure/events"
	"instala_control/internal/store"
	mock_interfaces "instala_control/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestStreamHandler(t *testing.T) {
	t.Run("snapshot then collection event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		services := mock_interfaces.NewMockIServiceRepository(ctrl)
		appts := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		budgets := mock_interfaces.NewMockIBudgetRepository(ctrl)

		services.EXPECT().ListByUser(gomock.Any(), testUser).Return([]entities.Service{{ID: "s1", Client: "Ana"}}, nil)
		appts.EXPECT().ListByUser(gomock.Any(), testUser).Return(nil, nil)
		gomock.InOrder(
			budgets.EXPECT().ListByUser(gomock.Any(), testUser).Return(nil, nil),
			budgets.EXPECT().ListByUser(gomock.Any(), testUser).Return([]entities.Budget{{ID: "b-new"}}, nil),
		)

		feed := events.NewMemoryFeed()
		h := NewStreamHandler(func(userID string) *store.RecordStore {
			return store.New(userID, store.Repositories{Services: services, Appointments: appts, Budgets: budgets}, feed)
		})
		r := newTestRouter()
		r.GET("/v1/stream", h.Stream)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		go func() {
			for feed.Subscribers(testUser) == 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(5 * time.Millisecond):
				}
			}
			_ = feed.Publish(ctx, entities.ChangeEvent{UserID: testUser, Collection: entities.CollectionBudgets})
			time.Sleep(100 * time.Millisecond)
			cancel()
		}()

		req := httptest.NewRequest(http.MethodGet, "/v1/stream", nil).WithContext(ctx)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		body := w.Body.String()
		if w.Header().Get("Content-Type") != "text/event-stream" {
			t.Fatalf("unexpected content type %q", w.Header().Get("Content-Type"))
		}
		if !strings.Contains(body, "event:snapshot") || !strings.Contains(body, `"Ana"`) {
			t.Fatalf("missing snapshot event: %s", body)
		}
		if !strings.Contains(body, "event:budgets") || !strings.Contains(body, "b-new") {
			t.Fatalf("missing budgets event: %s", body)
		}
	})

	t.Run("load failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		services := mock_interfaces.NewMockIServiceRepository(ctrl)
		appts := mock_interfaces.NewMockIAppointmentRepository(ctrl)
		budgets := mock_interfaces.NewMockIBudgetRepository(ctrl)

		services.EXPECT().ListByUser(gomock.Any(), testUser).Return(nil, errors.New("db down"))
		appts.EXPECT().ListByUser(gomock.Any(), testUser).Return(nil, nil).AnyTimes()
		budgets.EXPECT().ListByUser(gomock.Any(), testUser).Return(nil, nil).AnyTimes()

		h := NewStreamHandler(func(userID string) *store.RecordStore {
			return store.New(userID, store.Repositories{Services: services, Appointments: appts, Budgets: budgets}, events.NewMemoryFeed())
		})
		gin.SetMode(gin.TestMode)
		r := newTestRouter()
		r.GET("/v1/stream", h.Stream)

		if w := do(r, http.MethodGet, "/v1/stream", ""); w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
