package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"instala_control/internal/adapter/http/handlers/mocks"
	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestPaymentHandler_Charge(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), false)
		r := newTestRouter()
		r.POST("/v1/budgets/:id/payments", h.Charge)

		if w := do(r, http.MethodPost, "/v1/budgets/b1/payments", "{"); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid payload in mock mode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, true)
		r := newTestRouter()
		r.POST("/v1/budgets/:id/payments", h.Charge)

		uc.EXPECT().Charge(gomock.Any(), testUser, "b1", gomock.Any()).Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusAprovado}, nil)

		if w := do(r, http.MethodPost, "/v1/budgets/b1/payments", "{"); w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("usecase mapped error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)
		r := newTestRouter()
		r.POST("/v1/budgets/:id/payments", h.Charge)

		uc.EXPECT().Charge(gomock.Any(), testUser, "b1", gomock.Any()).Return(entities.Payment{}, usecase.ErrPaymentExceedsBalance)

		if w := do(r, http.MethodPost, "/v1/budgets/b1/payments", `{"amount":"99999"}`); w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, false)
		r := newTestRouter()
		r.POST("/v1/budgets/:id/payments", h.Charge)

		now := time.Now().UTC()
		uc.EXPECT().Charge(gomock.Any(), testUser, "b1", gomock.Any()).Return(entities.Payment{
			ID: "pay-1", BudgetID: "b1", Date: now, Status: entities.PaymentStatusAprovado, Amount: decimal.NewFromInt(650),
		}, nil)

		w := do(r, http.MethodPost, "/v1/budgets/b1/payments", `{"mp_payload":{"payment_method_id":"pix","payer":{"email":"x@test.com"}}}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "pay-1" || body["amount"] != "650.00" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	h := NewPaymentHandler(uc, false)
	r := newTestRouter()
	r.GET("/v1/budgets/:id/payments", h.List)

	uc.EXPECT().ListByBudget(gomock.Any(), testUser, "b1").Return([]entities.Payment{{ID: "p1"}, {ID: "p2"}}, nil)
	uc.EXPECT().ListByBudget(gomock.Any(), testUser, "b2").Return(nil, usecase.ErrPaymentGatewayUnauthorized)

	w := do(r, http.MethodGet, "/v1/budgets/b1/payments", "")
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusOK || len(body) != 2 {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/v1/budgets/b2/payments", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
