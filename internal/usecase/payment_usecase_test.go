package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"instala_control/internal/domain/entities"
	mock_interfaces "instala_control/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var chargeBudget = entities.Budget{ID: "b1", UserID: "u1", BudgetNumber: "005", Total: dec("1000"), ClientData: entities.ClientData{Name: "Maria"}}

func TestPaymentUseCase_Charge_Validations(t *testing.T) {
	t.Run("empty budget id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, PaymentOptions{})
		if _, err := uc.Charge(context.Background(), "u1", " ", ChargeInput{Payload: json.RawMessage(`{}`)}); !errors.Is(err, ErrInvalidBudgetID) {
			t.Fatalf("expected ErrInvalidBudgetID, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, PaymentOptions{})
		if _, err := uc.Charge(context.Background(), "u1", "b1", ChargeInput{Payload: json.RawMessage(`{`)}); !errors.Is(err, ErrInvalidPaymentPayload) {
			t.Fatalf("expected ErrInvalidPaymentPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, PaymentOptions{})
		_, err := uc.Charge(context.Background(), "u1", "b1", ChargeInput{Payload: json.RawMessage(`{"payment_method_id":"pix"}`)})
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("budget not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		budgets := mock_interfaces.NewMockIBudgetRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(nil, budgets, gateway, PaymentOptions{})

		budgets.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(entities.Budget{}, nil)

		_, err := uc.Charge(context.Background(), "u1", "b1", ChargeInput{Payload: json.RawMessage(`{"payment_method_id":"pix"}`)})
		if !errors.Is(err, ErrBudgetNotFound) {
			t.Fatalf("expected ErrBudgetNotFound, got %v", err)
		}
	})

	t.Run("missing payer without sandbox email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		budgets := mock_interfaces.NewMockIBudgetRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, budgets, gateway, PaymentOptions{})

		budgets.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(chargeBudget, nil)
		repo.EXPECT().ListByBudgetID(gomock.Any(), "u1", "b1").Return(nil, nil)

		_, err := uc.Charge(context.Background(), "u1", "b1", ChargeInput{Payload: json.RawMessage(`{"payment_method_id":"pix"}`)})
		if !errors.Is(err, ErrInvalidPaymentPayload) {
			t.Fatalf("expected ErrInvalidPaymentPayload, got %v", err)
		}
	})
}

func TestPaymentUseCase_Charge_Amounts(t *testing.T) {
	approved := []entities.Payment{
		{Status: entities.PaymentStatusAprovado, Amount: dec("500")},
		{Status: entities.PaymentStatusNegado, Amount: dec("300")},
	}
	cases := []struct {
		name      string
		requested *decimal.Decimal
		prior     []entities.Payment
		want      error
	}{
		{name: "over balance", requested: ptr(dec("600")), prior: approved, want: ErrPaymentExceedsBalance},
		{name: "negative", requested: ptr(dec("-1")), want: ErrInvalidPaymentAmount},
		{name: "fully paid", prior: []entities.Payment{{Status: entities.PaymentStatusAprovado, Amount: dec("1000")}}, want: ErrPaymentExceedsBalance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
			budgets := mock_interfaces.NewMockIBudgetRepository(ctrl)
			uc := NewPaymentUseCase(repo, budgets, nil, PaymentOptions{Mock: true})

			budgets.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(chargeBudget, nil)
			repo.EXPECT().ListByBudgetID(gomock.Any(), "u1", "b1").Return(tc.prior, nil)

			if _, err := uc.Charge(context.Background(), "u1", "b1", ChargeInput{Amount: tc.requested}); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestPaymentUseCase_Charge_GatewayErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "customer not found", err: errors.New(`{"code":2002}`), want: ErrPaymentGatewayCustomerNotFound},
		{name: "invalid users", err: errors.New(`invalid users involved`), want: ErrPaymentGatewayInvalidUsers},
		{name: "unauthorized", err: errors.New(`{"error":"unauthorized"}`), want: ErrPaymentGatewayUnauthorized},
		{name: "bad request", err: errors.New(`{"status":400}`), want: ErrPaymentGatewayBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
			budgets := mock_interfaces.NewMockIBudgetRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewPaymentUseCase(repo, budgets, gateway, PaymentOptions{})

			budgets.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(chargeBudget, nil)
			repo.EXPECT().ListByBudgetID(gomock.Any(), "u1", "b1").Return(nil, nil)
			gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, tc.err)

			_, err := uc.Charge(context.Background(), "u1", "b1", ChargeInput{Payload: json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`)})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPaymentUseCase_Charge_Success(t *testing.T) {
	cases := []struct {
		name           string
		providerStatus string
		want           entities.PaymentStatus
	}{
		{name: "approved", providerStatus: "approved", want: entities.PaymentStatusAprovado},
		{name: "rejected", providerStatus: "rejected", want: entities.PaymentStatusNegado},
		{name: "pending default", providerStatus: "in_process", want: entities.PaymentStatusPendente},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
			budgets := mock_interfaces.NewMockIBudgetRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewPaymentUseCase(repo, budgets, gateway, PaymentOptions{SandboxPayerEmail: "sandbox@test.com"})
			uc.now = fixedNow

			budgets.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(chargeBudget, nil)
			repo.EXPECT().ListByBudgetID(gomock.Any(), "u1", "b1").Return([]entities.Payment{
				{Status: entities.PaymentStatusAprovado, Amount: dec("400")},
			}, nil)
			gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
					var body map[string]any
					if err := json.Unmarshal(payload, &body); err != nil {
						t.Fatalf("payload should be valid json: %v", err)
					}
					if body["external_reference"] != "b1" || body["description"] != "Orçamento #005 - Maria" {
						t.Fatalf("payload not enriched: %v", body)
					}
					if body["transaction_amount"] != float64(600) {
						t.Fatalf("amount must be the outstanding balance, got %v", body["transaction_amount"])
					}
					payer := body["payer"].(map[string]any)
					if payer["email"] != "sandbox@test.com" {
						t.Fatalf("expected sandbox payer email, got %v", payer)
					}
					return "pay-1", tc.providerStatus, json.RawMessage(`{"id":"pay-1"}`), nil
				},
			)
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, p entities.Payment) (entities.Payment, error) {
					if p.ID != "pay-1" || p.BudgetID != "b1" || p.UserID != "u1" || p.Status != tc.want {
						t.Fatalf("unexpected payment: %+v", p)
					}
					if !p.Amount.Equal(dec("600")) || p.ProviderPayload["id"] != "pay-1" {
						t.Fatalf("unexpected payment payload: %+v", p)
					}
					return p, nil
				},
			)

			if _, err := uc.Charge(context.Background(), "u1", "b1", ChargeInput{Payload: json.RawMessage(`{"payment_method_id":"pix"}`)}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPaymentUseCase_Charge_MockMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	budgets := mock_interfaces.NewMockIBudgetRepository(ctrl)
	uc := NewPaymentUseCase(repo, budgets, nil, PaymentOptions{Mock: true})

	budgets.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(chargeBudget, nil)
	repo.EXPECT().ListByBudgetID(gomock.Any(), "u1", "b1").Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil },
	)

	p, err := uc.Charge(context.Background(), "u1", "b1", ChargeInput{Amount: ptr(dec("500"))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" || p.Status != entities.PaymentStatusAprovado || !p.Amount.Equal(dec("500")) {
		t.Fatalf("unexpected payment: %+v", p)
	}
	if p.ProviderPayload["status_detail"] != "accredited" {
		t.Fatalf("unexpected provider payload: %v", p.ProviderPayload)
	}
}

func TestPaymentUseCase_ListByBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	uc := NewPaymentUseCase(repo, nil, nil, PaymentOptions{})

	repo.EXPECT().ListByBudgetID(gomock.Any(), "u1", "b1").Return([]entities.Payment{{ID: "p1"}}, nil)

	got, err := uc.ListByBudget(context.Background(), "u1", " b1 ")
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected result %+v %v", got, err)
	}
	if _, err := uc.ListByBudget(context.Background(), "u1", ""); !errors.Is(err, ErrInvalidBudgetID) {
		t.Fatalf("expected ErrInvalidBudgetID, got %v", err)
	}
}
