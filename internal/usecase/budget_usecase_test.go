package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"instala_control/internal/domain/entities"
	"instala_control/internal/domain/quote"
	mock_interfaces "instala_control/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newBudgetUseCase(repo *mock_interfaces.MockIBudgetRepository, settings *mock_interfaces.MockISettingsRepository, renderer *mock_interfaces.MockIDocumentRenderer) *BudgetUseCase {
	uc := NewBudgetUseCase(repo, nil, nil, nil)
	if settings != nil {
		uc.settingsRepo = settings
	}
	if renderer != nil {
		uc.renderer = renderer
	}
	uc.now = fixedNow
	uc.ids = quote.NewIDSource(fixedNow)
	return uc
}

func TestBudgetUseCase_Create(t *testing.T) {
	in := BudgetInput{
		ClientData: entities.ClientData{Name: " Maria Souza ", Phone: "11 99999-0000"},
		Items: []BudgetItemInput{
			{Description: "Split 12k", Qty: 2, Price: dec("500")},
			{Description: "Instalação", Qty: 0, Price: dec("300")},
		},
	}

	t.Run("builder errors prevent the write", func(t *testing.T) {
		uc := newBudgetUseCase(nil, nil, nil)
		cases := []struct {
			name string
			in   BudgetInput
			want error
		}{
			{"no items", BudgetInput{ClientData: entities.ClientData{Name: "A"}}, quote.ErrNoItems},
			{"blank client", BudgetInput{Items: in.Items}, quote.ErrBlankClient},
			{"zero price", BudgetInput{ClientData: in.ClientData, Items: []BudgetItemInput{{Description: "x", Qty: 1}}}, quote.ErrInvalidItemPrice},
			{"blank description", BudgetInput{ClientData: in.ClientData, Items: []BudgetItemInput{{Qty: 1, Price: dec("1")}}}, quote.ErrBlankDescription},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := uc.Create(context.Background(), "u1", tc.in); !errors.Is(err, tc.want) {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
			})
		}
	})

	t.Run("derives total, number and defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBudgetRepository(ctrl)
		uc := newBudgetUseCase(repo, nil, nil)

		repo.EXPECT().ListByUser(gomock.Any(), "u1").Return([]entities.Budget{{BudgetNumber: "001"}, {BudgetNumber: "007"}, {BudgetNumber: "abc"}}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b entities.Budget) (entities.Budget, error) {
				if !b.Total.Equal(dec("1300")) {
					t.Fatalf("expected total 1300, got %s", b.Total)
				}
				if b.BudgetNumber != "008" || b.Status != entities.BudgetStatusPending {
					t.Fatalf("unexpected budget: %+v", b)
				}
				if b.PaymentTerms != entities.DefaultPaymentTerms || b.Validity != entities.DefaultValidity || b.ServiceType != DefaultBudgetService {
					t.Fatalf("defaults not applied: %+v", b)
				}
				if b.ClientData.Name != "Maria Souza" || b.Items[1].Qty != 1 || b.Items[0].ID == b.Items[1].ID {
					t.Fatalf("unexpected items/client: %+v", b)
				}
				return b, nil
			},
		)

		if _, err := uc.Create(context.Background(), "u1", in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("explicit number is kept", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBudgetRepository(ctrl)
		uc := newBudgetUseCase(repo, nil, nil)

		withNumber := in
		withNumber.BudgetNumber = "120"
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b entities.Budget) (entities.Budget, error) { return b, nil },
		)

		b, err := uc.Create(context.Background(), "u1", withNumber)
		if err != nil || b.BudgetNumber != "120" {
			t.Fatalf("unexpected result %+v %v", b, err)
		}
	})
}

func TestBudgetUseCase_Update(t *testing.T) {
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	existing := entities.Budget{
		ID: "b1", UserID: "u1", BudgetNumber: "004", Status: entities.BudgetStatusScheduled, CreatedAt: created,
		ClientData: entities.ClientData{Name: "Maria"},
		Items:      []entities.BudgetItem{{ID: "1", Description: "Split", Qty: 1, Price: dec("1000")}},
		Total:      dec("1000"),
	}

	t.Run("replace keeps status, number and item ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBudgetRepository(ctrl)
		uc := newBudgetUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(existing, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b entities.Budget) (entities.Budget, error) {
				if b.Status != entities.BudgetStatusScheduled || b.BudgetNumber != "004" || !b.CreatedAt.Equal(created) {
					t.Fatalf("unexpected budget: %+v", b)
				}
				if b.Items[0].ID != "1" || !b.Total.Equal(dec("900")) {
					t.Fatalf("unexpected items: %+v total=%s", b.Items, b.Total)
				}
				return b, nil
			},
		)

		_, err := uc.Update(context.Background(), "u1", "b1", BudgetInput{
			ClientData: entities.ClientData{Name: "Maria"},
			Items:      []BudgetItemInput{{ID: "1", Description: "Split", Qty: 1, Price: dec("900")}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("add item recomputes total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBudgetRepository(ctrl)
		uc := newBudgetUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(existing, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b entities.Budget) (entities.Budget, error) { return b, nil },
		)

		b, err := uc.AddItem(context.Background(), "u1", "b1", BudgetItemInput{Description: "Tubo", Qty: 3, Price: dec("50")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(b.Items) != 2 || !b.Total.Equal(dec("1150")) {
			t.Fatalf("unexpected budget: %+v", b)
		}
		if len(existing.Items) != 1 {
			t.Fatalf("stored budget items must not be aliased")
		}
	})

	t.Run("removing the last item is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBudgetRepository(ctrl)
		uc := newBudgetUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(existing, nil).Times(2)

		if _, err := uc.RemoveItem(context.Background(), "u1", "b1", "1"); !errors.Is(err, quote.ErrNoItems) {
			t.Fatalf("expected ErrNoItems, got %v", err)
		}
		if _, err := uc.RemoveItem(context.Background(), "u1", "b1", "nope"); !errors.Is(err, quote.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestBudgetUseCase_AppointmentDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIBudgetRepository(ctrl)
	uc := newBudgetUseCase(repo, nil, nil)

	repo.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(entities.Budget{
		ID: "b1", UserID: "u1", BudgetNumber: "012", Total: dec("1300"),
		ClientData: entities.ClientData{Name: "Maria", Address: "Rua A, 10"},
	}, nil)

	d, err := uc.AppointmentDraft(context.Background(), "u1", "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Type != BudgetAppointmentType || d.Client != "Maria" || d.Address != "Rua A, 10" || d.BudgetID != "b1" {
		t.Fatalf("unexpected draft: %+v", d)
	}
	if d.Notes != "Ref. Orçamento #012. R$ 1300.00." || d.Price == nil || !d.Price.Equal(dec("1300")) {
		t.Fatalf("unexpected notes/price: %+v", d)
	}
}

func TestBudgetUseCase_RenderDocument(t *testing.T) {
	budget := entities.Budget{ID: "b1", UserID: "u1", BudgetNumber: "003", ClientData: entities.ClientData{Name: "João  da Silva"}}

	t.Run("renderer missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBudgetRepository(ctrl)
		uc := newBudgetUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(budget, nil)
		if _, err := uc.RenderDocument(context.Background(), "u1", "b1"); !errors.Is(err, ErrRendererUnavailable) {
			t.Fatalf("expected ErrRendererUnavailable, got %v", err)
		}
	})

	t.Run("renders with letterhead defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBudgetRepository(ctrl)
		settings := mock_interfaces.NewMockISettingsRepository(ctrl)
		renderer := mock_interfaces.NewMockIDocumentRenderer(ctrl)
		uc := newBudgetUseCase(repo, settings, renderer)

		repo.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(budget, nil)
		settings.EXPECT().Get(gomock.Any(), "u1").Return(entities.CompanySettings{Phone: "11 4000-0000"}, nil)
		renderer.EXPECT().RenderBudget(gomock.Any(), budget, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.Budget, s entities.CompanySettings) ([]byte, error) {
				if s.CompanyName != DefaultCompanyName || s.Phone != "11 4000-0000" {
					t.Fatalf("unexpected settings: %+v", s)
				}
				return []byte("%PDF"), nil
			},
		)

		doc, err := uc.RenderDocument(context.Background(), "u1", "b1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Filename != "Orcamento_003_João_da_Silva.pdf" || string(doc.Content) != "%PDF" {
			t.Fatalf("unexpected document: %s %q", doc.Filename, doc.Content)
		}
	})

	t.Run("render failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIBudgetRepository(ctrl)
		settings := mock_interfaces.NewMockISettingsRepository(ctrl)
		renderer := mock_interfaces.NewMockIDocumentRenderer(ctrl)
		uc := newBudgetUseCase(repo, settings, renderer)

		repo.EXPECT().GetByID(gomock.Any(), "u1", "b1").Return(budget, nil)
		settings.EXPECT().Get(gomock.Any(), "u1").Return(entities.CompanySettings{}, nil)
		renderer.EXPECT().RenderBudget(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("font"))

		if _, err := uc.RenderDocument(context.Background(), "u1", "b1"); !errors.Is(err, ErrBudgetRenderFailed) {
			t.Fatalf("expected ErrBudgetRenderFailed, got %v", err)
		}
	})
}

func TestBudgetFilename(t *testing.T) {
	if got := BudgetFilename(entities.Budget{}); got != "Orcamento_Novo_Cliente.pdf" {
		t.Fatalf("unexpected filename %s", got)
	}
}
