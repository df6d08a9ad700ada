package repository

import (
	"context"
	"testing"
	"time"

	"instala_control/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestServiceDynamoRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewServiceDynamoRepository(newFakeDynamo(), "services")
	created := time.Date(2026, 10, 1, 12, 30, 0, 0, time.UTC)

	s := entities.Service{
		ID: "s1", UserID: "u1", Client: "Ana", Type: "Carga de Gás", Date: "2026-10-01",
		Price: decimal.RequireFromString("350.10"), Cost: decimal.RequireFromString("80.05"),
		Expenses:  []entities.Expense{{ID: "e1", Name: "Gás R410", Value: decimal.RequireFromString("80.05")}},
		CreatedAt: created, UpdatedAt: created,
	}
	if _, err := repo.Create(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, s); err == nil {
		t.Fatalf("duplicate create must fail")
	}

	got, err := repo.GetByID(ctx, "u1", "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Price.Equal(s.Price) || !got.Cost.Equal(s.Cost) || len(got.Expenses) != 1 || !got.Expenses[0].Value.Equal(s.Cost) {
		t.Fatalf("money not preserved: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created_at %v", got.CreatedAt)
	}

	if other, _ := repo.GetByID(ctx, "u2", "s1"); other.ID != "" {
		t.Fatalf("records must not leak across users")
	}

	missing, err := repo.Update(ctx, entities.Service{ID: "nope", UserID: "u1"})
	if err != nil || missing.ID != "" {
		t.Fatalf("update of missing record returns zero value, got %+v %v", missing, err)
	}

	list, _ := repo.ListByUser(ctx, "u1")
	if len(list) != 1 {
		t.Fatalf("expected 1 service, got %d", len(list))
	}
	if err := repo.Delete(ctx, "u1", "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := repo.GetByID(ctx, "u1", "s1"); got.ID != "" {
		t.Fatalf("expected deleted")
	}
}

func TestAppointmentDynamoRepository_OptionalPrice(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentDynamoRepository(newFakeDynamo(), "appointments")
	price := decimal.NewFromInt(1200)

	_, _ = repo.Create(ctx, entities.Appointment{ID: "a1", UserID: "u1", Date: "2026-10-20", Time: "08:00", Status: entities.AppointmentStatusScheduled, BudgetID: "b1", Price: &price})
	_, _ = repo.Create(ctx, entities.Appointment{ID: "a2", UserID: "u1", Date: "2026-10-21", Time: "09:00", Status: entities.AppointmentStatusScheduledAuto})

	a1, _ := repo.GetByID(ctx, "u1", "a1")
	if a1.Price == nil || !a1.Price.Equal(price) || a1.BudgetID != "b1" {
		t.Fatalf("unexpected a1 %+v", a1)
	}
	a2, _ := repo.GetByID(ctx, "u1", "a2")
	if a2.Price != nil || a2.Status != entities.AppointmentStatusScheduledAuto {
		t.Fatalf("unexpected a2 %+v", a2)
	}
}

func TestBudgetDynamoRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetDynamoRepository(newFakeDynamo(), "budgets")
	repo.now = func() time.Time { return time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC) }

	b := entities.Budget{
		ID: "b1", UserID: "u1", BudgetNumber: "001",
		ClientData: entities.ClientData{Name: "Condomínio Solar", Address: "Rua A, 10"},
		Items:      []entities.BudgetItem{{ID: "1", Description: "Split 12k", Qty: 2, Price: decimal.NewFromInt(500)}},
		Total:      decimal.NewFromInt(1000),
		Status:     entities.BudgetStatusPending,
	}
	if _, err := repo.Create(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := repo.UpdateStatus(ctx, "u1", "b1", entities.BudgetStatusScheduled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != entities.BudgetStatusScheduled || updated.ClientData.Name != "Condomínio Solar" || !updated.Total.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected budget %+v", updated)
	}
	if updated.UpdatedAt.IsZero() {
		t.Fatalf("updated_at must be set")
	}

	missing, err := repo.UpdateStatus(ctx, "u1", "nope", entities.BudgetStatusScheduled)
	if err != nil || missing.ID != "" {
		t.Fatalf("expected zero value for missing budget, got %+v %v", missing, err)
	}
}

func TestPaymentDynamoRepository_ListByBudget(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentDynamoRepository(newFakeDynamo(), "payments")

	_, _ = repo.Create(ctx, entities.Payment{ID: "p1", UserID: "u1", BudgetID: "b1", Status: entities.PaymentStatusAprovado, Amount: decimal.NewFromInt(500), ProviderPayloadRaw: []byte(`{"id":1}`)})
	_, _ = repo.Create(ctx, entities.Payment{ID: "p2", UserID: "u1", BudgetID: "b2", Amount: decimal.NewFromInt(10)})

	list, err := repo.ListByBudgetID(ctx, "u1", "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != "p1" || string(list[0].ProviderPayloadRaw) != `{"id":1}` {
		t.Fatalf("unexpected payments %+v", list)
	}
}

func TestSettingsDynamoRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsDynamoRepository(newFakeDynamo(), "company_settings")

	empty, err := repo.Get(ctx, "u1")
	if err != nil || empty.UserID != "" {
		t.Fatalf("expected zero settings, got %+v %v", empty, err)
	}
	_, _ = repo.Put(ctx, entities.CompanySettings{UserID: "u1", CompanyName: "Frio Bom", Phone: "+5511999999999"})
	_, _ = repo.Put(ctx, entities.CompanySettings{UserID: "u1", CompanyName: "Frio Bom Ltda"})
	_, _ = repo.Put(ctx, entities.CompanySettings{UserID: "u2", CompanyName: "Outra"})

	got, _ := repo.Get(ctx, "u1")
	if got.CompanyName != "Frio Bom Ltda" || got.Phone != "" {
		t.Fatalf("put must overwrite wholesale, got %+v", got)
	}
	all, _ := repo.List(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(all))
	}
}
