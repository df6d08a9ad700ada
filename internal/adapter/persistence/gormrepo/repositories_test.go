package gormrepo

import (
	"context"
	"testing"
	"time"

	"instala_control/internal/domain/entities"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestServiceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewServiceRepository(setupDB(t))
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

	s := entities.Service{
		ID: "s1", UserID: "u1", Client: "Ana", Type: "Limpeza Química", Date: "2026-10-10",
		Price:     decimal.RequireFromString("420.50"),
		Cost:      decimal.RequireFromString("70"),
		Expenses:  []entities.Expense{{ID: "e1", Name: "Produto", Value: decimal.RequireFromString("70")}},
		CreatedAt: now, UpdatedAt: now,
	}
	if _, err := repo.Create(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, "u1", "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Price.Equal(s.Price) || len(got.Expenses) != 1 || got.Expenses[0].Name != "Produto" {
		t.Fatalf("unexpected service %+v", got)
	}

	s.Client = "Ana Paula"
	s.Expenses = nil
	if updated, err := repo.Update(ctx, s); err != nil || updated.Client != "Ana Paula" {
		t.Fatalf("unexpected update %+v %v", updated, err)
	}
	got, _ = repo.GetByID(ctx, "u1", "s1")
	if got.Client != "Ana Paula" || len(got.Expenses) != 0 {
		t.Fatalf("update not persisted: %+v", got)
	}

	if missing, err := repo.Update(ctx, entities.Service{ID: "x", UserID: "u1"}); err != nil || missing.ID != "" {
		t.Fatalf("expected zero value for missing row, got %+v %v", missing, err)
	}
	if other, _ := repo.GetByID(ctx, "u2", "s1"); other.ID != "" {
		t.Fatalf("records must not leak across users")
	}

	if err := repo.Delete(ctx, "u1", "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, _ := repo.ListByUser(ctx, "u1")
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestBudgetRepository_StatusAndItems(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository(setupDB(t))

	b := entities.Budget{
		ID: "b1", UserID: "u1", BudgetNumber: "001",
		ClientData: entities.ClientData{Name: "Condomínio Solar", Phone: "11 9999"},
		Items: []entities.BudgetItem{
			{ID: "1", Description: "Split 12k", Qty: 2, Price: decimal.NewFromInt(500)},
			{ID: "2", Description: "Instalação", Qty: 1, Price: decimal.NewFromInt(300)},
		},
		Total:  decimal.NewFromInt(1300),
		Status: entities.BudgetStatusPending,
	}
	if _, err := repo.Create(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := repo.UpdateStatus(ctx, "u1", "b1", entities.BudgetStatusScheduled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != entities.BudgetStatusScheduled || len(updated.Items) != 2 || updated.ClientData.Name != "Condomínio Solar" {
		t.Fatalf("unexpected budget %+v", updated)
	}
	if !updated.Items[0].Price.Equal(decimal.NewFromInt(500)) || !updated.Total.Equal(decimal.NewFromInt(1300)) {
		t.Fatalf("money not preserved %+v", updated)
	}

	if missing, err := repo.UpdateStatus(ctx, "u1", "nope", entities.BudgetStatusScheduled); err != nil || missing.ID != "" {
		t.Fatalf("expected zero value, got %+v %v", missing, err)
	}
}

func TestAppointmentSettingsPayments(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	appts := NewAppointmentRepository(db)
	settings := NewSettingsRepository(db)
	payments := NewPaymentRepository(db)

	price := decimal.NewFromInt(900)
	_, _ = appts.Create(ctx, entities.Appointment{ID: "a1", UserID: "u1", Client: "Bia", Date: "2026-10-20", Time: "08:00", Status: entities.AppointmentStatusScheduled, Price: &price})
	_, _ = appts.Create(ctx, entities.Appointment{ID: "a2", UserID: "u1", Client: "Caio", Date: "2026-10-21", Time: "10:00", Status: entities.AppointmentStatusScheduledAuto})
	list, err := appts.ListByUser(ctx, "u1")
	if err != nil || len(list) != 2 {
		t.Fatalf("unexpected appointments %+v %v", list, err)
	}
	a1, _ := appts.GetByID(ctx, "u1", "a1")
	if a1.Price == nil || !a1.Price.Equal(price) {
		t.Fatalf("unexpected price %+v", a1.Price)
	}

	if s, err := settings.Get(ctx, "u1"); err != nil || s.UserID != "" {
		t.Fatalf("expected empty settings, got %+v %v", s, err)
	}
	_, _ = settings.Put(ctx, entities.CompanySettings{UserID: "u1", CompanyName: "Frio Bom", Phone: "+5511"})
	_, _ = settings.Put(ctx, entities.CompanySettings{UserID: "u1", CompanyName: "Frio Bom Ltda"})
	s, _ := settings.Get(ctx, "u1")
	if s.CompanyName != "Frio Bom Ltda" || s.Phone != "" {
		t.Fatalf("put must overwrite wholesale, got %+v", s)
	}
	all, _ := settings.List(ctx)
	if len(all) != 1 {
		t.Fatalf("expected one settings row, got %d", len(all))
	}

	_, _ = payments.Create(ctx, entities.Payment{ID: "p1", UserID: "u1", BudgetID: "b1", Status: entities.PaymentStatusAprovado, Amount: decimal.NewFromInt(650), ProviderPayload: map[string]interface{}{"id": "1"}})
	_, _ = payments.Create(ctx, entities.Payment{ID: "p2", UserID: "u1", BudgetID: "b2", Amount: decimal.NewFromInt(1)})
	ps, err := payments.ListByBudgetID(ctx, "u1", "b1")
	if err != nil || len(ps) != 1 || !ps[0].Amount.Equal(decimal.NewFromInt(650)) || ps[0].ProviderPayload["id"] != "1" {
		t.Fatalf("unexpected payments %+v %v", ps, err)
	}
}
