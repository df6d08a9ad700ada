package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"instala_control/internal/domain/entities"
	"instala_control/internal/infrastructure/events"
	mock_interfaces "instala_control/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	services *mock_interfaces.MockIServiceRepository
	appts    *mock_interfaces.MockIAppointmentRepository
	budgets  *mock_interfaces.MockIBudgetRepository
	settings *mock_interfaces.MockISettingsRepository
	repos    Repositories
}

func newFixture(ctrl *gomock.Controller) fixture {
	f := fixture{
		services: mock_interfaces.NewMockIServiceRepository(ctrl),
		appts:    mock_interfaces.NewMockIAppointmentRepository(ctrl),
		budgets:  mock_interfaces.NewMockIBudgetRepository(ctrl),
		settings: mock_interfaces.NewMockISettingsRepository(ctrl),
	}
	f.repos = Repositories{Services: f.services, Appointments: f.appts, Budgets: f.budgets, Settings: f.settings}
	return f
}

func TestRecordStore_StartSortsCollections(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(ctrl)

	f.services.EXPECT().ListByUser(gomock.Any(), "u1").Return([]entities.Service{
		{ID: "old", Date: "2026-01-01", Price: decimal.NewFromInt(1)},
		{ID: "new", Date: "2026-10-01", Price: decimal.NewFromInt(1)},
	}, nil)
	f.appts.EXPECT().ListByUser(gomock.Any(), "u1").Return([]entities.Appointment{
		{ID: "late", Date: "2026-10-20", Time: "14:00"},
		{ID: "early", Date: "2026-10-20", Time: "08:00"},
	}, nil)
	f.budgets.EXPECT().ListByUser(gomock.Any(), "u1").Return([]entities.Budget{
		{ID: "b1", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b2", CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)
	f.settings.EXPECT().Get(gomock.Any(), "u1").Return(entities.CompanySettings{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New("u1", f.repos, events.NewMemoryFeed())
	if _, err := s.Snapshot(); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Services[0].ID != "new" || snap.Appointments[0].ID != "early" || snap.Budgets[0].ID != "b2" {
		t.Fatalf("unexpected order: %+v", snap)
	}
	if snap.Settings.CompanyName == "" || snap.Version != 1 {
		t.Fatalf("expected defaulted settings and version 1, got %+v", snap)
	}
}

func TestRecordStore_ReloadsOnChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(ctrl)

	gomock.InOrder(
		f.budgets.EXPECT().ListByUser(gomock.Any(), "u1").Return(nil, nil),
		f.budgets.EXPECT().ListByUser(gomock.Any(), "u1").Return([]entities.Budget{{ID: "b1"}}, nil),
	)
	f.services.EXPECT().ListByUser(gomock.Any(), "u1").Return(nil, nil)
	f.appts.EXPECT().ListByUser(gomock.Any(), "u1").Return(nil, nil)
	f.settings.EXPECT().Get(gomock.Any(), "u1").Return(entities.CompanySettings{}, nil)

	feed := events.NewMemoryFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New("u1", f.repos, feed)
	if err := s.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_ = feed.Publish(context.Background(), entities.ChangeEvent{UserID: "u1", Collection: entities.CollectionBudgets})

	select {
	case c := <-s.Updates():
		if c != entities.CollectionBudgets {
			t.Fatalf("unexpected collection %s", c)
		}
	case <-time.After(time.Second):
		t.Fatalf("no update received")
	}

	snap, _ := s.Snapshot()
	if len(snap.Budgets) != 1 || snap.Version != 2 {
		t.Fatalf("expected reloaded budgets, got %+v", snap)
	}

	cancel()
	select {
	case _, ok := <-s.Updates():
		if ok {
			t.Fatalf("expected closed updates")
		}
	case <-time.After(time.Second):
		t.Fatalf("updates not closed on cancel")
	}
}

func TestRecordStore_StartErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(ctrl)

	if err := New("", f.repos, nil).Start(context.Background()); err == nil {
		t.Fatalf("expected error for blank user")
	}

	boom := errors.New("boom")
	f.services.EXPECT().ListByUser(gomock.Any(), "u1").Return(nil, boom)
	f.appts.EXPECT().ListByUser(gomock.Any(), "u1").Return(nil, nil).AnyTimes()
	f.budgets.EXPECT().ListByUser(gomock.Any(), "u1").Return(nil, nil).AnyTimes()
	f.settings.EXPECT().Get(gomock.Any(), "u1").Return(entities.CompanySettings{}, nil).AnyTimes()

	s := New("u1", f.repos, nil)
	if err := s.Start(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := s.Reload(context.Background(), "unknown"); err == nil {
		t.Fatalf("expected unknown collection error")
	}
}
