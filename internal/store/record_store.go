// Package store keeps a live, sorted copy of one user's collections and
// refreshes it whenever the change feed reports a write.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase"
	"instala_control/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
)

var ErrNotStarted = errors.New("record store not started")

// Snapshot is a point-in-time copy of every collection of a user.
type Snapshot struct {
	Services     []entities.Service       `json:"services"`
	Appointments []entities.Appointment   `json:"appointments"`
	Budgets      []entities.Budget        `json:"budgets"`
	Settings     entities.CompanySettings `json:"settings"`
	Version      int                      `json:"version"`
	At           time.Time                `json:"at"`
}

type Repositories struct {
	Services     interfaces.IServiceRepository
	Appointments interfaces.IAppointmentRepository
	Budgets      interfaces.IBudgetRepository
	Settings     interfaces.ISettingsRepository
}

// RecordStore mirrors one user's records. A change notification replaces
// the affected collection wholesale; nothing is patched in place.
type RecordStore struct {
	userID string
	repos  Repositories
	feed   interfaces.IChangeFeed

	mu      sync.RWMutex
	snap    Snapshot
	started bool
	updates chan entities.Collection
	now     func() time.Time
}

func New(userID string, repos Repositories, feed interfaces.IChangeFeed) *RecordStore {
	return &RecordStore{
		userID:  userID,
		repos:   repos,
		feed:    feed,
		updates: make(chan entities.Collection, 8),
		now:     time.Now,
	}
}

// Start performs the initial load and follows the feed until ctx ends.
// Updates is closed when the subscription is torn down.
func (s *RecordStore) Start(ctx context.Context) error {
	if s.userID == "" {
		return usecase.ErrInvalidUserID
	}

	var (
		services     []entities.Service
		appointments []entities.Appointment
		budgets      []entities.Budget
		settings     entities.CompanySettings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		services, err = s.loadServices(gctx)
		return err
	})
	g.Go(func() (err error) {
		appointments, err = s.loadAppointments(gctx)
		return err
	})
	g.Go(func() (err error) {
		budgets, err = s.loadBudgets(gctx)
		return err
	})
	g.Go(func() (err error) {
		settings, err = s.loadSettings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("[store] initial load failed user_id=%s err=%v", s.userID, err)
		return err
	}

	var events <-chan entities.ChangeEvent
	if s.feed != nil {
		var err error
		events, err = s.feed.Subscribe(ctx, s.userID)
		if err != nil {
			return fmt.Errorf("subscribe to changes: %w", err)
		}
	}

	s.mu.Lock()
	s.snap = Snapshot{
		Services:     services,
		Appointments: appointments,
		Budgets:      budgets,
		Settings:     settings,
		Version:      1,
		At:           s.now(),
	}
	s.started = true
	s.mu.Unlock()

	go s.follow(ctx, events)
	return nil
}

func (s *RecordStore) follow(ctx context.Context, events <-chan entities.ChangeEvent) {
	defer close(s.updates)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := s.Reload(ctx, ev.Collection); err != nil {
				log.Printf("[store] reload failed user_id=%s collection=%s err=%v", s.userID, ev.Collection, err)
				continue
			}
			select {
			case s.updates <- ev.Collection:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Reload fetches one collection again and swaps it into the snapshot.
func (s *RecordStore) Reload(ctx context.Context, c entities.Collection) error {
	switch c {
	case entities.CollectionServices:
		v, err := s.loadServices(ctx)
		if err != nil {
			return err
		}
		s.swap(func(snap *Snapshot) { snap.Services = v })
	case entities.CollectionAppointments:
		v, err := s.loadAppointments(ctx)
		if err != nil {
			return err
		}
		s.swap(func(snap *Snapshot) { snap.Appointments = v })
	case entities.CollectionBudgets:
		v, err := s.loadBudgets(ctx)
		if err != nil {
			return err
		}
		s.swap(func(snap *Snapshot) { snap.Budgets = v })
	case entities.CollectionSettings:
		v, err := s.loadSettings(ctx)
		if err != nil {
			return err
		}
		s.swap(func(snap *Snapshot) { snap.Settings = v })
	default:
		return fmt.Errorf("unknown collection %q", c)
	}
	return nil
}

func (s *RecordStore) swap(apply func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.snap)
	s.snap.Version++
	s.snap.At = s.now()
}

// Snapshot returns copies of the current collections.
func (s *RecordStore) Snapshot() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return Snapshot{}, ErrNotStarted
	}
	out := s.snap
	out.Services = append([]entities.Service(nil), s.snap.Services...)
	out.Appointments = append([]entities.Appointment(nil), s.snap.Appointments...)
	out.Budgets = append([]entities.Budget(nil), s.snap.Budgets...)
	return out, nil
}

// Updates yields the collection replaced by each reload.
func (s *RecordStore) Updates() <-chan entities.Collection {
	return s.updates
}

func (s *RecordStore) loadServices(ctx context.Context) ([]entities.Service, error) {
	v, err := s.repos.Services.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	usecase.SortServices(v)
	return v, nil
}

func (s *RecordStore) loadAppointments(ctx context.Context) ([]entities.Appointment, error) {
	v, err := s.repos.Appointments.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}
	usecase.SortAppointments(v)
	return v, nil
}

func (s *RecordStore) loadBudgets(ctx context.Context) ([]entities.Budget, error) {
	v, err := s.repos.Budgets.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	usecase.SortBudgets(v)
	return v, nil
}

func (s *RecordStore) loadSettings(ctx context.Context) (entities.CompanySettings, error) {
	if s.repos.Settings == nil {
		return entities.CompanySettings{}, nil
	}
	v, err := s.repos.Settings.Get(ctx, s.userID)
	if err != nil {
		return entities.CompanySettings{}, fmt.Errorf("load settings: %w", err)
	}
	return usecase.WithSettingsDefaults(v), nil
}
