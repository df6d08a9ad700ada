package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"instala_control/internal/domain/calendar"
	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultServiceType = "Instalação Split"
	AutoScheduleTime   = "08:00"
	AutoScheduleNotes  = "Agendado automaticamente pelo cadastro de serviço."
)

var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrInvalidServiceID     = errors.New("invalid service id")
	ErrInvalidServiceClient = errors.New("client is required")
	ErrInvalidServiceDate   = errors.New("date must be YYYY-MM-DD")
	ErrInvalidServicePrice  = errors.New("price must not be negative")
	ErrInvalidServiceCost   = errors.New("cost must not be negative")
	ErrInvalidExpense       = errors.New("expense needs a name and a non-negative value")
	ErrAutoScheduleFailed   = errors.New("service saved but the automatic appointment failed")
)

// ServiceInput carries the editable fields of a service form.
type ServiceInput struct {
	Client        string
	Type          string
	Date          string
	Price         decimal.Decimal
	Cost          decimal.Decimal
	PaymentMethod string
	Expenses      []entities.Expense
	Notes         string
}

type IServiceUseCase interface {
	Create(ctx context.Context, userID string, in ServiceInput) (entities.Service, error)
	Update(ctx context.Context, userID, id string, in ServiceInput) (entities.Service, error)
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (entities.Service, error)
	List(ctx context.Context, userID, query string) ([]entities.Service, error)
}

type ServiceUseCase struct {
	repo     interfaces.IServiceRepository
	apptRepo interfaces.IAppointmentRepository
	feed     interfaces.IChangeFeed
	now      func() time.Time
}

var _ IServiceUseCase = (*ServiceUseCase)(nil)

func NewServiceUseCase(repo interfaces.IServiceRepository, apptRepo interfaces.IAppointmentRepository, feed interfaces.IChangeFeed) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, apptRepo: apptRepo, feed: feed, now: time.Now}
}

// Create stores a new service. When its date lies after today an appointment
// is booked for that day at 08:00. If that second write fails the service is
// still returned together with ErrAutoScheduleFailed.
func (u *ServiceUseCase) Create(ctx context.Context, userID string, in ServiceInput) (entities.Service, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return entities.Service{}, err
	}
	s, err := u.normalize(in)
	if err != nil {
		log.Printf("[service][usecase] create rejected user_id=%s err=%v", userID, err)
		return entities.Service{}, err
	}

	now := u.now().UTC()
	s.ID = uuid.NewString()
	s.UserID = userID
	s.CreatedAt = now
	s.UpdatedAt = now

	created, err := u.repo.Create(ctx, s)
	if err != nil {
		log.Printf("[service][usecase] create failed user_id=%s err=%v", userID, err)
		return entities.Service{}, err
	}
	publishChange(ctx, u.feed, userID, entities.CollectionServices)
	log.Printf("[service][usecase] created user_id=%s service_id=%s date=%s", userID, created.ID, created.Date)

	if created.Date > u.now().Format(calendar.DateLayout) {
		if err := u.autoSchedule(ctx, created); err != nil {
			log.Printf("[service][usecase] auto schedule failed user_id=%s service_id=%s err=%v", userID, created.ID, err)
			return created, fmt.Errorf("%w: %v", ErrAutoScheduleFailed, err)
		}
	}
	return created, nil
}

func (u *ServiceUseCase) autoSchedule(ctx context.Context, s entities.Service) error {
	if u.apptRepo == nil {
		return errors.New("appointment repository not configured")
	}
	price := s.Price
	a := entities.Appointment{
		ID:            uuid.NewString(),
		UserID:        s.UserID,
		Client:        s.Client,
		Type:          s.Type,
		Date:          s.Date,
		Time:          AutoScheduleTime,
		Notes:         AutoScheduleNotes,
		Status:        entities.AppointmentStatusScheduledAuto,
		Price:         &price,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     u.now().UTC(),
	}
	if _, err := u.apptRepo.Create(ctx, a); err != nil {
		return err
	}
	publishChange(ctx, u.feed, s.UserID, entities.CollectionAppointments)
	return nil
}

func (u *ServiceUseCase) Update(ctx context.Context, userID, id string, in ServiceInput) (entities.Service, error) {
	existing, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return entities.Service{}, err
	}
	s, err := u.normalize(in)
	if err != nil {
		log.Printf("[service][usecase] update rejected user_id=%s service_id=%s err=%v", existing.UserID, existing.ID, err)
		return entities.Service{}, err
	}
	s.ID = existing.ID
	s.UserID = existing.UserID
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = u.now().UTC()

	updated, err := u.repo.Update(ctx, s)
	if err != nil {
		log.Printf("[service][usecase] update failed user_id=%s service_id=%s err=%v", s.UserID, s.ID, err)
		return entities.Service{}, err
	}
	publishChange(ctx, u.feed, s.UserID, entities.CollectionServices)
	return updated, nil
}

func (u *ServiceUseCase) Delete(ctx context.Context, userID, id string) error {
	existing, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, existing.UserID, existing.ID); err != nil {
		log.Printf("[service][usecase] delete failed user_id=%s service_id=%s err=%v", existing.UserID, existing.ID, err)
		return err
	}
	publishChange(ctx, u.feed, existing.UserID, entities.CollectionServices)
	return nil
}

func (u *ServiceUseCase) GetByID(ctx context.Context, userID, id string) (entities.Service, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return entities.Service{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	s, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return entities.Service{}, err
	}
	if s.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return s, nil
}

// List returns the user's services newest first. A non-blank query keeps only
// services whose client or type contains it, ignoring case.
func (u *ServiceUseCase) List(ctx context.Context, userID, query string) ([]entities.Service, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	all, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	SortServices(all)
	return FilterServices(all, query), nil
}

// SortServices orders by date descending, newest created first within a day.
func SortServices(s []entities.Service) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Date != s[j].Date {
			return s[i].Date > s[j].Date
		}
		return s[i].CreatedAt.After(s[j].CreatedAt)
	})
}

func FilterServices(all []entities.Service, query string) []entities.Service {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all
	}
	out := make([]entities.Service, 0, len(all))
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.Client), q) || strings.Contains(strings.ToLower(s.Type), q) {
			out = append(out, s)
		}
	}
	return out
}

func (u *ServiceUseCase) normalize(in ServiceInput) (entities.Service, error) {
	s := entities.Service{
		Client:        strings.TrimSpace(in.Client),
		Type:          strings.TrimSpace(in.Type),
		Date:          strings.TrimSpace(in.Date),
		Price:         in.Price,
		Cost:          in.Cost,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Notes:         strings.TrimSpace(in.Notes),
		Expenses:      make([]entities.Expense, 0, len(in.Expenses)),
	}
	if s.Client == "" {
		return entities.Service{}, ErrInvalidServiceClient
	}
	if s.Type == "" {
		s.Type = DefaultServiceType
	}
	if s.Date == "" {
		s.Date = u.now().Format(calendar.DateLayout)
	}
	if !isISODate(s.Date) {
		return entities.Service{}, ErrInvalidServiceDate
	}
	if s.Price.IsNegative() {
		return entities.Service{}, ErrInvalidServicePrice
	}
	for _, e := range in.Expenses {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" || e.Value.IsNegative() {
			return entities.Service{}, ErrInvalidExpense
		}
		if strings.TrimSpace(e.ID) == "" {
			e.ID = uuid.NewString()
		}
		s.Expenses = append(s.Expenses, e)
	}
	if len(s.Expenses) > 0 {
		s.Cost = s.ExpensesTotal()
	}
	if s.Cost.IsNegative() {
		return entities.Service{}, ErrInvalidServiceCost
	}
	return s, nil
}
