package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultAppointmentType = "Visita Técnica"
	DefaultAppointmentTime = "09:00"
)

var (
	ErrAppointmentNotFound      = errors.New("appointment not found")
	ErrInvalidAppointmentID     = errors.New("invalid appointment id")
	ErrInvalidAppointmentClient = errors.New("client is required")
	ErrInvalidAppointmentDate   = errors.New("date must be YYYY-MM-DD")
	ErrInvalidAppointmentTime   = errors.New("time must be HH:MM")
	ErrBudgetLinkFailed         = errors.New("appointment saved but the budget status was not updated")
	ErrPromotionIncomplete      = errors.New("service saved but the appointment could not be removed")
)

type AppointmentInput struct {
	Client        string           `json:"client"`
	Type          string           `json:"type"`
	Date          string           `json:"date"`
	Time          string           `json:"time"`
	Address       string           `json:"address"`
	Notes         string           `json:"notes"`
	BudgetID      string           `json:"budget_id,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
}

// ServiceDraft pre-fills the service form shown when an appointment is
// marked as done.
type ServiceDraft struct {
	AppointmentID string          `json:"appointment_id"`
	Client        string          `json:"client"`
	Type          string          `json:"type"`
	Date          string          `json:"date"`
	Price         decimal.Decimal `json:"price"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

type IAppointmentUseCase interface {
	Create(ctx context.Context, userID string, in AppointmentInput) (entities.Appointment, error)
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (entities.Appointment, error)
	List(ctx context.Context, userID string) ([]entities.Appointment, error)
	CompletionDraft(ctx context.Context, userID, id string) (ServiceDraft, error)
	Complete(ctx context.Context, userID, id string, in ServiceInput) (entities.Service, error)
}

type AppointmentUseCase struct {
	repo       interfaces.IAppointmentRepository
	budgetRepo interfaces.IBudgetRepository
	services   IServiceUseCase
	feed       interfaces.IChangeFeed
	now        func() time.Time
}

var _ IAppointmentUseCase = (*AppointmentUseCase)(nil)

func NewAppointmentUseCase(repo interfaces.IAppointmentRepository, budgetRepo interfaces.IBudgetRepository, services IServiceUseCase, feed interfaces.IChangeFeed) *AppointmentUseCase {
	return &AppointmentUseCase{repo: repo, budgetRepo: budgetRepo, services: services, feed: feed, now: time.Now}
}

// Create books a visit. A referenced budget must exist; it is flipped to
// scheduled after the appointment is stored.
func (u *AppointmentUseCase) Create(ctx context.Context, userID string, in AppointmentInput) (entities.Appointment, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return entities.Appointment{}, err
	}
	a := entities.Appointment{
		Client:        strings.TrimSpace(in.Client),
		Type:          strings.TrimSpace(in.Type),
		Date:          strings.TrimSpace(in.Date),
		Time:          strings.TrimSpace(in.Time),
		Address:       strings.TrimSpace(in.Address),
		Notes:         strings.TrimSpace(in.Notes),
		BudgetID:      strings.TrimSpace(in.BudgetID),
		Price:         in.Price,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Status:        entities.AppointmentStatusScheduled,
	}
	if a.Client == "" {
		return entities.Appointment{}, ErrInvalidAppointmentClient
	}
	if a.Type == "" {
		a.Type = DefaultAppointmentType
	}
	if a.Time == "" {
		a.Time = DefaultAppointmentTime
	}
	if !isISODate(a.Date) {
		return entities.Appointment{}, ErrInvalidAppointmentDate
	}
	if !isClock(a.Time) {
		return entities.Appointment{}, ErrInvalidAppointmentTime
	}

	if a.BudgetID != "" {
		b, err := u.budgetRepo.GetByID(ctx, userID, a.BudgetID)
		if err != nil {
			return entities.Appointment{}, err
		}
		if b.ID == "" {
			log.Printf("[appointment][usecase] budget not found user_id=%s budget_id=%s", userID, a.BudgetID)
			return entities.Appointment{}, ErrBudgetNotFound
		}
	}

	a.ID = uuid.NewString()
	a.UserID = userID
	a.CreatedAt = u.now().UTC()

	created, err := u.repo.Create(ctx, a)
	if err != nil {
		log.Printf("[appointment][usecase] create failed user_id=%s err=%v", userID, err)
		return entities.Appointment{}, err
	}
	publishChange(ctx, u.feed, userID, entities.CollectionAppointments)
	log.Printf("[appointment][usecase] created user_id=%s appointment_id=%s date=%s time=%s", userID, created.ID, created.Date, created.Time)

	if created.BudgetID != "" {
		if _, err := u.budgetRepo.UpdateStatus(ctx, userID, created.BudgetID, entities.BudgetStatusScheduled); err != nil {
			log.Printf("[appointment][usecase] budget status update failed user_id=%s budget_id=%s err=%v", userID, created.BudgetID, err)
			return created, fmt.Errorf("%w: %v", ErrBudgetLinkFailed, err)
		}
		publishChange(ctx, u.feed, userID, entities.CollectionBudgets)
	}
	return created, nil
}

func (u *AppointmentUseCase) Delete(ctx context.Context, userID, id string) error {
	a, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, a.UserID, a.ID); err != nil {
		log.Printf("[appointment][usecase] delete failed user_id=%s appointment_id=%s err=%v", a.UserID, a.ID, err)
		return err
	}
	publishChange(ctx, u.feed, a.UserID, entities.CollectionAppointments)
	return nil
}

func (u *AppointmentUseCase) GetByID(ctx context.Context, userID, id string) (entities.Appointment, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return entities.Appointment{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Appointment{}, ErrInvalidAppointmentID
	}
	a, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return entities.Appointment{}, err
	}
	if a.ID == "" {
		return entities.Appointment{}, ErrAppointmentNotFound
	}
	return a, nil
}

// List returns the user's appointments in chronological order.
func (u *AppointmentUseCase) List(ctx context.Context, userID string) ([]entities.Appointment, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	all, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	SortAppointments(all)
	return all, nil
}

func SortAppointments(a []entities.Appointment) {
	sort.SliceStable(a, func(i, j int) bool { return a[i].SortKey() < a[j].SortKey() })
}

// CompletionDraft builds the service form for an appointment being closed.
// The original time is kept in the notes since services carry no time.
func (u *AppointmentUseCase) CompletionDraft(ctx context.Context, userID, id string) (ServiceDraft, error) {
	a, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return ServiceDraft{}, err
	}
	d := ServiceDraft{
		AppointmentID: a.ID,
		Client:        a.Client,
		Type:          a.Type,
		Date:          a.Date,
		Price:         decimal.Zero,
		PaymentMethod: a.PaymentMethod,
		Notes:         strings.TrimSpace(fmt.Sprintf("(Agendado para %s) %s", a.Time, a.Notes)),
	}
	if a.Price != nil {
		d.Price = *a.Price
	}
	return d, nil
}

// Complete promotes an appointment into a service: the service is created
// first, then the appointment is deleted. The two writes are not atomic. When
// the delete fails both records exist and ErrPromotionIncomplete is returned
// along with the new service. A failed automatic appointment for a future
// service date does not stop the delete; ErrAutoScheduleFailed is returned
// afterwards with the new service.
func (u *AppointmentUseCase) Complete(ctx context.Context, userID, id string, in ServiceInput) (entities.Service, error) {
	a, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return entities.Service{}, err
	}

	svc, createErr := u.services.Create(ctx, a.UserID, in)
	if createErr != nil {
		if !errors.Is(createErr, ErrAutoScheduleFailed) || svc.ID == "" {
			log.Printf("[appointment][usecase] promotion aborted user_id=%s appointment_id=%s err=%v", a.UserID, a.ID, createErr)
			return entities.Service{}, createErr
		}
		log.Printf("[appointment][usecase] promotion continues without auto schedule user_id=%s service_id=%s", a.UserID, svc.ID)
	}

	if err := u.repo.Delete(ctx, a.UserID, a.ID); err != nil {
		log.Printf("[appointment][usecase] promotion incomplete user_id=%s appointment_id=%s service_id=%s err=%v", a.UserID, a.ID, svc.ID, err)
		return svc, fmt.Errorf("%w: %v", ErrPromotionIncomplete, err)
	}
	publishChange(ctx, u.feed, a.UserID, entities.CollectionAppointments)
	log.Printf("[appointment][usecase] promoted user_id=%s appointment_id=%s service_id=%s", a.UserID, a.ID, svc.ID)
	return svc, createErr
}
