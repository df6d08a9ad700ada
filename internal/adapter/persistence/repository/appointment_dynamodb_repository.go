package repository

import (
	"context"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

type appointmentItem struct {
	UserID        string `dynamodbav:"user_id"`
	ID            string `dynamodbav:"id"`
	Client        string `dynamodbav:"client"`
	Type          string `dynamodbav:"type"`
	Date          string `dynamodbav:"date"`
	Time          string `dynamodbav:"time"`
	Address       string `dynamodbav:"address,omitempty"`
	Notes         string `dynamodbav:"notes,omitempty"`
	Status        string `dynamodbav:"status"`
	BudgetID      string `dynamodbav:"budget_id,omitempty"`
	Price         string `dynamodbav:"price,omitempty"`
	PaymentMethod string `dynamodbav:"payment_method,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
}

// AppointmentDynamoRepository persists Appointment entities in DynamoDB.
//
// Table requirements:
//   - PK: user_id (string)
//   - SK: id (string)
type AppointmentDynamoRepository struct {
	t table
}

var _ interfaces.IAppointmentRepository = (*AppointmentDynamoRepository)(nil)

func NewAppointmentDynamoRepository(ddb DynamoAPI, tableName string) *AppointmentDynamoRepository {
	return &AppointmentDynamoRepository{t: table{ddb: ddb, name: tableName}}
}

func (r *AppointmentDynamoRepository) Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error) {
	if err := r.t.create(ctx, toAppointmentItem(a)); err != nil {
		return entities.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentDynamoRepository) Delete(ctx context.Context, userID, id string) error {
	return r.t.delete(ctx, userID, id)
}

func (r *AppointmentDynamoRepository) GetByID(ctx context.Context, userID, id string) (entities.Appointment, error) {
	var it appointmentItem
	found, err := r.t.get(ctx, userID, id, &it)
	if err != nil || !found {
		return entities.Appointment{}, err
	}
	return fromAppointmentItem(it), nil
}

func (r *AppointmentDynamoRepository) ListByUser(ctx context.Context, userID string) ([]entities.Appointment, error) {
	items, err := queryUser[appointmentItem](ctx, r.t, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Appointment, 0, len(items))
	for _, it := range items {
		out = append(out, fromAppointmentItem(it))
	}
	return out, nil
}

func toAppointmentItem(a entities.Appointment) appointmentItem {
	it := appointmentItem{
		UserID:        a.UserID,
		ID:            a.ID,
		Client:        a.Client,
		Type:          a.Type,
		Date:          a.Date,
		Time:          a.Time,
		Address:       a.Address,
		Notes:         a.Notes,
		Status:        string(a.Status),
		BudgetID:      a.BudgetID,
		PaymentMethod: a.PaymentMethod,
		CreatedAt:     formatTime(a.CreatedAt),
	}
	if a.Price != nil {
		it.Price = formatMoney(*a.Price)
	}
	return it
}

func fromAppointmentItem(it appointmentItem) entities.Appointment {
	a := entities.Appointment{
		ID:            it.ID,
		UserID:        it.UserID,
		Client:        it.Client,
		Type:          it.Type,
		Date:          it.Date,
		Time:          it.Time,
		Address:       it.Address,
		Notes:         it.Notes,
		Status:        entities.AppointmentStatus(it.Status),
		BudgetID:      it.BudgetID,
		PaymentMethod: it.PaymentMethod,
		CreatedAt:     parseTime(it.CreatedAt),
	}
	if it.Price != "" {
		if p, err := decimal.NewFromString(it.Price); err == nil {
			a.Price = &p
		}
	}
	return a
}
