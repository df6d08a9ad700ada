package repository

import (
	"context"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"
)

type expenseItem struct {
	ID    string `dynamodbav:"id"`
	Name  string `dynamodbav:"name"`
	Value string `dynamodbav:"value"`
}

type serviceItem struct {
	UserID        string        `dynamodbav:"user_id"`
	ID            string        `dynamodbav:"id"`
	Client        string        `dynamodbav:"client"`
	Type          string        `dynamodbav:"type"`
	Date          string        `dynamodbav:"date"`
	Price         string        `dynamodbav:"price"`
	Cost          string        `dynamodbav:"cost"`
	PaymentMethod string        `dynamodbav:"payment_method,omitempty"`
	Expenses      []expenseItem `dynamodbav:"expenses,omitempty"`
	Notes         string        `dynamodbav:"notes,omitempty"`
	CreatedAt     string        `dynamodbav:"created_at"`
	UpdatedAt     string        `dynamodbav:"updated_at"`
}

// ServiceDynamoRepository persists Service entities in DynamoDB.
//
// Table requirements:
//   - PK: user_id (string)
//   - SK: id (string)
type ServiceDynamoRepository struct {
	t table
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb DynamoAPI, tableName string) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{t: table{ddb: ddb, name: tableName}}
}

func (r *ServiceDynamoRepository) Create(ctx context.Context, s entities.Service) (entities.Service, error) {
	if err := r.t.create(ctx, toServiceItem(s)); err != nil {
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceDynamoRepository) Update(ctx context.Context, s entities.Service) (entities.Service, error) {
	found, err := r.t.replace(ctx, toServiceItem(s))
	if err != nil || !found {
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceDynamoRepository) Delete(ctx context.Context, userID, id string) error {
	return r.t.delete(ctx, userID, id)
}

func (r *ServiceDynamoRepository) GetByID(ctx context.Context, userID, id string) (entities.Service, error) {
	var it serviceItem
	found, err := r.t.get(ctx, userID, id, &it)
	if err != nil || !found {
		return entities.Service{}, err
	}
	return fromServiceItem(it), nil
}

func (r *ServiceDynamoRepository) ListByUser(ctx context.Context, userID string) ([]entities.Service, error) {
	items, err := queryUser[serviceItem](ctx, r.t, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Service, 0, len(items))
	for _, it := range items {
		out = append(out, fromServiceItem(it))
	}
	return out, nil
}

func toServiceItem(s entities.Service) serviceItem {
	expenses := make([]expenseItem, 0, len(s.Expenses))
	for _, e := range s.Expenses {
		expenses = append(expenses, expenseItem{ID: e.ID, Name: e.Name, Value: formatMoney(e.Value)})
	}
	return serviceItem{
		UserID:        s.UserID,
		ID:            s.ID,
		Client:        s.Client,
		Type:          s.Type,
		Date:          s.Date,
		Price:         formatMoney(s.Price),
		Cost:          formatMoney(s.Cost),
		PaymentMethod: s.PaymentMethod,
		Expenses:      expenses,
		Notes:         s.Notes,
		CreatedAt:     formatTime(s.CreatedAt),
		UpdatedAt:     formatTime(s.UpdatedAt),
	}
}

func fromServiceItem(it serviceItem) entities.Service {
	expenses := make([]entities.Expense, 0, len(it.Expenses))
	for _, e := range it.Expenses {
		expenses = append(expenses, entities.Expense{ID: e.ID, Name: e.Name, Value: parseMoney(e.Value)})
	}
	return entities.Service{
		ID:            it.ID,
		UserID:        it.UserID,
		Client:        it.Client,
		Type:          it.Type,
		Date:          it.Date,
		Price:         parseMoney(it.Price),
		Cost:          parseMoney(it.Cost),
		PaymentMethod: it.PaymentMethod,
		Expenses:      expenses,
		Notes:         it.Notes,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
