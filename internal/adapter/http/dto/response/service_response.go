package response

import (
	"time"

	"instala_control/internal/domain/entities"
)

type ExpenseResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ServiceResponse struct {
	ID            string            `json:"id"`
	Client        string            `json:"client"`
	Type          string            `json:"type"`
	Date          string            `json:"date"`
	Price         string            `json:"price"`
	Cost          string            `json:"cost"`
	Profit        string            `json:"profit"`
	PaymentMethod string            `json:"payment_method"`
	Expenses      []ExpenseResponse `json:"expenses"`
	Notes         string            `json:"notes"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func FromService(s entities.Service) ServiceResponse {
	expenses := make([]ExpenseResponse, 0, len(s.Expenses))
	for _, e := range s.Expenses {
		expenses = append(expenses, ExpenseResponse{ID: e.ID, Name: e.Name, Value: Money(e.Value)})
	}
	return ServiceResponse{
		ID:            s.ID,
		Client:        s.Client,
		Type:          s.Type,
		Date:          s.Date,
		Price:         Money(s.Price),
		Cost:          Money(s.Cost),
		Profit:        Money(s.Profit()),
		PaymentMethod: s.PaymentMethod,
		Expenses:      expenses,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func FromServices(list []entities.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromService(s))
	}
	return out
}
