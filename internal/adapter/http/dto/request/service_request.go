package request

import (
	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase"

	"github.com/shopspring/decimal"
)

type ExpenseRequest struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// ServiceRequest is the service form. Money fields accept a JSON number or
// a decimal string.
type ServiceRequest struct {
	Client        string           `json:"client" binding:"required"`
	Type          string           `json:"type"`
	Date          string           `json:"date"`
	Price         decimal.Decimal  `json:"price"`
	Cost          decimal.Decimal  `json:"cost"`
	PaymentMethod string           `json:"payment_method"`
	Expenses      []ExpenseRequest `json:"expenses"`
	Notes         string           `json:"notes"`
}

func (r ServiceRequest) ToInput() usecase.ServiceInput {
	expenses := make([]entities.Expense, 0, len(r.Expenses))
	for _, e := range r.Expenses {
		expenses = append(expenses, entities.Expense{ID: e.ID, Name: e.Name, Value: e.Value})
	}
	return usecase.ServiceInput{
		Client:        r.Client,
		Type:          r.Type,
		Date:          r.Date,
		Price:         r.Price,
		Cost:          r.Cost,
		PaymentMethod: r.PaymentMethod,
		Expenses:      expenses,
		Notes:         r.Notes,
	}
}
