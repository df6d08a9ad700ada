package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceTypes lists the categories offered by the service form.
var ServiceTypes = []string{
	"Instalação Split",
	"Instalação ACJ",
	"Manutenção Preventiva",
	"Manutenção Corretiva",
	"Limpeza Química",
	"Carga de Gás",
	"Infraestrutura",
	"Visita Técnica",
}

// Expense is one cost line of a service (parts, supports, gas...).
type Expense struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Service is a completed, billed job.
//
// Cost mirrors the sum of Expenses whenever expenses are present; the use case
// recomputes it on every write so the stored value never drifts from the lines.
type Service struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Client        string          `json:"client"`
	Type          string          `json:"type"`
	Date          string          `json:"date"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	PaymentMethod string          `json:"payment_method"`
	Expenses      []Expense       `json:"expenses"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ExpensesTotal sums the expense lines.
func (s Service) ExpensesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Expenses {
		total = total.Add(e.Value)
	}
	return total
}

// Profit is price minus cost.
func (s Service) Profit() decimal.Decimal {
	return s.Price.Sub(s.Cost)
}
