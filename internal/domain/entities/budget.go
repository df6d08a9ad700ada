package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus represents the lifecycle of a budget (orçamento).
//
// The only transition is pending -> scheduled, triggered when an appointment
// referencing the budget is created.
type BudgetStatus string

const (
	BudgetStatusPending   BudgetStatus = "pending"
	BudgetStatusScheduled BudgetStatus = "scheduled"
)

const (
	DefaultPaymentTerms = "50% na entrada, 50% na finalização"
	DefaultValidity     = "15 dias"
)

type ClientData struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type BudgetItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Qty         int             `json:"qty"`
	Price       decimal.Decimal `json:"price"`
}

// Subtotal is qty * price.
func (i BudgetItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Budget is a priced proposal (quote) persisted per user.
//
// Total is derived from Items and stored redundantly so lists do not need the items.
type Budget struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	BudgetNumber  string          `json:"budget_number"`
	ClientData    ClientData      `json:"client_data"`
	ServiceType   string          `json:"service_type"`
	PaymentMethod string          `json:"payment_method"`
	Items         []BudgetItem    `json:"items"`
	PaymentTerms  string          `json:"payment_terms"`
	Validity      string          `json:"validity"`
	Total         decimal.Decimal `json:"total"`
	Status        BudgetStatus    `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
