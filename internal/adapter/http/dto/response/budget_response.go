package response

import (
	"time"

	"instala_control/internal/domain/entities"
)

type BudgetItemResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Qty         int    `json:"qty"`
	Price       string `json:"price"`
	Subtotal    string `json:"subtotal"`
}

type BudgetResponse struct {
	ID            string               `json:"id"`
	BudgetNumber  string               `json:"budget_number"`
	ClientData    entities.ClientData  `json:"client_data"`
	ServiceType   string               `json:"service_type"`
	PaymentMethod string               `json:"payment_method"`
	Items         []BudgetItemResponse `json:"items"`
	PaymentTerms  string               `json:"payment_terms"`
	Validity      string               `json:"validity"`
	Total         string               `json:"total"`
	Status        string               `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func FromBudget(b entities.Budget) BudgetResponse {
	items := make([]BudgetItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, BudgetItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Qty:         it.Qty,
			Price:       Money(it.Price),
			Subtotal:    Money(it.Subtotal()),
		})
	}
	return BudgetResponse{
		ID:            b.ID,
		BudgetNumber:  b.BudgetNumber,
		ClientData:    b.ClientData,
		ServiceType:   b.ServiceType,
		PaymentMethod: b.PaymentMethod,
		Items:         items,
		PaymentTerms:  b.PaymentTerms,
		Validity:      b.Validity,
		Total:         Money(b.Total),
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func FromBudgets(list []entities.Budget) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(list))
	for _, b := range list {
		out = append(out, FromBudget(b))
	}
	return out
}

type NextNumberResponse struct {
	BudgetNumber string `json:"budget_number"`
}
