package request

import (
	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase"

	"github.com/shopspring/decimal"
)

type ClientDataRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type BudgetItemRequest struct {
	ID          string          `json:"id"`
	Description string          `json:"description" binding:"required"`
	Qty         int             `json:"qty"`
	Price       decimal.Decimal `json:"price"`
}

func (r BudgetItemRequest) ToInput() usecase.BudgetItemInput {
	return usecase.BudgetItemInput{ID: r.ID, Description: r.Description, Qty: r.Qty, Price: r.Price}
}

// BudgetRequest carries the whole quote. The total is never accepted from
// the client; it is derived from the items.
type BudgetRequest struct {
	BudgetNumber  string              `json:"budget_number"`
	ClientData    ClientDataRequest   `json:"client_data"`
	ServiceType   string              `json:"service_type"`
	PaymentMethod string              `json:"payment_method"`
	Items         []BudgetItemRequest `json:"items" binding:"dive"`
	PaymentTerms  string              `json:"payment_terms"`
	Validity      string              `json:"validity"`
}

func (r BudgetRequest) ToInput() usecase.BudgetInput {
	items := make([]usecase.BudgetItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, it.ToInput())
	}
	return usecase.BudgetInput{
		BudgetNumber:  r.BudgetNumber,
		ClientData:    entities.ClientData(r.ClientData),
		ServiceType:   r.ServiceType,
		PaymentMethod: r.PaymentMethod,
		Items:         items,
		PaymentTerms:  r.PaymentTerms,
		Validity:      r.Validity,
	}
}
