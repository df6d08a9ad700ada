package request

import (
	"instala_control/internal/usecase"

	"github.com/shopspring/decimal"
)

type AppointmentRequest struct {
	Client        string           `json:"client" binding:"required"`
	Type          string           `json:"type"`
	Date          string           `json:"date" binding:"required"`
	Time          string           `json:"time"`
	Address       string           `json:"address"`
	Notes         string           `json:"notes"`
	BudgetID      string           `json:"budget_id"`
	Price         *decimal.Decimal `json:"price"`
	PaymentMethod string           `json:"payment_method"`
}

func (r AppointmentRequest) ToInput() usecase.AppointmentInput {
	return usecase.AppointmentInput{
		Client:        r.Client,
		Type:          r.Type,
		Date:          r.Date,
		Time:          r.Time,
		Address:       r.Address,
		Notes:         r.Notes,
		BudgetID:      r.BudgetID,
		Price:         r.Price,
		PaymentMethod: r.PaymentMethod,
	}
}
