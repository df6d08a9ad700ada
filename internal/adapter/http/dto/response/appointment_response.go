package response

import (
	"time"

	"instala_control/internal/domain/entities"
)

type AppointmentResponse struct {
	ID            string    `json:"id"`
	Client        string    `json:"client"`
	Type          string    `json:"type"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	BudgetID      string    `json:"budget_id,omitempty"`
	Price         *string   `json:"price,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromAppointment(a entities.Appointment) AppointmentResponse {
	res := AppointmentResponse{
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
		CreatedAt:     a.CreatedAt,
	}
	if a.Price != nil {
		p := Money(*a.Price)
		res.Price = &p
	}
	return res
}

func FromAppointments(list []entities.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromAppointment(a))
	}
	return out
}
