package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled     AppointmentStatus = "scheduled"
	AppointmentStatusScheduledAuto AppointmentStatus = "scheduled_auto"
)

// AppointmentTypes lists the visit kinds offered by the schedule form.
var AppointmentTypes = []string{
	"Visita Técnica",
	"Instalação",
	"Manutenção",
	"Limpeza",
	"Orçamento",
}

// Appointment is a scheduled visit, optionally linked to the budget it came from.
//
// Lifecycle:
//   - created manually, automatically by a future-dated service, or from a budget
//   - deleted on cancellation, or promoted into a Service on completion
//     (create-then-delete, not atomic)
type Appointment struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	Client        string            `json:"client"`
	Type          string            `json:"type"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Address       string            `json:"address"`
	Notes         string            `json:"notes"`
	Status        AppointmentStatus `json:"status"`
	BudgetID      string            `json:"budget_id,omitempty"`
	Price         *decimal.Decimal  `json:"price,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// SortKey orders appointments chronologically; date and time are both zero padded.
func (a Appointment) SortKey() string {
	return a.Date + "T" + a.Time
}
