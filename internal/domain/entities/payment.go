package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPendente PaymentStatus = "pendente"
	PaymentStatusAprovado PaymentStatus = "aprovado"
	PaymentStatusNegado   PaymentStatus = "negado"
)

// Payment is a Mercado Pago charge taken against a budget (usually the
// entry share of the payment terms).
//
// MercadoPago payload:
//   - ProviderPayloadRaw keeps the provider response (JSON) for traceability.
//   - ProviderPayload is the parsed representation, useful for debugging.
type Payment struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	BudgetID string          `json:"budget_id"`
	Date     time.Time       `json:"date"`
	Status   PaymentStatus   `json:"status"`
	Amount   decimal.Decimal `json:"amount"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
