package request

import (
	"encoding/json"
	"errors"
	"strings"

	"instala_control/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPaymentBody  = errors.New("request body is not valid json")
	ErrEmptyMPPayload      = errors.New("mp_payload cannot be empty")
	ErrInvalidChargeAmount = errors.New("amount is not a decimal")
)

// PaymentCreateRequest is the documented shape of the charge route.
//
// `mp_payload` is stored as-is (raw JSON) to support varying Mercado Pago
// schemas. A body without the envelope is taken as the payload itself.
type PaymentCreateRequest struct {
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	MPPayload json.RawMessage  `json:"mp_payload"`
}

// ParseCharge reads either {"amount":..,"mp_payload":{..}} or a bare
// Mercado Pago payload. An empty body charges the balance with an empty
// payload.
func ParseCharge(raw []byte) (usecase.ChargeInput, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return usecase.ChargeInput{Payload: json.RawMessage("{}")}, nil
	}
	if !json.Valid(raw) {
		return usecase.ChargeInput{}, ErrInvalidPaymentBody
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return usecase.ChargeInput{}, ErrInvalidPaymentBody
	}

	var in usecase.ChargeInput
	_, hasAmount := envelope["amount"]
	if hasAmount {
		var amount decimal.Decimal
		if err := json.Unmarshal(envelope["amount"], &amount); err != nil {
			return usecase.ChargeInput{}, ErrInvalidChargeAmount
		}
		in.Amount = &amount
	}

	wrapped, hasPayload := envelope["mp_payload"]
	switch {
	case hasPayload:
		if trimmed := strings.TrimSpace(string(wrapped)); trimmed == "" || trimmed == "null" {
			return usecase.ChargeInput{}, ErrEmptyMPPayload
		}
		in.Payload = wrapped
	case hasAmount && len(envelope) == 1:
		in.Payload = json.RawMessage("{}")
	default:
		in.Payload = json.RawMessage(raw)
	}
	return in, nil
}
