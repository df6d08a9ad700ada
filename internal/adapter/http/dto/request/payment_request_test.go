package request

import (
	"errors"
	"testing"
)

func TestParseCharge(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		in, err := ParseCharge([]byte("  "))
		if err != nil || string(in.Payload) != "{}" || in.Amount != nil {
			t.Fatalf("unexpected %+v %v", in, err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := ParseCharge([]byte("{")); !errors.Is(err, ErrInvalidPaymentBody) {
			t.Fatalf("expected ErrInvalidPaymentBody, got %v", err)
		}
	})

	t.Run("envelope with amount", func(t *testing.T) {
		in, err := ParseCharge([]byte(`{"amount":"650.00","mp_payload":{"payment_method_id":"pix"}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Amount == nil || in.Amount.StringFixed(2) != "650.00" {
			t.Fatalf("unexpected amount %v", in.Amount)
		}
		if string(in.Payload) != `{"payment_method_id":"pix"}` {
			t.Fatalf("unexpected payload %s", in.Payload)
		}
	})

	t.Run("amount only", func(t *testing.T) {
		in, err := ParseCharge([]byte(`{"amount":100}`))
		if err != nil || string(in.Payload) != "{}" || in.Amount == nil {
			t.Fatalf("unexpected %+v %v", in, err)
		}
	})

	t.Run("bare payload", func(t *testing.T) {
		raw := `{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`
		in, err := ParseCharge([]byte(raw))
		if err != nil || string(in.Payload) != raw || in.Amount != nil {
			t.Fatalf("unexpected %+v %v", in, err)
		}
	})

	t.Run("null payload", func(t *testing.T) {
		if _, err := ParseCharge([]byte(`{"mp_payload":null}`)); !errors.Is(err, ErrEmptyMPPayload) {
			t.Fatalf("expected ErrEmptyMPPayload, got %v", err)
		}
	})

	t.Run("bad amount", func(t *testing.T) {
		if _, err := ParseCharge([]byte(`{"amount":"abc"}`)); !errors.Is(err, ErrInvalidChargeAmount) {
			t.Fatalf("expected ErrInvalidChargeAmount, got %v", err)
		}
	})
}
