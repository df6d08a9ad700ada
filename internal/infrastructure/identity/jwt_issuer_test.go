package identity

import (
	"errors"
	"testing"
	"time"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, exp, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry must be in the future: %v", exp)
	}

	sub, err := issuer.Parse(token)
	if err != nil || sub != "user-1" {
		t.Fatalf("expected user-1, got %q err=%v", sub, err)
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer, _ := NewTokenIssuer("secret", time.Hour)
	other, _ := NewTokenIssuer("other", time.Hour)

	token, _, _ := other.Issue("user-1")
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}

	if _, err := issuer.Parse("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, _ := issuer.Issue("user-1")
	issuer.now = time.Now
	if _, err := issuer.Parse(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	if _, _, err := issuer.Issue(""); !errors.Is(err, ErrMissingSubject) {
		t.Fatalf("expected ErrMissingSubject, got %v", err)
	}
}

func TestNewTokenIssuer_EphemeralSecret(t *testing.T) {
	a, _ := NewTokenIssuer("", time.Hour)
	b, _ := NewTokenIssuer("", time.Hour)
	token, _, _ := a.Issue("u")
	if _, err := b.Parse(token); err == nil {
		t.Fatalf("ephemeral secrets must differ")
	}
}
