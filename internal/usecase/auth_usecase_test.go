package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_interfaces "instala_control/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestAuthUseCase_StartAnonymous(t *testing.T) {
	t.Run("issuer missing", func(t *testing.T) {
		uc := NewAuthUseCase(nil)
		if _, err := uc.StartAnonymous(context.Background()); !errors.Is(err, ErrTokenIssuerNotConfigured) {
			t.Fatalf("expected ErrTokenIssuerNotConfigured, got %v", err)
		}
	})

	t.Run("issues a token for a fresh user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		issuer := mock_interfaces.NewMockITokenIssuer(ctrl)
		uc := NewAuthUseCase(issuer)

		exp := fixedNow().Add(time.Hour)
		var issuedFor string
		issuer.EXPECT().Issue(gomock.Any()).DoAndReturn(func(userID string) (string, time.Time, error) {
			issuedFor = userID
			return "tok", exp, nil
		})

		s, err := uc.StartAnonymous(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.UserID == "" || s.UserID != issuedFor || s.Token != "tok" || !s.ExpiresAt.Equal(exp) {
			t.Fatalf("unexpected session: %+v", s)
		}
	})
}
