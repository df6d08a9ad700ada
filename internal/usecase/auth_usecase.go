package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"instala_control/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrTokenIssuerNotConfigured = errors.New("token issuer not configured")

// Session is an anonymous identity: a fresh user id and the token proving it.
type Session struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type IAuthUseCase interface {
	StartAnonymous(ctx context.Context) (Session, error)
}

type AuthUseCase struct {
	issuer interfaces.ITokenIssuer
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(issuer interfaces.ITokenIssuer) *AuthUseCase {
	return &AuthUseCase{issuer: issuer}
}

func (u *AuthUseCase) StartAnonymous(_ context.Context) (Session, error) {
	if u.issuer == nil {
		return Session{}, ErrTokenIssuerNotConfigured
	}
	userID := uuid.NewString()
	token, exp, err := u.issuer.Issue(userID)
	if err != nil {
		log.Printf("[auth][usecase] issue failed err=%v", err)
		return Session{}, err
	}
	log.Printf("[auth][usecase] anonymous session user_id=%s expires_at=%s", userID, exp.Format(time.RFC3339))
	return Session{UserID: userID, Token: token, ExpiresAt: exp}, nil
}
