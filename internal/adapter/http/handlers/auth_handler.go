package handlers

import (
	"errors"
	"net/http"

	"instala_control/internal/usecase"
	"instala_control/pkg"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

// StartAnonymous godoc
// @Summary  Open an anonymous session; the token scopes every other call
// @Tags     auth
// @Success  201 {object} usecase.Session
// @Router   /auth/anonymous [post]
func (h *AuthHandler) StartAnonymous(c *gin.Context) {
	session, err := h.usecase.StartAnonymous(c.Request.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrTokenIssuerNotConfigured) {
			abortWith(c, pkg.NewDomainErrorSimple("AUTH_UNAVAILABLE", "Sessions are not configured", http.StatusServiceUnavailable))
			return
		}
		abortWith(c, mapCommonError(err))
		return
	}
	c.JSON(http.StatusCreated, session)
}
