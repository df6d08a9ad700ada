package middleware

import (
	"log"
	"net/http"
	"strings"

	"instala_control/internal/usecase/interfaces"
	"instala_control/pkg"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid session token", http.StatusUnauthorized)

// AccessTokenParam carries the session token for clients that cannot set
// headers (EventSource).
const AccessTokenParam = "access_token"

// RequireSession resolves the bearer token into the user partition every
// handler works on. Only the Authorization header is read.
func RequireSession(issuer interfaces.ITokenIssuer) gin.HandlerFunc {
	return requireSession(issuer, false)
}

// RequireStreamSession also accepts the token from the access_token query
// parameter. Mount it on the event stream only.
func RequireStreamSession(issuer interfaces.ITokenIssuer) gin.HandlerFunc {
	return requireSession(issuer, true)
}

func requireSession(issuer interfaces.ITokenIssuer, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && allowQuery {
			token = c.Query(AccessTokenParam)
		}
		if token == "" {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		userID, err := issuer.Parse(token)
		if err != nil {
			log.Printf("[auth][middleware] token rejected path=%s err=%v", c.FullPath(), err)
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the user resolved by RequireSession, or "".
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// WithUserID is used by tests and by routes that resolve the user some
// other way.
func WithUserID(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
