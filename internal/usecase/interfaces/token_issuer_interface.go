package interfaces

import "time"

// ITokenIssuer signs and verifies the bearer tokens that scope every request
// to one user.
type ITokenIssuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
	Parse(token string) (userID string, err error)
}
