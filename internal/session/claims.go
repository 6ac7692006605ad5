package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what we can read out of a JWT access token without verifying it.
// Opaque (non-JWT) tokens yield no claims.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt *time.Time
}

// Claims decodes the access token payload locally. The signature is NOT
// checked: this exists for status display only, never for authorization.
func (s *Store) Claims() (*Claims, error) {
	tok := s.AccessToken()
	if tok == "" {
		return nil, fmt.Errorf("not logged in")
	}
	if strings.Count(tok, ".") != 2 {
		return nil, fmt.Errorf("opaque token (cannot introspect locally)")
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, mc); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	c := &Claims{}
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if email, ok := mc["email"].(string); ok {
		c.Email = email
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		c.ExpiresAt = &t
	}
	return c, nil
}
