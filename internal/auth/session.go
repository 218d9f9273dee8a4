// Package auth holds the bearer token for the life of the process.
// Nothing is written to disk: quitting the program signs the user out.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned by Claims for tokens that are not JWTs.
var ErrOpaqueToken = errors.New("opaque token")

const (
	SourceEnv   = "env"   // TODOODOO_TOKEN
	SourceLogin = "login" // POST /login in this process
)

type Session struct {
	Token  string
	Source string
}

// New returns nil when token is blank.
func New(token, source string) *Session {
	token = StripBearer(strings.TrimSpace(token))
	if token == "" {
		return nil
	}
	return &Session{Token: token, Source: source}
}

// FromEnv wraps a token supplied through the environment.
func FromEnv(token string) *Session { return New(token, SourceEnv) }

func StripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}

// Claims is what whoami shows. Decoded without verifying the signature:
// only the server can do that.
type Claims struct {
	Subject   string
	Issuer    string
	ExpiresAt *time.Time
}

func (s *Session) Claims() (*Claims, error) {
	if s == nil {
		return nil, fmt.Errorf("no session")
	}
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, mc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpaqueToken, err)
	}

	c := &Claims{}
	c.Subject, _ = mc.GetSubject()
	if c.Subject == "" {
		c.Subject, _ = mc["username"].(string)
	}
	c.Issuer, _ = mc.GetIssuer()
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		c.ExpiresAt = &t
	}
	return c, nil
}

// Label names the signed-in user when the token says who it is.
func (s *Session) Label() string {
	if c, err := s.Claims(); err == nil && c.Subject != "" {
		return c.Subject
	}
	return "signed in"
}
