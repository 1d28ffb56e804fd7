package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"preowned/catalog/internal/config"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNoSession = errors.New("no valid session")

// Gate is the authentication boundary in front of the admin operations. It is
// an injected capability; the catalog core never looks inside it.
type Gate struct {
	cfg      config.AdminConfig
	sessions SessionStore
}

func NewGate(cfg config.AdminConfig, sessions SessionStore) *Gate {
	return &Gate{
		cfg:      cfg,
		sessions: sessions,
	}
}

// Login verifies the credential against the configured salt+hash and issues a
// session token on success.
func (g *Gate) Login(ctx context.Context, username, password string) (string, error) {
	if g.cfg.Username == "" || g.cfg.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.cfg.Username)) == 1
	passOK := VerifyPassword(password, g.cfg.PasswordSalt, g.cfg.PasswordHash)
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	ttl := time.Duration(g.cfg.SessionTTL) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	return g.sessions.Create(ctx, ttl)
}

// Require returns nil only for a live session token.
func (g *Gate) Require(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoSession
	}
	ok, err := g.sessions.Valid(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSession
	}
	return nil
}

func (g *Gate) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return g.sessions.Revoke(ctx, token)
}
