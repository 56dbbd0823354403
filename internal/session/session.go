// Package session tracks logged-in principals. The browser holds a signed
// token naming a session id; the id must also be present in the Store, so
// logging out invalidates the token server side.
package session

import (
	"Go_Scan/model"
	"Go_Scan/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrNoSession = errors.New("no active session")
)

// Store persists sessions by id.
type Store interface {
	Save(ctx context.Context, p model.Principal, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (*model.Principal, error)
	Delete(ctx context.Context, sessionID string) error
}

type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: []byte(secret), ttl: ttl}
}

// TTL is the lifetime of new sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create opens a session for the user and returns the cookie token.
func (m *Manager) Create(ctx context.Context, user *model.User) (string, *model.Principal, error) {
	p := model.Principal{
		SessionID: uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.UserName,
	}
	if err := m.store.Save(ctx, p, m.ttl); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}
	token, err := utils.GenerateToken(m.secret, p, m.ttl)
	if err != nil {
		_ = m.store.Delete(ctx, p.SessionID)
		return "", nil, err
	}
	return token, &p, nil
}

// Resolve maps a cookie token to its principal, or ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, token string) (*model.Principal, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := utils.VerifyToken(m.secret, token)
	if err != nil {
		return nil, ErrNoSession
	}
	p, err := m.store.Load(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if p.UserID != claims.UserId {
		return nil, ErrNoSession
	}
	return p, nil
}

// Destroy ends the session behind the token. Unknown or invalid tokens are a no-op.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	claims, err := utils.VerifyToken(m.secret, token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.SessionID)
}
