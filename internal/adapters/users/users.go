// Package users implements the account collaborator behind the auth
// endpoints: registration, login, and token validation. Passwords are
// bcrypt-hashed; tokens are opaque and resolved in memory.
package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Default account configuration constants.
const (
	defaultTokenTTL = 24 * time.Hour
)

// Credentials is what a successful register or login hands back.
type Credentials struct {
	Token  string
	UserID string
}

// Registry stores accounts and their live tokens.
type Registry struct {
	mu       sync.RWMutex
	byEmail  map[string]*account
	byToken  map[string]token
	tokenTTL time.Duration
	now      func() time.Time
}

type account struct {
	id           string
	name         string
	passwordHash []byte
}

type token struct {
	userID  string
	expires time.Time
}

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithTokenTTL sets how long issued tokens stay valid.
func WithTokenTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.tokenTTL = ttl
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry creates an empty account registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byEmail:  make(map[string]*account),
		byToken:  make(map[string]token),
		tokenTTL: defaultTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register creates an account and issues a first token. Returns
// ErrEmailTaken when the email is already registered.
func (r *Registry) Register(_ context.Context, email, password, name string) (Credentials, error) {
	email = normalizeEmail(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credentials{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[email]; taken {
		return Credentials{}, ErrEmailTaken
	}
	acct := &account{
		id:           uuid.NewString(),
		name:         name,
		passwordHash: hash,
	}
	r.byEmail[email] = acct
	return r.issueLocked(acct), nil
}

// Login verifies the password and issues a fresh token. Returns
// ErrInvalidCredentials for unknown emails and wrong passwords alike.
func (r *Registry) Login(_ context.Context, email, password string) (Credentials, error) {
	email = normalizeEmail(email)

	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.byEmail[email]
	if !ok {
		return Credentials{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return Credentials{}, ErrInvalidCredentials
	}
	return r.issueLocked(acct), nil
}

// Authenticate resolves a bearer token to a user ID. Returns ErrInvalidToken
// for unknown or expired tokens.
func (r *Registry) Authenticate(_ context.Context, tok string) (string, error) {
	r.mu.RLock()
	t, ok := r.byToken[tok]
	r.mu.RUnlock()
	if !ok || r.now().After(t.expires) {
		return "", ErrInvalidToken
	}
	return t.userID, nil
}

// Count returns the number of registered accounts.
func (r *Registry) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byEmail)
}

func (r *Registry) issueLocked(acct *account) Credentials {
	tok := uuid.NewString()
	r.byToken[tok] = token{
		userID:  acct.id,
		expires: r.now().Add(r.tokenTTL),
	}
	return Credentials{Token: tok, UserID: acct.id}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
