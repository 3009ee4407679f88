// Package auth owns session state: issuing tokens on login, validating them
// on every guarded call, and clearing them on logout. It performs no network
// calls; persistence goes through the injected SessionStore.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
)

type Manager struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewManager(users ports.UserRepository, sessions ports.SessionStore, secret string, tokenTTL time.Duration) *Manager {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Manager{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

func (m *Manager) Register(ctx context.Context, user domain.User, password string) error {
	if strings.TrimSpace(user.Email) == "" || strings.TrimSpace(password) == "" {
		return domain.WrapError(domain.ErrValidation, "register", fmt.Errorf("email and password are required"))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if user.Username == "" {
		user.Username = user.Email
	}
	user.CreatedAt = m.now().UTC()
	return m.users.Create(ctx, &user)
}

// Login verifies credentials, issues a signed token and stores the session.
// The returned session is visible to IsAuthenticated immediately.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.WrapError(domain.ErrAuth, "login", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.WrapError(domain.ErrAuth, "login", fmt.Errorf("password mismatch"))
	}

	issuedAt := m.now().UTC()
	expiresAt := issuedAt.Add(m.tokenTTL)
	claims := jwt.MapClaims{
		"sub":   user.Username,
		"email": user.Email,
		"name":  user.FullName,
		"iat":   issuedAt.Unix(),
		"exp":   expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	session := &domain.Session{
		Token:     token,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.FullName,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
	if err := m.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

// Authenticate resolves a bearer token to its session. A token that fails
// the expiry check is cleared from the store before the error returns, so
// subsequent reads already see the logged-out state.
func (m *Manager) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.WrapError(domain.ErrAuth, "authenticate", fmt.Errorf("missing token"))
	}
	if m.IsTokenExpired(token) {
		_ = m.sessions.Clear(ctx, token)
		return nil, domain.WrapError(domain.ErrAuth, "authenticate", fmt.Errorf("token expired or malformed"))
	}
	if _, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})); err != nil {
		return nil, domain.WrapError(domain.ErrAuth, "authenticate", err)
	}
	session, err := m.sessions.Get(ctx, token)
	if err != nil {
		return nil, domain.WrapError(domain.ErrAuth, "authenticate", err)
	}
	return session, nil
}

// IsAuthenticated reports whether the token maps to a live session.
func (m *Manager) IsAuthenticated(ctx context.Context, token string) bool {
	_, err := m.Authenticate(ctx, token)
	return err == nil
}

// IsTokenExpired fails closed: a token that is not three dot-separated
// segments, or whose claims segment cannot be decoded, counts as expired.
// A well-formed token without an exp claim never expires.
func (m *Manager) IsTokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if expiry == nil {
		return false
	}
	return expiry.Before(m.now())
}

// Logout clears the session. The store reflects the logged-out state before
// Logout returns; any redirect is the caller's concern.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.sessions.Clear(ctx, token)
}

// Profile returns the stored user profile for a username.
func (m *Manager) Profile(ctx context.Context, username string) (*domain.User, error) {
	return m.users.GetByUsername(ctx, username)
}
