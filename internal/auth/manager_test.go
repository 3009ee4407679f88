package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/sessionstore"
)

type userRepoFake struct {
	users map[string]*domain.User
}

func newUserRepoFake() *userRepoFake {
	return &userRepoFake{users: map[string]*domain.User{}}
}

func (f *userRepoFake) Create(_ context.Context, user *domain.User) error {
	if _, exists := f.users[user.Email]; exists {
		return domain.WrapError(domain.ErrConflict, "create user", fmt.Errorf("duplicate"))
	}
	copyUser := *user
	f.users[user.Email] = &copyUser
	return nil
}

func (f *userRepoFake) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get user", fmt.Errorf("no user %s", email))
	}
	copyUser := *user
	return &copyUser, nil
}

func (f *userRepoFake) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copyUser := *user
			return &copyUser, nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "get user", fmt.Errorf("no user %s", username))
}

func newTestManager(t *testing.T) (*Manager, *userRepoFake) {
	t.Helper()
	repo := newUserRepoFake()
	manager := NewManager(repo, sessionstore.NewMemory(), "test-secret", time.Hour)
	return manager, repo
}

func registerAndLogin(t *testing.T, manager *Manager) *domain.Session {
	t.Helper()
	ctx := context.Background()
	err := manager.Register(ctx, domain.User{
		Username: "ada",
		Email:    "ada@example.com",
		FullName: "Ada Lovelace",
	}, "hunter22")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	session, err := manager.Login(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	return session
}

func TestLoginIssuesUsableSession(t *testing.T) {
	manager, _ := newTestManager(t)
	session := registerAndLogin(t, manager)

	if session.Token == "" || session.Username != "ada" {
		t.Fatalf("session = %+v", session)
	}
	if !manager.IsAuthenticated(context.Background(), session.Token) {
		t.Fatalf("expected IsAuthenticated true immediately after login")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	manager, _ := newTestManager(t)
	registerAndLogin(t, manager)

	_, err := manager.Login(context.Background(), "ada@example.com", "wrong")
	if !domain.IsKind(err, domain.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestLogoutClearsStateBeforeReturn(t *testing.T) {
	manager, _ := newTestManager(t)
	session := registerAndLogin(t, manager)
	ctx := context.Background()

	if err := manager.Logout(ctx, session.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if manager.IsAuthenticated(ctx, session.Token) {
		t.Fatalf("expected IsAuthenticated false after logout")
	}
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestIsTokenExpiredPolicy(t *testing.T) {
	manager, _ := newTestManager(t)

	past := signedToken(t, "test-secret", jwt.MapClaims{"sub": "x", "exp": time.Now().Add(-time.Hour).Unix()})
	future := signedToken(t, "test-secret", jwt.MapClaims{"sub": "x", "exp": time.Now().Add(time.Hour).Unix()})
	noExp := signedToken(t, "test-secret", jwt.MapClaims{"sub": "x"})

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	badClaims := header + ".!!!notbase64!!!.sig"
	badJSON := header + "." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig"

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"past exp", past, true},
		{"future exp", future, false},
		{"missing exp never expires", noExp, false},
		{"not jwt shaped", "just-a-string", true},
		{"two segments", "a.b", true},
		{"claims not base64", badClaims, true},
		{"claims not json", badJSON, true},
		{"empty", "", true},
	}
	for _, tc := range cases {
		if got := manager.IsTokenExpired(tc.token); got != tc.want {
			t.Errorf("%s: IsTokenExpired = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestExpiredTokenIsClearedOnAuthenticate(t *testing.T) {
	manager, _ := newTestManager(t)
	session := registerAndLogin(t, manager)

	manager.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	ctx := context.Background()

	if _, err := manager.Authenticate(ctx, session.Token); !domain.IsKind(err, domain.ErrAuth) {
		t.Fatalf("expected ErrAuth for expired token, got %v", err)
	}

	// Even with the clock restored, the session is gone from the store.
	manager.now = time.Now
	if _, err := manager.Authenticate(ctx, session.Token); err == nil {
		t.Fatalf("expected cleared session to stay invalid")
	}
}

func TestAuthenticateRejectsForgedSignature(t *testing.T) {
	manager, _ := newTestManager(t)
	registerAndLogin(t, manager)

	forged := signedToken(t, "other-secret", jwt.MapClaims{
		"sub": "ada",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := manager.Authenticate(context.Background(), forged); !domain.IsKind(err, domain.ErrAuth) {
		t.Fatalf("expected ErrAuth for forged token, got %v", err)
	}
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	manager, _ := newTestManager(t)
	err := manager.Register(context.Background(), domain.User{Username: "x"}, "")
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestClaimsRoundTrip(t *testing.T) {
	manager, _ := newTestManager(t)
	session := registerAndLogin(t, manager)

	parts := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parts.ParseUnverified(session.Token, claims); err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	raw, _ := json.Marshal(claims)
	decoded := map[string]any{}
	_ = json.Unmarshal(raw, &decoded)
	if decoded["sub"] != "ada" || decoded["email"] != "ada@example.com" {
		t.Fatalf("claims = %v", decoded)
	}
}
