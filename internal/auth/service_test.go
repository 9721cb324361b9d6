package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tontonphone/storefront-backend/pkg/config"
	"github.com/tontonphone/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
	"github.com/tontonphone/storefront-backend/pkg/security"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User

	lastLogin time.Time
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	repo := &stubUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
	for _, u := range users {
		repo.byEmail[u.Email] = u
		repo.byID[u.ID] = u
	}
	return repo
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.lastLogin = at
	return nil
}

type stubSessions struct {
	started []string
	revoked []string
}

func (s *stubSessions) Start(ctx context.Context, accessID string) error {
	s.started = append(s.started, accessID)
	return nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "issuer",
		ExpirationMinutes: 60,
		SessionTTLMinutes: 120,
	}
}

func seedUser(t *testing.T, email, password string) *models.User {
	t.Helper()

	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Name:         "Samir",
		Email:        email,
		PasswordHash: hash,
	}
}

func newTestAuthService(t *testing.T, repo *stubUserRepo, sessions *stubSessions) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginSuccessStartsSession(t *testing.T) {
	user := seedUser(t, "samir@example.com", "hunter2-hunter2")
	sessions := &stubSessions{}
	svc := newTestAuthService(t, newStubUserRepo(user), sessions)

	res, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Samir@Example.com ",
		Password: "hunter2-hunter2",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if res.AccessToken == "" {
		t.Fatal("expected a minted access token")
	}
	if res.User == nil || res.User.Email != "samir@example.com" {
		t.Fatalf("unexpected user payload: %+v", res.User)
	}
	if len(sessions.started) != 1 {
		t.Fatalf("expected one session start, got %d", len(sessions.started))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := seedUser(t, "samir@example.com", "hunter2-hunter2")
	svc := newTestAuthService(t, newStubUserRepo(user), &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "samir@example.com",
		Password: "not-the-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmailIsIndistinguishable(t *testing.T) {
	user := seedUser(t, "samir@example.com", "hunter2-hunter2")
	svc := newTestAuthService(t, newStubUserRepo(user), &stubSessions{})

	_, wrongPass := svc.Login(context.Background(), LoginRequest{
		Email:    "samir@example.com",
		Password: "nope-nope-nope",
	})
	_, unknown := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "nope-nope-nope",
	})

	a, b := pkgerrors.As(wrongPass), pkgerrors.As(unknown)
	if a == nil || b == nil {
		t.Fatalf("expected typed errors, got %v and %v", wrongPass, unknown)
	}
	if a.Code() != b.Code() || a.Message() != b.Message() {
		t.Fatal("bad password and unknown email must fail identically")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessions{}
	svc := newTestAuthService(t, newStubUserRepo(), sessions)

	if err := svc.Logout(context.Background(), "session-abc"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "session-abc" {
		t.Fatalf("expected session revoked, got %v", sessions.revoked)
	}

	// revoking again is a no-op at the session layer
	if err := svc.Logout(context.Background(), "session-abc"); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestMeUnknownUser(t *testing.T) {
	svc := newTestAuthService(t, newStubUserRepo(), &stubSessions{})

	_, err := svc.Me(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
