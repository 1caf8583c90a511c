package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ignis_shield/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

// mockSessionRepo is a lightweight in-test mock for repository.SessionRepo.
type mockSessionRepo struct {
	CreateFn func(s models.Session) error
	GetFn    func(id string) (*models.Session, error)
	DeleteFn func(id string) error

	created []models.Session
	deleted []string
}

func (m *mockSessionRepo) Create(_ context.Context, s models.Session) error {
	m.created = append(m.created, s)
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(s)
}

func (m *mockSessionRepo) Get(_ context.Context, id string) (*models.Session, error) {
	return m.GetFn(id)
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(id)
}

// mockAuthBackend records calls made to the backend auth endpoints.
type mockAuthBackend struct {
	SignupFn func(in models.SignupRequest) (models.SignupResponse, error)
	LoginFn  func(in models.LoginRequest) (models.LoginResponse, error)

	signupCalls []models.SignupRequest
	loginCalls  []models.LoginRequest
}

func (m *mockAuthBackend) Signup(_ context.Context, in models.SignupRequest) (models.SignupResponse, error) {
	m.signupCalls = append(m.signupCalls, in)
	return m.SignupFn(in)
}

func (m *mockAuthBackend) Login(_ context.Context, in models.LoginRequest) (models.LoginResponse, error) {
	m.loginCalls = append(m.loginCalls, in)
	return m.LoginFn(in)
}

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func okLogin(in models.LoginRequest) (models.LoginResponse, error) {
	return models.LoginResponse{
		AccessToken: "ignisshield::" + in.Email + "::1",
		TokenType:   "bearer",
		ExpiresIn:   3600,
		User:        models.User{ID: "u1", Name: "Demo", Email: in.Email},
	}, nil
}

func newTestAuthService(repo *mockSessionRepo, be *mockAuthBackend) *AuthService {
	return NewAuthService(repo, be, "test-key", clockwork.NewFakeClockAt(testNow))
}

// --- SignIn tests ---

func TestAuthService_SignIn_PersistsTokenAndUser(t *testing.T) {
	repo := &mockSessionRepo{}
	be := &mockAuthBackend{LoginFn: okLogin}
	svc := newTestAuthService(repo, be)

	sess, err := svc.SignIn(context.Background(), "demo@example.com", "password")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(repo.created))
	}
	stored := repo.created[0]
	if stored.Token != "ignisshield::demo@example.com::1" {
		t.Errorf("stored token: got %q", stored.Token)
	}
	if stored.User.Email != "demo@example.com" || stored.User.ID != "u1" {
		t.Errorf("stored user: got %+v", stored.User)
	}
	if !stored.CreatedAt.Equal(testNow) {
		t.Errorf("created_at: got %v, want %v", stored.CreatedAt, testNow)
	}
	if stored.ID == "" || sess.ID != stored.ID {
		t.Errorf("session id mismatch: returned %q, stored %q", sess.ID, stored.ID)
	}
}

func TestAuthService_SignIn_BackendErrorIsReturnedUnchanged(t *testing.T) {
	backendErr := errors.New(`{"error": "Invalid credentials"}`)
	repo := &mockSessionRepo{}
	be := &mockAuthBackend{LoginFn: func(models.LoginRequest) (models.LoginResponse, error) {
		return models.LoginResponse{}, backendErr
	}}
	svc := newTestAuthService(repo, be)

	_, err := svc.SignIn(context.Background(), "demo@example.com", "bad")
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("no session must be stored on failure")
	}
}

func TestAuthService_SignIn_EmptyTokenRejected(t *testing.T) {
	repo := &mockSessionRepo{}
	be := &mockAuthBackend{LoginFn: func(models.LoginRequest) (models.LoginResponse, error) {
		return models.LoginResponse{User: models.User{ID: "u1"}}, nil
	}}
	svc := newTestAuthService(repo, be)

	if _, err := svc.SignIn(context.Background(), "a@b", "password"); err == nil {
		t.Fatalf("expected error for empty access token")
	}
	if len(repo.created) != 0 {
		t.Fatalf("no session must be stored without a token")
	}
}

// --- SignUp tests ---

func TestAuthService_SignUp_ValidationHappensBeforeBackend(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"email without at sign", "demo.example.com", "password", ErrInvalidEmail},
		{"empty email", "", "password", ErrInvalidEmail},
		{"short password", "demo@example.com", "12345", ErrPasswordTooShort},
		{"empty password", "demo@example.com", "", ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			be := &mockAuthBackend{
				SignupFn: func(models.SignupRequest) (models.SignupResponse, error) {
					t.Fatal("Signup should not be called")
					return models.SignupResponse{}, nil
				},
				LoginFn: func(models.LoginRequest) (models.LoginResponse, error) {
					t.Fatal("Login should not be called")
					return models.LoginResponse{}, nil
				},
			}
			svc := newTestAuthService(&mockSessionRepo{}, be)

			_, err := svc.SignUp(context.Background(), "Demo", tc.email, tc.password)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAuthService_SignUp_RegistersThenSignsIn(t *testing.T) {
	repo := &mockSessionRepo{}
	be := &mockAuthBackend{
		SignupFn: func(in models.SignupRequest) (models.SignupResponse, error) {
			return models.SignupResponse{OK: true, User: models.User{ID: "u2", Name: in.Name, Email: in.Email}}, nil
		},
		LoginFn: okLogin,
	}
	svc := newTestAuthService(repo, be)

	sess, err := svc.SignUp(context.Background(), "Demo User", "demo2@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if len(be.signupCalls) != 1 || be.signupCalls[0].Name != "Demo User" {
		t.Fatalf("unexpected signup calls: %+v", be.signupCalls)
	}
	if len(be.loginCalls) != 1 || be.loginCalls[0].Password != "secret1" {
		t.Fatalf("unexpected login calls: %+v", be.loginCalls)
	}
	if sess.Token == "" || len(repo.created) != 1 {
		t.Fatalf("expected a stored session with token, got %+v", sess)
	}
}

func TestAuthService_SignUp_BackendErrorStopsBeforeLogin(t *testing.T) {
	be := &mockAuthBackend{
		SignupFn: func(models.SignupRequest) (models.SignupResponse, error) {
			return models.SignupResponse{}, errors.New(`{"error": "Email already registered"}`)
		},
		LoginFn: func(models.LoginRequest) (models.LoginResponse, error) {
			t.Fatal("Login should not be called")
			return models.LoginResponse{}, nil
		},
	}
	svc := newTestAuthService(&mockSessionRepo{}, be)

	if _, err := svc.SignUp(context.Background(), "Demo", "demo@example.com", "password"); err == nil {
		t.Fatalf("expected error")
	}
}

// --- Lookup / SignOut tests ---

func TestAuthService_Lookup(t *testing.T) {
	stored := &models.Session{ID: "sid", Token: "tok", User: models.User{Name: "Demo"}}
	cases := []struct {
		name    string
		id      string
		getFn   func(id string) (*models.Session, error)
		wantErr error
		anyErr  bool
	}{
		{"empty id", "", nil, ErrNoSession, false},
		{"missing", "sid", func(string) (*models.Session, error) { return nil, nil }, ErrNoSession, false},
		{"no token", "sid", func(string) (*models.Session, error) { return &models.Session{ID: "sid"}, nil }, ErrNoSession, false},
		{"repo error", "sid", func(string) (*models.Session, error) { return nil, errors.New("db down") }, nil, true},
		{"found", "sid", func(string) (*models.Session, error) { return stored, nil }, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockSessionRepo{GetFn: func(id string) (*models.Session, error) {
				if tc.getFn == nil {
					t.Fatal("Get should not be called")
				}
				return tc.getFn(id)
			}}
			svc := newTestAuthService(repo, &mockAuthBackend{})

			got, err := svc.Lookup(context.Background(), tc.id)
			switch {
			case tc.anyErr:
				if err == nil {
					t.Fatalf("expected error")
				}
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got %v, want %v", err, tc.wantErr)
				}
			default:
				if err != nil || got != stored {
					t.Fatalf("got (%v, %v), want stored session", got, err)
				}
			}
		})
	}
}

func TestAuthService_SignOut_DeletesSession(t *testing.T) {
	repo := &mockSessionRepo{}
	svc := newTestAuthService(repo, &mockAuthBackend{})

	if err := svc.SignOut(context.Background(), "sid"); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if err := svc.SignOut(context.Background(), ""); err != nil {
		t.Fatalf("SignOut(empty): %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "sid" {
		t.Fatalf("unexpected deletes: %v", repo.deleted)
	}
}

// --- cookie token tests ---

func TestAuthService_GenerateAndParseToken(t *testing.T) {
	svc := newTestAuthService(&mockSessionRepo{}, &mockAuthBackend{})

	tok, err := svc.GenerateToken("sid-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	sid, err := svc.ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if sid != "sid-42" {
		t.Fatalf("got %q, want %q", sid, "sid-42")
	}
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	svc := newTestAuthService(&mockSessionRepo{}, &mockAuthBackend{})
	other := NewAuthService(&mockSessionRepo{}, &mockAuthBackend{}, "other-key", clockwork.NewFakeClockAt(testNow))
	foreign, _ := other.GenerateToken("sid")

	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "sid"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{}).SignedString([]byte("test-key"))

	for name, tok := range map[string]string{
		"garbage":    "not-a-jwt",
		"wrong key":  foreign,
		"none alg":   noneAlg,
		"empty":      "",
		"no subject": noSubject,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.ParseToken(tok); err == nil {
				t.Fatalf("expected error for %s token", name)
			}
		})
	}
}

func TestValidateSignup(t *testing.T) {
	if err := ValidateSignup("a@b", "123456"); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	// six runes, more than six bytes
	if err := ValidateSignup("a@b", "pässwö"); err != nil {
		t.Fatalf("password length must count characters: %v", err)
	}
	// three emoji are six UTF-16 units
	if err := ValidateSignup("a@b", "🔥🔥🔥"); err != nil {
		t.Fatalf("astral characters count as two units: %v", err)
	}
	if err := ValidateSignup("a@b", "🔥🔥"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("two emoji: got %v, want ErrPasswordTooShort", err)
	}
}
