package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"

	"ignis_shield/internal/models"
	"ignis_shield/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const minPasswordLen = 6

// Errors whose text is shown to the user as-is.
var (
	ErrInvalidEmail     = errors.New("Enter a valid email")
	ErrPasswordTooShort = errors.New("Password min 6 chars")
	ErrNoSession        = errors.New("not signed in")
	ErrInvalidToken     = errors.New("invalid session token")

	errEmptyAccessToken = errors.New("login response carried no access token")
)

// AuthService handles sign-in/up against the backend and session bookkeeping.
type AuthService struct {
	sessions   repository.SessionRepo
	backend    AuthBackend
	signingKey []byte
	clock      clockwork.Clock
}

func NewAuthService(sessions repository.SessionRepo, backend AuthBackend, signingKey string, clock clockwork.Clock) *AuthService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AuthService{
		sessions:   sessions,
		backend:    backend,
		signingKey: []byte(signingKey),
		clock:      clock,
	}
}

// ValidateSignup applies the only checks made before the backend is called.
func ValidateSignup(email, password string) error {
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if passwordLength(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

// passwordLength counts UTF-16 code units, the length browsers report, so a
// character outside the BMP counts twice.
func passwordLength(password string) int {
	return len(utf16.Encode([]rune(password)))
}

// SignUp registers the account, then signs in with the same credentials.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*models.Session, error) {
	if err := ValidateSignup(email, password); err != nil {
		return nil, err
	}
	if _, err := s.backend.Signup(ctx, models.SignupRequest{Name: name, Email: email, Password: password}); err != nil {
		return nil, err
	}
	return s.SignIn(ctx, email, password)
}

// SignIn logs in through the backend and persists the token and user.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	res, err := s.backend.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, errEmptyAccessToken
	}

	sess := models.Session{
		ID:        uuid.NewString(),
		Token:     res.AccessToken,
		User:      res.User,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return &sess, nil
}

func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Lookup returns the stored session. A missing session or one without a
// token is ErrNoSession; token expiry is not checked.
func (s *AuthService) Lookup(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Token == "" {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Claims defines the session cookie claims.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs the session id into the cookie value. The cookie
// carries no expiry; a session lasts until sign-out.
func (s *AuthService) GenerateToken(sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  sessionID,
			IssuedAt: jwt.NewNumericDate(s.clock.Now()),
		},
	})
	return token.SignedString(s.signingKey)
}

// ParseToken verifies the cookie value and returns the session id.
func (s *AuthService) ParseToken(cookieToken string) (string, error) {
	token, err := jwt.ParseWithClaims(cookieToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
