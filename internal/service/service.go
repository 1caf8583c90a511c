package service

import (
	"context"

	"ignis_shield/internal/models"
	"ignis_shield/internal/repository"

	"github.com/jonboulle/clockwork"
)

// AuthBackend is the part of the backend API used for sign-in and sign-up.
type AuthBackend interface {
	Signup(ctx context.Context, in models.SignupRequest) (models.SignupResponse, error)
	Login(ctx context.Context, in models.LoginRequest) (models.LoginResponse, error)
}

// PredictBackend runs single-shot predictions and dispatches alerts.
type PredictBackend interface {
	Predict(ctx context.Context, in models.PredictRequest) (models.PredictResponse, error)
	Alert(ctx context.Context, in models.AlertRequest) (models.AlertResponse, error)
}

// RealtimeBackend manages monitoring profiles and fetches hotspots.
type RealtimeBackend interface {
	Firms(ctx context.Context, in models.FirmsRequest) (models.FirmsResponse, error)
	Profiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, in models.CreateProfileRequest) (models.Profile, error)
}

// Backend is the whole REST surface; *backend.Client implements it.
type Backend interface {
	AuthBackend
	PredictBackend
	RealtimeBackend
}

// Authorization signs users in through the backend and keeps the resulting
// token in the session store. Cookie tokens name a stored session.
type Authorization interface {
	SignUp(ctx context.Context, name, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context, sessionID string) error
	Lookup(ctx context.Context, sessionID string) (*models.Session, error)
	GenerateToken(sessionID string) (string, error)
	ParseToken(cookieToken string) (string, error)
}

// Prediction exposes the single-shot risk prediction and its follow-up alert.
type Prediction interface {
	Predict(ctx context.Context, in models.PredictRequest) (models.PredictResponse, error)
	SendHighRiskAlert(ctx context.Context, probability float64) (models.AlertResponse, error)
	SendAlert(ctx context.Context, in models.AlertRequest) (models.AlertResponse, error)
}

// Monitoring exposes saved profiles and hotspot fetches for one of them.
type Monitoring interface {
	Profiles(ctx context.Context) ([]models.Profile, error)
	Profile(ctx context.Context, id string) (models.Profile, error)
	CreateProfile(ctx context.Context, in models.CreateProfileRequest) (models.Profile, error)
	Monitor(ctx context.Context, profileID string) (MonitorResult, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Prediction
	Monitoring
}

// NewService wires the session store and backend client into concrete services.
func NewService(repos *repository.Repository, backend Backend, signingKey string, clock clockwork.Clock) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Sessions, backend, signingKey, clock),
		Prediction:    NewPredictionService(backend),
		Monitoring:    NewMonitoringService(backend),
	}
}
