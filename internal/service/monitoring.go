package service

import (
	"context"
	"errors"
	"strings"

	"ignis_shield/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

// MonitorResult is one hotspot fetch for a profile.
type MonitorResult struct {
	Profile models.Profile
	Firms   models.FirmsResponse
}

type MonitoringService struct {
	backend RealtimeBackend
}

func NewMonitoringService(backend RealtimeBackend) *MonitoringService {
	return &MonitoringService{backend: backend}
}

func (s *MonitoringService) Profiles(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.backend.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return profiles, nil
}

// Profile finds a saved profile by id. The backend only lists profiles, so
// this is a scan of the list.
func (s *MonitoringService) Profile(ctx context.Context, id string) (models.Profile, error) {
	profiles, err := s.backend.Profiles(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	for _, p := range profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Profile{}, ErrProfileNotFound
}

// CreateProfile saves a profile. Fields are trimmed and user rows with no
// name, email or phone are dropped.
func (s *MonitoringService) CreateProfile(ctx context.Context, in models.CreateProfileRequest) (models.Profile, error) {
	req := models.CreateProfileRequest{
		ProjectName: strings.TrimSpace(in.ProjectName),
		APIKey:      strings.TrimSpace(in.APIKey),
		Users:       CleanUsers(in.Users),
	}
	return s.backend.CreateProfile(ctx, req)
}

// Monitor fetches hotspots for the profile. The backend dispatches alerts on
// its own when hotspots cross its threshold.
func (s *MonitoringService) Monitor(ctx context.Context, profileID string) (MonitorResult, error) {
	p, err := s.Profile(ctx, profileID)
	if err != nil {
		return MonitorResult{}, err
	}
	users := p.Users
	if users == nil {
		users = []models.RealtimeUser{}
	}
	res, err := s.backend.Firms(ctx, models.FirmsRequest{
		ProjectName: p.ProjectName,
		APIKey:      p.APIKey,
		Users:       users,
	})
	if err != nil {
		return MonitorResult{}, err
	}
	return MonitorResult{Profile: p, Firms: res}, nil
}

// CleanUsers trims every field and drops rows left entirely blank. The
// result is never nil.
func CleanUsers(users []models.RealtimeUser) []models.RealtimeUser {
	out := make([]models.RealtimeUser, 0, len(users))
	for _, u := range users {
		u.Name = strings.TrimSpace(u.Name)
		u.Email = strings.TrimSpace(u.Email)
		u.Phone = strings.TrimSpace(u.Phone)
		if u.Name == "" && u.Email == "" && u.Phone == "" {
			continue
		}
		out = append(out, u)
	}
	return out
}
