package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ignis_shield/internal/models"
)

const highRiskAlertSubject = "High Fire Risk Alert"

var (
	ErrAlertIncomplete = errors.New("subject and message are required")
	ErrAlertSource     = errors.New("source must be predict or realtime")
)

type PredictionService struct {
	backend PredictBackend
}

func NewPredictionService(backend PredictBackend) *PredictionService {
	return &PredictionService{backend: backend}
}

func (s *PredictionService) Predict(ctx context.Context, in models.PredictRequest) (models.PredictResponse, error) {
	return s.backend.Predict(ctx, in)
}

// SendHighRiskAlert asks the backend to notify its default recipients about a
// HIGH prediction.
func (s *PredictionService) SendHighRiskAlert(ctx context.Context, probability float64) (models.AlertResponse, error) {
	return s.backend.Alert(ctx, models.AlertRequest{
		Subject: highRiskAlertSubject,
		Message: fmt.Sprintf("Predicted HIGH risk with probability %.3f", probability),
		Source:  models.AlertSourcePredict,
	})
}

// SendAlert dispatches a caller-composed alert. Without recipients the
// backend falls back to its default list.
func (s *PredictionService) SendAlert(ctx context.Context, in models.AlertRequest) (models.AlertResponse, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if in.Subject == "" || in.Message == "" {
		return models.AlertResponse{}, ErrAlertIncomplete
	}
	if in.Source != models.AlertSourcePredict && in.Source != models.AlertSourceRealtime {
		return models.AlertResponse{}, ErrAlertSource
	}
	return s.backend.Alert(ctx, in)
}
