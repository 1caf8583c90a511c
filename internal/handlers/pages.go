package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"ignis_shield/internal/backend"
	"ignis_shield/internal/models"
	"ignis_shield/internal/service"
	"ignis_shield/internal/views"

	"github.com/gin-gonic/gin"
)

// page is the part every template reads: the title, the signed-in user (nil
// on the auth pages) and one-line error and notice banners.
type page struct {
	Title  string
	User   *models.User
	Error  string
	Notice string
}

type loginPage struct {
	page
	Email string
}

type signupPage struct {
	page
	Name  string
	Email string
}

type dashboardPage struct {
	page
	Cards    []views.Card
	Activity []views.Activity
	Chart    views.Chart
}

type predictPage struct {
	page
	Input  predictForm
	Result *models.PredictResponse
	Theme  views.RiskTheme
	Bars   []views.Bar
}

type realtimePage struct {
	page
	Profiles []models.Profile
	Creating bool
	Draft    models.CreateProfileRequest
}

type monitorPage struct {
	page
	Profile models.Profile
	Markers []views.Marker
	Map     views.MapSettings
}

// render writes the named page template.
func (h *Handler) render(c *gin.Context, status int, name string, data any) {
	c.HTML(status, name, data)
}

// userMessage is the text shown for a failed action: the backend's own
// reason when it gave one, the fallback otherwise.
func userMessage(err error, fallback string) string {
	var be *backend.Error
	if errors.As(err, &be) {
		if msg := strings.TrimSpace(be.Message); msg != "" {
			return msg
		}
		return fallback
	}
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return fallback
	}
	return err.Error()
}

// failureStatus maps an action error to the status the re-rendered form is
// served with.
func failureStatus(err error) int {
	var (
		be *backend.Error
		ue *url.Error
	)
	switch {
	case errors.As(err, &be) && be.StatusCode >= 400 && be.StatusCode < 500:
		return be.StatusCode
	case errors.As(err, &be), errors.As(err, &ue):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrAlertIncomplete), errors.Is(err, service.ErrAlertSource):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrProfileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) logFailure(logKey string, err error, kv ...interface{}) {
	if h.log == nil || err == nil {
		return
	}
	fields := append([]interface{}{"err", err}, kv...)
	h.log.Infow(logKey, fields...)
}
