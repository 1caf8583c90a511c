package handlers

import (
	"net/http"

	"ignis_shield/internal/models"
	"ignis_shield/internal/views"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every JSON error reply.
type ErrorResponse struct {
	Error string `json:"error" example:"not signed in"`
}

// PredictResult is a prediction plus the theme the page would show for it.
type PredictResult struct {
	models.PredictResponse
	Theme views.RiskTheme `json:"theme"`
}

// FirmsRequest selects the saved profile to fetch hotspots for.
type FirmsRequest struct {
	ProfileID string `json:"profile_id" binding:"required" example:"p-1"`
}

// FirmsResult is the backend's hotspot answer plus map markers.
type FirmsResult struct {
	models.FirmsResponse
	Markers []views.Marker `json:"markers"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logFailure("api_bad_request_body", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	h.logFailure(logKey, err, kv...)
	c.JSON(failureStatus(err), ErrorResponse{Error: userMessage(err, http.StatusText(failureStatus(err)))})
}

// @Summary      Current user
// @Tags         session
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  ErrorResponse
// @Router       /api/v1/me [get]
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// @Summary      Predict fire risk
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        body  body      models.PredictRequest  true  "Weather and vegetation readings"
// @Success      200   {object}  PredictResult
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /api/v1/predict [post]
func (h *Handler) apiPredict(c *gin.Context) {
	var in models.PredictRequest
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}

	res, err := h.services.Predict(c.Request.Context(), in)
	if err != nil {
		h.logAndJSONError(c, "predict_failed", err)
		return
	}
	c.JSON(http.StatusOK, PredictResult{PredictResponse: res, Theme: views.ThemeFor(res.Risk)})
}

// @Summary      Dispatch an alert
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        body  body      models.AlertRequest  true  "Alert; recipients default to the backend's list"
// @Success      200   {object}  models.AlertResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /api/v1/alert [post]
func (h *Handler) apiAlert(c *gin.Context) {
	var in models.AlertRequest
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}

	res, err := h.services.SendAlert(c.Request.Context(), in)
	if err != nil {
		h.logAndJSONError(c, "alert_failed", err, "source", in.Source)
		return
	}
	h.countAlert(res.OK)
	c.JSON(http.StatusOK, res)
}

// @Summary      List monitoring profiles
// @Tags         realtime
// @Produce      json
// @Success      200  {array}   models.Profile
// @Failure      401  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /api/v1/realtime/profiles [get]
func (h *Handler) apiProfiles(c *gin.Context) {
	profiles, err := h.services.Profiles(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "profiles_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// @Summary      Create a monitoring profile
// @Tags         realtime
// @Accept       json
// @Produce      json
// @Param        body  body      models.CreateProfileRequest  true  "Profile; blank user rows are dropped"
// @Success      201   {object}  models.Profile
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /api/v1/realtime/profiles [post]
func (h *Handler) apiCreateProfile(c *gin.Context) {
	var in models.CreateProfileRequest
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}

	p, err := h.services.CreateProfile(c.Request.Context(), in)
	if err != nil {
		h.logAndJSONError(c, "profile_create_failed", err, "project", in.ProjectName)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary      Fetch hotspots for a profile
// @Description  Alerts are dispatched by the backend when hotspots cross its threshold.
// @Tags         realtime
// @Accept       json
// @Produce      json
// @Param        body  body      FirmsRequest  true  "Profile to monitor"
// @Success      200   {object}  FirmsResult
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /api/v1/realtime/firms [post]
func (h *Handler) apiFirms(c *gin.Context) {
	var in FirmsRequest
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}

	res, err := h.services.Monitor(c.Request.Context(), in.ProfileID)
	if err != nil {
		h.logAndJSONError(c, "monitor_failed", err, "profile_id", in.ProfileID)
		return
	}
	h.countAlert(res.Firms.AlertsSent)
	c.JSON(http.StatusOK, FirmsResult{FirmsResponse: res.Firms, Markers: views.Markers(res.Firms.Hotspots)})
}
