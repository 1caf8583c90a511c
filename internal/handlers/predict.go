package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ignis_shield/internal/models"
	"ignis_shield/internal/views"

	"github.com/gin-gonic/gin"
)

const (
	msgPredictFailed = "Prediction failed"
	msgAlertFailed   = "Alert failed"
	msgInvalidInput  = "Enter numeric values for every field"
	msgNotHighRisk   = "Alerts can only be sent for a HIGH risk prediction"
)

var errMissingField = errors.New("missing form field")

var predictFields = []string{"temperature", "humidity", "wind_speed", "vegetation_index"}

type predictForm struct {
	Temperature     float64 `form:"temperature"`
	Humidity        float64 `form:"humidity"`
	WindSpeed       float64 `form:"wind_speed"`
	VegetationIndex float64 `form:"vegetation_index"`
}

var defaultPredictForm = predictForm{
	Temperature:     32,
	Humidity:        20,
	WindSpeed:       12,
	VegetationIndex: 0.7,
}

func (f predictForm) request() models.PredictRequest {
	return models.PredictRequest{
		Temperature:     f.Temperature,
		Humidity:        f.Humidity,
		WindSpeed:       f.WindSpeed,
		VegetationIndex: f.VegetationIndex,
	}
}

// bindPredictForm requires every field to be present and non-blank; the form
// binder would otherwise turn an empty value into 0.
func bindPredictForm(c *gin.Context) (predictForm, error) {
	var form predictForm
	for _, name := range predictFields {
		if strings.TrimSpace(c.PostForm(name)) == "" {
			return form, fmt.Errorf("%w: %s", errMissingField, name)
		}
	}
	err := c.ShouldBind(&form)
	return form, err
}

func (h *Handler) predictPage(c *gin.Context) {
	h.render(c, http.StatusOK, "predict", predictPage{
		page:  page{Title: "Predict", User: currentUser(c)},
		Input: defaultPredictForm,
	})
}

func (h *Handler) predict(c *gin.Context) {
	data := predictPage{
		page:  page{Title: "Predict", User: currentUser(c)},
		Input: defaultPredictForm,
	}

	form, err := bindPredictForm(c)
	if err != nil {
		h.logFailure("predict_bad_request_body", err)
		data.Error = msgInvalidInput
		h.render(c, http.StatusBadRequest, "predict", data)
		return
	}
	data.Input = form

	res, err := h.services.Predict(c.Request.Context(), form.request())
	if err != nil {
		h.logFailure("predict_failed", err)
		data.Error = userMessage(err, msgPredictFailed)
		h.render(c, failureStatus(err), "predict", data)
		return
	}

	data.Result = &res
	data.Theme = views.ThemeFor(res.Risk)
	data.Bars = views.ImportanceBars(res.FeatureImportance)
	h.render(c, http.StatusOK, "predict", data)
}

// predictAlert re-runs the prediction for the submitted inputs and only
// dispatches the alert when the backend confirms HIGH risk. The inputs stay
// filled in and the fresh result is shown alongside the outcome.
func (h *Handler) predictAlert(c *gin.Context) {
	data := predictPage{
		page:  page{Title: "Predict", User: currentUser(c)},
		Input: defaultPredictForm,
	}

	form, err := bindPredictForm(c)
	if err != nil {
		h.logFailure("alert_bad_request_body", err)
		data.Error = msgInvalidInput
		h.render(c, http.StatusBadRequest, "predict", data)
		return
	}
	data.Input = form

	ctx := c.Request.Context()
	pred, err := h.services.Predict(ctx, form.request())
	if err != nil {
		h.logFailure("alert_predict_failed", err)
		data.Error = userMessage(err, msgPredictFailed)
		h.render(c, failureStatus(err), "predict", data)
		return
	}
	data.Result = &pred
	data.Theme = views.ThemeFor(pred.Risk)
	data.Bars = views.ImportanceBars(pred.FeatureImportance)

	if pred.Risk != models.RiskHigh {
		data.Error = msgNotHighRisk
		h.render(c, http.StatusBadRequest, "predict", data)
		return
	}

	res, err := h.services.SendHighRiskAlert(ctx, pred.Probability)
	if err != nil {
		h.logFailure("alert_failed", err, "probability", pred.Probability)
		data.Error = userMessage(err, msgAlertFailed)
		h.render(c, failureStatus(err), "predict", data)
		return
	}

	h.countAlert(res.OK)
	data.Notice = fmt.Sprintf("Alert dispatched (%d delivered)", res.DeliveredCount)
	h.render(c, http.StatusOK, "predict", data)
}

func (h *Handler) countAlert(sent bool) {
	if sent && h.settings.Metrics != nil {
		h.settings.Metrics.AlertsSent.Inc()
	}
}
