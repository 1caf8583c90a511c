package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ignis_shield/internal/logger"
	"ignis_shield/internal/models"
	"ignis_shield/internal/observability"

	"github.com/google/uuid"
)

// Backend endpoint paths.
const (
	pathSignup   = "/auth/signup"
	pathLogin    = "/auth/login"
	pathPredict  = "/predict"
	pathAlert    = "/alert"
	pathFirms    = "/realtime/firms"
	pathProfiles = "/realtime/profiles"
)

const maxErrorBody = 64 << 10 // 64 KB

// Client talks JSON to the IgnisShield backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	log        *logger.Logger
}

// NewClient creates a backend client. metrics and log may be nil.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
		log:        log,
	}
}

func (c *Client) Signup(ctx context.Context, in models.SignupRequest) (models.SignupResponse, error) {
	var out models.SignupResponse
	err := c.do(ctx, http.MethodPost, pathSignup, in, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, in models.LoginRequest) (models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.do(ctx, http.MethodPost, pathLogin, in, &out)
	return out, err
}

func (c *Client) Predict(ctx context.Context, in models.PredictRequest) (models.PredictResponse, error) {
	var out models.PredictResponse
	err := c.do(ctx, http.MethodPost, pathPredict, in, &out)
	return out, err
}

func (c *Client) Alert(ctx context.Context, in models.AlertRequest) (models.AlertResponse, error) {
	var out models.AlertResponse
	err := c.do(ctx, http.MethodPost, pathAlert, in, &out)
	return out, err
}

// Firms fetches hotspots for a monitoring profile. The backend may dispatch
// alerts as a side effect; see FirmsResponse.AlertsSent.
func (c *Client) Firms(ctx context.Context, in models.FirmsRequest) (models.FirmsResponse, error) {
	var out models.FirmsResponse
	err := c.do(ctx, http.MethodPost, pathFirms, in, &out)
	return out, err
}

func (c *Client) Profiles(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	err := c.do(ctx, http.MethodGet, pathProfiles, nil, &out)
	return out, err
}

func (c *Client) CreateProfile(ctx context.Context, in models.CreateProfileRequest) (models.Profile, error) {
	var out models.Profile
	err := c.do(ctx, http.MethodPost, pathProfiles, in, &out)
	return out, err
}

// do sends one request and decodes a 2xx JSON body into out. Any other
// status becomes an *Error carrying the response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (err error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		if c.metrics != nil {
			c.metrics.BackendRequests.WithLabelValues(path, outcome).Inc()
			c.metrics.BackendDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
		}
	}()

	req, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		outcome = "network_error"
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = "network_error"
		if c.log != nil {
			c.log.Warnw("backend_request_failed", "method", method, "path", path, "err", err)
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "http_error"
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if c.log != nil {
			c.log.Infow("backend_request_rejected", "method", method, "path", path, "status", resp.StatusCode)
		}
		return newError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		outcome = "network_error"
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}
