package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"ignis_shield/internal/backend"
	"ignis_shield/internal/models"
	"ignis_shield/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

const testCookieToken = "cookie-token"

type mockAuth struct {
	sessions map[string]*models.Session

	signInSess *models.Session
	signInErr  error
	signUpSess *models.Session
	signUpErr  error
	genErr     error

	signInCalls int
	signUpCalls int
	lastEmail   string
	lastName    string
	signedOut   []string
}

// newMockAuth knows one session, "s1", reachable through testCookieToken.
func newMockAuth() *mockAuth {
	sess := &models.Session{
		ID:    "s1",
		Token: "backend-token",
		User:  models.User{ID: "u1", Name: "Demo User", Email: "demo@example.com"},
	}
	return &mockAuth{
		sessions:   map[string]*models.Session{"s1": sess},
		signInSess: sess,
		signUpSess: sess,
	}
}

func (m *mockAuth) SignUp(ctx context.Context, name, email, password string) (*models.Session, error) {
	m.signUpCalls++
	m.lastName = name
	m.lastEmail = email
	if err := service.ValidateSignup(email, password); err != nil {
		return nil, err
	}
	return m.signUpSess, m.signUpErr
}

func (m *mockAuth) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	m.signInCalls++
	m.lastEmail = email
	return m.signInSess, m.signInErr
}

func (m *mockAuth) SignOut(ctx context.Context, sessionID string) error {
	m.signedOut = append(m.signedOut, sessionID)
	delete(m.sessions, sessionID)
	return nil
}

func (m *mockAuth) Lookup(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, ok := m.sessions[sessionID]
	if !ok || sess.Token == "" {
		return nil, service.ErrNoSession
	}
	return sess, nil
}

func (m *mockAuth) GenerateToken(sessionID string) (string, error) {
	if m.genErr != nil {
		return "", m.genErr
	}
	return "tok-" + sessionID, nil
}

func (m *mockAuth) ParseToken(cookieToken string) (string, error) {
	switch {
	case cookieToken == testCookieToken:
		return "s1", nil
	case strings.HasPrefix(cookieToken, "tok-"):
		return strings.TrimPrefix(cookieToken, "tok-"), nil
	default:
		return "", service.ErrInvalidToken
	}
}

type mockPrediction struct {
	resp     models.PredictResponse
	err      error
	alert    models.AlertResponse
	alertErr error

	lastPredict     models.PredictRequest
	lastProbability float64
	lastAlert       models.AlertRequest
	lastToken       string
	predictCalls    int
	highRiskAlerts  int
}

func (m *mockPrediction) Predict(ctx context.Context, in models.PredictRequest) (models.PredictResponse, error) {
	m.predictCalls++
	m.lastPredict = in
	m.lastToken = backend.TokenFrom(ctx)
	return m.resp, m.err
}

func (m *mockPrediction) SendHighRiskAlert(ctx context.Context, probability float64) (models.AlertResponse, error) {
	m.highRiskAlerts++
	m.lastProbability = probability
	return m.alert, m.alertErr
}

func (m *mockPrediction) SendAlert(ctx context.Context, in models.AlertRequest) (models.AlertResponse, error) {
	m.lastAlert = in
	return m.alert, m.alertErr
}

type mockMonitoring struct {
	profiles    []models.Profile
	profilesErr error
	created     models.Profile
	createErr   error
	firms       models.FirmsResponse
	monitorErr  error

	lastCreate   models.CreateProfileRequest
	monitorCalls int
	lastToken    string
}

func (m *mockMonitoring) Profiles(ctx context.Context) ([]models.Profile, error) {
	return m.profiles, m.profilesErr
}

func (m *mockMonitoring) Profile(ctx context.Context, id string) (models.Profile, error) {
	for _, p := range m.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Profile{}, service.ErrProfileNotFound
}

func (m *mockMonitoring) CreateProfile(ctx context.Context, in models.CreateProfileRequest) (models.Profile, error) {
	m.lastCreate = in
	return m.created, m.createErr
}

func (m *mockMonitoring) Monitor(ctx context.Context, profileID string) (service.MonitorResult, error) {
	m.monitorCalls++
	m.lastToken = backend.TokenFrom(ctx)
	if m.monitorErr != nil {
		return service.MonitorResult{}, m.monitorErr
	}
	p, err := m.Profile(ctx, profileID)
	if err != nil {
		return service.MonitorResult{}, err
	}
	return service.MonitorResult{Profile: p, Firms: m.firms}, nil
}

// ---- Shared Test Helpers ----

type testDeps struct {
	auth    *mockAuth
	predict *mockPrediction
	monitor *mockMonitoring
}

func newTestDeps() *testDeps {
	return &testDeps{
		auth:    newMockAuth(),
		predict: &mockPrediction{},
		monitor: &mockMonitoring{},
	}
}

func (d *testDeps) service() *service.Service {
	return &service.Service{Authorization: d.auth, Prediction: d.predict, Monitoring: d.monitor}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Settings{})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// withSession adds the cookie of the mock's "s1" session.
func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: defaultCookieName, Value: testCookieToken})
	return req
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// sessionCookie returns the session cookie set by a response, if any.
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == defaultCookieName {
			return c
		}
	}
	return nil
}
