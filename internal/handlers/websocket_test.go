package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"ignis_shield/internal/models"
	"ignis_shield/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// dialRealtime serves the socket behind the session middleware and dials it
// with the mock session's cookie.
func dialRealtime(t *testing.T, deps *testDeps, settings Settings, profileID string) *websocket.Conn {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(deps.service(), nil, settings)
	r.GET("/realtime/ws", h.sessionMiddleware, h.realtimeSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/realtime/ws"
	q := u.Query()
	q.Set("profile", profileID)
	u.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("Cookie", defaultCookieName+"="+testCookieToken)

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), header)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func TestRealtimeSocket_PushOnConnectAndPerRefresh(t *testing.T) {
	deps := newTestDeps()
	deps.monitor.profiles = []models.Profile{caWatch}
	deps.monitor.firms = models.FirmsResponse{
		OK: true,
		Hotspots: []models.Hotspot{
			{ID: "h1", Latitude: 36.2, Longitude: -119.1, Brightness: 341.2},
			{ID: "h2", Latitude: 36.9, Longitude: -120.3, Brightness: 312},
		},
	}
	conn := dialRealtime(t, deps, Settings{}, "p-1")

	env := readEnvelope(t, conn)
	if env.Type != "hotspots" {
		t.Fatalf("first message: %+v", env)
	}
	var payload hotspotsPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Markers) != 2 || payload.Markers[0].Variant != "hot" || payload.Markers[1].Variant != "default" {
		t.Fatalf("markers: %+v", payload.Markers)
	}
	if payload.AlertsSent || payload.Notice != "" {
		t.Fatalf("no alerts expected: %+v", payload)
	}

	// unknown and malformed messages are ignored
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`not json`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.WriteJSON(wsEnvelope{Type: "subscribe"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.WriteJSON(wsEnvelope{Type: "refresh"}); err != nil {
		t.Fatalf("write refresh: %v", err)
	}

	env = readEnvelope(t, conn)
	if env.Type != "hotspots" {
		t.Fatalf("after refresh: %+v", env)
	}

	// nothing else arrives without another refresh
	_ = conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	var extra envelope
	if err := conn.ReadJSON(&extra); err == nil {
		t.Fatalf("unexpected message: %+v", extra)
	}
}

func TestRealtimeSocket_AlertNotice(t *testing.T) {
	deps := newTestDeps()
	deps.monitor.profiles = []models.Profile{caWatch}
	hot := models.Hotspot{ID: "h1", Brightness: 350}
	deps.monitor.firms = models.FirmsResponse{OK: true, Hotspots: []models.Hotspot{hot}, AlertsSent: true, TriggeredHotspots: []models.Hotspot{hot}}
	metrics := observability.NewMetricsForTesting()
	conn := dialRealtime(t, deps, Settings{Metrics: metrics}, "p-1")

	var payload hotspotsPayload
	if err := json.Unmarshal(readEnvelope(t, conn).Data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Notice != "Alerts dispatched for 1 hotspots" || len(payload.TriggeredHotspots) != 1 {
		t.Fatalf("payload: %+v", payload)
	}
	if got := testutil.ToFloat64(metrics.AlertsSent); got != 1 {
		t.Fatalf("alerts counter=%v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.ActiveSockets); got != 1 {
		t.Fatalf("active sockets=%v, want 1", got)
	}
}

func TestRealtimeSocket_FetchErrorKeepsConnection(t *testing.T) {
	deps := newTestDeps()
	conn := dialRealtime(t, deps, Settings{}, "missing")

	env := readEnvelope(t, conn)
	if env.Type != "error" || env.Error != "profile not found" {
		t.Fatalf("expected error envelope, got %+v", env)
	}

	if err := conn.WriteJSON(wsEnvelope{Type: "refresh"}); err != nil {
		t.Fatalf("write refresh: %v", err)
	}
	if env := readEnvelope(t, conn); env.Type != "error" {
		t.Fatalf("expected a second error envelope, got %+v", env)
	}
}

func TestRealtimeSocket_RequiresProfile(t *testing.T) {
	r := newTestRouter(newTestDeps().service())

	w := serve(r, withSession(httptest.NewRequest(http.MethodGet, "/realtime/ws", nil)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
}
