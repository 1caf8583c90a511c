package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ignis_shield/internal/models"
	"ignis_shield/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB

	msgTypeRefresh  = "refresh"
	msgTypeHotspots = "hotspots"
	msgTypeError    = "error"
)

// Envelope used for WebSocket messages in both directions.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// hotspotsPayload is the data of a "hotspots" message.
type hotspotsPayload struct {
	Markers           []views.Marker   `json:"markers"`
	AlertsSent        bool             `json:"alerts_sent"`
	TriggeredHotspots []models.Hotspot `json:"triggered_hotspots"`
	Notice            string           `json:"notice,omitempty"`
}

// The zero CheckOrigin rejects cross-origin upgrades, which matters because
// the socket is authorised by the session cookie.
var upgrader = websocket.Upgrader{}

// realtimeSocket streams hotspots for one profile: one push right after the
// upgrade and one per {"type":"refresh"} from the client. Refreshes run one
// at a time on this loop; requests arriving meanwhile collapse into one.
func (h *Handler) realtimeSocket(c *gin.Context) {
	profileID := c.Query("profile")
	if profileID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "profile is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	if m := h.settings.Metrics; m != nil {
		m.ActiveSockets.Inc()
		defer m.ActiveSockets.Dec()
	}

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	refresh := make(chan struct{}, 1)
	refresh <- struct{}{}
	go h.readRefreshRequests(conn, refresh, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-refresh:
			if err := h.sendHotspots(ctx, conn, profileID); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// readRefreshRequests turns client refresh messages into signals on refresh
// and closes done when the connection goes away. Other messages are ignored.
func (h *Handler) readRefreshRequests(conn *websocket.Conn, refresh chan<- struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		var msg wsEnvelope
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != msgTypeRefresh {
			continue
		}
		select {
		case refresh <- struct{}{}:
		default:
		}
	}
}

// sendHotspots fetches hotspots and writes them with a write deadline. A
// failed fetch is reported to the client as an "error" message; only write
// failures end the connection.
func (h *Handler) sendHotspots(ctx context.Context, conn *websocket.Conn, profileID string) error {
	msg := wsEnvelope{Type: msgTypeHotspots}

	res, err := h.services.Monitor(ctx, profileID)
	if err != nil {
		h.logFailure("ws_monitor_failed", err, "profile_id", profileID)
		msg = wsEnvelope{Type: msgTypeError, Error: userMessage(err, msgMonitorFailed)}
	} else {
		h.countAlert(res.Firms.AlertsSent)
		triggered := res.Firms.TriggeredHotspots
		if triggered == nil {
			triggered = []models.Hotspot{}
		}
		msg.Data = hotspotsPayload{
			Markers:           views.Markers(res.Firms.Hotspots),
			AlertsSent:        res.Firms.AlertsSent,
			TriggeredHotspots: triggered,
			Notice:            alertsNotice(res.Firms),
		}
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
