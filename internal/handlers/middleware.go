package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"ignis_shield/internal/backend"
	"ignis_shield/internal/models"
	"ignis_shield/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxSessionKey = "session"

	sessionMaxAge = 365 * 24 * 60 * 60
)

var errNoCookie = errors.New("no session cookie")

// sessionMiddleware guards the pages: without a live session the browser is
// sent to the login page.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	sess, err := h.loadSession(c)
	if err != nil {
		h.logGuardFailure(c, err)
		if !errors.Is(err, errNoCookie) {
			h.clearSessionCookie(c)
		}
		c.Redirect(http.StatusFound, pathLogin)
		c.Abort()
		return
	}
	h.attachSession(c, sess)
	c.Next()
}

// apiSessionMiddleware is sessionMiddleware for the JSON API.
func (h *Handler) apiSessionMiddleware(c *gin.Context) {
	sess, err := h.loadSession(c)
	if err != nil {
		h.logGuardFailure(c, err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "not signed in"})
		return
	}
	h.attachSession(c, sess)
	c.Next()
}

// loadSession resolves the session cookie to a stored session holding a token.
func (h *Handler) loadSession(c *gin.Context) (*models.Session, error) {
	cookie, err := c.Cookie(h.settings.CookieName)
	if err != nil || cookie == "" {
		return nil, errNoCookie
	}
	sessionID, err := h.services.ParseToken(cookie)
	if err != nil {
		return nil, err
	}
	return h.services.Lookup(c.Request.Context(), sessionID)
}

// attachSession stores the session in the gin context and its bearer token in
// the request context, where the backend client picks it up.
func (h *Handler) attachSession(c *gin.Context, sess *models.Session) {
	c.Set(ctxSessionKey, sess)
	c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), sess.Token))
}

func (h *Handler) logGuardFailure(c *gin.Context, err error) {
	if h.log == nil || errors.Is(err, errNoCookie) || errors.Is(err, service.ErrNoSession) {
		return
	}
	h.log.Infow("session_rejected", "path", c.Request.URL.Path, "err", err)
}

func currentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.Session)
	return sess
}

func currentUser(c *gin.Context) *models.User {
	if sess := currentSession(c); sess != nil {
		return &sess.User
	}
	return nil
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.settings.CookieName, token, sessionMaxAge, "/", "", h.settings.SecureCookie, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.settings.CookieName, "", -1, "/", "", h.settings.SecureCookie, true)
}

// observe records request metrics and logs every request.
func (h *Handler) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()

	if m := h.settings.Metrics; m != nil {
		m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
	if h.log == nil {
		return
	}
	fields := []interface{}{
		"method", c.Request.Method,
		"route", route,
		"status", status,
		"duration", time.Since(start),
	}
	if status >= http.StatusInternalServerError {
		h.log.Warnw("http_request_failed", fields...)
		return
	}
	h.log.Debugw("http_request", fields...)
}
