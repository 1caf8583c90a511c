package handlers

import (
	"net/http"

	"ignis_shield/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultLoginEmail  = "demo@example.com"
	defaultSignupName  = "Demo User"
	defaultSignupEmail = "demo2@example.com"

	msgLoginFailed  = "Login failed"
	msgSignupFailed = "Signup failed"
)

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type signupForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *Handler) loginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login", loginPage{
		page:  page{Title: "Login"},
		Email: defaultLoginEmail,
	})
}

func (h *Handler) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.logFailure("auth_bad_request_body", err)
		h.render(c, http.StatusBadRequest, "login", loginPage{
			page:  page{Title: "Login", Error: msgLoginFailed},
			Email: form.Email,
		})
		return
	}

	sess, err := h.services.SignIn(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		h.logFailure("auth_sign_in_failed", err, "email", form.Email)
		h.render(c, failureStatus(err), "login", loginPage{
			page:  page{Title: "Login", Error: userMessage(err, msgLoginFailed)},
			Email: form.Email,
		})
		return
	}

	if !h.startSession(c, sess) {
		h.render(c, http.StatusInternalServerError, "login", loginPage{
			page:  page{Title: "Login", Error: msgLoginFailed},
			Email: form.Email,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, pathDashboard)
}

func (h *Handler) signupPage(c *gin.Context) {
	h.render(c, http.StatusOK, "signup", signupPage{
		page:  page{Title: "Sign up"},
		Name:  defaultSignupName,
		Email: defaultSignupEmail,
	})
}

func (h *Handler) signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		h.logFailure("auth_bad_request_body", err)
		h.render(c, http.StatusBadRequest, "signup", signupPage{
			page: page{Title: "Sign up", Error: msgSignupFailed},
		})
		return
	}

	sess, err := h.services.SignUp(c.Request.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		h.logFailure("auth_sign_up_failed", err, "email", form.Email)
		h.render(c, failureStatus(err), "signup", signupPage{
			page:  page{Title: "Sign up", Error: userMessage(err, msgSignupFailed)},
			Name:  form.Name,
			Email: form.Email,
		})
		return
	}

	if !h.startSession(c, sess) {
		h.render(c, http.StatusInternalServerError, "signup", signupPage{
			page:  page{Title: "Sign up", Error: msgSignupFailed},
			Name:  form.Name,
			Email: form.Email,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, pathDashboard)
}

// logout forgets the stored session whether or not the cookie still
// resolves to one.
func (h *Handler) logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.settings.CookieName); err == nil && cookie != "" {
		if sessionID, err := h.services.ParseToken(cookie); err == nil {
			if err := h.services.SignOut(c.Request.Context(), sessionID); err != nil {
				h.logFailure("auth_sign_out_failed", err)
			}
		}
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, pathLogin)
}

// startSession hands the browser a cookie naming sess. When no cookie can be
// issued the stored session is dropped again.
func (h *Handler) startSession(c *gin.Context, sess *models.Session) bool {
	token, err := h.services.GenerateToken(sess.ID)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("auth_generate_token_failed", "err", err)
		}
		if err := h.services.SignOut(c.Request.Context(), sess.ID); err != nil && h.log != nil {
			h.log.Warnw("auth_discard_session_failed", "err", err)
		}
		return false
	}
	h.setSessionCookie(c, token)
	return true
}
