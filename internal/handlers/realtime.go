package handlers

import (
	"fmt"
	"net/http"

	"ignis_shield/internal/models"
	"ignis_shield/internal/views"

	"github.com/gin-gonic/gin"
)

const (
	actionAddUser = "add_user"

	msgSaveProfileFailed = "Saving the profile failed"
	msgMonitorFailed     = "Fetching hotspots failed"
)

func defaultDraft() models.CreateProfileRequest {
	return models.CreateProfileRequest{
		ProjectName: "CA Watch",
		Users: []models.RealtimeUser{
			{Name: "Alice", Email: "alice@example.com", Phone: "+1555"},
		},
	}
}

// alertsNotice is the banner shown after a fetch that triggered alerts.
func alertsNotice(res models.FirmsResponse) string {
	if !res.AlertsSent {
		return ""
	}
	return fmt.Sprintf("Alerts dispatched for %d hotspots", len(res.TriggeredHotspots))
}

func (h *Handler) realtimePage(c *gin.Context) {
	data := realtimePage{
		page:     page{Title: "Realtime", User: currentUser(c)},
		Profiles: h.loadProfiles(c),
	}
	if c.Query("new") != "" {
		data.Creating = true
		data.Draft = defaultDraft()
	}
	h.render(c, http.StatusOK, "realtime", data)
}

// loadProfiles lists saved profiles. A failed load is logged and shown as
// an empty list.
func (h *Handler) loadProfiles(c *gin.Context) []models.Profile {
	profiles, err := h.services.Profiles(c.Request.Context())
	if err != nil {
		h.logFailure("profiles_load_failed", err)
		return []models.Profile{}
	}
	return profiles
}

// createProfile handles the creation form. The "add_user" action re-renders
// the form with one more empty user row; anything else saves.
func (h *Handler) createProfile(c *gin.Context) {
	draft := profileDraft(c)

	if c.PostForm("action") == actionAddUser {
		draft.Users = append(draft.Users, models.RealtimeUser{})
		h.render(c, http.StatusOK, "realtime", realtimePage{
			page:     page{Title: "Realtime", User: currentUser(c)},
			Profiles: h.loadProfiles(c),
			Creating: true,
			Draft:    draft,
		})
		return
	}

	if _, err := h.services.CreateProfile(c.Request.Context(), draft); err != nil {
		h.logFailure("profile_create_failed", err, "project", draft.ProjectName)
		h.render(c, failureStatus(err), "realtime", realtimePage{
			page:     page{Title: "Realtime", User: currentUser(c), Error: userMessage(err, msgSaveProfileFailed)},
			Profiles: h.loadProfiles(c),
			Creating: true,
			Draft:    draft,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, pathRealtime)
}

// profileDraft reads the creation form. User rows arrive as parallel
// user_name/user_email/user_phone arrays.
func profileDraft(c *gin.Context) models.CreateProfileRequest {
	names := c.PostFormArray("user_name")
	emails := c.PostFormArray("user_email")
	phones := c.PostFormArray("user_phone")

	rows := max(len(names), len(emails), len(phones))
	users := make([]models.RealtimeUser, 0, rows)
	for i := 0; i < rows; i++ {
		users = append(users, models.RealtimeUser{
			Name:  at(names, i),
			Email: at(emails, i),
			Phone: at(phones, i),
		})
	}
	return models.CreateProfileRequest{
		ProjectName: c.PostForm("project_name"),
		APIKey:      c.PostForm("api_key"),
		Users:       users,
	}
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func (h *Handler) monitor(c *gin.Context) {
	profileID := c.Param("id")

	res, err := h.services.Monitor(c.Request.Context(), profileID)
	if err != nil {
		h.logFailure("monitor_failed", err, "profile_id", profileID)
		h.render(c, failureStatus(err), "realtime", realtimePage{
			page:     page{Title: "Realtime", User: currentUser(c), Error: userMessage(err, msgMonitorFailed)},
			Profiles: h.loadProfiles(c),
		})
		return
	}
	h.countAlert(res.Firms.AlertsSent)

	h.render(c, http.StatusOK, "monitor", monitorPage{
		page:    page{Title: res.Profile.ProjectName, User: currentUser(c), Notice: alertsNotice(res.Firms)},
		Profile: res.Profile,
		Markers: views.Markers(res.Firms.Hotspots),
		Map:     h.mapFor(res.Profile.ID),
	})
}

func (h *Handler) mapFor(profileID string) views.MapSettings {
	m := h.settings.Map
	m.ProfileID = profileID
	return m
}

