package handlers

import (
	"net/http"

	"ignis_shield/internal/views"

	"github.com/gin-gonic/gin"
)

const (
	chartWidth  = 560
	chartHeight = 260
)

func (h *Handler) dashboard(c *gin.Context) {
	h.render(c, http.StatusOK, "dashboard", dashboardPage{
		page:     page{Title: "Dashboard", User: currentUser(c)},
		Cards:    views.DashboardCards,
		Activity: views.RecentActivity,
		Chart:    views.LineChart(views.MonthlyStats, chartWidth, chartHeight),
	})
}
