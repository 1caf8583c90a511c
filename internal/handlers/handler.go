package handlers

import (
	"net/http"
	"strings"

	"ignis_shield/internal/logger"
	"ignis_shield/internal/observability"
	"ignis_shield/internal/service"
	"ignis_shield/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	pathLogin     = "/login"
	pathSignup    = "/signup"
	pathLogout    = "/logout"
	pathDashboard = "/dashboard"
	pathPredict   = "/predict"
	pathRealtime  = "/realtime"

	defaultCookieName = "ignis_session"
	defaultAuthRPS    = 5
	defaultAuthBurst  = 10
)

// Settings carries the HTTP-facing configuration.
type Settings struct {
	CookieName   string
	SecureCookie bool
	Map          views.MapSettings
	AuthRPS      float64
	AuthBurst    int
	// Metrics is optional; nil disables request and socket metrics.
	Metrics *observability.Metrics
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services    *service.Service
	log         *logger.Logger
	settings    Settings
	authLimiter *RateLimiter
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, settings Settings) *Handler {
	if settings.CookieName == "" {
		settings.CookieName = defaultCookieName
	}
	if settings.Map.TileURL == "" {
		settings.Map = views.DefaultMapSettings()
	}
	if settings.AuthRPS <= 0 {
		settings.AuthRPS = defaultAuthRPS
	}
	if settings.AuthBurst <= 0 {
		settings.AuthBurst = defaultAuthBurst
	}
	return &Handler{
		services:    services,
		log:         log,
		settings:    settings,
		authLimiter: NewRateLimiter(rate.Limit(settings.AuthRPS), settings.AuthBurst),
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.observe)
	router.SetHTMLTemplate(views.MustTemplates())

	router.StaticFS("/static", views.Static())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", redirectTo(pathDashboard))

	h.registerAuthRoutes(router)
	h.registerPageRoutes(router)
	h.registerAPIRoutes(router)

	router.NoRoute(h.notFound)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	limited := h.authLimiter.LimitMiddleware()

	r.GET(pathLogin, h.loginPage)
	r.POST(pathLogin, limited, h.login)
	r.GET(pathSignup, h.signupPage)
	r.POST(pathSignup, limited, h.signup)
	r.POST(pathLogout, h.logout)
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	pages := r.Group("", h.sessionMiddleware)
	{
		pages.GET(pathDashboard, h.dashboard)

		pages.GET(pathPredict, h.predictPage)
		pages.POST(pathPredict, h.predict)
		pages.POST(pathPredict+"/alert", h.predictAlert)

		realtime := pages.Group(pathRealtime)
		{
			realtime.GET("", h.realtimePage)
			realtime.POST("/profiles", h.createProfile)
			realtime.POST("/monitor/:id", h.monitor)
			realtime.GET("/ws", h.realtimeSocket)
		}
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.apiSessionMiddleware)
	{
		api.GET("/me", h.me)
		api.POST("/predict", h.apiPredict)
		api.POST("/alert", h.apiAlert)

		realtime := api.Group("/realtime")
		{
			realtime.GET("/profiles", h.apiProfiles)
			realtime.POST("/profiles", h.apiCreateProfile)
			realtime.POST("/firms", h.apiFirms)
		}
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// notFound sends page navigation to the dashboard; the guard takes over from
// there. API and non-GET requests get a plain 404.
func (h *Handler) notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}
	c.Redirect(http.StatusFound, pathDashboard)
}

func redirectTo(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, path)
	}
}
