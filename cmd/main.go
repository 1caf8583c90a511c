package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	_ "ignis_shield/docs"
	"ignis_shield/internal/backend"
	"ignis_shield/internal/config"
	"ignis_shield/internal/handlers"
	"ignis_shield/internal/logger"
	"ignis_shield/internal/observability"
	"ignis_shield/internal/repository"
	"ignis_shield/internal/repository/db"
	"ignis_shield/internal/server"
	"ignis_shield/internal/service"
	"ignis_shield/internal/views"

	"github.com/jonboulle/clockwork"
)

const configDir = "configs"

func main() {
	// load configs/config.yml, .env and the environment
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.Options{Level: logger.InfoLevel}).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = log.Sync() }()

	if cfg.Session.DevSecret {
		log.Warnw("SESSION_SECRET not set; using the development secret")
	}

	// open session store
	sessionDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sessionDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	metrics := observability.NewMetrics()
	repos := repository.NewRepository(sessionDB, repository.NewSealer(cfg.Session.Secret))
	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, metrics, log)
	services := service.NewService(repos, client, cfg.Session.Secret, clockwork.NewRealClock())
	apiHandler := handlers.NewHandler(services, log, handlerSettings(cfg, metrics))

	log.Infow("starting",
		"port", cfg.Port,
		"backend", cfg.Backend.URL,
		"db", cfg.DB.Path,
	)

	// start HTTP server
	srv := server.New(server.Timeouts{
		ReadHeader: cfg.Server.ReadHeaderTimeout,
		Write:      cfg.Server.WriteTimeout,
		Idle:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, cfg, log)
}

// openDB initializes the SQLite session store using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	dbPath := cfg.DB.Path
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "sessions.db")
		dbPath = "sessions.db"
	}
	return db.InitDB(dbPath)
}

func handlerSettings(cfg *config.Config, metrics *observability.Metrics) handlers.Settings {
	mapSettings := views.DefaultMapSettings()
	mapSettings.TileURL = cfg.Map.TileURL
	if cfg.Map.Attribution != "" {
		mapSettings.Attribution = cfg.Map.Attribution
	}
	mapSettings.CenterLat = cfg.Map.CenterLat
	mapSettings.CenterLon = cfg.Map.CenterLon
	mapSettings.Zoom = cfg.Map.Zoom

	return handlers.Settings{
		CookieName:   cfg.Session.CookieName,
		SecureCookie: cfg.Session.Secure,
		Map:          mapSettings,
		AuthRPS:      cfg.RateLimit.AuthRPS,
		AuthBurst:    cfg.RateLimit.AuthBurst,
		Metrics:      metrics,
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, cfg *config.Config, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
