package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevSessionSecret signs session cookies when SESSION_SECRET is unset.
const DevSessionSecret = "ignis-shield-dev-secret"

// Config holds all front-end settings. Values come from configs/config.yml,
// a .env file, and the environment, in increasing order of precedence.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	Backend   BackendConfig
	Map       MapConfig
	Session   SessionConfig
	DB        DBConfig
	Server    ServerConfig
	RateLimit RateLimitConfig
}

type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// MapConfig positions the realtime hotspot map.
type MapConfig struct {
	TileURL     string
	Attribution string
	CenterLat   float64
	CenterLon   float64
	Zoom        int
}

type SessionConfig struct {
	Secret     string
	CookieName string
	Secure     bool
	// DevSecret is true when Secret fell back to DevSessionSecret.
	DevSecret bool
}

type DBConfig struct {
	Path string
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

type RateLimitConfig struct {
	AuthRPS   float64
	AuthBurst int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("backend.url", "http://localhost:8000")
	v.SetDefault("backend.timeout", "15s")

	v.SetDefault("map.tile_url", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("map.attribution", "&copy; OpenStreetMap contributors")
	v.SetDefault("map.center_lat", 36.5)
	v.SetDefault("map.center_lon", -119.5)
	v.SetDefault("map.zoom", 6)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_name", "ignis_session")
	v.SetDefault("session.secure", false)

	v.SetDefault("db.path", "sessions.db")

	v.SetDefault("server.read_header_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("ratelimit.auth_rps", 5.0)
	v.SetDefault("ratelimit.auth_burst", 10)
}

// Load reads configuration from configDir/config.yml (optional), .env
// (optional) and environment variables. Environment keys are the config keys
// upper-cased with dots replaced by underscores, e.g. BACKEND_URL.
func Load(configDir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:      v.GetString("port"),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		Backend: BackendConfig{
			URL:     strings.TrimRight(v.GetString("backend.url"), "/"),
			Timeout: v.GetDuration("backend.timeout"),
		},
		Map: MapConfig{
			TileURL:     v.GetString("map.tile_url"),
			Attribution: v.GetString("map.attribution"),
			CenterLat:   v.GetFloat64("map.center_lat"),
			CenterLon:   v.GetFloat64("map.center_lon"),
			Zoom:        v.GetInt("map.zoom"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("session.secret"),
			CookieName: v.GetString("session.cookie_name"),
			Secure:     v.GetBool("session.secure"),
		},
		DB: DBConfig{Path: v.GetString("db.path")},
		Server: ServerConfig{
			ReadHeaderTimeout: v.GetDuration("server.read_header_timeout"),
			WriteTimeout:      v.GetDuration("server.write_timeout"),
			IdleTimeout:       v.GetDuration("server.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("server.shutdown_timeout"),
		},
		RateLimit: RateLimitConfig{
			AuthRPS:   v.GetFloat64("ratelimit.auth_rps"),
			AuthBurst: v.GetInt("ratelimit.auth_burst"),
		},
	}

	if cfg.Session.Secret == "" {
		cfg.Session.Secret = DevSessionSecret
		cfg.Session.DevSecret = true
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid BACKEND_URL %q: must be an absolute http(s) URL", c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("invalid BACKEND_TIMEOUT: must be positive")
	}
	if c.Map.TileURL == "" {
		return errors.New("MAP_TILE_URL is required")
	}
	if c.Session.CookieName == "" {
		return errors.New("SESSION_COOKIE_NAME is required")
	}
	if c.RateLimit.AuthRPS <= 0 || c.RateLimit.AuthBurst <= 0 {
		return errors.New("invalid RATELIMIT_AUTH_RPS/RATELIMIT_AUTH_BURST: must be positive")
	}
	return nil
}
