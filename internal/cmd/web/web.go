// Package web parses web service flags and launches the service.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/retina.care/internal/platform/cmd"
	"github.com/louisbranch/retina.care/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"RETINA_WEB_HTTP_ADDR" envDefault:":8080"`
	APIBaseURL          string        `env:"RETINA_WEB_API_BASE_URL" envDefault:"http://localhost:5000"`
	BasePath            string        `env:"RETINA_WEB_BASE_PATH"`
	SessionDBPath       string        `env:"RETINA_WEB_SESSION_DB_PATH" envDefault:"data/web-sessions.db"`
	SessionTTL          time.Duration `env:"RETINA_WEB_SESSION_TTL" envDefault:"24h"`
	PageSize            int           `env:"RETINA_WEB_PAGE_SIZE" envDefault:"10"`
	RequestTimeout      time.Duration `env:"RETINA_WEB_REQUEST_TIMEOUT" envDefault:"15s"`
	TrustForwardedProto bool          `env:"RETINA_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
	LoginRateLimit      int           `env:"RETINA_WEB_LOGIN_RATE_PER_MINUTE" envDefault:"20"`
	MetricsEnabled      bool          `env:"RETINA_WEB_METRICS_ENABLED" envDefault:"true"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Backend REST API base URL")
	fs.StringVar(&cfg.BasePath, "base-path", cfg.BasePath, "URL path the app is served under")
	fs.StringVar(&cfg.SessionDBPath, "session-db-path", cfg.SessionDBPath, "Web session SQLite database path")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Maximum web session lifetime")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "Rows per table page")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "Backend API request timeout")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto and X-Forwarded-For from a proxy")
	fs.IntVar(&cfg.LoginRateLimit, "login-rate-per-minute", cfg.LoginRateLimit, "Account form posts allowed per client per minute; 0 disables")
	fs.BoolVar(&cfg.MetricsEnabled, "metrics", cfg.MetricsEnabled, "Serve Prometheus metrics on /metrics")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.PageSize < 0 {
		return Config{}, fmt.Errorf("page size must not be negative, got %d", cfg.PageSize)
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			APIBaseURL:          cfg.APIBaseURL,
			BasePath:            cfg.BasePath,
			SessionDBPath:       cfg.SessionDBPath,
			SessionTTL:          cfg.SessionTTL,
			PageSize:            cfg.PageSize,
			RequestTimeout:      cfg.RequestTimeout,
			TrustForwardedProto: cfg.TrustForwardedProto,
			LoginRateLimit:      cfg.LoginRateLimit,
			MetricsEnabled:      cfg.MetricsEnabled,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
