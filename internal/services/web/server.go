// Package web hosts the browser-facing retinal screening service: server
// rendered pages for patients, doctors, clinic managers and administrators,
// backed by the platform REST API.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/retina.care/internal/platform/timeouts"
	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/composition"
	"github.com/louisbranch/retina.care/internal/services/web/i18n"
	"github.com/louisbranch/retina.care/internal/services/web/modules"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	"github.com/louisbranch/retina.care/internal/services/web/platform/basepath"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/observability"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
	"github.com/louisbranch/retina.care/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/retina.care/internal/services/web/platform/session"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	"github.com/louisbranch/retina.care/internal/services/web/static"
	"github.com/louisbranch/retina.care/internal/services/web/storage/sqlite"
	"golang.org/x/sync/errgroup"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr            string
	APIBaseURL          string
	BasePath            string
	SessionDBPath       string
	SessionTTL          time.Duration
	PageSize            int
	RequestTimeout      time.Duration
	TrustForwardedProto bool
	LoginRateLimit      int
	MetricsEnabled      bool
}

// HandlerConfig carries the collaborators of the root handler.
type HandlerConfig struct {
	BasePath string
	Policy   requestmeta.Policy
	Sessions *session.Manager
	// Backend is nil when no API is configured; data modules then degrade.
	Backend *backendapi.Client
	Limiter *ratelimit.Limiter
	// Metrics is nil when the metrics endpoint is disabled.
	Metrics *observability.Metrics
	Logger  *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *sqlite.Store
	sessions   *session.Manager
	limiter    *ratelimit.Limiter
}

// NewHandler builds the root handler: static assets and metrics outside the
// session, then every module behind locale and session middleware. The second
// result lists modules running without a backend.
func NewHandler(cfg HandlerConfig) (http.Handler, []string, error) {
	if cfg.Sessions == nil {
		return nil, nil, errors.New("session manager is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	composed, err := composition.ComposeAppHandler(composition.ComposeInput{
		Resolvers: newResolvers(cfg.Sessions, cfg.Policy),
		ModuleDependencies: modules.Dependencies{
			Backend:      cfg.Backend,
			Sessions:     cfg.Sessions,
			LoginLimiter: cfg.Limiter,
		},
		Gate: cfg.Sessions,
	})
	if err != nil {
		return nil, nil, err
	}

	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, static.Handler()))
	if cfg.Metrics != nil {
		rootMux.Handle(http.MethodGet+" "+routepath.Metrics, cfg.Metrics.Handler())
	}
	rootMux.Handle("/", httpx.Chain(composed.Handler,
		i18n.Middleware(),
		cfg.Sessions.Middleware(),
	))

	handler := httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(logger),
		cfg.Metrics.Middleware(),
	)
	return basepath.Strip(cfg.BasePath, handler), composed.Degraded, nil
}

// NewServer validates config, opens the session store and constructs a web
// server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	dbPath := strings.TrimSpace(cfg.SessionDBPath)
	if dbPath == "" {
		return nil, errors.New("session database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create session database directory: %w", err)
	}
	paging.Configure(cfg.PageSize)

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}
	api, err := newAPIClient(cfg, metrics)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	policy := requestmeta.Policy{TrustForwardedProto: cfg.TrustForwardedProto, TrustForwardedFor: cfg.TrustForwardedProto}
	sessions := session.NewManager(store, session.Options{TTL: cfg.SessionTTL, Policy: policy})
	limiter := ratelimit.PerMinute(cfg.LoginRateLimit)

	handler, degraded, err := NewHandler(HandlerConfig{
		BasePath: cfg.BasePath,
		Policy:   policy,
		Sessions: sessions,
		Backend:  backendapi.New(api),
		Limiter:  limiter,
		Metrics:  metrics,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	if len(degraded) > 0 {
		log.Printf("web modules degraded: %s", strings.Join(degraded, ", "))
	}
	log.Printf("web backend api=%s base_path=%q", api.BaseURL(), basepath.Normalize(cfg.BasePath))

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store:    store,
		sessions: sessions,
		limiter:  limiter,
	}, nil
}

func newAPIClient(cfg Config, metrics *observability.Metrics) (*apiclient.Client, error) {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = timeouts.BackendRequest
	}
	opts := []apiclient.Option{
		apiclient.WithTimeout(timeout),
		apiclient.WithTokenSource(session.TokenSource()),
		apiclient.WithBreaker(apiclient.DefaultBreakerSettings()),
	}
	if metrics != nil {
		opts = append(opts, apiclient.WithObserver(metrics))
	}
	client, err := apiclient.New(cfg.APIBaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("configure backend api: %w", err)
	}
	return client, nil
}

// ListenAndServe serves HTTP traffic and runs session and limiter cleanup
// until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		s.sessions.Sweep(groupCtx, timeouts.SessionSweep)
		return nil
	})
	group.Go(func() error {
		pruneLimiter(groupCtx, s.limiter, timeouts.SessionSweep)
		return nil
	})
	group.Go(func() error {
		return s.serve(groupCtx)
	})
	return group.Wait()
}

func (s *Server) serve(ctx context.Context) error {
	log.Printf("web listening on %s", s.httpAddr)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

func pruneLimiter(ctx context.Context, limiter *ratelimit.Limiter, interval time.Duration) {
	if limiter == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Prune()
		}
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close session store: %v", err)
		}
	}
}
