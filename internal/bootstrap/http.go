package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gurmatacademy/portal/config"
	httpx "github.com/gurmatacademy/portal/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	routerServices := httpx.RouterServices{
		Assistant:    cfg.Services.Assistant,
		Gurbani:      cfg.Services.Gurbani,
		Roster:       cfg.Services.Roster,
		Users:        cfg.Services.Users,
		OAuthLogin:   appCfg.Auth.Mode == config.AuthModeOAuth || appCfg.Auth.Mode == config.AuthModeMock,
		CookieDomain: appCfg.HTTP.CookieDomain,
		Stats:        cfg.Services.Observability.MetricsSink,
		Logger:       logger,
	}
	// Check the concrete pointer before assigning into the interface field.
	// A typed-nil AuthService would otherwise slip past interface nil checks.
	if cfg.Services.Auth != nil {
		routerServices.Auth = cfg.Services.Auth
	}

	// NewRouter applies the full middleware chain internally.
	handler := httpx.NewRouter(routerServices)

	// Start server (logs "starting HTTP server" internally)
	server := startServer(logger, handler, appCfg.HTTP.Addr, appCfg.HTTP.ReadTimeout)

	return server
}

func startServer(logger *slog.Logger, handler http.Handler, addr string, readTimeout time.Duration) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(cfg.Context, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
