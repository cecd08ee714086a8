package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/treasury-dao/internal/api"
	"github.com/eugenenazirov/treasury-dao/internal/config"
	"github.com/eugenenazirov/treasury-dao/internal/env"
	"github.com/eugenenazirov/treasury-dao/internal/project"
)

// App encapsulates the resolved project configuration and the HTTP server
// that exposes it.
type App struct {
	project project.ProjectConfig
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// EnvironmentSource returns the source project variables are read from: the
// process environment, falling back to the dotenv file named in cfg. A
// missing dotenv file is not an error.
func EnvironmentSource(cfg config.Config, logger *zap.Logger) (env.Source, error) {
	if cfg.EnvFile == "" {
		return env.OS{}, nil
	}

	values, err := env.ReadDotenv(cfg.EnvFile)
	if err != nil {
		if errors.Is(err, env.ErrDotenvNotFound) {
			logger.Debug("dotenv file not found", zap.String("path", cfg.EnvFile))
			return env.OS{}, nil
		}
		return nil, err
	}

	logger.Debug("loaded dotenv file", zap.String("path", cfg.EnvFile), zap.Int("variables", len(values)))
	return env.Layered(env.OS{}, values), nil
}

// ResolveProject resolves the project configuration from a snapshot of src
// and logs a summary. Credentials are never logged.
func ResolveProject(src env.Source, logger *zap.Logger) project.ProjectConfig {
	resolved := project.Resolve(env.Snapshot(src, project.Variables()...))

	for _, name := range resolved.NetworkNames() {
		network, _ := resolved.Network(name)
		fields := []zap.Field{
			zap.String("network", name),
			zap.Bool("url_set", network.URL() != ""),
			zap.Int("accounts", len(network.Accounts())),
		}
		if network.URL() == "" {
			logger.Warn("network has no endpoint configured", fields...)
			continue
		}
		logger.Info("network resolved", fields...)
	}

	return resolved
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, src env.Source, logger *zap.Logger) (*App, error) {
	if src == nil {
		return nil, fmt.Errorf("environment source is required")
	}

	resolved := ResolveProject(src, logger)
	handler := api.NewHandler(resolved)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		project: resolved,
		handler: handler,
		router:  router,
		logger:  logger,
		server:  NewServer(cfg, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Project returns the resolved project configuration.
func (a *App) Project() project.ProjectConfig {
	return a.project
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
