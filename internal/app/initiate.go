package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgconfig"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkglog"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgrouter"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgroutine"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkguid"
	"github.com/rs/cors"
)

func (a *App) initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	if lvl := cfg.GetString("log.level"); lvl != "" {
		if err := pkglog.SetLevel(lvl); err != nil {
			slog.Warn("keeping default log level", "error", err)
		}
	}

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(100)
	a.uuid = pkguid.NewUUID()

	strategy := a.config.GetString("modules.ledger.id_generator")
	id, err := pkguid.NewStringID(strategy)
	if err != nil {
		slog.Error("failed to init ledger id generator", "id_generator", strategy, "error", err)
		os.Exit(1)
	}
	a.ledgerID = id
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	origins := []string{"*"}
	if configured := a.config.GetArray("server.cors.allowed_origins"); len(configured) > 0 && configured[0] != "" {
		origins = configured
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{pkgrouter.HeaderCorrelationID},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: durationOr(a.config.GetDuration("server.timeout.read_header"), 10*time.Second),
		ReadTimeout:       durationOr(a.config.GetDuration("server.timeout.read"), 30*time.Second),
		WriteTimeout:      durationOr(a.config.GetDuration("server.timeout.write"), 30*time.Second),
		IdleTimeout:       durationOr(a.config.GetDuration("server.timeout.idle"), 2*time.Minute),
	}
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

//nolint:unparam // is always nil
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn[closerHTTPServer] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
