package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/chaseflorell/seqguid/internal/pkg/pkgconfig"
	"github.com/chaseflorell/seqguid/internal/pkg/pkglog"
	"github.com/chaseflorell/seqguid/internal/pkg/pkgrouter"
	"github.com/chaseflorell/seqguid/internal/pkg/pkguid"
	"github.com/rs/cors"
)

//nolint:gochecknoglobals // read-only defaults
var configDefaults = map[string]any{
	"tz":                          "UTC",
	"log.level":                   "info",
	"server.address.http":         ":8080",
	"server.cors.allowed_origins": "*",
	"modules.seqid.enabled":       true,
	"seqid.seed_cache_size":       0,
	"seqid.clock_skew":            pkguid.DefaultClockSkew.String(),
	"seqid.batch.max_count":       1000,
	"seqid.batch.max_seeds":       100,
	"seqid.batch.workers":         8,
}

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path, configDefaults)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	if err := pkglog.SetLevel(cfg.GetString("log.level")); err != nil {
		slog.Warn("invalid log level, keeping default", "level", cfg.GetString("log.level"), "error", err)
	}

	a.config = cfg
}

func (a *App) initLibraries() {
	seeds, err := pkguid.NewSeedResolver(int(a.config.GetInt("seqid.seed_cache_size")))
	if err != nil {
		slog.Error("failed to init seed resolver", "error", err)
		os.Exit(1)
	}

	a.guid = pkguid.NewSequential(
		pkguid.WithSeedResolver(seeds),
		pkguid.WithClockSkew(a.config.GetDuration("seqid.clock_skew")),
	)
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.guid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("server.cors.allowed_origins"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{pkgrouter.HeaderCorrelationID},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

//nolint:unparam // is always nil
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["HTTP Server"] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
