package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniCatalog/internal/catalog"
	"MiniCatalog/internal/config"
	"MiniCatalog/internal/search"
	"MiniCatalog/pkg/kit"
)

func main() {
	service := "catalog"

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		boot := kit.NewLogger(service, "info")
		boot.Fatal("load config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.Logging.Level)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	engine, _ := search.ParseEngine(cfg.Search.Engine)

	src, closeSrc := source(cfg.Catalog, log)
	defer closeSrc()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &catalog.Server{
		Catalog: catalog.NewProvider(catalog.Options{
			Source:  src,
			Engine:  engine,
			Log:     log,
			Metrics: catalog.NewMetrics(reg),
		}),
		Log: log,
	}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:             log,
		Service:         service,
		Registry:        reg,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsToken:    cfg.Metrics.Token,
		RateLimit:       cfg.RateLimit.Requests,
		RateLimitWindow: cfg.RateLimit.WindowSeconds,
	})

	opts := kit.ServerOptions{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
	}
	if err := kit.RunHTTPServer(context.Background(), cfg.Addr(), h, log, opts); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func source(cfg config.CatalogConfig, log *zap.Logger) (catalog.Source, func()) {
	switch {
	case cfg.DSN != "":
		db, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			log.Fatal("open postgres", zap.Error(err))
		}
		return catalog.NewPostgresSource(db), func() { _ = db.Close() }
	case cfg.Path != "":
		return catalog.NewFileSource(cfg.Path), func() {}
	default:
		return catalog.BundledSource(), func() {}
	}
}
