package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rodeovalidate/internal/api"
	"rodeovalidate/internal/audit"
	"rodeovalidate/internal/eventbus"
	"rodeovalidate/internal/platform/config"
	"rodeovalidate/internal/platform/httpserver"
	"rodeovalidate/internal/platform/logger"
	appmiddleware "rodeovalidate/internal/platform/middleware"
	platformmetrics "rodeovalidate/internal/platform/metrics"
	"rodeovalidate/internal/platform/rediscache"
	"rodeovalidate/internal/regdb"
	"rodeovalidate/internal/xbase"
	validationmetrics "rodeovalidate/internal/validation/metrics"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/validation and
// internal/api.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	db, err := loadDatabase(cfg.DBFPath)
	if err != nil {
		log.Error("failed to load personnel database", "error", err, "dbf_path", cfg.DBFPath)
		os.Exit(1)
	}

	cache, err := rediscache.New(cfg.RedisAddr, cfg.SearchCacheTTL)
	if err != nil {
		log.Warn("search cache unavailable, continuing without it", "error", err)
		cache = nil
	}
	if cache != nil {
		defer cache.Close()
	}

	var auditPublisher *audit.Publisher
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Warn("audit log unavailable, continuing without it", "error", err)
		} else {
			defer pool.Close()
			auditPublisher = audit.NewPublisher(audit.NewPgxStore(pool))
		}
	}

	var publisher eventbus.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := eventbus.NewKafkaPublisher(cfg.KafkaBrokers)
		if err != nil {
			log.Warn("event publishing unavailable, continuing without it", "error", err)
		} else {
			publisher = kp
			defer kp.Close()
		}
	}

	httpMetrics := platformmetrics.New()
	engineMetrics := validationmetrics.New()

	service := api.NewService(db, cfg.DBFPath, cache, auditPublisher, publisher, engineMetrics, cfg.SearchResultLimit)
	handler := api.New(service, log)

	router := chi.NewRouter()
	router.Use(appmiddleware.Recovery(log))
	router.Use(appmiddleware.RequestID)
	router.Use(appmiddleware.RequestTime)
	router.Use(appmiddleware.Logging(log))
	router.Use(appmiddleware.Metrics(httpMetrics))
	router.Use(appmiddleware.ContentTypeJSON)
	handler.Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting rodeovalidate server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func loadDatabase(path string) (*regdb.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tbl, err := xbase.Open(f)
	if err != nil {
		return nil, err
	}
	return regdb.Load(tbl)
}
