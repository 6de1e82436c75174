package main

import (
	"context"
	"log"
	"time"

	"droppoint-tracker/internal/core/cache"
	"droppoint-tracker/internal/core/clock"
	"droppoint-tracker/internal/core/config"
	"droppoint-tracker/internal/core/logger"
	"droppoint-tracker/internal/core/server"
	dpadapter "droppoint-tracker/internal/features/droppoints/adapters"
	"droppoint-tracker/internal/features/droppoints/domain"
	dphandler "droppoint-tracker/internal/features/droppoints/handler"
	dpservice "droppoint-tracker/internal/features/droppoints/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize the storage backend and verify connectivity.
	store, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	repo := dpadapter.NewRedisDropPointRepository(store)

	// Assemble the core: registry, service and priority engine share one
	// system clock.
	clk := clock.System()
	visitInterval := time.Duration(cfg.Collection.VisitIntervalSeconds) * time.Second
	registry := domain.NewRegistry(clk, visitInterval)
	engine := domain.NewPriorityEngine(clk, nil)

	svc := dpservice.NewDropPointService(registry, repo)
	if err := svc.Restore(ctx); err != nil {
		l.Fatal("Failed to restore drop points", zap.Error(err))
	}
	l.Info("Drop points restored", zap.Int("count", registry.Count()))

	hdl := dphandler.NewDropPointHandler(svc, engine)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/droppoints", hdl.List)
	srv.App.Get("/droppoints.geojson", hdl.GeoJSON)
	srv.App.Post("/droppoints", hdl.Create)
	srv.App.Get("/droppoints/:number", hdl.Get)
	srv.App.Delete("/droppoints/:number", hdl.Remove)
	srv.App.Post("/droppoints/:number/reports", hdl.Report)
	srv.App.Post("/droppoints/:number/visits", hdl.Visit)
	srv.App.Post("/droppoints/:number/locations", hdl.Relocate)
	srv.App.Post("/droppoints/:number/capacities", hdl.ChangeCapacity)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
