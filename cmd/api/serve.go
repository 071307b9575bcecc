package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/pkordes/travel-journal/backend/internal/config"
	"github.com/pkordes/travel-journal/backend/internal/geocoding"
	"github.com/pkordes/travel-journal/backend/internal/handler"
	"github.com/pkordes/travel-journal/backend/internal/journal"
	"github.com/pkordes/travel-journal/backend/internal/middleware"
	"github.com/pkordes/travel-journal/backend/internal/realtime"
	"github.com/pkordes/travel-journal/backend/internal/repo"
	"github.com/pkordes/travel-journal/backend/internal/service"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	adventures := repo.NewAdventureRepo(pool)
	categories := repo.NewCategoryRepo(pool)
	visits := repo.NewVisitRepo(pool)
	activities := repo.NewActivityRepo(pool)
	lodgings := repo.NewLodgingRepo(pool)
	transportations := repo.NewTransportationRepo(pool)

	// --- Journal ----------------------------------------------------------
	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	agg := journal.NewAggregator(journal.Sources{
		Adventures:      adventures,
		Categories:      categories,
		Visits:          visits,
		Activities:      activities,
		Lodgings:        lodgings,
		Transportations: transportations,
	}, logger)
	j := journal.New(agg, hub, time.Now, logger)

	// --- Geocoding --------------------------------------------------------
	cache := geocoding.NewCache(cfg.Geocoder.CacheTTL, time.Now)
	geo := geocoding.NewClient(geocoding.Options{
		BaseURL:   cfg.Geocoder.URL,
		Language:  cfg.Geocoder.Language,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
		Retries:   cfg.Geocoder.Retries,
		Cache:     cache,
	}, logger)

	sched, err := newScheduler(j, cache, logger)
	if err != nil {
		return err
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit. Identity is resolved per route group inside the
	// handler package so the geocoding proxy stays public.
	server := handler.NewServer(handler.Deps{
		Adventures:      service.NewAdventureService(adventures, categories, j),
		Categories:      service.NewCategoryService(categories, j),
		Visits:          service.NewVisitService(adventures, categories, visits, j),
		Activities:      service.NewActivityService(adventures, activities, j),
		Lodgings:        service.NewLodgingService(adventures, lodgings, j),
		Transportations: service.NewTransportationService(adventures, transportations, j),
		Journal:         j,
		Export:          service.NewExportService(j),
		Geocoder:        geo,
		Hub:             hub,
		Authenticate: middleware.NewTrustedUserHandler(
			service.NewUserService(repo.NewUserRepo(pool)),
			cfg.TrustedUserHeader,
			cfg.TrustedEmailHeader,
			logger,
		),
		AllowedOrigins: cfg.CORSOrigins,
		Log:            logger,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// No WriteTimeout: websocket connections outlive any request deadline.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	// Give in-flight requests up to 15 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
