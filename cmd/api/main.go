// Package main is the entry point for the Travel Desk API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pcosta/travel-desk/backend/internal/auth"
	"github.com/pcosta/travel-desk/backend/internal/config"
	"github.com/pcosta/travel-desk/backend/internal/handler"
	"github.com/pcosta/travel-desk/backend/internal/location"
	"github.com/pcosta/travel-desk/backend/internal/middleware"
	"github.com/pcosta/travel-desk/backend/internal/repo"
	"github.com/pcosta/travel-desk/backend/internal/service"
	"github.com/pcosta/travel-desk/backend/migrations"
)

// maxBodySize caps request bodies at 5 MiB; the largest expected payload is
// a project import upload.
const maxBodySize = 5 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately, the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// goose works against database/sql, so run the embedded migrations over
	// a connection borrowed from the pool via the pgx stdlib adapter.
	sqlDB := stdlib.OpenDBFromPool(pool)
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("failed to set migration dialect", "error", err)
		os.Exit(1)
	}
	if err := goose.Up(sqlDB, "."); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("failed to release migration connection", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")

	// --- Repositories and services ---------------------------------------
	users := repo.NewUserRepo(pool)
	projects := repo.NewProjectRepo(pool)
	agencies := repo.NewAgencyRepo(pool)
	requests := repo.NewRequestRepo(pool)
	quotes := repo.NewQuoteRepo(pool)
	flights := repo.NewFlightRepo(pool)
	hotels := repo.NewHotelRepo(pool)

	if cfg.SeedDemoUsers {
		if err := service.SeedDemoUsers(context.Background(), users); err != nil {
			slog.Error("failed to seed demo users", "error", err)
			os.Exit(1)
		}
	}

	locations, err := location.LoadFile(cfg.LocationsCSV)
	if err != nil {
		slog.Error("failed to load location data", "error", err, "path", cfg.LocationsCSV)
		os.Exit(1)
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret)
	server := handler.NewServer(
		service.NewAuthService(users, issuer),
		service.NewRequestService(requests, quotes, projects, cfg.EnforceBudget),
		service.NewQuoteService(quotes, requests, agencies),
		service.NewFlightService(flights, quotes),
		service.NewHotelService(hotels, quotes),
		service.NewProjectService(projects),
		service.NewAgencyService(agencies),
		locations,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Mount("/", server.Routes(middleware.NewAuthenticator(issuer)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
