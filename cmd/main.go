package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thrift-deals-service/internal/api"
	"thrift-deals-service/internal/catalog"
	"thrift-deals-service/internal/config"
	"thrift-deals-service/internal/coupon"
	"thrift-deals-service/internal/search"
	"thrift-deals-service/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const (
	defaultAppName = "ThriftDealsService" // App name for logger
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found or failed to load, relying on system environment")
	}
	logger := log.New(os.Stdout, fmt.Sprintf("[%s] ", defaultAppName), log.LstdFlags|log.Lshortfile|log.Lmicroseconds)
	logger.Println("INFO: Starting service...")

	// --- Configuration Loading ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("FATAL: Error loading configuration: %v", err)
	}
	logger.Printf("INFO: Configuration loaded for APP_ENV: %s, LogLevel: %s", cfg.AppEnv, cfg.LogLevel)

	// --- Wishlist Database Connection (PostgreSQL) ---
	db, err := sql.Open("postgres", cfg.Postgres.DSN())
	if err != nil {
		logger.Fatalf("FATAL: Failed to initialize database connection: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Printf("WARN: Error closing database on deferred cleanup: %v", err)
		}
	}()

	if err := db.PingContext(context.Background()); err != nil {
		logger.Fatalf("FATAL: Failed to ping database: %v", err)
	}
	logger.Println("INFO: Database connection established successfully.")

	wishlistStore := store.NewPostgresStore(db)
	if err := wishlistStore.EnsureSchema(context.Background()); err != nil {
		logger.Fatalf("FATAL: Failed to ensure wishlist schema: %v", err)
	}

	// --- Community Board Database (embedded SQLite) ---
	communityStore, err := store.OpenCommunityStore(cfg.Community.DBPath)
	if err != nil {
		logger.Fatalf("FATAL: Failed to open community database at %s: %v", cfg.Community.DBPath, err)
	}
	defer func() {
		if err := communityStore.Close(); err != nil {
			logger.Printf("WARN: Error closing community database: %v", err)
		}
	}()
	if err := communityStore.SeedWelcomePost(context.Background()); err != nil {
		logger.Printf("WARN: Failed to seed community welcome post: %v", err)
	}
	logger.Printf("INFO: Community database ready at %s", cfg.Community.DBPath)

	// --- Catalog, Search Engine, Coupon Board ---
	cat := catalog.New(cfg.Catalog.Source, cfg.Catalog.FetchTimeout, logger)
	cat.Load(context.Background())

	engine := search.New(cat, search.Options{
		PageSize:        cfg.Search.PageSize,
		CacheTTL:        cfg.Search.CacheTTL,
		CacheMaxEntries: cfg.Search.CacheMaxEntries,
		SuggestLimit:    cfg.Search.SuggestLimit,
		SuggestMinLen:   cfg.Search.SuggestMinLen,
	})
	cat.OnSwap(engine.InvalidateCache)

	board := coupon.NewBoard(nil)

	// --- Scheduled Catalog Refresh ---
	scheduler := cron.New()
	_, err = scheduler.AddFunc(fmt.Sprintf("@every %s", cfg.Catalog.RefreshInterval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.FetchTimeout)
		defer cancel()
		cat.Refresh(ctx)
	})
	if err != nil {
		logger.Fatalf("FATAL: Failed to schedule catalog refresh: %v", err)
	}
	scheduler.Start()
	logger.Printf("INFO: Catalog refresh scheduled every %s", cfg.Catalog.RefreshInterval)

	// --- Initialize API Handler ---
	httpAPIHandler := api.NewHTTPHandler(engine, cat, board, wishlistStore, communityStore, cfg.SiteURL)

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, logger)
	registerHealthCheck(httpRouter, logger, db, cat)
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		logger.Printf("INFO: HTTP server listening on port %s", cfg.HttpServer.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("FATAL: HTTP server ListenAndServe error: %v", err)
		}
		logger.Println("INFO: HTTP server has stopped.")
	}()

	// --- Setup & Start gRPC Server ---
	grpcServer := setupGRPCServer(logger)
	grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
	if err != nil {
		logger.Fatalf("FATAL: Failed to listen for gRPC on port %s: %v", cfg.GrpcServer.Port, err)
	}

	go func() {
		logger.Printf("INFO: gRPC server listening on port %s", cfg.GrpcServer.Port)
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			logger.Fatalf("FATAL: gRPC server Serve error: %v", err)
		}
		logger.Println("INFO: gRPC server has stopped.")
	}()

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(logger, httpServer, grpcServer, scheduler, wishlistStore, communityStore, shutdownComplete)

	<-shutdownComplete
	logger.Println("INFO: Service shutdown sequence finished.")
}

func setupBaseMiddleware(router *chi.Mux, logger *log.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger) // Chi's request logger
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second)) // Default timeout for requests
	logger.Println("INFO: Base HTTP middleware registered.")
}

func registerHealthCheck(router *chi.Mux, logger *log.Logger, db *sql.DB, cat *catalog.Catalog) {
	healthPath := "/api/v1/healthz"
	router.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		// Check DB connection as part of health
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		dbStatus := "healthy"
		if err := db.PingContext(ctx); err != nil {
			dbStatus = "unhealthy"
			logger.Printf("WARN: Health check DB ping failed: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK) // Always 200, but payload indicates detailed status
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":          "healthy",
			"serviceName":     defaultAppName,
			"timestamp":       time.Now().UTC().Format(time.RFC3339),
			"database":        dbStatus,
			"catalogProducts": cat.Len(),
			"catalogLoadedAt": cat.LoadedAt().UTC().Format(time.RFC3339),
		})
	})
	logger.Printf("INFO: HTTP health check registered at %s", healthPath)
}

func setupGRPCServer(logger *log.Logger) *grpc.Server {
	s := grpc.NewServer()

	// The gRPC port carries only the health checking protocol and
	// reflection; orchestration probes it while all product traffic
	// stays on HTTP.
	grpc_health_v1.RegisterHealthServer(s, health.NewServer())
	logger.Println("INFO: gRPC health check service registered.")

	reflection.Register(s)
	logger.Println("INFO: gRPC reflection service registered.")

	return s
}

func waitForShutdown(
	logger *log.Logger,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	scheduler *cron.Cron,
	wishlistStore *store.PostgresStore,
	communityStore *store.CommunityStore,
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-sigChan
	logger.Printf("INFO: Received signal: %s. Starting graceful shutdown...", receivedSignal)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	// Stop the refresh scheduler first; a refresh racing shutdown would
	// only churn a cache nobody will read.
	cronCtx := scheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Println("INFO: Catalog refresh scheduler stopped.")
	case <-shutdownCtx.Done():
		logger.Println("WARN: Timed out waiting for catalog refresh scheduler.")
	}

	logger.Println("INFO: Attempting to gracefully shut down gRPC server...")
	stoppedGrpc := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedGrpc)
	}()

	logger.Println("INFO: Attempting to gracefully shut down HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("WARN: HTTP server graceful shutdown failed: %v", err)
	} else {
		logger.Println("INFO: HTTP server gracefully shut down.")
	}

	select {
	case <-stoppedGrpc:
		logger.Println("INFO: gRPC server gracefully shut down.")
	case <-shutdownCtx.Done():
		logger.Printf("WARN: gRPC server graceful shutdown timed out: %v", shutdownCtx.Err())
		logger.Println("INFO: Forcing gRPC server stop...")
		grpcServer.Stop()
		logger.Println("INFO: gRPC server forced stop.")
	}

	if wishlistStore != nil {
		if err := wishlistStore.Close(); err != nil {
			logger.Printf("WARN: Error closing wishlist database connection: %v", err)
		}
	}
	if communityStore != nil {
		if err := communityStore.Close(); err != nil {
			logger.Printf("WARN: Error closing community database connection: %v", err)
		}
	}

	logger.Println("INFO: Graceful shutdown sequence completed.")
}
