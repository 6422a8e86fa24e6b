// Package main is the entry point for the CleanerBoard server.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cleanerboard/backend/internal/api"
	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/config"
	"github.com/cleanerboard/backend/internal/notify"
	"github.com/cleanerboard/backend/internal/schedule"
	"github.com/cleanerboard/backend/internal/storage"
	"github.com/cleanerboard/backend/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

// fetchLogRetentionDays bounds the per-flat fetch history.
const fetchLogRetentionDays = 90

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "/data/config.yaml", "Path to the YAML config file (created on first run)")
	addr := flag.String("addr", "", "HTTP server address, overrides the configured listen address")
	dataDir := flag.String("data", "/data", "Data directory for SQLite database")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	flag.Parse()

	// Load configuration (written with defaults on first run)
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config %q: %v", *configPath, err)
	}

	listen := cfg.Listen
	if *addr != "" {
		listen = *addr
	}

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(listen); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		os.Exit(0)
	}

	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log.Printf("Starting CleanerBoard (version: %s)...", version)
	log.Printf("Tracking %d flats in %s", len(cfg.Flats), cfg.Timezone)

	// Initialize database
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory %q: %v", *dataDir, err)
	}
	dbPath := *dataDir + "/cleanerboard.db"
	db, err := storage.NewDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := storage.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations complete")

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize repositories
	fetchLogRepo := storage.NewFetchLogRepository(db)

	if n, err := fetchLogRepo.Prune(context.Background(), fetchLogRetentionDays); err != nil {
		log.Printf("Warning: Failed to prune fetch log: %v", err)
	} else if n > 0 {
		log.Printf("Pruned %d old fetch log entries", n)
	}

	// Initialize services
	svc := schedule.NewService(cfg, booking.NewFetcher(), fetchLogRepo, websocket.NewEventBroadcaster(hub))
	notifier := notify.New(context.Background(), cfg)
	digest := schedule.NewDigestScheduler(svc, notifier, hub, cfg.DigestCron)

	if channels := notifier.Channels(); len(channels) > 0 {
		log.Printf("Digest channels enabled: %v", channels)
	} else {
		log.Println("No digest channels configured")
	}

	// Start the digest scheduler
	if err := digest.Start(); err != nil {
		log.Printf("Warning: Failed to start digest scheduler: %v", err)
	}

	// Initialize HTTP router
	router := api.NewRouter(db, hub, svc, digest, notifier)

	// Create HTTP server. The write timeout leaves room for building a
	// schedule against slow upstream calendar feeds.
	server := &http.Server{
		Addr:         listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Server listening on %s", listen)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop the digest scheduler, waiting for a running push
	digest.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://localhost" + addr + "/api/health"
	if addr != "" && addr[0] != ':' {
		url = "http://" + addr + "/api/health"
	}
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.ErrAbortHandler
	}
	return nil
}
