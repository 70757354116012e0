/**
 * @description
 * Service entrypoint. Wires configuration, storage backend selection with
 * in-memory fallback, demo-user seeding, the RabbitMQ producer and the HTTP
 * server with graceful shutdown.
 */
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/silaibuddy/auth-service/internal/api"
	"github.com/silaibuddy/auth-service/internal/app"
	"github.com/silaibuddy/auth-service/internal/auth"
	"github.com/silaibuddy/auth-service/internal/config"
	"github.com/silaibuddy/auth-service/internal/store"
	"github.com/silaibuddy/auth-service/pkg/rabbitmq"
)

// connectTimeout bounds the single startup attempt against Postgres. The
// selected backend is fixed for the life of the process.
const connectTimeout = 10 * time.Second

func main() {
	// Load .env file for local development. In production, env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load application configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	// If a platform-provided PORT is set (e.g., Railway/Render), prefer it
	if port := os.Getenv("PORT"); port != "" {
		cfg.ServerPort = port
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	users, storageMode := selectUserStore(cfg.DatabaseURL)
	log.Printf("Storage backend selected: %s", storageMode)

	// Seed the demo accounts into whichever backend we ended up with.
	store.SeedDemoUsers(context.Background(), users)

	// Set up the RabbitMQ producer; fall back to a logging no-op on failure.
	var producer rabbitmq.Publisher
	if p, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL); err != nil {
		log.Printf("WARNING: Failed to connect to RabbitMQ at startup: %v. Continuing without MQ.", err)
		producer = &rabbitmq.NoopPublisher{}
	} else {
		producer = p
		defer producer.Close()
		log.Println("RabbitMQ producer connected")
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	otp := auth.NewOTPLedger()
	google := auth.NewGoogleTokenVerifier(cfg.GoogleClientID)

	svc := app.NewAuthService(users, otp, tokens, google, producer)
	handler := api.NewHandler(svc, cfg.OTPExposeCode, storageMode)
	r := api.NewRouter(handler)

	// Start the server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// selectUserStore attempts a single Postgres connection and falls back to
// the in-memory store when the database is unreachable. The fallback never
// crashes the process; it is observable via logs and /health only.
func selectUserStore(databaseURL string) (store.UserStore, string) {
	if databaseURL == "" {
		log.Println("WARNING: DATABASE_URL is not set, falling back to in-memory storage")
		return store.NewMemoryUserStore(), "memory"
	}

	dbConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		log.Printf("WARNING: Unable to parse database URL: %v. Falling back to in-memory storage.", err)
		return store.NewMemoryUserStore(), "memory"
	}

	dbConfig.MaxConns = 10
	dbConfig.MinConns = 2
	dbConfig.MaxConnLifetime = 30 * time.Minute
	dbConfig.MaxConnIdleTime = 5 * time.Minute

	// Disable prepared statement caching to prevent conflicts on pooled
	// deployments (PgBouncer and friends).
	dbConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	dbpool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		log.Printf("WARNING: Unable to connect to database: %v. Falling back to in-memory storage.", err)
		return store.NewMemoryUserStore(), "memory"
	}
	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		log.Printf("WARNING: Database unreachable: %v. Falling back to in-memory storage.", err)
		return store.NewMemoryUserStore(), "memory"
	}

	pg := store.NewPostgresUserStore(dbpool)
	if err := pg.EnsureSchema(ctx); err != nil {
		dbpool.Close()
		log.Printf("WARNING: Failed ensuring schema: %v. Falling back to in-memory storage.", err)
		return store.NewMemoryUserStore(), "memory"
	}

	log.Println("Database connection established")
	return pg, "postgres"
}
