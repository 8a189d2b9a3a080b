/*
Package main is the entry point for the Support Chat Server.

It is responsible for loading configuration, initializing the global logging system,
connecting the backing stores (PostgreSQL and optionally Redis), loading the FAQ
catalog snapshot, setting up the HTTP server, and gracefully handling operating
system interrupt signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supportchat/internal/app/chat"
	"supportchat/internal/app/db"
	"supportchat/internal/app/faq"
	"supportchat/internal/app/guest"
	"supportchat/internal/app/notify"
	"supportchat/internal/app/verify"
	"supportchat/internal/app/widget"
	"supportchat/internal/configs"
	"supportchat/internal/handler"
	"supportchat/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("default_locale", cfg.DefaultLocale).
		Dur("bot_reply_delay", cfg.BotReplyDelay).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect PostgreSQL and run migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to database")
	}
	defer pool.Close()

	// Verification challenges live in Redis when an address is configured,
	// otherwise in process memory (single-instance deployments only).
	var challengeStore verify.Store
	if cfg.RedisAddr != "" {
		redisStore := verify.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
		if err := redisStore.Ping(ctx); err != nil {
			logx.Fatal(err, "Failed to connect to Redis", "addr", cfg.RedisAddr)
		}
		challengeStore = redisStore
		logx.Info("Verification challenge store: Redis", "addr", cfg.RedisAddr)
	} else {
		challengeStore = verify.NewMemoryStore()
		logx.Info("Verification challenge store: in-process memory")
	}

	// Load the FAQ catalog snapshot
	catalog := faq.NewCatalog(faq.NewPGStore(pool))
	if err := catalog.Load(ctx); err != nil {
		logx.Fatal(err, "Failed to load FAQ catalog")
	}

	hub := chat.NewTranscriptHub()

	service := widget.NewService(
		guest.NewRegistry(guest.NewPGStore(pool)),
		verify.NewChallenger(challengeStore, verify.DefaultResendWindow),
		chat.NewManager(chat.NewPGSessionStore(pool), chat.NewPGMessageStore(pool)),
		catalog,
		hub,
		notify.LogMailer{},
		cfg.DefaultLocale,
		cfg.BotReplyDelay,
	)

	// Setup HTTP server and routes
	deps := &handler.AppDeps{
		Widget:  service,
		Hub:     hub,
		Catalog: catalog,
		Config:  cfg,
	}
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Support Chat Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	// Scheduled bot replies finish persisting before the process exits.
	service.Close()

	logx.Info("Server gracefully stopped.")
}
