package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/role-ladder/internal/admin"
	"github.com/mauv0809/role-ladder/internal/club"
	"github.com/mauv0809/role-ladder/internal/config"
	"github.com/mauv0809/role-ladder/internal/database"
	server "github.com/mauv0809/role-ladder/internal/http"
	"github.com/mauv0809/role-ladder/internal/metrics"
	"github.com/mauv0809/role-ladder/internal/notifier/slack"
	"github.com/mauv0809/role-ladder/internal/processor"
	"github.com/mauv0809/role-ladder/internal/pubsub"
	"github.com/mauv0809/role-ladder/internal/timestamp"

	_ "time/tzdata"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds())
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	clubStore := club.New(db)
	admins := admin.NewService(admin.NewStore(db), cfg.BcryptCost)
	normalizer := timestamp.NewNormalizer(cfg.Local, cfg.Reporting)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	if count, err := admins.Count(context.Background()); err == nil && count == 0 {
		log.Warn("No admin accounts exist; run the seeder to create one")
	}

	// Fan-out is optional. Nil interfaces disable it in the processor.
	var notifier processor.Notifier
	if cfg.Slack.Enabled() {
		notifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, cfg.Local, cfg.Slack.DryRun, metricsSvc)
		log.Info("Slack notifications enabled", "channel", cfg.Slack.ChannelID, "dryRun", cfg.Slack.DryRun)
	}
	var events pubsub.PubSubClient
	if cfg.PubSubEnabled() {
		client, err := pubsub.New(context.Background(), cfg.ProjectID, cfg.PubSubTopic)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer client.Close()
		events = client
		log.Info("Match events enabled", "project", cfg.ProjectID, "topic", cfg.PubSubTopic)
	}

	proc := processor.New(clubStore, admins, notifier, events, metricsSvc, normalizer)
	s := server.NewServer(clubStore, admins, proc, normalizer, metricsSvc, metricsHandler, cfg)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
