// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/viajero-ai/travel-planner/internal/config"
	"github.com/viajero-ai/travel-planner/internal/events"
	"github.com/viajero-ai/travel-planner/internal/handler"
	"github.com/viajero-ai/travel-planner/internal/llm"
	"github.com/viajero-ai/travel-planner/internal/middleware"
	"github.com/viajero-ai/travel-planner/internal/orchestrator"
	"github.com/viajero-ai/travel-planner/internal/places"
	"github.com/viajero-ai/travel-planner/internal/planner"
	"github.com/viajero-ai/travel-planner/internal/weather"
	"github.com/viajero-ai/travel-planner/pkg/logger"
	"github.com/viajero-ai/travel-planner/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "travel-planner", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Optional NATS event publishing
	publisher, err := events.Connect(events.Config{URL: cfg.NATSURL, Token: cfg.NATSToken}, log)
	if err != nil {
		log.Error("failed to connect to NATS", zap.Error(err))
		os.Exit(1)
	}
	defer publisher.Close()
	if publisher.Enabled() {
		log.Info("NATS event publishing enabled")
	}

	// Model client factory. Request-body keys take precedence; the wrapper
	// fills in server-configured fallbacks.
	factory := llm.WithTimeout(
		withFallbackKeys(llm.NewFactory(llm.Provider(cfg.DefaultProvider)), cfg),
		cfg.ModelTimeout,
	)

	// Initialize services
	weatherSvc := weather.NewService(cfg, log)
	placesSvc := places.NewService(cfg, log)
	plannerSvc := planner.NewPlanner(placesSvc, factory, log)
	orch := orchestrator.New(weatherSvc, plannerSvc, factory, cfg.HistoryLimit, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler()
	chatHandler := handler.NewChatHandler(orch, publisher, log)
	weatherHandler := handler.NewWeatherHandler(weatherSvc, log)
	itineraryHandler := handler.NewItineraryHandler(weatherSvc, plannerSvc, publisher, log)
	downloadHandler := handler.NewDownloadHandler(log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/chat", chatHandler.Chat)
		r.Get("/weather", weatherHandler.Get)
		r.Post("/itinerary", itineraryHandler.Create)

		r.Route("/download", func(r chi.Router) {
			r.Post("/txt", downloadHandler.PlainText)
			r.Post("/ics", downloadHandler.Calendar)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

// withFallbackKeys fills empty request credentials with the server-configured
// keys before handing off to the provider factory.
func withFallbackKeys(factory llm.Factory, cfg *config.Config) llm.Factory {
	return func(ctx context.Context, creds llm.Credentials) (llm.Client, error) {
		if creds.OpenAI == "" {
			creds.OpenAI = cfg.OpenAIAPIKey
		}
		if creds.Anthropic == "" {
			creds.Anthropic = cfg.AnthropicAPIKey
		}
		if creds.Gemini == "" {
			creds.Gemini = cfg.GeminiAPIKey
		}
		return factory(ctx, creds)
	}
}
