// Command api runs the storefront HTTP server: the restaurant directory, the
// per-restaurant conversational ordering assistant, and the health and
// metrics surfaces.
package main

import (
	"context"
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

	"github.com/plateworks/storefront/internal/config"
	"github.com/plateworks/storefront/internal/handler"
	"github.com/plateworks/storefront/internal/llm"
	"github.com/plateworks/storefront/internal/middleware"
	natsclient "github.com/plateworks/storefront/internal/nats"
	"github.com/plateworks/storefront/internal/service"
	"github.com/plateworks/storefront/internal/store/postgres"
	"github.com/plateworks/storefront/pkg/logger"
	"github.com/plateworks/storefront/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Global().Fatal("failed to load config", zap.Error(err))
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		logger.Global().Fatal("failed to create logger", zap.Error(err))
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting storefront api",
		zap.String("version", cfg.Version),
		zap.String("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
		if err != nil {
			log.Fatal("failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			tracing.Shutdown(shutdownCtx, tp)
		}()
	}

	store, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer store.Close()

	nc, err := natsclient.Connect(ctx, natsclient.Config{
		URL:      cfg.NATSURL,
		Token:    cfg.NATSToken,
		CAFile:   cfg.NATSCAFile,
		CertFile: cfg.NATSCertFile,
		KeyFile:  cfg.NATSKeyFile,
	}, log)
	if err != nil {
		log.Fatal("failed to connect to NATS", zap.Error(err))
	}
	defer nc.Close()

	streams := natsclient.NewStreamManager(nc)
	if err := streams.EnsureStream(ctx); err != nil {
		log.Fatal("failed to ensure stream", zap.Error(err))
	}

	gateway := buildGateway(cfg, log)

	sessions := service.NewSessionService(store.Restaurants, log)
	chat := service.NewChatService(gateway, store.Orders, streams, log, cfg.GatewayTimeout, cfg.GatewayModel)

	healthHandler := handler.NewHealthHandler(nc, store, cfg.Version)
	restaurantHandler := handler.NewRestaurantHandler(store, log)
	sessionHandler := handler.NewSessionHandler(sessions, chat, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Correlation-ID"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWTSecret))
		r.Use(middleware.Logging(log))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", restaurantHandler.List)
			r.With(middleware.Auth(cfg.JWTSecret)).Post("/", restaurantHandler.Create)
			r.Get("/{restaurantID}", restaurantHandler.Get)
			r.Get("/{restaurantID}/menu", restaurantHandler.Menu)
			r.Post("/{restaurantID}/sessions", sessionHandler.Create)
		})

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/messages", sessionHandler.ListMessages)
			r.Post("/messages", sessionHandler.SendMessage)
			r.Post("/actions", sessionHandler.Action)
			r.Get("/cart", sessionHandler.Cart)
			r.Delete("/", sessionHandler.Close)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Fatal("server failed", zap.Error(err))
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

// buildGateway picks the assistant gateway provider from configuration. The
// server runs without one; generative turns then answer with the fallback
// message while the deterministic pipeline keeps working.
func buildGateway(cfg *config.Config, log *logger.Logger) llm.Client {
	provider := llm.Provider(cfg.DefaultProvider)
	apiKey := cfg.AnthropicAPIKey
	if provider == llm.ProviderOpenAI {
		apiKey = cfg.OpenAIAPIKey
	}
	if apiKey == "" {
		log.Warn("no assistant gateway API key configured, generative turns disabled",
			zap.String("provider", string(provider)),
		)
		return nil
	}

	client, err := llm.NewClient(provider, apiKey)
	if err != nil {
		log.Warn("failed to create assistant gateway client, generative turns disabled",
			zap.String("provider", string(provider)),
			zap.Error(err),
		)
		return nil
	}
	log.Info("assistant gateway configured", zap.String("provider", client.Name()))
	return client
}
