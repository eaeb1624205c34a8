package orderstatus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-artstore/internal/orderstatus/handlers"
	"go-artstore/internal/orderstatus/middleware"
	"go-artstore/pkg/logging"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type OrdersService interface {
	handlers.OrdersGettingService
	handlers.OrderTrackingService
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

func NewServer(
	cfg Config,
	tokenAuth *jwtauth.JWTAuth,
	ordersService OrdersService,
	healthChecker HealthChecker,
	logger *logging.ZapLogger,
) *Server {
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           createMux(cfg, tokenAuth, ordersService, healthChecker, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func createMux(
	cfg Config,
	tokenAuth *jwtauth.JWTAuth,
	ordersService OrdersService,
	healthChecker HealthChecker,
	logger *logging.ZapLogger,
) *chi.Mux {
	ordersGettingHandler := handlers.NewOrdersGettingHandler(ordersService, logger)
	orderTrackingHandler := handlers.NewOrderTrackingHandler(ordersService, logger)
	trackingRefreshHandler := handlers.NewTrackingRefreshHandler(ordersService, logger)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewLoggerContext().CreateHandler)
	router.Use(middleware.NewPanicRecover(logger).CreateHandler)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := healthChecker.Ping(r.Context()); err != nil {
			logger.ErrorCtx(r.Context(), "Health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/orders", func(router chi.Router) {
		router.Use(jwtauth.Verifier(tokenAuth))
		router.Use(jwtauth.Authenticator(tokenAuth))

		router.Get("/", ordersGettingHandler.ServeHTTP)
		router.Get("/{"+handlers.OrderIDParam+"}", orderTrackingHandler.ServeHTTP)
		router.Get("/{"+handlers.OrderIDParam+"}/tracking", trackingRefreshHandler.ServeHTTP)
	})

	return router
}
