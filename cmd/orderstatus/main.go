package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"go-artstore/cmd/orderstatus/config"
	"go-artstore/internal/orderstatus"
	"go-artstore/internal/orderstatus/carrier"
	"go-artstore/internal/orderstatus/data/database"
	"go-artstore/internal/orderstatus/data/dbrepository"
	"go-artstore/internal/orderstatus/service"
	"go-artstore/pkg/logging"
	"go-artstore/pkg/pgxstorage"

	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := start(); err != nil {
		log.Fatal(err)
	}
}

// start returns only after the server has stopped, once every deferred cleanup
// has run. A non-nil error makes the process exit with a non-zero status.
func start() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, err := logging.NewZapLogger(level, logging.WithOutputPaths(cfg.LogOutputs...))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	rootCtx, cancelCtx := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelCtx()

	dbFactory := database.NewPgxDatabaseFactory(cfg.DB)
	storage, err := pgxstorage.New(rootCtx, dbFactory)
	if err != nil {
		logger.ErrorCtx(rootCtx, "Failed to open storage", zap.Error(err))
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer storage.Close()

	repository := dbrepository.New(storage, logger)
	transactionManager := pgxstorage.NewTransactionsManager(storage)
	carrierClient := carrier.NewClient(cfg.Carrier, logger)

	ordersService := service.NewOrders(cfg.Orders, transactionManager, repository, carrierClient, logger)

	tokenAuth := jwtauth.New(cfg.JWTConfig.Algorithm, []byte(cfg.JWTConfig.Secret), nil)

	server := orderstatus.NewServer(cfg.Server, tokenAuth, ordersService, storage, logger)

	logger.InfoCtx(rootCtx, "Starting order status server", zap.String("address", cfg.Server.ServerAddress))

	if err := run(rootCtx, cfg, server, logger); err != nil {
		logger.ErrorCtx(rootCtx, "Server shutdown with error", zap.Error(err))
		return err
	}
	logger.InfoCtx(rootCtx, "Server shutdown gracefully")
	return nil
}

func run(rootCtx context.Context, cfg *config.Config, server *orderstatus.Server, logger *logging.ZapLogger) error {
	g, ctx := errgroup.WithContext(rootCtx)

	context.AfterFunc(ctx, func() {
		ctx, cancelCtx := context.WithTimeout(context.Background(), 2*cfg.ShutdownTimeout)
		defer cancelCtx()

		<-ctx.Done()
		log.Fatal("failed to gracefully shutdown the server")
	})

	g.Go(func() error {
		if err := server.Run(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer logger.InfoCtx(ctx, "Shutting down server")
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("goroutine error occurred: %w", err)
	}

	return nil
}
