package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/St1cky1/employee-tracker/internal/api"
	grpcserver "github.com/St1cky1/employee-tracker/internal/api/grpc"
	"github.com/St1cky1/employee-tracker/internal/config"
	"github.com/St1cky1/employee-tracker/internal/infrastructure/client"
	"github.com/St1cky1/employee-tracker/internal/repository"
	"github.com/St1cky1/employee-tracker/internal/usecase"
	"github.com/St1cky1/employee-tracker/internal/worker"
	"github.com/St1cky1/employee-tracker/migrations"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// 1. База данных
	if cfg.Database.AutoMigrate {
		if err := migrations.Up(cfg.Database.URL()); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	pgClient, err := client.NewPostgresClient(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()
	logger.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)

	// 2. Репозитории
	taskRepo := repository.NewTaskRepository(pgClient.Pool)
	employeeRepo := repository.NewEmployeeRepository(pgClient.Pool)
	auditRepo := repository.NewTaskAuditRepository(pgClient.Pool)

	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 3. Аудит через RabbitMQ (опционально)
	var publisher usecase.AuditPublisher
	if cfg.RabbitMQ.Enabled {
		rabbitClient, err := client.NewRabbitMQClient(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Queue)
		if err != nil {
			return err
		}
		defer rabbitClient.Close()
		publisher = rabbitClient

		auditWorker := worker.NewAuditWorker(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Queue, auditRepo, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			auditWorker.Start(ctx)
		}()
		logger.Info("task audit enabled", "queue", rabbitClient.QueueName())
	}

	// 4. Сервисы
	taskService := usecase.NewTaskService(taskRepo, auditRepo, publisher, logger)
	// дожидаемся публикаций аудита до закрытия RabbitMQ клиента
	defer taskService.Wait()
	employeeService := usecase.NewEmployeeService(employeeRepo, taskRepo)

	// 5. gRPC health
	if cfg.GRPC.Enabled {
		grpcServer := grpcserver.NewGRPCServer(pgClient, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := grpcServer.Start(ctx, cfg.GRPC.Port); err != nil {
				logger.Error("gRPC server failed", "error", err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()
			grpcServer.Stop()
		}()
	}

	// 6. HTTP
	router := api.NewRouter(taskService, employeeService, pgClient, api.RouterConfig{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		AccessLog:      cfg.HTTP.AccessLog,
		Logger:         logger,
	})
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Duration)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
