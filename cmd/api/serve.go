package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zhouzirui/students/backend/internal/config"
	"github.com/zhouzirui/students/backend/internal/handler"
	studentService "github.com/zhouzirui/students/backend/internal/service/student"
	"github.com/zhouzirui/students/backend/internal/service/upstream"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Fetch the students and serve the HTTP API",
	Long: `Fetch the student list from the upstream directory and serve it.

The server only starts listening after the list has been loaded. If the
upstream is unreachable or returns malformed data the command exits with
a non-zero status without serving any request.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	studentSvc, err := initStudents(ctx, cfg.Upstream, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}

	router := handler.NewRouter(logger, studentSvc)
	return startServer(ctx, cfg.Server, router, logger)
}

// initStudents loads the student snapshot, blocking until it is ready or failed.
func initStudents(ctx context.Context, cfg config.UpstreamConfig, logger *zap.Logger) (*studentService.Service, error) {
	client := upstream.NewClient(cfg.URL, cfg.Timeout)
	defer client.Close()

	logger.Info("loading students",
		zap.String("upstream", client.URL()),
		zap.Duration("timeout", cfg.Timeout),
	)

	svc := studentService.NewService(client, logger)
	if err := svc.Initialize(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          zap.NewStdLog(logger.Named("http")),
	}

	logger.Info("student directory listening", zap.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
