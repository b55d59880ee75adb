package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/p3bustos/jobtracker/internal/grpcserver"
	"github.com/p3bustos/jobtracker/internal/scheduler"
	"github.com/p3bustos/jobtracker/internal/tracker"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and gRPC APIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// ── Storage ──────────────────────────────────────────────────────────────
	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	// ── Events ───────────────────────────────────────────────────────────────
	publisher, closeEvents, err := openEvents(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeEvents()

	svc := tracker.NewService(repo, publisher, log)

	// ── HTTP server ──────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.Port),
		Handler: tracker.NewRouter(svc, log, tracker.RouterConfig{
			Version:        version,
			AllowedOrigins: cfg.AllowedOrigins,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info().Str("version", version).Str("port", cfg.Port).Msg("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// ── gRPC server ──────────────────────────────────────────────────────────
	var gsrv *grpc.Server
	if cfg.GRPCPort != "" {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
		if err != nil {
			return fmt.Errorf("gRPC listen: %w", err)
		}
		gsrv = grpc.NewServer()
		grpcserver.Register(gsrv, grpcserver.NewServer(svc, log))

		go func() {
			log.Info().Str("port", cfg.GRPCPort).Msg("gRPC listening")
			if err := gsrv.Serve(lis); err != nil {
				errCh <- fmt.Errorf("gRPC server error: %w", err)
			}
		}()
	}

	// ── Stats scheduler ──────────────────────────────────────────────────────
	if cfg.StatsSnapshotSpec != "" {
		sched := scheduler.New(svc, log, cfg.StatsSnapshotSpec)
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	}

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
	case runErr = <-errCh:
		log.Error().Err(runErr).Msg("server failed")
	}

	log.Info().Msg("Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown error")
	}
	if gsrv != nil {
		gsrv.GracefulStop()
	}
	log.Info().Msg("Stopped.")
	return runErr
}
