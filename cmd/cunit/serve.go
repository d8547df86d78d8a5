package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/yugant99/C-UnitSegmentation/internal/api"
	"github.com/yugant99/C-UnitSegmentation/internal/config"
	"github.com/yugant99/C-UnitSegmentation/internal/grpchealth"
	"github.com/yugant99/C-UnitSegmentation/internal/hermes"
	"github.com/yugant99/C-UnitSegmentation/internal/processor"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the NATS annotation worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	slog.Info("cunit starting", "port", cfg.Port)

	// NATS/Hermes (optional: the API works without events)
	var hermesClient *hermes.Client
	var pub processor.Publisher
	if cfg.NatsURL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		c, err := hermes.NewClient(connectCtx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		cancel()
		if err != nil {
			return err
		}
		defer c.Close()
		hermesClient, pub = c, c
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS_URL not set, running without events")
	}

	p, err := buildPipeline(ctx, cfg, pub)
	if err != nil {
		return err
	}
	defer p.Close()

	if hermesClient != nil {
		if err := hermesClient.QueueSubscribe(hermes.SubjectSubmitted, hermes.QueueAnnotators, p.proc.HandleTranscriptSubmitted); err != nil {
			return err
		}
	}

	errCh := make(chan error, 2)

	// gRPC health (optional)
	var healthSrv *grpchealth.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		healthSrv = grpchealth.New(slog.Default())
		go func() {
			errCh <- healthSrv.Serve(lis)
		}()
	}

	srv := api.NewServer(cfg.Port, cfg.APIToken, p.proc, p.recorder, slog.Default())
	go func() {
		errCh <- srv.Start()
	}()

	if healthSrv != nil {
		healthSrv.SetServing(true)
	}

	slog.Info("cunit ready", "port", cfg.Port, "store", p.store != nil, "events", hermesClient != nil)

	// Graceful shutdown
	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server error", "error", err)
			return err
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	if healthSrv != nil {
		healthSrv.Stop(5 * time.Second)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown", "error", err)
	}
	slog.Info("cunit stopped")
	return nil
}
