package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gitlab.com/pagetest.net/internal/adapter/crypto"
	http2 "gitlab.com/pagetest.net/internal/http"
	"gitlab.com/pagetest.net/internal/schedulerengine"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := buildApplication(ctx, sysCfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			tokens := crypto.NewTokenService(sysCfg.JwtConfig)
			guarded := sysCfg.JwtConfig.Secret != ""
			serviceProvider := http2.NewServiceProvider(app.service, tokens, guarded)

			httpServer := http2.NewServer(sysCfg.ServerConfig, *serviceProvider, logger)
			if err := httpServer.Init(); err != nil {
				return err
			}
			if err := httpServer.Start(ctx); err != nil {
				return err
			}
			logger.Info("Starting pagetest service", "port", sysCfg.ServerConfig.Port, "guarded", guarded)

			sweeping := schedulerengine.NewMaintenanceEngine(sysCfg.ArtifactConfig, app.store, logger).Start(ctx)

			<-ctx.Done()
			logger.Info("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), sysCfg.ServerConfig.ShutdownTimeout)
			defer cancel()
			if err := httpServer.Stop(shutdownCtx); err != nil {
				logger.Error("Server forced to shutdown", "error", err)
				return err
			}

			<-sweeping
			logger.Info("successfully shutdown server")
			return nil
		},
	}
}
