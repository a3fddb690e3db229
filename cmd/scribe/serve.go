package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/internal/scheduler"
	"github.com/aretw0/scribe/internal/server"
)

var (
	servePort     int
	servePrune    string
	serveShutdown time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the working directory over HTTP",
	Long: `Serve the working directory over HTTP.

Routes:
  GET    /                      connection test
  GET    /api/v1/files          list files (?pattern=GLOB)
  POST   /api/v1/files          create a file {"content","security_level","is_signed"}
  GET    /api/v1/files/{name}   read a file
  DELETE /api/v1/files/{name}   delete a file
  GET    /api/v1/directory      current directory
  PUT    /api/v1/directory      change directory {"path"}
  GET    /api/v1/status         store state
  GET    /api/v1/events         websocket stream of changes (?pattern=GLOB)
  GET    /metrics               prometheus metrics

With an auth secret configured every /api/v1 route requires a bearer token
(see "scribe token").`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if cmd.Flags().Changed("prune-schedule") {
			cfg.PruneSchedule = servePrune
		}

		svc := openService()
		logger := slog.Default()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var pruner *scheduler.Pruner
		if cfg.PruneSchedule != "" {
			p, err := scheduler.NewPruner(svc, cfg.PruneSchedule, logger)
			if err != nil {
				fatal("Error scheduling prune", err)
			}
			pruner = p
			pruner.Start()
		}

		srv := server.New(svc, server.Options{
			Logger:     logger,
			AuthSecret: cfg.AuthSecret,
		})
		httpServer := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening",
				"addr", httpServer.Addr,
				"dir", svc.Directory(),
				"signing", svc.Signing(),
				"auth", cfg.AuthSecret != "",
			)
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				fatal("Server error", err)
			}
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdown)
		defer cancel()

		if pruner != nil {
			pruner.Stop(shutdownCtx)
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown incomplete", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&servePrune, "prune-schedule", "", `Cron schedule for removing orphaned signatures (e.g. "@hourly")`)
	serveCmd.Flags().DurationVar(&serveShutdown, "shutdown-timeout", 10*time.Second, "Grace period for open requests on shutdown")
}
