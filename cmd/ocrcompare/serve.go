package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go-ocr-compare/internal/config"
	"go-ocr-compare/internal/container"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the comparison HTTP server",
	Long: `Start the comparison HTTP server.

Endpoints:
  GET  /health   - server health check
  GET  /runs     - registered engine run names
  POST /compare  - run the comparison for a JSON request

Examples:
  ocrcompare serve                # listen on PORT (default 8080)
  ocrcompare serve --port 3000    # listen on a custom port`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadFromEnv()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if serveHost != "" {
			cfg.Host = serveHost
		}
		if servePort != "" {
			cfg.Port = servePort
		}

		c, err := container.NewContainer(ctx, cfg)
		if err != nil {
			return err
		}
		defer c.Close()

		server := &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      c.Handler(),
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			logrus.WithFields(logrus.Fields{
				"address": cfg.ServerAddress(),
				"timeout": cfg.RequestTimeout,
			}).Info("Starting HTTP server")

			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logrus.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		logrus.Info("Server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind address (default from HOST)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default from PORT)")
}
