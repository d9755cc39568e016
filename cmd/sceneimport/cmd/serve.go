package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aurorafx/sceneimport/internal/httpapi"
	"github.com/aurorafx/sceneimport/internal/observability"
	"github.com/aurorafx/sceneimport/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sceneimport HTTP server",
	Long: `Start the optional HTTP surface fronting the Import Dispatcher.

The server provides:
- POST /v1/import to decode and post-process one asset
- GET /v1/formats to list supported file extensions
- OpenAPI documentation at /docs`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
	serveCmd.Flags().Int("port", 8080, "Port to listen on")

	mustBindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	mustBindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serveCmd.Flags().Changed("host") {
		cfg.Server.Host = viper.GetString("server.host")
	}
	if serveCmd.Flags().Changed("port") {
		cfg.Server.Port = viper.GetInt("server.port")
	}

	logger := observability.NewLogger(cfg.Logging)

	serverConfig := httpapi.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     httpapi.DefaultServerConfig().IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		CORSOrigins:     cfg.Server.CORSOrigins,
	}
	server := httpapi.NewServer(serverConfig, logger, version.Version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		cancel()
	}()

	logger.Info("starting sceneimport server",
		slog.String("host", serverConfig.Host),
		slog.Int("port", serverConfig.Port),
		slog.String("version", version.Version),
	)

	return server.ListenAndServe(ctx)
}
