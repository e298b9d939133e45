package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/killallgit/annotator/api"
	"github.com/killallgit/annotator/api/types"
	"github.com/killallgit/annotator/internal/database"
	"github.com/killallgit/annotator/internal/services/catalog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dataset API server",
	Long: `Start the dataset API server with the configured settings.

The server stores projects, clips, labels and segmentations in SQLite and
serves uploaded audio under /audios.

Example:
  annotator serve
  annotator serve --port 9090
  annotator serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", -1, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort >= 0 {
		cfg.Server.Port = serverPort
	}

	db, err := database.InitializeWithMigrations(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := os.MkdirAll(cfg.Server.AudioDir, 0o755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}

	svc := catalog.NewService(catalog.NewRepository(db.DB),
		catalog.WithAudioDir(cfg.Server.AudioDir),
		catalog.WithLogger(logger),
	)
	srv := api.NewServer(cfg.Server, &types.Dependencies{
		DB:       db,
		Catalog:  svc,
		AudioDir: cfg.Server.AudioDir,
		Logger:   logger,
	})
	if err := srv.Initialize(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	logger.Info("server started", zap.String("addr", srv.Addr()), zap.String("audio_dir", cfg.Server.AudioDir))

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
	case runErr = <-serverErr:
		logger.Error("server failed", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("server stopped")
	return runErr
}
