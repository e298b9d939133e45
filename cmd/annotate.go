package cmd

import (
	"fmt"
	"strings"

	"github.com/killallgit/annotator/internal/console"
	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/bookmarks"
	"github.com/killallgit/annotator/internal/services/cache"
	"github.com/killallgit/annotator/internal/services/dataset"
	"github.com/killallgit/annotator/internal/services/session"
	"github.com/killallgit/annotator/internal/waveform"
	"github.com/killallgit/annotator/pkg/config"
	"github.com/killallgit/annotator/pkg/ffmpeg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	projectID int64
	baseURL   string
)

// annotateCmd opens an interactive session
var annotateCmd = &cobra.Command{
	Use:   "annotate [target]",
	Short: "Annotate clips in the terminal",
	Long: `Open an annotation session against the dataset API.

The optional target is an encoded item: dataId&filename&youtubeStartMs&page&status.
Without one, the first item of the --active list is opened, starting from
the list page last visited for that filter in this project.

Type help inside the session for hotkeys and commands.

Example:
  annotator annotate --project 1
  annotator annotate --project 1 --active completed
  annotator annotate "7&vid_2.wav&2000&1&pending"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().String("active", string(models.StatusPending), "status filter: pending, completed, all, marked_review")
	annotateCmd.Flags().String("ffprobe", "", "ffprobe binary (overrides config)")
	for _, c := range []*cobra.Command{annotateCmd, dataCmd} {
		c.PersistentFlags().Int64Var(&projectID, "project", 0, "project id (overrides config)")
		c.PersistentFlags().StringVar(&baseURL, "base-url", "", "dataset API base URL (overrides config)")
	}
}

// newDatasetClient builds the API client from config and the shared flags
func newDatasetClient(cfg *config.Config, c cache.Cache, logger *zap.Logger) (*dataset.Client, error) {
	if projectID > 0 {
		cfg.Session.ProjectID = projectID
	}
	if baseURL != "" {
		cfg.Client.BaseURL = baseURL
	}
	if err := cfg.RequireClient(); err != nil {
		return nil, err
	}
	return dataset.NewClient(dataset.Config{
		BaseURL:           cfg.Client.BaseURL,
		ProjectID:         cfg.Session.ProjectID,
		Token:             cfg.Client.Token,
		Timeout:           cfg.Client.Timeout,
		RequestsPerMinute: cfg.Client.RateLimit,
		BurstSize:         cfg.Client.Burst,
		LabelCacheTTL:     cfg.Client.LabelCacheTTL,
		UserAgent:         cfg.Client.UserAgent,
	}, dataset.WithCache(c), dataset.WithLogger(logger)), nil
}

// audioPrefix makes a path prefix absolute against the API base URL so the
// prober can fetch clips over HTTP
func audioPrefix(cfg *config.Config) string {
	prefix := cfg.Session.AudioPathPrefix
	if strings.HasPrefix(prefix, "/") {
		return strings.TrimRight(cfg.Client.BaseURL, "/") + prefix
	}
	return prefix
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	activeFlag, _ := cmd.Flags().GetString("active")
	active, err := models.ParseStatus(activeFlag)
	if err != nil {
		return err
	}

	target := models.Target{Active: active}
	if len(args) == 1 {
		if target, err = models.ParseTarget(args[0]); err != nil {
			return err
		}
	}

	if path, _ := cmd.Flags().GetString("ffprobe"); path != "" {
		cfg.Session.FFprobePath = path
	}
	prober := ffmpeg.New(cfg.Session.FFprobePath, cfg.Session.ProbeTimeout)
	if err := prober.ValidateBinary(); err != nil {
		return fmt.Errorf("ffprobe is required to load clips: %w", err)
	}

	memCache := cache.NewMemoryCache(cfg.Cache.MaxEntries)
	defer memCache.Stop()

	client, err := newDatasetClient(cfg, memCache, logger)
	if err != nil {
		return err
	}

	db, err := initDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if err := db.AutoMigrate(models.SessionModels()...); err != nil {
		return fmt.Errorf("preparing local session state: %w", err)
	}
	pages := bookmarks.NewStore(db.DB, cfg.Session.ProjectID, bookmarks.WithLogger(logger))

	host := console.New(client, cmd.InOrStdin(), cmd.OutOrStdout(),
		console.WithLogger(logger),
		console.WithPages(pages),
	)
	ctrl := session.NewController(session.Dependencies{
		Data:     client,
		Segments: client,
		Router:   host,
		Pages:    pages,
		NewEngine: func() session.Engine {
			return waveform.New(prober, waveform.WithLogger(logger))
		},
	},
		session.WithLogger(logger),
		session.WithSettings(session.Settings{
			AudioPathPrefix: audioPrefix(cfg),
			DefaultZoom:     cfg.Session.DefaultZoom,
			SmallStep:       cfg.Session.SeekStep,
			LargeStep:       cfg.Session.SeekStepLarge,
		}),
	)
	host.Bind(ctrl)

	if err := host.Run(cmd.Context(), target); err != nil {
		return err
	}
	m := client.Metrics()
	logger.Info("session ended",
		zap.Int64("requests", m.Requests),
		zap.Int64("errors", m.Errors),
		zap.Int64("rate_limit_hits", m.RateLimitHits),
	)
	return nil
}
