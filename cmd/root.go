package cmd

import (
	"os"

	"github.com/killallgit/annotator/internal/logging"
	"github.com/killallgit/annotator/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "annotator",
	Short: "Audio annotation workstation and dataset API",
	Long: `Annotator - segment, transcribe and label audio clips

The dataset server stores projects, clips, label schemas and segmentations
behind a JSON API. The annotate command opens a terminal session against that
API to draw segments, transcribe them and attach labels.

Features:
  • Paginated clip lists filtered by status
  • Segmentation create, update and delete with label validation
  • Bulk clip upload and dataset registration by project API key
  • Keyboard driven annotation sessions with previous/next navigation`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigPath, "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig reads the config file and applies the logging flags when they
// were set on the command line
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.Load(cfgFile); err != nil {
		return nil, err
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("json-logs") {
		if jsonLogs, _ := flags.GetBool("json-logs"); jsonLogs {
			cfg.Logging.Format = "json"
		} else {
			cfg.Logging.Format = "console"
		}
	}
	return cfg, nil
}

// setup loads config and builds the logger every command shares
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
