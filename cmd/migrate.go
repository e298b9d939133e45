package cmd

import (
	"fmt"
	"strings"

	"github.com/killallgit/annotator/internal/database"
	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the dataset database schema",
	Long: `Bring the dataset database schema up to date.

Tables and columns missing from the database are created. Existing data is
never dropped.

Available subcommands:
  status  - Show which tables exist`,
	RunE: runMigrate,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.Flags().Bool("dry-run", false, "show what would be done without making changes")
}

func openDatabase(cmd *cobra.Command) (*database.DB, *config.Config, *zap.Logger, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := initDatabase(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, cfg, logger, nil
}

func initDatabase(cfg *config.Config, logger *zap.Logger) (*database.DB, error) {
	return database.Initialize(cfg.Database.Path,
		database.WithWAL(cfg.Database.EnableWAL),
		database.WithForeignKeys(cfg.Database.EnableForeignKeys),
		database.WithQueryLogging(cfg.Database.LogQueries),
		database.WithLogger(logger),
	)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	db, _, _, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	out := cmd.OutOrStdout()
	missing := missingTables(db.DB)
	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		if len(missing) == 0 {
			fmt.Fprintln(out, "All tables exist; columns will be checked on migrate")
			return nil
		}
		fmt.Fprintf(out, "Would create: %s\n", strings.Join(missing, ", "))
		return nil
	}

	if err := db.AutoMigrate(models.CatalogModels()...); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d models", len(models.CatalogModels()))
	if len(missing) > 0 {
		fmt.Fprintf(out, ", created %s", strings.Join(missing, ", "))
	}
	fmt.Fprintln(out)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, _, _, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	for _, m := range models.CatalogModels() {
		state := "missing"
		if db.Migrator().HasTable(m) {
			state = "ok"
		}
		fmt.Fprintf(out, "  %-28s %s\n", tableName(db.DB, m), state)
	}
	return nil
}

func missingTables(db *gorm.DB) []string {
	var missing []string
	for _, m := range models.CatalogModels() {
		if !db.Migrator().HasTable(m) {
			missing = append(missing, tableName(db, m))
		}
	}
	return missing
}

func tableName(db *gorm.DB, model any) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}
	return stmt.Schema.Table
}
