package cmd

import (
	"fmt"
	"strings"

	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/catalog"
	"github.com/spf13/cobra"
)

// projectCmd groups project administration commands. They write to the
// local database directly and do not need a running server.
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects in the local database",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project and print its API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage project labels in the local database",
}

var labelCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a label with its values",
	Long: `Create a label on a project.

Example:
  annotator label create noise --project 1 --type multiselect --values music,traffic
  annotator label create speaker --project 1 --values male,female`,
	Args: cobra.ExactArgs(1),
	RunE: runLabelCreate,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectCreateCmd)

	rootCmd.AddCommand(labelCmd)
	labelCmd.AddCommand(labelCreateCmd)
	labelCreateCmd.Flags().Uint("project", 0, "project id")
	labelCreateCmd.Flags().String("type", string(models.LabelTypeSingle), "label type: single or multiselect")
	labelCreateCmd.Flags().StringSlice("values", nil, "label values")
	_ = labelCreateCmd.MarkFlagRequired("project")
}

func openCatalog(cmd *cobra.Command) (catalog.Service, func(), error) {
	db, cfg, logger, err := openDatabase(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(models.CatalogModels()...); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	svc := catalog.NewService(catalog.NewRepository(db.DB),
		catalog.WithAudioDir(cfg.Server.AudioDir),
		catalog.WithLogger(logger),
	)
	return svc, func() { _ = db.Close() }, nil
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	svc, done, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer done()

	project, err := svc.CreateProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project:  %d\n", project.ID)
	fmt.Fprintf(out, "Name:     %s\n", project.Name)
	fmt.Fprintf(out, "API key:  %s\n", project.APIKey)
	return nil
}

func runLabelCreate(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetUint("project")
	labelType, _ := cmd.Flags().GetString("type")
	values, _ := cmd.Flags().GetStringSlice("values")

	svc, done, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer done()

	label, err := svc.CreateLabel(cmd.Context(), id, args[0], models.LabelType(labelType), values)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(label.Values))
	for _, v := range label.Values {
		names = append(names, fmt.Sprintf("%s(%d)", v.Value, v.ValueID))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Label %s (%s, id %d): %s\n",
		args[0], label.Type, label.LabelID, strings.Join(names, ", "))
	return nil
}
