package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/cache"
	"github.com/killallgit/annotator/pkg/download"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dataCmd groups clip listing commands
var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Inspect clips through the dataset API",
}

var dataListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of clips",
	Long: `List one page of clips of a project, filtered by status.

Example:
  annotator data list --project 1
  annotator data list --project 1 --active marked_review --page 2`,
	Args: cobra.NoArgs,
	RunE: runDataList,
}

var dataFetchCmd = &cobra.Command{
	Use:   "fetch <data-id>",
	Short: "Download the audio of a clip",
	Long: `Download the stored audio of a clip into a local directory. The file
keeps the clip's original name unless --name is given.

Example:
  annotator data fetch 7 --project 1 --out ./clips`,
	Args: cobra.ExactArgs(1),
	RunE: runDataFetch,
}

func init() {
	rootCmd.AddCommand(dataCmd)
	dataCmd.AddCommand(dataListCmd)
	dataCmd.AddCommand(dataFetchCmd)

	dataFetchCmd.Flags().String("out", ".", "destination directory")
	dataFetchCmd.Flags().String("name", "", "file name (default: original file name)")
	dataFetchCmd.Flags().Bool("force", false, "overwrite an existing file")

	dataListCmd.Flags().Int("page", 1, "page number")
	dataListCmd.Flags().String("active", string(models.StatusPending), "status filter: pending, completed, all, marked_review")
}

func runDataList(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	page, _ := cmd.Flags().GetInt("page")
	activeFlag, _ := cmd.Flags().GetString("active")
	active, err := models.ParseStatus(activeFlag)
	if err != nil {
		return err
	}

	memCache := cache.NewMemoryCache(cfg.Cache.MaxEntries)
	defer memCache.Stop()
	client, err := newDatasetClient(cfg, memCache, logger)
	if err != nil {
		return err
	}

	window, err := client.FetchPage(cmd.Context(), page, active)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "page %d (%s)  pending=%d completed=%d all=%d marked_review=%d\n",
		window.Page, window.Active,
		window.Count[models.StatusPending], window.Count[models.StatusCompleted],
		window.Count[models.StatusAll], window.Count[models.StatusMarkedReview])

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILENAME\tSEGMENTS\tCREATED\tTARGET")
	for _, item := range window.Items {
		target := models.NeighborOf(item, window.Page, window.Active).Target()
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			item.DataID, item.OriginalFilename, item.NumberOfSegmentations,
			item.CreatedOn.Format("2006-01-02 15:04"), target.String())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if window.PrevPage != nil || window.NextPage != nil {
		fmt.Fprintf(out, "prev: %s  next: %s\n", pageRef(window.PrevPage), pageRef(window.NextPage))
	}
	return nil
}

func pageRef(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprint(*p)
}

func runDataFetch(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid data id %q", args[0])
	}
	outDir, _ := cmd.Flags().GetString("out")
	name, _ := cmd.Flags().GetString("name")
	force, _ := cmd.Flags().GetBool("force")

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	memCache := cache.NewMemoryCache(cfg.Cache.MaxEntries)
	defer memCache.Stop()
	client, err := newDatasetClient(cfg, memCache, logger)
	if err != nil {
		return err
	}

	detail, err := client.GetData(cmd.Context(), id)
	if err != nil {
		return err
	}
	if name == "" {
		name = detail.OriginalFilename
	}
	if name == "" {
		name = detail.Filename
	}

	opts := download.DefaultOptions()
	opts.Overwrite = force
	opts.UserAgent = cfg.Client.UserAgent
	res, err := download.NewDownloader(opts, logger).
		Fetch(cmd.Context(), audioPrefix(cfg)+detail.Filename, outDir, name)
	if err != nil {
		return fmt.Errorf("fetch data %d: %w", id, err)
	}
	logger.Debug("clip stored", zap.Int64("data_id", id), zap.String("etag", res.ETag))
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", res.FilePath, res.ContentLength)
	return nil
}
