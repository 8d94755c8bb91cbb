package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	coreconfig "github.com/AzielCF/az-planner/core/config"
	domainPlanner "github.com/AzielCF/az-planner/domains/planner"
	"github.com/AzielCF/az-planner/pkg/utils"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	exportYear         int
	exportMonth        int
	exportCount        int
	exportPostsPerDate int
	exportOut          string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate a calendar for random dates and write it as an xlsx workbook",
	RunE:  runExport,
}

func init() {
	now := time.Now()
	exportCmd.Flags().IntVar(&exportYear, "year", now.Year(), "calendar year")
	exportCmd.Flags().IntVar(&exportMonth, "month", int(now.Month()), "calendar month 1-12")
	exportCmd.Flags().IntVar(&exportCount, "count", 0, "number of random dates (default PLANNER_DATE_COUNT)")
	exportCmd.Flags().IntVar(&exportPostsPerDate, "posts-per-date", 0, "posts per date (default PLANNER_POSTS_PER_DATE)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default EXPORT_DIR/<workbook name>)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	defer StopApp()

	settings := domainPlanner.UpdateSettingsRequest{Year: &exportYear, Month: &exportMonth}
	if exportPostsPerDate > 0 {
		settings.PostsPerDate = &exportPostsPerDate
	}
	if _, err := plannerUsecase.UpdateSettings(ctx, settings); err != nil {
		return err
	}

	dates, err := plannerUsecase.GenerateRandomDates(ctx, domainPlanner.RandomDatesRequest{Count: exportCount})
	if err != nil {
		return err
	}

	generated, err := plannerUsecase.GenerateCalendar(ctx)
	if err != nil {
		return err
	}

	wb, err := plannerUsecase.ExportAll(ctx)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		dir := coreconfig.Global.Export.Dir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
		out = filepath.Join(dir, wb.FileName)
	}
	if err := os.WriteFile(out, wb.Data, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	logrus.Infof("[EXPORT] %d posts on %d dates, avg followers %s, coverage %d%%",
		generated.TotalPosts, len(dates.Dates),
		utils.FormatThousands(generated.Stats.AvgFollowers), generated.Stats.CoveragePercent)
	logrus.Infof("[EXPORT] Wrote %s (%s, %d sheets)", out, humanize.Bytes(uint64(len(wb.Data))), wb.Sheets)
	return nil
}
