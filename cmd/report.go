package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/readingcorps/rsmatch/config"
	"github.com/readingcorps/rsmatch/infra/logger"
	"github.com/readingcorps/rsmatch/infra/store"
	"github.com/readingcorps/rsmatch/pkg/export"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the assignments CSV and school resource report",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Logging.Apply()
	logg := logger.New("report-command")

	db, err := store.Load(cfg.Database, logger.New("store"))
	if err != nil {
		return fmt.Errorf("load database: %w", err)
	}

	csvPath := filepath.Join(cfg.Export.Dir, "assignments.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	defer csvFile.Close()
	if err := export.WriteAssignmentsCSV(csvFile, db); err != nil {
		return fmt.Errorf("write %s: %w", csvPath, err)
	}
	logg.Infof("wrote %s", csvPath)

	reportPath := filepath.Join(cfg.Export.Dir, "report.txt")
	reportFile, err := os.Create(reportPath)
	if err != nil {
		return err
	}
	defer reportFile.Close()
	if err := export.WriteReport(reportFile, db); err != nil {
		return fmt.Errorf("write %s: %w", reportPath, err)
	}
	logg.Infof("wrote %s", reportPath)
	return nil
}
