package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/readingcorps/rsmatch/config"
	"github.com/readingcorps/rsmatch/core/model"
	"github.com/readingcorps/rsmatch/infra/importer"
	"github.com/readingcorps/rsmatch/infra/logger"
	"github.com/readingcorps/rsmatch/infra/store"
	"github.com/readingcorps/rsmatch/pkg/export"
)

var (
	referralCSV string
	coachCSV    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Create the matching database from registration spreadsheets",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&referralCSV, "referrals", "", "path to the teacher referral CSV")
	importCmd.Flags().StringVar(&coachCSV, "coaches", "", "path to the coach signup CSV")
	_ = importCmd.MarkFlagRequired("referrals")
	_ = importCmd.MarkFlagRequired("coaches")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Logging.Apply()
	logg := logger.New("import-command")

	refFile, err := os.Open(referralCSV)
	if err != nil {
		return err
	}
	defer refFile.Close()
	coachFile, err := os.Open(coachCSV)
	if err != nil {
		return err
	}
	defer coachFile.Close()

	meta := model.NewMetadata()
	res, err := importer.Load(refFile, coachFile, meta, logg)
	if err != nil {
		return err
	}

	db := store.New(meta, logger.New("store"))
	db.Schools = res.Schools
	db.Coaches = res.Coaches
	db.InitCatalog()
	if err := db.SaveTo(cfg.Database); err != nil {
		return err
	}
	logg.Infof("wrote %s", cfg.Database)

	outDir := filepath.Dir(cfg.Database)
	for name, rows := range map[string][][]string{
		"invalid_referrals.csv": res.InvalidReferrals,
		"invalid_coaches.csv":   res.InvalidCoaches,
	} {
		path := filepath.Join(outDir, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := export.WriteInvalidRows(f, rows); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		logg.Infof("wrote %s (%d rows)", path, len(rows))
	}
	return nil
}
