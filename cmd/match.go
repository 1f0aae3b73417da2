package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/readingcorps/rsmatch/config"
	"github.com/readingcorps/rsmatch/core/match"
	coremetrics "github.com/readingcorps/rsmatch/core/metrics"
	"github.com/readingcorps/rsmatch/infra/logger"
	"github.com/readingcorps/rsmatch/infra/metrics"
	"github.com/readingcorps/rsmatch/infra/store"
	"github.com/readingcorps/rsmatch/internal/eventbus"
)

var matchSchool string

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run the matching engine and commit the winning assignments",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchSchool, "school", "s", "", "only match the named school")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Logging.Apply()
	logg := logger.New("match-command")

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}

	if cfg.Metrics.PrometheusAddr != "" {
		if err := metrics.StartPromServer(ctx, cfg.Metrics.PrometheusAddr); err != nil {
			return fmt.Errorf("prometheus server: %w", err)
		}
	}

	db, err := store.Load(cfg.Database, logger.New("store"))
	if err != nil {
		return fmt.Errorf("load database: %w", err)
	}

	bus := eventbus.NewTyped[coremetrics.SearchProgress]()
	defer bus.Close()
	progress := bus.Subscribe()
	go func() {
		for ev := range progress {
			fmt.Printf("\r%s: %.1f%% (%d active, %d finished)",
				ev.School,
				float64(ev.CyclesProcessed)/float64(ev.CyclesTotal)*100,
				ev.Active, ev.Finished)
		}
	}()

	matcher := match.NewMatcher(db.Metadata, cfg.Match, db, logger.New("matcher"), sink, bus)
	for _, school := range db.Schools {
		if matchSchool != "" && matchSchool != school.Name {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := matcher.MatchSchool(school, db.Coaches)
		if err != nil {
			return err
		}
		fmt.Println()
		if err := matcher.Commit(res, time.Now()); err != nil {
			return fmt.Errorf("commit %s: %w", school.Name, err)
		}
	}

	if err := db.Save(); err != nil {
		return fmt.Errorf("save database: %w", err)
	}
	logg.Infof("matching complete")
	return nil
}
