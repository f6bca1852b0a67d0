package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/maxviazov/cricket-scoring-service/internal/logger"
	"github.com/maxviazov/cricket-scoring-service/internal/repository/sqlite"
	"github.com/maxviazov/cricket-scoring-service/internal/service"
	"github.com/maxviazov/cricket-scoring-service/internal/simulate"
	"github.com/maxviazov/cricket-scoring-service/internal/stats"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	File    string
	DB      string
	Tail    int
	NoColor bool
}

func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a YAML-scripted match and print the scorecard",
		Long: `Play a YAML-scripted match through the scoring engine and print the scorecard.

The journal lives in memory unless --db points at a sqlite file.

Example:
  cricketd simulate --file ./examples/t20.yaml
  cricketd simulate --file match.yaml --db ./sim.db --tail 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "path to the match script (required)")
	cmd.Flags().StringVar(&opts.DB, "db", ":memory:", "sqlite journal path")
	cmd.Flags().IntVar(&opts.Tail, "tail", 6, "commentary lines to print")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runSimulate(cmd *cobra.Command, opts *SimulateOptions) error {
	if opts.NoColor {
		color.NoColor = true
	}
	level := "warn"
	if opts.Verbose {
		level = "info"
	}
	log, err := logger.New(&logger.LoggerConfig{Env: "dev", Level: level})
	if err != nil {
		return err
	}

	script, err := simulate.Load(opts.File)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := sqlite.Open(ctx, opts.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	mgr := stats.NewManager()
	matches := service.NewMatchService(store.Deliveries(), store.Tx(), mgr, service.MatchConfig{}, log)
	runner := simulate.NewRunner(matches, service.NewStatsService(mgr, log), log)

	rep, err := runner.Run(ctx, script)
	if err != nil {
		return fmt.Errorf("simulate %s: %w", opts.File, err)
	}
	simulate.Render(cmd.OutOrStdout(), rep, opts.Tail)
	return nil
}
