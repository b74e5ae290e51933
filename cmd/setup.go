package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/report-data/internal/config"
	"github.com/sells-group/report-data/internal/report"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the data layout, download full datasets and derive demos",
	Long: "Creates data/ and logs/ under the root, downloads each full CSV that is missing, " +
		"and samples each missing demo CSV. Existing files are left untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applySetupFlags(cmd, cfg); err != nil {
			return err
		}
		return runSetup(cmd, cfg)
	},
}

func init() {
	addSetupFlags(setupCmd)
	rootCmd.AddCommand(setupCmd)
}

func addSetupFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("root", "", "data root directory (overrides data.root)")
	f.Float64("demo-size", 0, "fraction of rows kept in demo CSVs (overrides data.demo_size)")
	f.Uint64("seed", 0, "seed for demo sampling (overrides data.seed)")
	f.Bool("no-history", false, "do not record this run in the setup history database")
}

// applySetupFlags copies explicitly set flags onto the loaded config.
func applySetupFlags(cmd *cobra.Command, c *config.Config) error {
	f := cmd.Flags()
	if f.Changed("root") {
		root, err := f.GetString("root")
		if err != nil {
			return err
		}
		c.Data.Root = root
	}
	if f.Changed("demo-size") {
		size, err := f.GetFloat64("demo-size")
		if err != nil {
			return err
		}
		c.Data.DemoSize = size
	}
	if f.Changed("seed") {
		seed, err := f.GetUint64("seed")
		if err != nil {
			return err
		}
		c.Data.Seed = &seed
	}
	if f.Changed("no-history") {
		off, err := f.GetBool("no-history")
		if err != nil {
			return err
		}
		c.Store.Enabled = !off
	}
	return nil
}

// runSetup wires the hub client and history store into a ReportData and runs setup.
func runSetup(cmd *cobra.Command, c *config.Config) error {
	ctx := cmd.Context()

	hub, err := initHub(c)
	if err != nil {
		return err
	}
	deps := []report.Option{
		report.WithDownloader(hub),
		report.WithOutput(cmd.OutOrStdout()),
	}

	if c.Store.Enabled {
		st, err := initStore(ctx, c)
		if err != nil {
			zap.L().Warn("setup history disabled", zap.Error(err))
		} else {
			defer st.Close() //nolint:errcheck
			deps = append(deps, report.WithRecorder(st))
		}
	}

	rd := report.New(reportOptions(c), deps...)
	zap.L().Info("setting up report data",
		zap.String("root", rd.Root()),
		zap.Float64("demo_size", rd.DemoSize()),
	)
	return rd.SetUpData(ctx)
}
