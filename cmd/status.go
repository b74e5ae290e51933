package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/report-data/internal/dataset"
	"github.com/sells-group/report-data/internal/report"
	"github.com/sells-group/report-data/internal/store"
	"github.com/sells-group/report-data/internal/table"
)

// fileStatus describes one of the four dataset CSVs.
type fileStatus struct {
	Source  dataset.Source `yaml:"source"`
	Path    string         `yaml:"path"`
	Present bool           `yaml:"present"`
	Rows    int            `yaml:"rows"`
	Error   string         `yaml:"error,omitempty"`
}

type statusReport struct {
	Root     string       `yaml:"root"`
	DemoSize float64      `yaml:"demo_size"`
	Files    []fileStatus `yaml:"files"`
	Runs     []store.Run  `yaml:"runs,omitempty"`
	StepsOf  string       `yaml:"steps_of,omitempty"`
	Steps    []store.Step `yaml:"steps,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which dataset files exist, their row counts and recent setup runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		output, _ := cmd.Flags().GetString("output")
		limit, _ := cmd.Flags().GetInt("runs")
		runID, _ := cmd.Flags().GetString("run")

		rd := report.New(reportOptions(cfg))
		files, err := collectFileStatus(ctx, rd, table.Options{Encoding: cfg.Data.Encoding})
		if err != nil {
			return err
		}
		rep := statusReport{Root: rd.Root(), DemoSize: rd.DemoSize(), Files: files}

		st, err := openStoreIfExists(ctx, cfg)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
			runs, target, steps, err := collectHistory(ctx, st, limit, runID)
			if err != nil {
				return err
			}
			rep.Runs = runs
			rep.Steps = steps
			if target != nil {
				rep.StepsOf = target.ID
			}
		} else if runID != "" {
			return eris.Errorf("status: no setup history at %s", cfg.StorePath())
		}

		switch output {
		case "yaml":
			return writeStatusYAML(cmd.OutOrStdout(), rep)
		case "table", "":
			formatStatus(cmd.OutOrStdout(), rep)
			return nil
		default:
			return eris.Errorf("status: unknown output format %q (valid: table, yaml)", output)
		}
	},
}

func init() {
	statusCmd.Flags().StringP("output", "o", "table", "output format: table or yaml")
	statusCmd.Flags().Int("runs", 5, "number of recent setup runs to show")
	statusCmd.Flags().String("run", "", "show the steps of this run instead of the latest")
	rootCmd.AddCommand(statusCmd)
}

// collectFileStatus counts rows of every dataset CSV concurrently. A file that
// cannot be read is reported, not returned as an error.
func collectFileStatus(ctx context.Context, rd *report.ReportData, opts table.Options) ([]fileStatus, error) {
	sources := dataset.Sources()
	files := make([]fileStatus, len(sources))
	for i, src := range sources {
		path, err := rd.Path(src)
		if err != nil {
			return nil, err
		}
		files[i] = fileStatus{Source: src, Path: path}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(files))
	for i := range files {
		f := &files[i]
		g.Go(func() error {
			if _, err := os.Stat(f.Path); err != nil {
				return nil //nolint:nilerr
			}
			f.Present = true
			n, err := table.CountRows(gctx, f.Path, opts)
			if err != nil {
				f.Error = err.Error()
				return nil
			}
			f.Rows = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "status: count rows")
	}
	return files, nil
}

// collectHistory returns the most recent runs and the steps of one run: runID
// when set, otherwise the latest run.
func collectHistory(ctx context.Context, st store.Store, limit int, runID string) ([]store.Run, *store.Run, []store.Step, error) {
	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return nil, nil, nil, eris.Wrap(err, "status: list runs")
	}

	var target *store.Run
	switch {
	case runID != "":
		target, err = st.GetRun(ctx, runID)
		if err != nil {
			return nil, nil, nil, eris.Wrapf(err, "status: get run %s", runID)
		}
	case len(runs) > 0:
		target = &runs[0]
	default:
		return runs, nil, nil, nil
	}

	steps, err := st.ListSteps(ctx, target.ID)
	if err != nil {
		return nil, nil, nil, eris.Wrapf(err, "status: list steps of %s", target.ID)
	}
	return runs, target, steps, nil
}

// formatStatus writes a tabular status report to w.
func formatStatus(out io.Writer, rep statusReport) {
	p := message.NewPrinter(language.English)

	_, _ = fmt.Fprintf(out, "root: %s (demo size %g)\n\n", rep.Root, rep.DemoSize)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SOURCE\tPRESENT\tROWS\tPATH")
	_, _ = fmt.Fprintln(w, "------\t-------\t----\t----")
	for _, f := range rep.Files {
		rows := "-"
		switch {
		case f.Error != "":
			rows = "error: " + truncate(f.Error, 40)
		case f.Present:
			rows = p.Sprintf("%d", f.Rows)
		}
		present := "no"
		if f.Present {
			present = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Source, present, rows, f.Path)
	}
	_ = w.Flush()

	if len(rep.Runs) == 0 {
		return
	}

	_, _ = fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RUN\tSTATUS\tSTARTED\tDURATION\tERROR")
	_, _ = fmt.Fprintln(w, "---\t------\t-------\t--------\t-----")
	for _, r := range rep.Runs {
		dur := "-"
		if r.FinishedAt != nil {
			dur = r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncateID(r.ID),
			r.Status,
			r.StartedAt.Format("2006-01-02 15:04"),
			dur,
			truncate(r.Error, 60),
		)
	}
	_ = w.Flush()

	if rep.StepsOf == "" {
		return
	}

	_, _ = fmt.Fprintf(out, "\nsteps of run %s:\n", truncateID(rep.StepsOf))
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STEP\tOUTCOME\tROWS\tPATH")
	_, _ = fmt.Fprintln(w, "----\t-------\t----\t----")
	for _, st := range rep.Steps {
		rows := "-"
		if st.Rows > 0 {
			rows = p.Sprintf("%d", st.Rows)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.Name, st.Outcome, rows, st.Path)
	}
	_ = w.Flush()
}

func writeStatusYAML(out io.Writer, rep statusReport) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return eris.Wrap(err, "status: encode yaml")
	}
	return eris.Wrap(enc.Close(), "status: flush yaml")
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
