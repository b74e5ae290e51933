package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"

	"github.com/sells-group/report-data/internal/dataset"
	"github.com/sells-group/report-data/internal/report"
)

var loadCmd = &cobra.Command{
	Use:   "load <source>",
	Short: "Load a dataset and print its shape and first rows",
	Long:  "Loads one of full_cancer, demo_cancer, full_bankruptcy, demo_bankruptcy. Setup is not run; the CSV must exist.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := dataset.ParseSource(args[0])
		if err != nil {
			return err
		}
		head, _ := cmd.Flags().GetInt("head")

		rd := report.New(reportOptions(cfg))
		df, err := rd.Get(cmd.Context(), src)
		if err != nil {
			return err
		}

		formatFrame(cmd.OutOrStdout(), rd.LatestLoaded(), df, head)
		return nil
	},
}

func init() {
	loadCmd.Flags().Int("head", 5, "number of rows to print")
	rootCmd.AddCommand(loadCmd)
}

// formatFrame writes the frame's shape, column names and first n rows to w.
func formatFrame(out io.Writer, src dataset.Source, df dataframe.DataFrame, n int) {
	rows, cols := df.Dims()
	_, _ = fmt.Fprintf(out, "%s: %d rows x %d columns\n", src, rows, cols)
	_, _ = fmt.Fprintf(out, "columns: %s\n", strings.Join(df.Names(), ", "))

	if n <= 0 || rows == 0 {
		return
	}
	records := df.Records() // header first
	if n+1 < len(records) {
		records = records[:n+1]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, rec := range records {
		_, _ = fmt.Fprintln(w, strings.Join(rec, "\t"))
	}
	_ = w.Flush()
}
