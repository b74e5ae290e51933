package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/report-data/internal/dataset"
	"github.com/sells-group/report-data/internal/fetcher"
	"github.com/sells-group/report-data/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export <source>",
	Short: "Export a loaded dataset to an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := dataset.ParseSource(args[0])
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return eris.New("export: --out is required")
		}
		sheet, _ := cmd.Flags().GetString("sheet")
		if sheet == "" {
			sheet = src.String()
		}

		rd := report.New(reportOptions(cfg))
		df, err := rd.Get(cmd.Context(), src)
		if err != nil {
			return err
		}

		records := df.Records()
		if err := fetcher.WriteXLSX(out, sheet, records[0], records[1:]); err != nil {
			return eris.Wrapf(err, "export: write %s", out)
		}
		if err := verifyWorkbook(out, sheet, df.Nrow()); err != nil {
			return err
		}

		zap.L().Info("dataset exported",
			zap.String("source", src.String()),
			zap.String("path", out),
			zap.Int("rows", df.Nrow()),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "", "destination .xlsx file")
	exportCmd.Flags().String("sheet", "", "sheet name (default: the source tag)")
	rootCmd.AddCommand(exportCmd)
}

// verifyWorkbook reads the written sheet back and checks it holds the header
// plus want data rows.
func verifyWorkbook(path, sheet string, want int) error {
	rows, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{SheetName: sheet, SkipRows: 1})
	if err != nil {
		return eris.Wrapf(err, "export: read back %s", path)
	}
	if len(rows) != want {
		return eris.Errorf("export: %s sheet %q has %d rows, expected %d", path, sheet, len(rows), want)
	}
	return nil
}
