// Package table loads report CSVs into data frames and writes demo subsets.
package table

import (
	"context"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/report-data/internal/fetcher"
)

// Options configures how CSV files are read.
type Options struct {
	Encoding string // source charset label; empty means UTF-8
}

func (o Options) csv() fetcher.CSVOptions {
	return fetcher.CSVOptions{Encoding: o.Encoding}
}

// ReadRecords returns the header and data rows of the CSV at path.
func ReadRecords(ctx context.Context, path string, opts Options) ([]string, [][]string, error) {
	header, rows, err := fetcher.ReadCSVFile(ctx, path, opts.csv())
	if err != nil {
		return nil, nil, eris.Wrap(err, "table: read records")
	}
	if header == nil {
		return nil, nil, eris.Errorf("table: %s has no header row", path)
	}
	return header, rows, nil
}

// CountRows streams the CSV at path and returns the number of data rows.
func CountRows(ctx context.Context, path string, opts Options) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, eris.Wrapf(err, "table: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	o := opts.csv()
	o.HasHeader = true
	rowCh, errCh := fetcher.StreamCSV(ctx, f, o)

	n := 0
	for range rowCh {
		n++
	}
	for err := range errCh {
		if err != nil {
			return 0, eris.Wrapf(err, "table: count rows %s", path)
		}
	}
	return n, nil
}
