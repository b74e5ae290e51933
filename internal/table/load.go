package table

import (
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rotisserie/eris"
)

// ColumnNames names header cells the way pandas does: an empty cell at
// position i becomes "Unnamed: i" and repeats get ".1", ".2" suffixes.
func ColumnNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	repeats := make(map[string]int)
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			repeats[h]++
			name = fmt.Sprintf("%s.%d", h, repeats[h])
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// FromRecords builds a typed data frame from a header and its rows.
// Short rows are padded with empty cells; long rows are an error.
func FromRecords(header []string, rows [][]string) (dataframe.DataFrame, error) {
	if len(header) == 0 {
		return dataframe.DataFrame{}, eris.New("table: no columns")
	}
	names := ColumnNames(header)

	if len(rows) == 0 {
		cols := make([]series.Series, len(names))
		for i, name := range names {
			cols[i] = series.New([]string{}, series.String, name)
		}
		df := dataframe.New(cols...)
		if df.Err != nil {
			return df, eris.Wrap(df.Err, "table: build empty frame")
		}
		return df, nil
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, names)
	for i, row := range rows {
		switch {
		case len(row) > len(names):
			return dataframe.DataFrame{}, eris.Errorf("table: row %d has %d fields, header has %d", i, len(row), len(names))
		case len(row) < len(names):
			padded := make([]string, len(names))
			copy(padded, row)
			row = padded
		}
		records = append(records, row)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		return df, eris.Wrap(df.Err, "table: load records")
	}
	return df, nil
}

// Load reads the CSV at path into a data frame.
func Load(ctx context.Context, path string, opts Options) (dataframe.DataFrame, error) {
	header, rows, err := ReadRecords(ctx, path, opts)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	df, err := FromRecords(header, rows)
	if err != nil {
		return df, eris.Wrapf(err, "table: load %s", path)
	}
	return df, nil
}
