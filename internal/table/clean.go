package table

import (
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/rotisserie/eris"
)

// IndexColumns are the artifacts a persisted demo CSV carries: the unnamed
// positional index and the original row position.
var IndexColumns = []string{"Unnamed: 0", "index"}

// RemoveBadCols drops whichever index columns are present. A frame without
// them is returned unchanged. A frame holding nothing but index columns comes
// back with zero columns; gota cannot keep a row count without a column, so
// it has zero rows too.
func RemoveBadCols(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, eris.Wrap(df.Err, "table: remove index columns")
	}

	names := df.Names()
	var drop []string
	for _, col := range IndexColumns {
		if slices.Contains(names, col) {
			drop = append(drop, col)
		}
	}
	if len(drop) == 0 {
		return df, nil
	}
	if len(drop) == len(names) {
		return dataframe.DataFrame{}, nil
	}

	out := df.Drop(drop)
	if out.Err != nil {
		return df, eris.Wrapf(out.Err, "table: drop %v", drop)
	}
	return out, nil
}
