package report

import (
	"context"

	"github.com/go-gota/gota/dataframe"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/report-data/internal/dataset"
	"github.com/sells-group/report-data/internal/table"
)

// RemoveBadCols drops the persisted index columns ("Unnamed: 0", "index")
// that are present.
func RemoveBadCols(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return table.RemoveBadCols(df)
}

// Get loads the CSV for src, strips index columns and records src as the
// latest loaded source. Setup is never triggered; a missing file is an error.
func (r *ReportData) Get(ctx context.Context, src dataset.Source) (dataframe.DataFrame, error) {
	path, err := r.Path(src)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	df, err := table.Load(ctx, path, table.Options{Encoding: r.opts.Encoding})
	if err != nil {
		return dataframe.DataFrame{}, eris.Wrapf(err, "report: load %s", src)
	}
	df, err = RemoveBadCols(df)
	if err != nil {
		return dataframe.DataFrame{}, eris.Wrapf(err, "report: clean %s", src)
	}

	r.setLatest(src)
	rows, cols := df.Dims()
	r.log.Debug("dataset loaded", zap.String("source", src.String()), zap.Int("rows", rows), zap.Int("cols", cols))
	return df, nil
}

// GetCancerFull loads data/cancer/full/data.csv.
func (r *ReportData) GetCancerFull(ctx context.Context) (dataframe.DataFrame, error) {
	return r.Get(ctx, dataset.FullCancer)
}

// GetCancerDemo loads data/cancer/demo/data.csv.
func (r *ReportData) GetCancerDemo(ctx context.Context) (dataframe.DataFrame, error) {
	return r.Get(ctx, dataset.DemoCancer)
}

// GetBankruptcyFull loads data/bankruptcy/full/data.csv.
func (r *ReportData) GetBankruptcyFull(ctx context.Context) (dataframe.DataFrame, error) {
	return r.Get(ctx, dataset.FullBankruptcy)
}

// GetBankruptcyDemo loads data/bankruptcy/demo/data.csv.
func (r *ReportData) GetBankruptcyDemo(ctx context.Context) (dataframe.DataFrame, error) {
	return r.Get(ctx, dataset.DemoBankruptcy)
}
