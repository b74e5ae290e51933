package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/report-data/internal/dataset"
	"github.com/sells-group/report-data/internal/store"
	"github.com/sells-group/report-data/internal/table"
)

// SetUpData creates the directory layout, downloads each full CSV and derives
// each demo CSV. Steps whose output already exists are skipped. The first
// failure aborts the run and leaves whatever was already written.
func (r *ReportData) SetUpData(ctx context.Context) (err error) {
	runID := r.startRun(ctx)
	defer func() { r.finishRun(ctx, runID, err) }()

	if err := r.setUpLayout(ctx, runID); err != nil {
		return err
	}
	for _, spec := range r.registry.All() {
		if err := r.setUpFull(ctx, runID, spec); err != nil {
			return err
		}
		if err := r.setUpDemo(ctx, runID, spec); err != nil {
			return err
		}
	}
	return nil
}

// setUpLayout creates data/{name}/{full,demo} only when data/ is absent, and
// logs/ when it is absent. An existing data/ tree is never repaired.
func (r *ReportData) setUpLayout(ctx context.Context, runID string) error {
	dataRoot := dataset.DataRoot(r.opts.Root)
	ok, err := exists(dataRoot)
	if err != nil {
		return err
	}
	if !ok {
		for _, spec := range r.registry.All() {
			for _, sub := range []string{dataset.FullDir, dataset.DemoDir} {
				dir := filepath.Join(spec.Dir(r.opts.Root), sub)
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return eris.Wrapf(err, "report: create %s", dir)
				}
			}
		}
		r.log.Info("created data directories", zap.String("path", dataRoot))
		r.record(ctx, runID, store.Step{Name: "layout_data", Outcome: store.OutcomeCreated, Path: dataRoot})
	}

	logsRoot := dataset.LogsRoot(r.opts.Root)
	ok, err = exists(logsRoot)
	if err != nil {
		return err
	}
	if !ok {
		if err := os.MkdirAll(logsRoot, 0o755); err != nil {
			return eris.Wrapf(err, "report: create %s", logsRoot)
		}
		r.log.Info("created logs directory", zap.String("path", logsRoot))
		r.record(ctx, runID, store.Step{Name: "layout_logs", Outcome: store.OutcomeCreated, Path: logsRoot})
	}
	return nil
}

func (r *ReportData) setUpFull(ctx context.Context, runID string, spec dataset.Spec) error {
	path := spec.FullPath(r.opts.Root)
	step := store.Step{Name: dataset.SourceFor(spec.Name, false).String(), Dataset: spec.Name, Path: path}

	ok, err := exists(path)
	if err != nil {
		return err
	}
	if ok {
		r.printf("Already have %s Dataset", title(spec.Name))
		step.Outcome = store.OutcomePresent
		r.record(ctx, runID, step)
		return nil
	}

	if _, err := r.DownloadDataset(ctx, spec.Source, path); err != nil {
		return err
	}
	r.log.Info("dataset saved", zap.String("dataset", spec.Name), zap.String("source", spec.Source), zap.String("path", path))
	r.printf("%s Dataset Downloaded", title(spec.Name))
	step.Outcome = store.OutcomeDownloaded
	r.record(ctx, runID, step)
	return nil
}

func (r *ReportData) setUpDemo(ctx context.Context, runID string, spec dataset.Spec) error {
	path := spec.DemoPath(r.opts.Root)
	step := store.Step{Name: dataset.SourceFor(spec.Name, true).String(), Dataset: spec.Name, Path: path}

	ok, err := exists(path)
	if err != nil {
		return err
	}
	if ok {
		r.printf("Already have %s Demo", title(spec.Name))
		step.Outcome = store.OutcomePresent
		r.record(ctx, runID, step)
		return nil
	}

	header, rows, err := table.ReadRecords(ctx, spec.FullPath(r.opts.Root), table.Options{Encoding: r.opts.Encoding})
	if err != nil {
		return eris.Wrapf(err, "report: read %s full data", spec.Name)
	}

	picks, err := r.sample(spec, header, rows)
	if err != nil {
		return eris.Wrapf(err, "report: sample %s", spec.Name)
	}
	if err := table.WriteIndexed(path, header, rows, picks); err != nil {
		return err
	}

	r.log.Info("demo saved",
		zap.String("dataset", spec.Name),
		zap.Int("rows", len(picks)),
		zap.Int("of", len(rows)),
		zap.String("path", path),
	)
	r.printf("%s Demo Saved", title(spec.Name))
	step.Outcome = store.OutcomeSampled
	step.Rows = len(picks)
	r.record(ctx, runID, step)
	return nil
}

func (r *ReportData) sample(spec dataset.Spec, header []string, rows [][]string) ([]int, error) {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()

	if !spec.Stratified() {
		return dataset.SampleUniform(len(rows), r.opts.DemoSize, r.rng)
	}
	labels, err := dataset.LabelValues(header, rows, spec.LabelColumn)
	if err != nil {
		return nil, err
	}
	return dataset.SampleStratified(labels, r.opts.DemoSize, r.rng)
}

func (r *ReportData) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...) //nolint:errcheck
}

// startRun opens a history run. History is best-effort: recorder failures
// are logged and never abort setup.
func (r *ReportData) startRun(ctx context.Context) string {
	if r.recorder == nil {
		return ""
	}
	id, err := r.recorder.StartRun(ctx, r.opts.Root)
	if err != nil {
		r.log.Warn("setup history unavailable", zap.Error(err))
		return ""
	}
	return id
}

func (r *ReportData) record(ctx context.Context, runID string, step store.Step) {
	if r.recorder == nil || runID == "" {
		return
	}
	if err := r.recorder.RecordStep(ctx, runID, step); err != nil {
		r.log.Warn("record setup step", zap.String("step", step.Name), zap.Error(err))
	}
}

func (r *ReportData) finishRun(ctx context.Context, runID string, runErr error) {
	if r.recorder == nil || runID == "" {
		return
	}
	if err := r.recorder.FinishRun(context.WithoutCancel(ctx), runID, runErr); err != nil {
		r.log.Warn("finish setup run", zap.String("run_id", runID), zap.Error(err))
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, eris.Wrapf(err, "report: stat %s", path)
}

func title(name string) string {
	return cases.Title(language.English).String(name)
}
