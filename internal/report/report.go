// Package report prepares the cancer and bankruptcy datasets on disk and loads
// them for analysis.
package report

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/report-data/internal/dataset"
	"github.com/sells-group/report-data/internal/store"
)

// DefaultDemoSize is the fraction of rows kept in a demo CSV.
const DefaultDemoSize = 0.1

// Downloader fetches a hub dataset into a local directory and returns it.
type Downloader interface {
	DatasetDownload(ctx context.Context, handle string) (string, error)
}

// Recorder persists setup runs and their steps.
type Recorder interface {
	StartRun(ctx context.Context, root string) (string, error)
	RecordStep(ctx context.Context, runID string, step store.Step) error
	FinishRun(ctx context.Context, runID string, runErr error) error
}

// Options holds construction parameters. Values are not validated.
type Options struct {
	Root             string  // default "."
	DemoSize         float64 // zero means DefaultDemoSize
	CancerSource     string  // hub handle; empty means the default
	BankruptcySource string  // hub handle; empty means the default
	Seed             *uint64 // nil draws a random seed
	Encoding         string  // CSV charset; empty means UTF-8
}

// Option injects a collaborator.
type Option func(*ReportData)

// WithDownloader sets the dataset hub client.
func WithDownloader(d Downloader) Option {
	return func(r *ReportData) {
		r.hub = d
	}
}

// WithRecorder enables setup history.
func WithRecorder(rec Recorder) Option {
	return func(r *ReportData) {
		r.recorder = rec
	}
}

// WithOutput sets where status lines are printed (default stdout).
func WithOutput(w io.Writer) Option {
	return func(r *ReportData) {
		r.out = w
	}
}

// ReportData sets up and serves the report datasets under a root directory.
type ReportData struct {
	opts     Options
	registry *dataset.Registry
	hub      Downloader
	recorder Recorder
	out      io.Writer
	log      *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	mu     sync.Mutex
	latest dataset.Source
}

// New creates a ReportData. Nothing touches the file system until a method is called.
func New(opts Options, deps ...Option) *ReportData {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.DemoSize == 0 {
		opts.DemoSize = DefaultDemoSize
	}

	r := &ReportData{
		opts:     opts,
		registry: dataset.NewRegistry(opts.CancerSource, opts.BankruptcySource),
		out:      os.Stdout,
		log:      zap.L().With(zap.String("component", "report")),
		rng:      dataset.NewRand(opts.Seed),
	}
	for _, dep := range deps {
		dep(r)
	}
	return r
}

// Root returns the data root directory.
func (r *ReportData) Root() string {
	return r.opts.Root
}

// DemoSize returns the demo sampling fraction.
func (r *ReportData) DemoSize() float64 {
	return r.opts.DemoSize
}

// Registry returns the dataset registry.
func (r *ReportData) Registry() *dataset.Registry {
	return r.registry
}

// Path returns the CSV location for a source tag.
func (r *ReportData) Path(src dataset.Source) (string, error) {
	spec, err := r.registry.Lookup(src)
	if err != nil {
		return "", err
	}
	return spec.Path(r.opts.Root, src.Demo()), nil
}

// LatestLoaded returns the source most recently returned by a getter, or ""
// when nothing has been loaded.
func (r *ReportData) LatestLoaded() dataset.Source {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

func (r *ReportData) setLatest(src dataset.Source) {
	r.mu.Lock()
	r.latest = src
	r.mu.Unlock()
}
