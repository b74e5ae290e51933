// Package dataset describes the report datasets, where they live on disk,
// and how their demo subsets are sampled.
package dataset

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Dataset names.
const (
	Cancer     = "cancer"
	Bankruptcy = "bankruptcy"
)

// Layout constants relative to the data root.
const (
	DataDir  = "data"
	LogsDir  = "logs"
	FullDir  = "full"
	DemoDir  = "demo"
	FileName = "data.csv"
)

// BankruptLabel is the binary target column of the bankruptcy dataset.
const BankruptLabel = "Bankrupt?"

// Spec describes one dataset: its hub source and its label column, if any.
type Spec struct {
	Name        string
	Source      string // hub handle, e.g. "owner/slug"
	LabelColumn string // empty when the demo is a uniform sample
}

// Dir returns {root}/data/{name}.
func (s Spec) Dir(root string) string {
	return filepath.Join(root, DataDir, s.Name)
}

// FullPath returns the location of the full CSV.
func (s Spec) FullPath(root string) string {
	return filepath.Join(s.Dir(root), FullDir, FileName)
}

// DemoPath returns the location of the demo CSV.
func (s Spec) DemoPath(root string) string {
	return filepath.Join(s.Dir(root), DemoDir, FileName)
}

// Path returns the demo or full CSV path.
func (s Spec) Path(root string, demo bool) string {
	if demo {
		return s.DemoPath(root)
	}
	return s.FullPath(root)
}

// Stratified reports whether the demo sample is drawn per label value.
func (s Spec) Stratified() bool {
	return s.LabelColumn != ""
}

// DataRoot returns {root}/data.
func DataRoot(root string) string {
	return filepath.Join(root, DataDir)
}

// LogsRoot returns {root}/logs.
func LogsRoot(root string) string {
	return filepath.Join(root, LogsDir)
}

// Source tags a loaded table: which dataset and which variant.
type Source string

const (
	FullCancer     Source = "full_cancer"
	DemoCancer     Source = "demo_cancer"
	FullBankruptcy Source = "full_bankruptcy"
	DemoBankruptcy Source = "demo_bankruptcy"
)

// Sources lists every tag in registry order, full before demo.
func Sources() []Source {
	return []Source{FullCancer, DemoCancer, FullBankruptcy, DemoBankruptcy}
}

// SourceFor builds the tag for a dataset name and variant.
func SourceFor(name string, demo bool) Source {
	if demo {
		return Source("demo_" + name)
	}
	return Source("full_" + name)
}

// Dataset returns the dataset name part of the tag.
func (s Source) Dataset() string {
	_, name, _ := strings.Cut(string(s), "_")
	return name
}

// Demo reports whether the tag refers to the demo variant.
func (s Source) Demo() bool {
	return strings.HasPrefix(string(s), "demo_")
}

// String returns the tag.
func (s Source) String() string {
	return string(s)
}

// ParseSource converts a tag like "demo_cancer" into a Source.
func ParseSource(s string) (Source, error) {
	src := Source(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Sources() {
		if src == known {
			return src, nil
		}
	}
	return "", eris.Errorf("dataset: unknown source %q (valid: full_cancer, demo_cancer, full_bankruptcy, demo_bankruptcy)", s)
}
