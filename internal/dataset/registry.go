package dataset

import (
	"github.com/rotisserie/eris"
)

// Default hub handles.
const (
	DefaultCancerSource     = "zahidmughal2343/global-cancer-patients-2015-2024"
	DefaultBankruptcySource = "fedesoriano/company-bankruptcy-prediction"
)

// Registry maps dataset names to their specs.
type Registry struct {
	specs map[string]Spec
	order []string // insertion order for deterministic iteration
}

// NewRegistry creates a registry holding the cancer and bankruptcy datasets,
// in that order. Empty sources fall back to the defaults.
func NewRegistry(cancerSource, bankruptcySource string) *Registry {
	if cancerSource == "" {
		cancerSource = DefaultCancerSource
	}
	if bankruptcySource == "" {
		bankruptcySource = DefaultBankruptcySource
	}

	r := &Registry{specs: make(map[string]Spec)}
	r.Register(Spec{Name: Cancer, Source: cancerSource})
	r.Register(Spec{Name: Bankruptcy, Source: bankruptcySource, LabelColumn: BankruptLabel})
	return r
}

// Register adds a spec. A repeated name replaces the earlier spec in place.
func (r *Registry) Register(s Spec) {
	if _, ok := r.specs[s.Name]; !ok {
		r.order = append(r.order, s.Name)
	}
	r.specs[s.Name] = s
}

// Get returns a spec by name.
func (r *Registry) Get(name string) (Spec, error) {
	s, ok := r.specs[name]
	if !ok {
		return Spec{}, eris.Errorf("dataset: unknown dataset %q", name)
	}
	return s, nil
}

// Lookup resolves a source tag to its spec.
func (r *Registry) Lookup(src Source) (Spec, error) {
	return r.Get(src.Dataset())
}

// All returns all specs in registration order.
func (r *Registry) All() []Spec {
	result := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.specs[name])
	}
	return result
}

// Names returns dataset names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
