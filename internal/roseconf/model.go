package roseconf

import (
	"slices"

	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// Model is a parsed and linked STASH configuration. Records are addressed
// by section name; per-kind lists keep file order.
type Model struct {
	Module  string
	Version string

	store   *Store
	records map[string]*types.Record
	order   map[types.Kind][]string

	// Identity name to section name, for domain, time and use records.
	names map[types.Kind]map[string]string

	// isec -> item -> request section names, in file order.
	index map[int]map[int][]string
}

func newModel(module, version string, store *Store) *Model {
	m := &Model{
		Module:  module,
		Version: version,
		store:   store,
		records: make(map[string]*types.Record),
		order:   make(map[types.Kind][]string),
		names:   make(map[types.Kind]map[string]string),
		index:   make(map[int]map[int][]string),
	}
	for _, k := range types.ReferencedKinds {
		m.names[k] = make(map[string]string)
	}
	return m
}

func (m *Model) addToIndex(section, item int, id string) {
	items, ok := m.index[section]
	if !ok {
		items = make(map[int][]string)
		m.index[section] = items
	}
	items[item] = append(items[item], id)
}

// Store returns the raw section store backing the model. It is read-only
// to callers; use the Remove methods to change it.
func (m *Model) Store() *Store {
	return m.store
}

// Record returns the record for a section name.
func (m *Model) Record(id string) (*types.Record, bool) {
	r, ok := m.records[id]
	return r, ok
}

// Records returns the records of one kind in file order.
func (m *Model) Records(kind types.Kind) []*types.Record {
	return m.resolve(m.order[kind])
}

// Requests returns the request records in file order.
func (m *Model) Requests() []*types.Record { return m.Records(types.KindRequest) }

// Times returns the time records in file order.
func (m *Model) Times() []*types.Record { return m.Records(types.KindTime) }

// Uses returns the use records in file order.
func (m *Model) Uses() []*types.Record { return m.Records(types.KindUse) }

// Domains returns the domain records in file order.
func (m *Model) Domains() []*types.Record { return m.Records(types.KindDomain) }

// Named returns the domain, time or use record with the given name.
func (m *Model) Named(kind types.Kind, name string) (*types.Record, bool) {
	id, ok := m.names[kind][name]
	if !ok {
		return nil, false
	}
	return m.Record(id)
}

// Domain returns the domain record named name.
func (m *Model) Domain(name string) (*types.Record, bool) { return m.Named(types.KindDomain, name) }

// Time returns the time record named name.
func (m *Model) Time(name string) (*types.Record, bool) { return m.Named(types.KindTime, name) }

// Use returns the use record named name.
func (m *Model) Use(name string) (*types.Record, bool) { return m.Named(types.KindUse, name) }

// RequestsFor returns the requests for one STASH section/item pair, in
// file order. Several requests may share a pair.
func (m *Model) RequestsFor(section, item int) []*types.Record {
	return m.resolve(m.index[section][item])
}

// IndexSections returns the STASH section numbers that have requests,
// ascending.
func (m *Model) IndexSections() []int {
	out := make([]int, 0, len(m.index))
	for s := range m.index {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// IndexItems returns the item numbers with requests in a STASH section,
// ascending.
func (m *Model) IndexItems(section int) []int {
	items := m.index[section]
	out := make([]int, 0, len(items))
	for i := range items {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Target returns the record a request links to for a referenced kind.
func (m *Model) Target(req *types.Record, kind types.Kind) (*types.Record, bool) {
	var id string
	switch kind {
	case types.KindDomain:
		id = req.DomainID
	case types.KindTime:
		id = req.TimeID
	case types.KindUse:
		id = req.UseID
	default:
		return nil, false
	}
	return m.Record(id)
}

// Dependents returns the requests that link to a domain, time or use
// record, in request order.
func (m *Model) Dependents(r *types.Record) []*types.Record {
	return m.resolve(r.RequestIDs)
}

func (m *Model) resolve(ids []string) []*types.Record {
	out := make([]*types.Record, 0, len(ids))
	for _, id := range ids {
		if r, ok := m.records[id]; ok {
			out = append(out, r)
		}
	}
	return out
}
