package roseconf

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// RemoveRequest removes a request from the request list, the
// (section, item) index, the raw store, and the back-reference lists of
// the domain, time and use it links to. Returns ErrNotFound if id is not a
// request.
func (m *Model) RemoveRequest(id string) error {
	req, ok := m.records[id]
	if !ok || req.Kind != types.KindRequest {
		return fmt.Errorf("%w: request [%s]", types.ErrNotFound, id)
	}
	m.dropRequest(req)
	return nil
}

// RemoveRequests removes every request for a STASH section/item pair.
// Returns ErrNotFound if there are none.
func (m *Model) RemoveRequests(section, item int) error {
	ids := slices.Clone(m.index[section][item])
	if len(ids) == 0 {
		return fmt.Errorf("%w: no requests for (%d, %d)", types.ErrNotFound, section, item)
	}
	for _, id := range ids {
		m.dropRequest(m.records[id])
	}
	return nil
}

// RemoveDomain removes the named domain and every request linked to it.
func (m *Model) RemoveDomain(name string) error { return m.Remove(types.KindDomain, name) }

// RemoveTime removes the named time profile and every request linked to it.
func (m *Model) RemoveTime(name string) error { return m.Remove(types.KindTime, name) }

// RemoveUse removes the named use profile and every request linked to it.
func (m *Model) RemoveUse(name string) error { return m.Remove(types.KindUse, name) }

// Remove removes a domain, time or use record by name after first removing
// every request that links to it. Returns ErrNotFound, with no change, if
// the name is not defined.
func (m *Model) Remove(kind types.Kind, name string) error {
	if !kind.Referenced() {
		return fmt.Errorf("%w: %s records are not removed by name", types.ErrNotFound, kind)
	}
	id, ok := m.names[kind][name]
	if !ok {
		return fmt.Errorf("%w: %s %q", types.ErrNotFound, kind, name)
	}
	rec := m.records[id]

	// Dependents go first; dropRequest edits rec.RequestIDs.
	for _, reqID := range slices.Clone(rec.RequestIDs) {
		m.dropRequest(m.records[reqID])
	}

	m.order[kind] = deleteID(m.order[kind], id)
	delete(m.names[kind], name)
	delete(m.records, id)
	m.store.removeSection(id)
	return nil
}

// dropRequest removes a request everywhere it is recorded.
func (m *Model) dropRequest(req *types.Record) {
	m.order[types.KindRequest] = deleteID(m.order[types.KindRequest], req.ID)

	if section, item, err := requestKey(req); err == nil {
		if items, ok := m.index[section]; ok {
			items[item] = deleteID(items[item], req.ID)
			if len(items[item]) == 0 {
				delete(items, item)
			}
			if len(items) == 0 {
				delete(m.index, section)
			}
		}
	}

	for _, kind := range types.ReferencedKinds {
		if target, ok := m.Target(req, kind); ok {
			target.RequestIDs = deleteID(target.RequestIDs, req.ID)
		}
	}

	delete(m.records, req.ID)
	m.store.removeSection(req.ID)
}

func deleteID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(s string) bool { return s == id })
}
