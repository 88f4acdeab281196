package roseconf

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// Verify checks that the lists, name dictionaries, (section, item) index,
// links and raw store agree on which records exist. It returns every
// inconsistency found, joined.
func (m *Model) Verify() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	listed := 0
	for _, kind := range types.Kinds {
		for _, id := range m.order[kind] {
			listed++
			r, ok := m.records[id]
			if !ok {
				fail("%s list holds missing record [%s]", kind, id)
				continue
			}
			if r.Kind != kind {
				fail("[%s] is a %s but listed as %s", id, r.Kind, kind)
			}
			if !m.store.Has(id) {
				fail("[%s] missing from store", id)
			}
		}
	}
	if listed != len(m.records) {
		fail("%d records listed, %d held", listed, len(m.records))
	}
	if n := len(m.store.sections); n != len(m.records) {
		fail("%d sections stored, %d records held", n, len(m.records))
	}

	for _, kind := range types.ReferencedKinds {
		if len(m.names[kind]) != len(m.order[kind]) {
			fail("%d %s names for %d records", len(m.names[kind]), kind, len(m.order[kind]))
		}
		for name, id := range m.names[kind] {
			r, ok := m.records[id]
			if !ok {
				fail("%s %q maps to missing record [%s]", kind, name, id)
				continue
			}
			if ident, _ := r.Identity(); ident != name {
				fail("%s %q maps to [%s] named %q", kind, name, id, ident)
			}
			for _, reqID := range r.RequestIDs {
				req, ok := m.records[reqID]
				if !ok {
					fail("[%s] back-references removed request [%s]", id, reqID)
					continue
				}
				if target, _ := m.Target(req, kind); target != r {
					fail("[%s] back-references [%s] which links elsewhere", id, reqID)
				}
			}
		}
	}

	indexed := 0
	for section, items := range m.index {
		for item, ids := range items {
			for _, id := range ids {
				indexed++
				if _, ok := m.records[id]; !ok {
					fail("index (%d, %d) holds missing request [%s]", section, item, id)
				}
			}
		}
	}
	if indexed != len(m.order[types.KindRequest]) {
		fail("%d indexed requests, %d listed", indexed, len(m.order[types.KindRequest]))
	}

	for _, id := range m.order[types.KindRequest] {
		req, ok := m.records[id]
		if !ok {
			continue
		}
		for _, kind := range types.ReferencedKinds {
			target, ok := m.Target(req, kind)
			if !ok {
				fail("[%s] links to missing %s", id, kind)
				continue
			}
			if !slices.Contains(target.RequestIDs, id) {
				fail("[%s] not in back-references of [%s]", id, target.ID)
			}
		}
	}

	return errors.Join(errs...)
}
