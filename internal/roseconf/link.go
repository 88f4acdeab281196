package roseconf

import (
	"fmt"

	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// Lookup maps a STASH (section, item) pair to its canonical name.
type Lookup interface {
	Name(section, item int) (string, bool)
}

type requestLinks struct {
	request string
	targets map[types.Kind]string
}

// link resolves every request's dom_name, tim_name and use_name. Links are
// applied only after all of them resolve.
func (m *Model) link() error {
	resolved := make([]requestLinks, 0, len(m.order[types.KindRequest]))

	for _, id := range m.order[types.KindRequest] {
		req := m.records[id]
		rl := requestLinks{request: id, targets: make(map[types.Kind]string, 3)}
		for _, kind := range types.ReferencedKinds {
			target, err := m.resolveReference(req, kind)
			if err != nil {
				return err
			}
			rl.targets[kind] = target
		}
		resolved = append(resolved, rl)
	}

	for _, rl := range resolved {
		req := m.records[rl.request]
		req.DomainID = rl.targets[types.KindDomain]
		req.TimeID = rl.targets[types.KindTime]
		req.UseID = rl.targets[types.KindUse]
		for _, kind := range types.ReferencedKinds {
			target := m.records[rl.targets[kind]]
			target.RequestIDs = append(target.RequestIDs, rl.request)
		}
	}
	return nil
}

// resolveReference returns the section name of the record a request names
// for the given kind. The request's reference key is the same as the
// target kind's identity key.
func (m *Model) resolveReference(req *types.Record, kind types.Kind) (string, error) {
	key := kind.IdentityKey()
	f, err := req.Get(key)
	if err != nil {
		return "", err
	}
	name, ok := f.Active()
	if !ok {
		return "", fmt.Errorf("%w: [%s] has no enabled %s", types.ErrUnresolvedReference, req.ID, key)
	}
	target, ok := m.names[kind][name]
	if !ok {
		return "", fmt.Errorf("%w: %s %q named by [%s]", types.ErrUnresolvedReference, kind, name, req.ID)
	}
	return target, nil
}

// Annotate sets DisplayName on every request from lookup. If any request's
// (isec, item) pair is missing from lookup, no names are changed.
func (m *Model) Annotate(lookup Lookup) error {
	names := make(map[string]string, len(m.order[types.KindRequest]))
	for _, id := range m.order[types.KindRequest] {
		req := m.records[id]
		section, item, err := requestKey(req)
		if err != nil {
			return err
		}
		name, ok := lookup.Name(section, item)
		if !ok {
			return fmt.Errorf("%w: (%d, %d) for [%s]", types.ErrNoDisplayName, section, item, id)
		}
		names[id] = name
	}
	for id, name := range names {
		m.records[id].DisplayName = name
	}
	return nil
}
