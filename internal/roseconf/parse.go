package roseconf

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/stashconf/pkg/types"
)

const headerPrefix = "meta="

// ParseFile reads a configuration file to completion, closes it, and then
// parses it.
func ParseFile(path string) (*Model, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	m, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Parse reads r to completion and returns a fully linked model. Parsing
// either succeeds completely or returns an error and no model.
func Parse(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Model, error) {
	lines := splitLines(string(data))

	module, version, err := parseHeader(lines)
	if err != nil {
		return nil, err
	}

	store, err := parseSections(lines[2:], 3)
	if err != nil {
		return nil, err
	}

	m := newModel(module, version, store)
	if err := m.build(); err != nil {
		return nil, err
	}
	if err := m.link(); err != nil {
		return nil, err
	}
	return m, nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// parseHeader checks the meta line and the blank line after it.
func parseHeader(lines []string) (module, version string, err error) {
	if len(lines) < 2 {
		return "", "", fmt.Errorf("%w: expected meta line followed by a blank line", types.ErrMalformedHeader)
	}
	meta, ok := strings.CutPrefix(lines[0], headerPrefix)
	if !ok {
		return "", "", fmt.Errorf("%w: first line %q does not start with %q", types.ErrMalformedHeader, lines[0], headerPrefix)
	}
	module, version, ok = strings.Cut(strings.TrimSpace(meta), "/")
	if !ok || module == "" || version == "" {
		return "", "", fmt.Errorf("%w: meta value %q is not <module>/<version>", types.ErrMalformedHeader, meta)
	}
	if strings.TrimSpace(lines[1]) != "" {
		return "", "", fmt.Errorf("%w: second line must be blank, got %q", types.ErrMalformedHeader, lines[1])
	}
	return module, version, nil
}

// parseSections fills a store from the section body. first is the line
// number of lines[0], for error messages.
func parseSections(lines []string, first int) (*Store, error) {
	store := newStore()
	var cur *section
	continuing := false

	for i, line := range lines {
		lineNo := first + i
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';' {
			continuing = false
			continue
		}

		if continuing && (line[0] == ' ' || line[0] == '\t') {
			cur.appendLast(stripQuotes(trimmed))
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			if name == "" {
				return nil, fmt.Errorf("%w: line %d: empty section name", types.ErrMalformedSection, lineNo)
			}
			sec, err := store.addSection(name)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			cur = sec
			continuing = false
			continue
		}

		if cur == nil {
			return nil, fmt.Errorf("%w: line %d: option before any section", types.ErrMalformedSection, lineNo)
		}
		name, value, ok := strings.Cut(trimmed, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: line %d: expected key=value, got %q", types.ErrMalformedSection, lineNo, trimmed)
		}
		cur.set(name, stripQuotes(strings.TrimSpace(value)))
		continuing = true
	}

	return store, nil
}

// stripQuotes removes every single quote; the dialect quotes strings with
// them and they are never written back.
func stripQuotes(v string) string {
	return strings.ReplaceAll(v, "'", "")
}

// splitOption returns the declared key of a raw option name and whether
// it carries the disabled marker.
func splitOption(name string) (key string, disabled bool) {
	if key, ok := strings.CutPrefix(name, types.DisabledMarker); ok {
		return key, true
	}
	return name, false
}

// build creates records from the store and the derived indices.
func (m *Model) build() error {
	for _, name := range m.store.Sections() {
		kind, err := types.ClassifySection(name)
		if err != nil {
			return fmt.Errorf("%w: [%s]", err, name)
		}

		rec := types.NewRecord(name, kind)
		for _, opt := range m.store.Options(name) {
			key, disabled := splitOption(opt.Name)
			if err := rec.Set(key, opt.Value, disabled); err != nil {
				return err
			}
		}

		if kind.Referenced() {
			ident, ok := rec.Identity()
			if !ok {
				return fmt.Errorf("%w: %s in [%s]", types.ErrMissingKey, kind.IdentityKey(), name)
			}
			if other, dup := m.names[kind][ident]; dup {
				return fmt.Errorf("%w: %s %q defined by [%s] and [%s]", types.ErrDuplicateName, kind, ident, other, name)
			}
			m.names[kind][ident] = name
		} else {
			section, item, err := requestKey(rec)
			if err != nil {
				return err
			}
			m.addToIndex(section, item, name)
		}

		m.records[name] = rec
		m.order[kind] = append(m.order[kind], name)
	}
	return nil
}

// requestKey returns the integer (isec, item) pair of a request.
func requestKey(r *types.Record) (section, item int, err error) {
	section, err = intField(r, "isec")
	if err != nil {
		return 0, 0, err
	}
	item, err = intField(r, "item")
	if err != nil {
		return 0, 0, err
	}
	return section, item, nil
}

func intField(r *types.Record, key string) (int, error) {
	f, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	v, ok := f.Active()
	if !ok {
		return 0, fmt.Errorf("%w: %s in [%s]", types.ErrMissingKey, key, r.ID)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q in [%s]", types.ErrInvalidIndex, key, v, r.ID)
	}
	return n, nil
}
