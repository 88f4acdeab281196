// Package stashmaster loads the STASHmaster_A table that maps a STASH
// (section, item) pair to the diagnostic's canonical name.
package stashmaster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// Table maps section number to item number to name.
type Table map[int]map[int]string

// Name returns the canonical name of a section/item pair.
func (t Table) Name(section, item int) (string, bool) {
	name, ok := t[section][item]
	return name, ok
}

// Len returns the number of entries.
func (t Table) Len() int {
	n := 0
	for _, items := range t {
		n += len(items)
	}
	return n
}

// Load opens, reads and closes a STASHmaster file.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, nil
}

// Parse reads STASHmaster records. Only lines starting with '1' carry a
// name; they look like
//
//	1|    1 |    0 |   2 |U COMPNT OF WIND AFTER TIMESTEP     |
//
// where the fields after the record type are model, section, item and
// name.
func Parse(r io.Reader) (Table, error) {
	t := make(Table)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) == 0 || line[0] != '1' {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < 5 {
			return nil, fmt.Errorf("%w: line %d: expected at least 5 fields, got %d", types.ErrMalformedEntry, lineNo, len(fields))
		}
		section, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: section %q", types.ErrMalformedEntry, lineNo, fields[2])
		}
		item, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: item %q", types.ErrMalformedEntry, lineNo, fields[3])
		}

		items, ok := t[section]
		if !ok {
			items = make(map[int]string)
			t[section] = items
		}
		items[item] = strings.TrimSpace(fields[4])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning STASHmaster: %w", err)
	}
	return t, nil
}
