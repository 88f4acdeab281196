package roseconf

import (
	"fmt"

	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// Option is one raw option line: the name as written (including any
// disabled marker) and its unquoted value.
type Option struct {
	Name  string
	Value string
}

type section struct {
	name    string
	options []Option
	last    int // index of the most recently set option
}

// Store holds the sections of a file in declaration order, exactly as they
// will be written back.
type Store struct {
	sections []*section
	byName   map[string]*section
}

func newStore() *Store {
	return &Store{byName: make(map[string]*section)}
}

// addSection appends an empty section. Section names must be unique.
func (s *Store) addSection(name string) (*section, error) {
	if _, ok := s.byName[name]; ok {
		return nil, fmt.Errorf("%w: section [%s] defined twice", types.ErrDuplicateName, name)
	}
	sec := &section{name: name}
	s.sections = append(s.sections, sec)
	s.byName[name] = sec
	return sec, nil
}

// set assigns an option, replacing an earlier option of the same raw name
// in place.
func (sec *section) set(name, value string) {
	for i := range sec.options {
		if sec.options[i].Name == name {
			sec.options[i].Value = value
			sec.last = i
			return
		}
	}
	sec.options = append(sec.options, Option{Name: name, Value: value})
	sec.last = len(sec.options) - 1
}

// appendLast appends a continuation line to the most recently set option.
func (sec *section) appendLast(line string) {
	sec.options[sec.last].Value += "\n" + line
}

// removeSection drops a section. Returns false if it does not exist.
func (s *Store) removeSection(name string) bool {
	if _, ok := s.byName[name]; !ok {
		return false
	}
	delete(s.byName, name)
	for i, sec := range s.sections {
		if sec.name == name {
			s.sections = append(s.sections[:i], s.sections[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether the section exists.
func (s *Store) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Sections returns the section names in order.
func (s *Store) Sections() []string {
	names := make([]string, len(s.sections))
	for i, sec := range s.sections {
		names[i] = sec.name
	}
	return names
}

// Options returns a copy of a section's options in order, or nil if the
// section does not exist.
func (s *Store) Options(name string) []Option {
	sec, ok := s.byName[name]
	if !ok {
		return nil
	}
	out := make([]Option, len(sec.options))
	copy(out, sec.options)
	return out
}
