package types

import "fmt"

// FieldState tags the state of one declared field.
type FieldState int

// Field states. A field starts unset and moves to enabled or disabled
// when a value is assigned; it never returns to unset.
const (
	FieldUnset FieldState = iota
	FieldEnabled
	FieldDisabled
)

func (s FieldState) String() string {
	switch s {
	case FieldEnabled:
		return "enabled"
	case FieldDisabled:
		return "disabled"
	default:
		return "unset"
	}
}

// DisabledMarker prefixes the option name of a disabled field.
const DisabledMarker = "!!"

// Field is the tagged value of a declared key.
type Field struct {
	State FieldState
	Value string // raw text, meaningful unless State is FieldUnset
}

// Active returns the value and true only if the field is enabled.
// Disabled fields are present but not in force.
func (f Field) Active() (string, bool) {
	if f.State != FieldEnabled {
		return "", false
	}
	return f.Value, true
}

// Record is one parsed section. Its declared key set is fixed by its Kind.
// Links to other records are held as section identifiers so that removal
// only edits identifier lists.
type Record struct {
	ID   string // section name, e.g. "namelist:domain(dp01)"
	Kind Kind

	fields map[string]Field

	// Set on requests by linking.
	DomainID string
	TimeID   string
	UseID    string

	// Set on domain, time and use records by linking, in request order.
	RequestIDs []string

	// Canonical STASH name of a request, set by annotation.
	DisplayName string
}

// NewRecord creates an empty record of the given kind.
func NewRecord(id string, kind Kind) *Record {
	keys := kindSpecs[kind].keys
	fields := make(map[string]Field, len(keys))
	for _, k := range keys {
		fields[k] = Field{}
	}
	return &Record{ID: id, Kind: kind, fields: fields}
}

// Set assigns a raw value to a declared key. Returns ErrUnknownKey if the
// key is not declared for the record's kind; the record is unchanged.
func (r *Record) Set(key, value string, disabled bool) error {
	if _, ok := r.fields[key]; !ok {
		return fmt.Errorf("%w: %q in %s %s", ErrUnknownKey, key, r.Kind, r.ID)
	}
	state := FieldEnabled
	if disabled {
		state = FieldDisabled
	}
	r.fields[key] = Field{State: state, Value: value}
	return nil
}

// Get returns the field state of a declared key. Returns ErrUnknownKey if
// the key is not declared for the record's kind.
func (r *Record) Get(key string) (Field, error) {
	f, ok := r.fields[key]
	if !ok {
		return Field{}, fmt.Errorf("%w: %q in %s %s", ErrUnknownKey, key, r.Kind, r.ID)
	}
	return f, nil
}

// Keys returns the declared keys in declaration order.
func (r *Record) Keys() []string {
	return r.Kind.DeclaredKeys()
}

// Identity returns the enabled value of the kind's identity key. The
// second result is false for requests and for records whose identity is
// unset or disabled.
func (r *Record) Identity() (string, bool) {
	key := r.Kind.IdentityKey()
	if key == "" {
		return "", false
	}
	return r.fields[key].Active()
}

func (r *Record) String() string {
	return fmt.Sprintf("<%s (%s)>", r.Kind, r.ID)
}
