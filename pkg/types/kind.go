package types

import "strings"

// Kind identifies which of the four STASH namelists a record came from.
type Kind int

// Record kinds.
const (
	KindRequest Kind = iota
	KindTime
	KindUse
	KindDomain
)

// Section name prefixes used to classify a section by kind.
const (
	PrefixRequest = "namelist:streq"
	PrefixTime    = "namelist:time"
	PrefixUse     = "namelist:use"
	PrefixDomain  = "namelist:domain"
)

// kindSpec holds the fixed schema of one record kind.
type kindSpec struct {
	name     string
	prefix   string
	identity string // empty for requests
	keys     []string
}

var kindSpecs = map[Kind]kindSpec{
	KindRequest: {
		name:   "request",
		prefix: PrefixRequest,
		keys:   []string{"dom_name", "isec", "item", "package", "tim_name", "use_name"},
	},
	KindTime: {
		name:     "time",
		prefix:   PrefixTime,
		identity: "tim_name",
		keys: []string{
			"iedt", "iend", "ifre", "intv", "ioff", "iopt", "isam",
			"isdt", "iser", "istr", "itimes", "ityp", "lts0",
			"tim_name", "unt1", "unt2", "unt3",
		},
	},
	KindUse: {
		name:     "use",
		prefix:   PrefixUse,
		identity: "use_name",
		keys:     []string{"file_id", "locn", "macrotag", "use_name"},
	},
	KindDomain: {
		name:     "domain",
		prefix:   PrefixDomain,
		identity: "dom_name",
		keys: []string{
			"dom_name", "iest", "ilevs", "imn", "imsk", "inth", "iopa",
			"iopl", "isth", "iwst", "iwt", "levb", "levlst", "levt",
			"plt", "pslist", "rlevlst", "tblim", "tblimr", "telim",
			"tnlim", "ts", "tslim", "tsnum", "ttlim", "ttlimr", "twlim",
		},
	},
}

// Kinds lists all record kinds in classification order.
var Kinds = []Kind{KindRequest, KindTime, KindUse, KindDomain}

// ReferencedKinds lists the kinds a request points at. Records of these
// kinds carry a back-reference list.
var ReferencedKinds = []Kind{KindDomain, KindTime, KindUse}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if s, ok := kindSpecs[k]; ok {
		return s.name
	}
	return "unknown"
}

// Prefix returns the section name prefix for the kind.
func (k Kind) Prefix() string {
	return kindSpecs[k].prefix
}

// IdentityKey returns the key holding the record's name, or "" for requests.
func (k Kind) IdentityKey() string {
	return kindSpecs[k].identity
}

// DeclaredKeys returns a copy of the kind's declared key names in
// declaration order.
func (k Kind) DeclaredKeys() []string {
	keys := kindSpecs[k].keys
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Referenced reports whether requests point at records of this kind.
func (k Kind) Referenced() bool {
	return k.IdentityKey() != ""
}

// ParseKind returns the kind whose name matches s (request, time, use,
// domain). Returns ErrUnknownSectionKind otherwise.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if kindSpecs[k].name == s {
			return k, nil
		}
	}
	return 0, ErrUnknownSectionKind
}

// ClassifySection returns the kind of a section from its name prefix.
// Returns ErrUnknownSectionKind if no prefix matches.
func ClassifySection(section string) (Kind, error) {
	for _, k := range Kinds {
		if strings.HasPrefix(section, kindSpecs[k].prefix) {
			return k, nil
		}
	}
	return 0, ErrUnknownSectionKind
}
