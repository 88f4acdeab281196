package types

import "errors"

// Parse errors.
var (
	ErrMalformedHeader    = errors.New("malformed header")
	ErrMalformedSection   = errors.New("malformed section")
	ErrUnknownSectionKind = errors.New("unknown section kind")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrMissingKey         = errors.New("required key not set")
	ErrInvalidIndex       = errors.New("section or item is not an integer")
)

// Linking and annotation errors.
var (
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrNoDisplayName       = errors.New("no display name for section/item")
	ErrMalformedEntry      = errors.New("malformed STASHmaster entry")
)

// Record and mutation errors.
var (
	ErrUnknownKey = errors.New("unknown key")
	ErrNotFound   = errors.New("record not found")
)
