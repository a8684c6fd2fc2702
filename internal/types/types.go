// Package types parses wire type descriptors into a closed set of column kinds.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind represents the closed set of column kinds the decoder understands.
type Kind int

const (
	// UnknownKind is the zero value, never returned by Parse without an error.
	UnknownKind Kind = iota
	// IntKind is a signed little-endian integer (Int8..Int64).
	IntKind
	// UIntKind is an unsigned little-endian integer (UInt8..UInt64).
	UIntKind
	// FloatKind is an IEEE-754 float (Float32, Float64).
	FloatKind
	// StringKind is a variable-width length-prefixed string.
	StringKind
	// FixedStringKind is a fixed-width byte string, FixedString(N).
	FixedStringKind
	// DateKind is a day number since the epoch stored as UInt16.
	DateKind
	// DateTimeKind is epoch seconds stored as UInt32, with an optional timezone.
	DateTimeKind
	// UUIDKind is a 16-byte UUID.
	UUIDKind
	// NullableKind wraps a nested kind with a leading null map.
	NullableKind
	// LowCardinalityKind is a dictionary-coded wrapper around a nested kind.
	LowCardinalityKind
)

var kindNames = map[Kind]string{
	UnknownKind:        "Unknown",
	IntKind:            "Int",
	UIntKind:           "UInt",
	FloatKind:          "Float",
	StringKind:         "String",
	FixedStringKind:    "FixedString",
	DateKind:           "Date",
	DateTimeKind:       "DateTime",
	UUIDKind:           "UUID",
	NullableKind:       "Nullable",
	LowCardinalityKind: "LowCardinality",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Descriptor is the parsed form of a wire type descriptor such as
// "LowCardinality(Nullable(String))" or "DateTime('Europe/Berlin')".
type Descriptor struct {
	Name     string
	Kind     Kind
	Width    int // bytes per item for fixed-width kinds, 0 otherwise
	Timezone string
	Nested   *Descriptor
}

// Signed reports whether the descriptor is a signed integer.
func (d *Descriptor) Signed() bool {
	return d.Kind == IntKind
}

// Nullable reports whether the descriptor is wrapped in Nullable.
func (d *Descriptor) Nullable() bool {
	return d.Kind == NullableKind
}

func (d *Descriptor) String() string {
	return d.Name
}

// UnknownTypeError is returned by Parse for descriptors outside the known set.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown column type: %q", e.Name)
}

var simpleTypes = map[string]Descriptor{
	"Int8":    {Kind: IntKind, Width: 1},
	"Int16":   {Kind: IntKind, Width: 2},
	"Int32":   {Kind: IntKind, Width: 4},
	"Int64":   {Kind: IntKind, Width: 8},
	"UInt8":   {Kind: UIntKind, Width: 1},
	"UInt16":  {Kind: UIntKind, Width: 2},
	"UInt32":  {Kind: UIntKind, Width: 4},
	"UInt64":  {Kind: UIntKind, Width: 8},
	"Float32": {Kind: FloatKind, Width: 4},
	"Float64": {Kind: FloatKind, Width: 8},
	"String":  {Kind: StringKind},
	"Date":    {Kind: DateKind, Width: 2},
	"UUID":    {Kind: UUIDKind, Width: 16},
}

// Parse converts a type descriptor string into a Descriptor, recursing into
// Nullable and LowCardinality wrappers.
func Parse(name string) (*Descriptor, error) {
	name = strings.TrimSpace(name)
	if d, ok := simpleTypes[name]; ok {
		d.Name = name
		return &d, nil
	}

	switch {
	case name == "DateTime":
		return &Descriptor{Name: name, Kind: DateTimeKind, Width: 4}, nil
	case strings.HasPrefix(name, "DateTime("):
		arg, ok := unwrap(name, "DateTime")
		if !ok {
			return nil, &UnknownTypeError{Name: name}
		}
		tz := strings.Trim(strings.TrimSpace(arg), "'")
		if tz == "" {
			return nil, &UnknownTypeError{Name: name}
		}
		return &Descriptor{Name: name, Kind: DateTimeKind, Width: 4, Timezone: tz}, nil
	case strings.HasPrefix(name, "FixedString("):
		arg, ok := unwrap(name, "FixedString")
		if !ok {
			return nil, &UnknownTypeError{Name: name}
		}
		length, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || length <= 0 {
			return nil, &UnknownTypeError{Name: name}
		}
		return &Descriptor{Name: name, Kind: FixedStringKind, Width: length}, nil
	case strings.HasPrefix(name, "Nullable("):
		return parseWrapper(name, "Nullable", NullableKind)
	case strings.HasPrefix(name, "LowCardinality("):
		return parseWrapper(name, "LowCardinality", LowCardinalityKind)
	}
	return nil, &UnknownTypeError{Name: name}
}

func parseWrapper(name, wrapper string, kind Kind) (*Descriptor, error) {
	arg, ok := unwrap(name, wrapper)
	if !ok {
		return nil, &UnknownTypeError{Name: name}
	}
	nested, err := Parse(arg)
	if err != nil {
		return nil, err
	}
	if nested.Kind == kind {
		return nil, &UnknownTypeError{Name: name}
	}
	return &Descriptor{Name: name, Kind: kind, Nested: nested}, nil
}

// unwrap returns the text between "wrapper(" and the matching final ")".
func unwrap(name, wrapper string) (string, bool) {
	prefix := wrapper + "("
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ")") {
		return "", false
	}
	return name[len(prefix) : len(name)-1], true
}
