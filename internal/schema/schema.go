// Package schema describes the fields packed into a storage word.
//
// A Schema is authored once, either through the Builder or by one of the
// producers (Go source parser, schema files), and handed to the analyzer
// which turns it into a Layout.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid matches every error that rejects a schema, whether raised while
// validating descriptors or while placing them.
var ErrInvalid = errors.New("invalid schema")

// Width is the bit width of the storage word.
type Width int

const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// DefaultWidth is used when a schema does not declare a storage width.
const DefaultWidth = Width8

// Resolve returns the effective width, mapping the zero value to DefaultWidth.
func (w Width) Resolve() Width {
	if w == 0 {
		return DefaultWidth
	}
	return w
}

// Valid reports whether w is a native unsigned integer width (or unset).
func (w Width) Valid() bool {
	switch w {
	case 0, Width8, Width16, Width32, Width64:
		return true
	}
	return false
}

// GoType returns the unsigned Go type backing a word of this width.
func (w Width) GoType() string {
	return fmt.Sprintf("uint%d", int(w.Resolve()))
}

// ParseWidth accepts "8", "uint16", "byte" and so on.
func ParseWidth(s string) (Width, error) {
	switch strings.TrimSpace(s) {
	case "", "0":
		return 0, nil
	case "8", "uint8", "byte":
		return Width8, nil
	case "16", "uint16":
		return Width16, nil
	case "32", "uint32":
		return Width32, nil
	case "64", "uint64":
		return Width64, nil
	}
	return 0, fmt.Errorf("storage must be one of uint8, uint16, uint32, uint64, got: %s", s)
}

// KindClass distinguishes booleans from integers.
type KindClass int

const (
	Bool KindClass = iota
	Uint
	Int
)

func (c KindClass) String() string {
	switch c {
	case Bool:
		return "bool"
	case Uint:
		return "uint"
	case Int:
		return "int"
	default:
		return "unknown"
	}
}

// Kind is the value kind of a field. Width is the bit width of the value
// type and is ignored for booleans.
type Kind struct {
	Class KindClass
	Width int
}

var (
	KindBool = Kind{Class: Bool, Width: 1}
)

// UintKind returns an unsigned integer kind of the given width.
func UintKind(width int) Kind { return Kind{Class: Uint, Width: width} }

// IntKind returns a signed integer kind of the given width.
func IntKind(width int) Kind { return Kind{Class: Int, Width: width} }

// GoType returns the canonical Go type for the kind.
func (k Kind) GoType() string {
	switch k.Class {
	case Bool:
		return "bool"
	case Int:
		return fmt.Sprintf("int%d", k.Width)
	default:
		return fmt.Sprintf("uint%d", k.Width)
	}
}

func (k Kind) String() string { return k.GoType() }

// ParseKind maps a Go builtin type name to a Kind.
func ParseKind(goType string) (Kind, error) {
	switch goType {
	case "bool":
		return KindBool, nil
	case "uint8", "byte":
		return UintKind(8), nil
	case "uint16":
		return UintKind(16), nil
	case "uint32":
		return UintKind(32), nil
	case "uint64", "uint":
		return UintKind(64), nil
	case "int8":
		return IntKind(8), nil
	case "int16":
		return IntKind(16), nil
	case "int32", "rune":
		return IntKind(32), nil
	case "int64", "int":
		return IntKind(64), nil
	}
	return Kind{}, fmt.Errorf("unsupported field type: %s", goType)
}

// Extension places additional value bits in a second region of the word.
type Extension struct {
	Offset int
	Length int
	// Keep reads primary and extension bits as one masked value instead of
	// concatenating the extension bits above the primary ones.
	Keep bool
}

// Field describes one named value inside the word.
type Field struct {
	Name string
	Kind Kind
	// Length is the number of primary bits. Zero means 1.
	Length int
	// Offset is the declared bit position, nil when the field follows the
	// previous one.
	Offset *int
	// Skip is the number of unused bits left after the field.
	Skip      int
	Extension *Extension
	// TypeName is the host type carrying the value, for example a named
	// alias in generated code. Empty means Kind.GoType().
	TypeName string
}

// Bits returns the number of primary bits the field occupies. Booleans always
// occupy a single bit.
func (f Field) Bits() int {
	if f.Kind.Class == Bool || f.Length <= 0 {
		return 1
	}
	return f.Length
}

// HostType returns the type name used for the field in generated code.
func (f Field) HostType() string {
	if f.TypeName != "" {
		return f.TypeName
	}
	return f.Kind.GoType()
}

// OverflowPolicy decides what packing does with values wider than their field.
type OverflowPolicy int

const (
	// Truncate drops the high bits silently.
	Truncate OverflowPolicy = iota
	// Reject fails the pack with a FieldOverflowError.
	Reject
)

func (p OverflowPolicy) String() string {
	switch p {
	case Truncate:
		return "truncate"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseOverflowPolicy parses "truncate" or "reject". Empty means Truncate.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "", "truncate":
		return Truncate, nil
	case "reject":
		return Reject, nil
	}
	return 0, fmt.Errorf("overflow must be 'truncate' or 'reject', got: %s", s)
}

// Schema is an ordered set of fields packed into one word.
type Schema struct {
	Name   string
	Width  Width
	Fields []Field
	// Overflow is the pack policy for oversized values.
	Overflow OverflowPolicy
	// AllowOverlap permits fields sharing bits (union layouts). Packing
	// combines regions with OR, so shared bits set by two fields stay set
	// instead of carrying into higher bits.
	AllowOverlap bool
}

// Validate checks the descriptors independently of their placement.
func (s *Schema) Validate() error {
	if s == nil {
		return &SchemaError{Detail: "schema is nil"}
	}
	if !s.Width.Valid() {
		return &SchemaError{Struct: s.Name, Detail: fmt.Sprintf("invalid storage width %d", s.Width)}
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return &SchemaError{Struct: s.Name, Detail: "field without name"}
		}
		if seen[f.Name] {
			return &SchemaError{Struct: s.Name, Field: f.Name, Detail: "duplicate field name"}
		}
		seen[f.Name] = true

		if f.Kind.Class != Bool {
			switch f.Kind.Width {
			case 8, 16, 32, 64:
			default:
				return &SchemaError{Struct: s.Name, Field: f.Name,
					Detail: fmt.Sprintf("invalid value width %d", f.Kind.Width)}
			}
		}
		// Lengths past the word are placement errors reported by the analyzer.
		if f.Length < 0 {
			return &SchemaError{Struct: s.Name, Field: f.Name,
				Detail: fmt.Sprintf("negative length %d", f.Length)}
		}
		if f.Offset != nil && *f.Offset < 0 {
			return &SchemaError{Struct: s.Name, Field: f.Name,
				Detail: fmt.Sprintf("negative offset %d", *f.Offset)}
		}
		if f.Skip < 0 {
			return &SchemaError{Struct: s.Name, Field: f.Name,
				Detail: fmt.Sprintf("negative skip %d", f.Skip)}
		}
		if ext := f.Extension; ext != nil {
			if f.Kind.Class == Bool {
				return &SchemaError{Struct: s.Name, Field: f.Name, Detail: "boolean field cannot be extended"}
			}
			if ext.Length < 1 || ext.Offset < 0 {
				return &SchemaError{Struct: s.Name, Field: f.Name,
					Detail: fmt.Sprintf("invalid extension %d:%d", ext.Offset, ext.Length)}
			}
		}
	}
	return nil
}

// SchemaError reports a malformed descriptor.
type SchemaError struct {
	Struct string
	Field  string
	Detail string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema")
	if e.Struct != "" {
		b.WriteString(" ")
		b.WriteString(e.Struct)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Detail)
	return b.String()
}

func (e *SchemaError) Is(target error) bool { return target == ErrInvalid }
