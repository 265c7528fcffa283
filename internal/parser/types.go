package parser

import (
	"fmt"

	"github.com/alexhholmes/bitlayout/internal/schema"
)

// TypeRegistry resolves field type names to value kinds
type TypeRegistry struct {
	aliases map[string]string // alias → underlying type
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		aliases: make(map[string]string),
	}
}

// RegisterAlias adds a type alias mapping (e.g., type Flags uint8)
func (r *TypeRegistry) RegisterAlias(alias, underlying string) {
	r.aliases[alias] = underlying
}

// RegisterFile adds every named basic type declared in f
func (r *TypeRegistry) RegisterFile(f *File) {
	for alias, underlying := range f.Aliases {
		r.RegisterAlias(alias, underlying)
	}
}

// ResolveType resolves type aliases to their underlying types
// Returns the original type if not an alias
func (r *TypeRegistry) ResolveType(goType string) string {
	seen := make(map[string]bool)
	for !seen[goType] {
		seen[goType] = true
		underlying, ok := r.aliases[goType]
		if !ok {
			break
		}
		goType = underlying
	}
	return goType
}

// KindOf returns the value kind carried by a Go type
func (r *TypeRegistry) KindOf(goType string) (schema.Kind, error) {
	resolved := r.ResolveType(goType)
	kind, err := schema.ParseKind(resolved)
	if err != nil {
		if resolved != goType {
			return schema.Kind{}, fmt.Errorf("unsupported field type: %s (%s)", goType, resolved)
		}
		return schema.Kind{}, err
	}
	return kind, nil
}

// Schema converts a parsed type into a schema
func (r *TypeRegistry) Schema(t *TypeLayout) (*schema.Schema, error) {
	s := &schema.Schema{
		Name:         t.Name,
		Width:        t.Anno.Storage,
		Overflow:     t.Anno.Overflow,
		AllowOverlap: t.Anno.AllowOverlap,
	}

	for _, f := range t.Fields {
		kind, err := r.KindOf(f.GoType)
		if err != nil {
			return nil, Diagnostic{Pos: f.Pos, Msg: fmt.Sprintf("field %s: %v", f.Name, err)}
		}

		field := schema.Field{
			Name:   f.Name,
			Kind:   kind,
			Length: f.Tag.Length,
			Skip:   f.Tag.Skip,
		}
		if field.Length == 0 {
			field.Length = 1
		}
		if f.Tag.Offset >= 0 {
			off := f.Tag.Offset
			field.Offset = &off
		}
		if ext := f.Tag.Ext; ext != nil {
			field.Extension = &schema.Extension{Offset: ext.Offset, Length: ext.Length, Keep: ext.Keep}
		}
		if f.GoType != kind.GoType() {
			field.TypeName = f.GoType
		}
		s.Fields = append(s.Fields, field)
	}

	return s, nil
}
