package schema

// Builder assembles a Schema field by field.
//
//	s := schema.Define(schema.Width64).
//		Named("Sample").
//		Field("FirstValue", schema.UintKind(8), schema.Length(3), schema.Extend(23, 1, false)).
//		Field("SecondValue", schema.UintKind(32), schema.Length(20)).
//		Build()
type Builder struct {
	s Schema
}

// Define starts a schema stored in a word of the given width. Zero selects
// DefaultWidth.
func Define(width Width) *Builder {
	return &Builder{s: Schema{Width: width}}
}

// Named sets the schema (struct) name.
func (b *Builder) Named(name string) *Builder {
	b.s.Name = name
	return b
}

// Overflow sets the pack policy for values wider than their field.
func (b *Builder) Overflow(p OverflowPolicy) *Builder {
	b.s.Overflow = p
	return b
}

// AllowOverlap lets fields share bits.
func (b *Builder) AllowOverlap() *Builder {
	b.s.AllowOverlap = true
	return b
}

// FieldOption customizes a field added through Builder.Field.
type FieldOption func(*Field)

// Length sets the number of primary bits.
func Length(n int) FieldOption {
	return func(f *Field) { f.Length = n }
}

// At places the field at a declared bit position.
func At(offset int) FieldOption {
	return func(f *Field) {
		o := offset
		f.Offset = &o
	}
}

// Skip leaves n unused bits after the field.
func Skip(n int) FieldOption {
	return func(f *Field) { f.Skip = n }
}

// Extend stores additional value bits at offset.
func Extend(offset, length int, keep bool) FieldOption {
	return func(f *Field) {
		f.Extension = &Extension{Offset: offset, Length: length, Keep: keep}
	}
}

// As records the host type name used by generated code.
func As(typeName string) FieldOption {
	return func(f *Field) { f.TypeName = typeName }
}

// Field appends a field.
func (b *Builder) Field(name string, kind Kind, opts ...FieldOption) *Builder {
	f := Field{Name: name, Kind: kind, Length: 1}
	for _, opt := range opts {
		opt(&f)
	}
	b.s.Fields = append(b.s.Fields, f)
	return b
}

// Build returns the schema. The builder must not be used afterwards.
func (b *Builder) Build() *Schema {
	s := b.s
	s.Fields = append([]Field(nil), b.s.Fields...)
	return &s
}
