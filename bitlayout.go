// Package bitlayout packs named fields into a single unsigned integer.
//
// A schema is declared once, compiled into a layout of offsets and masks, and
// then used to pack field values into a storage word and unpack them again:
//
//	s := bitlayout.Define(bitlayout.Width64).
//		Named("Sample").
//		Field("FirstValue", bitlayout.UintKind(8), bitlayout.Length(3), bitlayout.Extend(23, 1, false)).
//		Field("SecondValue", bitlayout.UintKind(32), bitlayout.Length(20)).
//		Build()
//
//	st, err := bitlayout.New[uint64](s)
//	if err != nil {
//		return err
//	}
//	word := st.Word(bitlayout.Values{"FirstValue": 9, "SecondValue": 999})
//	values := st.Unpack(word)
//
// Layouts are immutable; a Struct may be shared by any number of goroutines.
// The bitgen command generates the same pack/unpack logic as Go source.
package bitlayout

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"

	"github.com/alexhholmes/bitlayout/internal/analyzer"
	"github.com/alexhholmes/bitlayout/internal/codec"
	"github.com/alexhholmes/bitlayout/internal/schema"
)

type (
	Schema         = schema.Schema
	Field          = schema.Field
	Extension      = schema.Extension
	Kind           = schema.Kind
	Width          = schema.Width
	OverflowPolicy = schema.OverflowPolicy
	FieldOption    = schema.FieldOption
	Builder        = schema.Builder
	SchemaError    = schema.SchemaError

	Layout = analyzer.Layout
	Region = analyzer.Region
	// LayoutOverflowError reports a schema using more bits than its word has.
	LayoutOverflowError = analyzer.OverflowError
	LayoutOverlapError  = analyzer.OverlapError

	Values             = codec.Values
	FieldOverflowError = codec.FieldOverflowError
	UnknownFieldError  = codec.UnknownFieldError
)

const (
	Width8  = schema.Width8
	Width16 = schema.Width16
	Width32 = schema.Width32
	Width64 = schema.Width64

	Truncate = schema.Truncate
	Reject   = schema.Reject
)

// ErrInvalidLayout matches every schema or layout error returned by Compile.
var ErrInvalidLayout = analyzer.ErrInvalidLayout

var (
	Define    = schema.Define
	Length    = schema.Length
	At        = schema.At
	Skip      = schema.Skip
	Extend    = schema.Extend
	As        = schema.As
	UintKind  = schema.UintKind
	IntKind   = schema.IntKind
	KindBool  = schema.KindBool
	ParseKind = schema.ParseKind
)

// Compile places the fields of s and returns the resulting layout.
func Compile(s *Schema) (*Layout, error) {
	return analyzer.Analyze(s)
}

// Struct is the accessor surface of a compiled schema for a storage word of
// type W.
type Struct[W constraints.Unsigned] struct {
	codec *codec.Codec
}

// New compiles s and binds it to W. The width of W must match the storage
// width declared by s.
func New[W constraints.Unsigned](s *Schema) (*Struct[W], error) {
	l, err := Compile(s)
	if err != nil {
		return nil, err
	}
	return Bind[W](l)
}

// Bind wraps an already compiled layout.
func Bind[W constraints.Unsigned](l *Layout) (*Struct[W], error) {
	if got := wordBits[W](); got != int(l.Width) {
		return nil, fmt.Errorf("struct '%s' is stored in %d bits, word type has %d", l.Name, l.Width, got)
	}
	return &Struct[W]{codec: codec.New(l)}, nil
}

// Layout returns the compiled layout.
func (s *Struct[W]) Layout() *Layout { return s.codec.Layout() }

// Pack folds values into a word. It fails on unknown field names, and under
// the Reject policy on values wider than their field.
func (s *Struct[W]) Pack(values Values) (W, error) {
	w, err := s.codec.Pack(values)
	if err != nil {
		return 0, err
	}
	return W(w), nil
}

// Word converts values into a word, truncating oversized values regardless
// of the layout's policy. Unknown field names are ignored.
func (s *Struct[W]) Word(values Values) W {
	known := make(Values, len(values))
	for name, v := range values {
		if _, ok := s.codec.Layout().Region(name); ok {
			known[name] = v
		}
	}
	w, _ := s.codec.WithPolicy(Truncate).Pack(known)
	return W(w)
}

// Unpack splits a word into its field values.
func (s *Struct[W]) Unpack(word W) Values {
	return s.codec.Unpack(uint64(word))
}

func wordBits[W constraints.Unsigned]() int {
	return bits.Len64(uint64(^W(0)))
}
