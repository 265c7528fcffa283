package analyzer

import (
	"fmt"
	"math"
	"math/bits"

	"go.uber.org/zap"

	"github.com/alexhholmes/bitlayout/internal/schema"
)

// Region is the placement of one field inside the storage word
type Region struct {
	Field  schema.Field
	Offset int    // Bit position of the primary region
	Bits   int    // Primary bits (1 for booleans)
	Mask   uint64 // Primary bits in place

	// Extension placement, zero unless Field.Extension is set
	ExtOffset    int
	ExtBits      int
	ExtMask      uint64
	ExtendedMask uint64 // Mask + ExtMask
}

// Extended reports whether the region has a second bit range.
func (r Region) Extended() bool {
	return r.Field.Extension != nil
}

// Keep reports whether the extension bits are read in place.
func (r Region) Keep() bool {
	return r.Field.Extension != nil && r.Field.Extension.Keep
}

// ValueBits returns the width of the logical value carried by the region.
func (r Region) ValueBits() int {
	switch {
	case !r.Extended():
		return r.Bits
	case r.Keep():
		return bits.Len64(r.ExtendedMask >> uint(r.Offset))
	default:
		return r.Bits + r.ExtBits
	}
}

// Layout is the compiled placement of a schema. It is never modified after
// Analyze returns and may be shared between goroutines.
type Layout struct {
	Name     string
	Width    schema.Width
	Overflow schema.OverflowPolicy
	Regions  []Region
	Used     int // Running offset after the last field

	index map[string]int
}

// Region returns the region of the named field.
func (l *Layout) Region(name string) (Region, bool) {
	i, ok := l.index[name]
	if !ok {
		return Region{}, false
	}
	return l.Regions[i], true
}

// WordMask has every bit of the storage word set.
func (l *Layout) WordMask() uint64 {
	return LowMask(int(l.Width))
}

// LowMask returns a mask of the n low bits. n >= 64 yields all ones.
func LowMask(n int) uint64 {
	if n >= 64 {
		return math.MaxUint64
	}
	if n <= 0 {
		return 0
	}
	return 1<<uint(n) - 1
}

// Analyze compiles a schema into a Layout. It returns an *OverflowError when a
// field or extension runs past the word, an *OverlapError when regions share
// bits, and a *schema.SchemaError for malformed descriptors, including a kept
// extension placed below its field.
func Analyze(s *schema.Schema) (*Layout, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	width := s.Width.Resolve()
	l := &Layout{
		Name:     s.Name,
		Width:    width,
		Overflow: s.Overflow,
		Regions:  make([]Region, 0, len(s.Fields)),
		index:    make(map[string]int, len(s.Fields)),
	}

	// Phase 1: place fields in declaration order
	offset := 0
	for _, field := range s.Fields {
		if field.Offset != nil {
			// Declared positions are one past the bit they select; @0 and @1
			// both land on bit 0.
			offset = max(0, *field.Offset-1)
		}

		r := Region{
			Field:  field,
			Offset: offset,
			Bits:   field.Bits(),
		}
		r.Mask = LowMask(r.Bits) << uint(offset)

		if ext := field.Extension; ext != nil {
			if end := ext.Offset + ext.Length; end > int(width) {
				return nil, &OverflowError{Struct: s.Name, Field: field.Name, Offset: end, Capacity: int(width)}
			}
			r.ExtOffset = ext.Offset
			r.ExtBits = ext.Length
			r.ExtMask = LowMask(ext.Length) << uint(ext.Offset)
			if r.Mask&r.ExtMask != 0 {
				return nil, &OverlapError{Struct: s.Name, Field: field.Name, Other: field.Name, Bits: r.Mask & r.ExtMask}
			}
			if ext.Keep && ext.Offset < offset {
				return nil, &schema.SchemaError{Struct: s.Name, Field: field.Name,
					Detail: fmt.Sprintf("kept extension at bit %d lies below the field at bit %d", ext.Offset, offset)}
			}
			r.ExtendedMask = r.Mask | r.ExtMask
		}

		offset += r.Bits + field.Skip
		if offset > int(width) {
			return nil, &OverflowError{Struct: s.Name, Field: field.Name, Offset: offset, Capacity: int(width)}
		}

		Logger().Debug("placed field",
			zap.String("struct", s.Name),
			zap.String("field", field.Name),
			zap.Int("offset", r.Offset),
			zap.Int("bits", r.Bits),
			zap.Uint64("mask", r.Mask),
			zap.Uint64("ext_mask", r.ExtMask))

		l.index[field.Name] = len(l.Regions)
		l.Regions = append(l.Regions, r)
	}
	l.Used = offset

	// Phase 2: detect collisions
	if !s.AllowOverlap {
		if err := detectCollisions(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// detectCollisions reports the first pair of fields sharing a bit
func detectCollisions(l *Layout) error {
	for i := 0; i < len(l.Regions); i++ {
		r1 := l.Regions[i]
		m1 := r1.Mask | r1.ExtMask
		for j := i + 1; j < len(l.Regions); j++ {
			r2 := l.Regions[j]
			m2 := r2.Mask | r2.ExtMask
			if shared := m1 & m2; shared != 0 {
				return &OverlapError{Struct: l.Name, Field: r1.Field.Name, Other: r2.Field.Name, Bits: shared}
			}
		}
	}
	return nil
}
