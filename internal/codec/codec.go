// Package codec packs field values into a storage word and back according
// to a compiled layout.
package codec

import (
	"sort"

	"github.com/alexhholmes/bitlayout/internal/analyzer"
	"github.com/alexhholmes/bitlayout/internal/schema"
)

// Codec packs and unpacks words for one layout. It holds no mutable state
// and is safe for concurrent use.
type Codec struct {
	layout *analyzer.Layout
	policy schema.OverflowPolicy
}

// New returns a codec using the layout's overflow policy.
func New(l *analyzer.Layout) *Codec {
	return &Codec{layout: l, policy: l.Overflow}
}

// WithPolicy returns a copy of the codec using policy p.
func (c *Codec) WithPolicy(p schema.OverflowPolicy) *Codec {
	return &Codec{layout: c.layout, policy: p}
}

// Layout returns the layout the codec was built from.
func (c *Codec) Layout() *analyzer.Layout { return c.layout }

// Policy returns the overflow policy in use.
func (c *Codec) Policy() schema.OverflowPolicy { return c.policy }

// Pack folds values into a word. Fields absent from values pack as zero.
// Under the Truncate policy the only possible error is an unknown field name.
func (c *Codec) Pack(values Values) (uint64, error) {
	if len(values) > 0 {
		if err := c.checkNames(values); err != nil {
			return 0, err
		}
	}

	var word uint64
	for _, r := range c.layout.Regions {
		v := values[r.Field.Name]
		if c.policy == schema.Reject {
			if err := checkFits(r, v); err != nil {
				return 0, err
			}
		}
		// OR, not addition: union regions may share bits.
		word |= PackRegion(r, v)
	}
	return word & c.layout.WordMask(), nil
}

// Unpack splits a word into field values. It never fails; bits above the
// storage width are ignored.
func (c *Codec) Unpack(word uint64) Values {
	word &= c.layout.WordMask()
	values := make(Values, len(c.layout.Regions))
	for _, r := range c.layout.Regions {
		values[r.Field.Name] = UnpackRegion(r, word)
	}
	return values
}

func (c *Codec) checkNames(values Values) error {
	var unknown []string
	for name := range values {
		if _, ok := c.layout.Region(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &UnknownFieldError{Struct: c.layout.Name, Field: unknown[0]}
}

// PackRegion returns the contribution of one field value to the word.
func PackRegion(r analyzer.Region, v uint64) uint64 {
	off := uint(r.Offset)

	if r.Field.Kind.Class == schema.Bool {
		if v != 0 {
			return 1 << off
		}
		return 0
	}

	switch {
	case r.Extended() && !r.Keep():
		low := (v & analyzer.LowMask(r.Bits)) << off
		high := ((v >> uint(r.Bits)) & analyzer.LowMask(r.ExtBits)) << uint(r.ExtOffset)
		return low | high
	case r.Keep():
		return (v << off) & r.ExtendedMask
	default:
		return (v << off) & r.Mask
	}
}

// UnpackRegion extracts one field value from the word, cast to the width of
// the field's value type.
func UnpackRegion(r analyzer.Region, word uint64) uint64 {
	off := uint(r.Offset)

	if r.Field.Kind.Class == schema.Bool {
		if (word&r.Mask)>>off > 0 {
			return 1
		}
		return 0
	}

	var v uint64
	switch {
	case r.Keep():
		v = (word & r.ExtendedMask) >> off
	case r.Extended():
		high := (word & r.ExtMask) >> uint(r.ExtOffset)
		v = high<<uint(r.Bits) | (word&r.Mask)>>off
	default:
		v = (word & r.Mask) >> off
	}
	return v & analyzer.LowMask(r.Field.Kind.Width)
}

func checkFits(r analyzer.Region, v uint64) error {
	kind := r.Field.Kind
	if kind.Class == schema.Bool {
		return nil
	}
	if kind.Class == schema.Int {
		v &= analyzer.LowMask(kind.Width)
	} else if v&^analyzer.LowMask(kind.Width) != 0 {
		return &FieldOverflowError{Field: r.Field.Name, Value: v, Bits: kind.Width}
	}

	if r.Keep() {
		off := uint(r.Offset)
		if ((v<<off)&r.ExtendedMask)>>off != v {
			return &FieldOverflowError{Field: r.Field.Name, Value: v, Bits: r.ValueBits()}
		}
		return nil
	}
	if bits := r.ValueBits(); v&^analyzer.LowMask(bits) != 0 {
		return &FieldOverflowError{Field: r.Field.Name, Value: v, Bits: bits}
	}
	return nil
}
