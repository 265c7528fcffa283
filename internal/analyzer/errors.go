package analyzer

import (
	"fmt"

	"github.com/alexhholmes/bitlayout/internal/schema"
)

// ErrInvalidLayout matches every error returned by Analyze.
var ErrInvalidLayout = schema.ErrInvalid

// OverflowError reports a field whose end runs past the storage word.
type OverflowError struct {
	Struct   string
	Field    string
	Offset   int // Bit offset reached after the field
	Capacity int // Storage width in bits
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("struct '%s' exceeded max bit size at '%s': offset %d, capacity %d",
		e.Struct, e.Field, e.Offset, e.Capacity)
}

func (e *OverflowError) Is(target error) bool { return target == ErrInvalidLayout }

// OverlapError reports two regions sharing bits. Field and Other are equal
// when a field's extension collides with its own primary bits.
type OverlapError struct {
	Struct string
	Field  string
	Other  string
	Bits   uint64 // Shared bits
}

func (e *OverlapError) Error() string {
	if e.Field == e.Other {
		return fmt.Sprintf("struct '%s': extension of '%s' overlaps its primary bits (%#x)",
			e.Struct, e.Field, e.Bits)
	}
	return fmt.Sprintf("struct '%s': collision: '%s' overlaps '%s' (%#x)",
		e.Struct, e.Field, e.Other, e.Bits)
}

func (e *OverlapError) Is(target error) bool { return target == ErrInvalidLayout }
