package codec

import "fmt"

// FieldOverflowError is returned by Pack under the Reject policy when a value
// does not fit the bits of its field.
type FieldOverflowError struct {
	Field string
	Value uint64
	Bits  int
}

func (e *FieldOverflowError) Error() string {
	return fmt.Sprintf("'%s' exceeded mask value: %d does not fit in %d bits", e.Field, e.Value, e.Bits)
}

// UnknownFieldError is returned by Pack for a value naming no field.
type UnknownFieldError struct {
	Struct string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("struct '%s' has no field '%s'", e.Struct, e.Field)
}
