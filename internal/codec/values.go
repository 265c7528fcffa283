package codec

// Values holds field values keyed by field name. Integers are carried as raw
// bit patterns; booleans as 0 or 1.
type Values map[string]uint64

// Set stores an unsigned value.
func (v Values) Set(name string, x uint64) Values {
	v[name] = x
	return v
}

// SetInt stores a signed value as its two's complement bit pattern.
func (v Values) SetInt(name string, x int64) Values {
	v[name] = uint64(x)
	return v
}

// SetBool stores a boolean.
func (v Values) SetBool(name string, b bool) Values {
	if b {
		v[name] = 1
	} else {
		v[name] = 0
	}
	return v
}

// Uint returns the raw value of a field, zero if absent.
func (v Values) Uint(name string) uint64 { return v[name] }

// Bool reports whether a field is nonzero.
func (v Values) Bool(name string) bool { return v[name] != 0 }

// Int sign-extends a field value from bits wide.
func (v Values) Int(name string, bits int) int64 {
	x := v[name]
	if bits <= 0 || bits >= 64 {
		return int64(x)
	}
	shift := uint(64 - bits)
	return int64(x<<shift) >> shift
}
