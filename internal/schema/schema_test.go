package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	b := Define(Width64).
		Named("Sample").
		Overflow(Reject).
		AllowOverlap().
		Field("A", UintKind(8), Length(3), Extend(23, 1, false)).
		Field("B", IntKind(32), At(5), Length(20), Skip(2), As("Count")).
		Field("C", KindBool)
	s := b.Build()

	assert.Equal(t, "Sample", s.Name)
	assert.Equal(t, Width64, s.Width)
	assert.Equal(t, Reject, s.Overflow)
	assert.True(t, s.AllowOverlap)
	require.Len(t, s.Fields, 3)

	a := s.Fields[0]
	assert.Equal(t, 3, a.Length)
	require.NotNil(t, a.Extension)
	assert.Equal(t, Extension{Offset: 23, Length: 1}, *a.Extension)
	assert.Nil(t, a.Offset)

	bf := s.Fields[1]
	require.NotNil(t, bf.Offset)
	assert.Equal(t, 5, *bf.Offset)
	assert.Equal(t, 2, bf.Skip)
	assert.Equal(t, "Count", bf.HostType())

	c := s.Fields[2]
	assert.Equal(t, 1, c.Length)
	assert.Equal(t, "bool", c.HostType())

	// Later additions do not leak into a built schema
	b.Field("D", KindBool)
	assert.Len(t, s.Fields, 3)
	require.NoError(t, s.Validate())
}

func TestFieldBits(t *testing.T) {
	assert.Equal(t, 1, Field{Kind: KindBool, Length: 7}.Bits())
	assert.Equal(t, 1, Field{Kind: UintKind(8)}.Bits())
	assert.Equal(t, 5, Field{Kind: UintKind(8), Length: 5}.Bits())
}

func TestWidth(t *testing.T) {
	assert.Equal(t, Width8, Width(0).Resolve())
	assert.Equal(t, Width32, Width32.Resolve())
	assert.Equal(t, "uint8", Width(0).GoType())
	assert.Equal(t, "uint64", Width64.GoType())
	assert.True(t, Width(0).Valid())
	assert.False(t, Width(24).Valid())

	tests := []struct {
		in      string
		want    Width
		wantErr bool
	}{
		{"", 0, false},
		{"byte", Width8, false},
		{"uint8", Width8, false},
		{"16", Width16, false},
		{"uint32", Width32, false},
		{" uint64 ", Width64, false},
		{"int64", 0, true},
		{"128", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseWidth(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"bool", KindBool},
		{"byte", UintKind(8)},
		{"uint16", UintKind(16)},
		{"uint", UintKind(64)},
		{"int8", IntKind(8)},
		{"rune", IntKind(32)},
		{"int", IntKind(64)},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseKind("float64")
	assert.Error(t, err)

	assert.Equal(t, "int32", IntKind(32).GoType())
	assert.Equal(t, "bool", KindBool.String())
	assert.Equal(t, "uint", Uint.String())
}

func TestParseOverflowPolicy(t *testing.T) {
	p, err := ParseOverflowPolicy("")
	require.NoError(t, err)
	assert.Equal(t, Truncate, p)

	p, err = ParseOverflowPolicy("reject")
	require.NoError(t, err)
	assert.Equal(t, Reject, p)
	assert.Equal(t, "reject", p.String())

	_, err = ParseOverflowPolicy("saturate")
	assert.Error(t, err)
}

func TestSchemaError(t *testing.T) {
	err := (&Schema{Name: "S", Fields: []Field{{Name: "A", Kind: KindBool}, {Name: "A", Kind: KindBool}}}).Validate()
	require.Error(t, err)
	assert.Equal(t, "schema S field A: duplicate field name", err.Error())
	assert.True(t, errors.Is(err, ErrInvalid))
}
