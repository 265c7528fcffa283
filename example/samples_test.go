package example

import (
	"fmt"
	"testing"

	"github.com/alexhholmes/bitlayout/internal/analyzer"
	"github.com/alexhholmes/bitlayout/internal/codec"
	"github.com/alexhholmes/bitlayout/internal/parser"
	"github.com/alexhholmes/bitlayout/internal/schema"
)

func TestSampleStruct(t *testing.T) {
	s := SampleStruct{FieldOne: -1, FieldTwo: true, FieldThree: 65535}

	w := s.Pack()
	if w != 0x1FFFFFFFFFFFF {
		t.Fatalf("Pack() = %#x, want 0x1ffffffffffff", w)
	}
	if got := UnpackSampleStruct(w); got != s {
		t.Errorf("UnpackSampleStruct() = %+v, want %+v", got, s)
	}
	if s.Uint64() != w {
		t.Errorf("Uint64() = %#x, want %#x", s.Uint64(), w)
	}
}

func TestSampleExtendedStruct(t *testing.T) {
	s := SampleExtendedStruct{FirstValue: 33556158, SecondValue: 70}

	w := s.Pack()
	if w != 0x20466BE {
		t.Fatalf("Pack() = %#x, want 0x20466be", w)
	}
	got := UnpackSampleExtendedStruct(w)
	if got != s {
		t.Errorf("UnpackSampleExtendedStruct() = %+v, want %+v", got, s)
	}

	// Bits between the field and its extension are not part of the value
	got = UnpackSampleExtendedStruct(w | 1<<24)
	if got.FirstValue != 33556158 {
		t.Errorf("FirstValue = %d, want 33556158", got.FirstValue)
	}
}

func TestSampleExtendedWithoutKeepStruct(t *testing.T) {
	s := SampleExtendedWithoutKeepStruct{FirstValue: 9, SecondValue: 999}

	w := s.Pack()
	if w != 0x801F39 {
		t.Fatalf("Pack() = %#x, want 0x801f39", w)
	}
	if got := UnpackSampleExtendedWithoutKeepStruct(w); got != s {
		t.Errorf("Unpack() = %+v, want %+v", got, s)
	}

	// Four value bits: 16 truncates to 0
	if got := UnpackSampleExtendedWithoutKeepStruct(SampleExtendedWithoutKeepStruct{FirstValue: 16}.Pack()); got.FirstValue != 0 {
		t.Errorf("FirstValue = %d, want 0", got.FirstValue)
	}
}

func TestSampleBooleanStruct(t *testing.T) {
	s := SampleBooleanStruct{Field1: true, Field2: true, Field3: false, Field4: 7}

	w := s.Pack()
	if w != 0b00111011 {
		t.Fatalf("Pack() = %#b, want 0b111011", w)
	}
	if got := UnpackSampleBooleanStruct(w); got != s {
		t.Errorf("Unpack() = %+v, want %+v", got, s)
	}
	if s.Uint8() != 59 {
		t.Errorf("Uint8() = %d, want 59", s.Uint8())
	}

	// Field4 keeps only its five bits
	if got := UnpackSampleBooleanStruct(SampleBooleanStruct{Field4: 0x3F}.Pack()); got.Field4 != 0x1F {
		t.Errorf("Field4 = %#x, want 0x1f", got.Field4)
	}
}

func TestSampleUnionStruct(t *testing.T) {
	w := SampleUnionStruct{All: 150, LastVal: 77}.Pack()
	if w != 0x2FE {
		t.Fatalf("Pack() = %#x, want 0x2fe", w)
	}

	got := UnpackSampleUnionStruct(w)
	want := SampleUnionStruct{All: 766, HalfOneAll: 2, HalfTwoAll: 3, LastVal: 95}
	if got != want {
		t.Errorf("Unpack() = %+v, want %+v", got, want)
	}
}

func TestPacket(t *testing.T) {
	p := Packet{Version: 2, Urgent: true, Priority: 5, Length: 0x2ABC, Delta: 9}

	w, err := p.TryPack()
	if err != nil {
		t.Fatalf("TryPack() error: %v", err)
	}
	if got := UnpackPacket(w); got != p {
		t.Errorf("UnpackPacket() = %+v, want %+v", got, p)
	}

	tests := []struct {
		name string
		p    Packet
		err  string
	}{
		{"version", Packet{Version: 16}, "'Version' exceeded mask value: 16 does not fit in 4 bits"},
		{"priority", Packet{Priority: 8}, "'Priority' exceeded mask value: 8 does not fit in 3 bits"},
		{"length", Packet{Length: 0x4000}, "'Length' exceeded mask value: 16384 does not fit in 14 bits"},
		{"delta", Packet{Delta: -1}, "'Delta' exceeded mask value: 255 does not fit in 5 bits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.TryPack()
			if err == nil || err.Error() != tt.err {
				t.Errorf("TryPack() error = %v, want %q", err, tt.err)
			}
		})
	}
}

// TestGeneratedMatchesCodec packs the same values through the generated
// methods and the runtime codec.
func TestGeneratedMatchesCodec(t *testing.T) {
	file, err := parser.ParseFile("samples.go")
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	reg := parser.NewTypeRegistry()
	reg.RegisterFile(file)

	codecs := make(map[string]*codec.Codec)
	for _, typ := range file.Types {
		s, err := reg.Schema(typ)
		if err != nil {
			t.Fatalf("Schema(%s) error: %v", typ.Name, err)
		}
		l, err := analyzer.Analyze(s)
		if err != nil {
			t.Fatalf("Analyze(%s) error: %v", typ.Name, err)
		}
		codecs[typ.Name] = codec.New(l).WithPolicy(schema.Truncate)
	}
	if len(codecs) != 6 {
		t.Fatalf("found %d annotated types, want 6", len(codecs))
	}

	tests := []struct {
		typ    string
		values codec.Values
		word   uint64
	}{
		{"SampleStruct", codec.Values{"FieldOne": 0xFFFFFFFF, "FieldTwo": 1, "FieldThree": 0xFFFF},
			SampleStruct{FieldOne: -1, FieldTwo: true, FieldThree: 0xFFFF}.Pack()},
		{"SampleExtendedStruct", codec.Values{"FirstValue": 33556158, "SecondValue": 70},
			SampleExtendedStruct{FirstValue: 33556158, SecondValue: 70}.Pack()},
		{"SampleExtendedWithoutKeepStruct", codec.Values{"FirstValue": 9, "SecondValue": 999},
			SampleExtendedWithoutKeepStruct{FirstValue: 9, SecondValue: 999}.Pack()},
		{"SampleBooleanStruct", codec.Values{"Field1": 1, "Field2": 1, "Field4": 7},
			uint64(SampleBooleanStruct{Field1: true, Field2: true, Field4: 7}.Pack())},
		{"SampleUnionStruct", codec.Values{"All": 150, "LastVal": 77},
			SampleUnionStruct{All: 150, LastVal: 77}.Pack()},
		{"Packet", codec.Values{"Version": 2, "Urgent": 1, "Priority": 5, "Length": 0x2ABC, "Delta": 9},
			uint64(Packet{Version: 2, Urgent: true, Priority: 5, Length: 0x2ABC, Delta: 9}.Pack())},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			got, err := codecs[tt.typ].Pack(tt.values)
			if err != nil {
				t.Fatalf("Pack() error: %v", err)
			}
			if got != tt.word {
				t.Errorf("codec word %#x, generated word %#x", got, tt.word)
			}
		})
	}
}

func ExampleSampleExtendedWithoutKeepStruct() {
	w := SampleExtendedWithoutKeepStruct{FirstValue: 9, SecondValue: 999}.Pack()
	v := UnpackSampleExtendedWithoutKeepStruct(w)
	fmt.Printf("%#x %d %d\n", w, v.FirstValue, v.SecondValue)
	// Output: 0x801f39 9 999
}
