package schemafile

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/bitlayout/internal/analyzer"
	"github.com/alexhholmes/bitlayout/internal/schema"
)

func wireSchemas() []*schema.Schema {
	return []*schema.Schema{
		schema.Define(schema.Width16).
			Named("Header").
			Overflow(schema.Reject).
			Field("Dirty", schema.KindBool).
			Field("Kind", schema.UintKind(8), schema.Length(3), schema.Skip(2), schema.As("Mode")).
			Field("Level", schema.UintKind(8), schema.Length(4), schema.At(11)).
			Build(),
		schema.Define(schema.Width64).
			Named("Extended").
			Field("FirstValue", schema.UintKind(32), schema.Length(12), schema.Extend(25, 5, true)).
			Field("SecondValue", schema.UintKind(16), schema.Length(13)).
			Build(),
		schema.Define(schema.Width64).
			Named("Union").
			AllowOverlap().
			Field("All", schema.UintKind(32), schema.Length(16), schema.At(0)).
			Field("Low", schema.UintKind(32), schema.Length(2), schema.At(0)).
			Build(),
	}
}

func TestLoad(t *testing.T) {
	for _, name := range []string{"wire.yaml", "wire.toml", "wire.json"} {
		t.Run(name, func(t *testing.T) {
			doc, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, "wire", doc.Package)
			assert.Equal(t, map[string]string{"Mode": "uint8"}, doc.Types)

			got, err := doc.Schemas()
			require.NoError(t, err)
			if diff := cmp.Diff(wireSchemas(), got); diff != "" {
				t.Errorf("schemas mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadedSchemasCompile(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "wire.yaml"))
	require.NoError(t, err)
	schemas, err := doc.Schemas()
	require.NoError(t, err)

	var offsets [][]int
	for _, s := range schemas {
		l, err := analyzer.Analyze(s)
		require.NoError(t, err, s.Name)
		var o []int
		for _, r := range l.Regions {
			o = append(o, r.Offset)
		}
		offsets = append(offsets, o)
	}
	assert.Equal(t, [][]int{{0, 1, 10}, {0, 12}, {0, 0}}, offsets)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.yaml", YAML, true},
		{"a.YML", YAML, true},
		{"dir/a.toml", TOML, true},
		{"a.json", JSON, true},
		{"a.go", "", false},
		{"yaml", "", false},
	}
	for _, tt := range tests {
		got, ok := FormatOf(tt.path)
		assert.Equal(t, tt.want, got, tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("testdata/schema.xml")
	assert.ErrorContains(t, err, "unknown schema file extension")

	_, err = Load("testdata/missing.yaml")
	assert.ErrorContains(t, err, "reading schema file")
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("structs:\n  - name: A\n    width: 8\n"), YAML)
	assert.Error(t, err)

	_, err = Parse([]byte(`{"structs": [{"name": "A", "width": 8}]}`), JSON)
	assert.Error(t, err)

	_, err = Parse([]byte("[[structs]]\nname = \"A\"\nwidth = 8\n"), TOML)
	assert.Error(t, err)

	// A misspelled field key must not silently leave a 1-bit field
	_, err = Parse([]byte(`[[structs]]
name = "A"
storage = "uint8"

[[structs.fields]]
name = "F"
type = "uint8"
lenght = 4
`), TOML)
	assert.Error(t, err)

	_, err = Parse(nil, Format("xml"))
	assert.ErrorContains(t, err, "unknown schema format")
}

func TestSchemasErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  string
	}{
		{
			"bad storage",
			"structs:\n  - name: A\n    storage: uint7\n",
			"struct A: storage must be one of",
		},
		{
			"bad overflow",
			"structs:\n  - name: A\n    overflow: wrap\n",
			"struct A: overflow must be",
		},
		{
			"unknown type",
			"structs:\n  - name: A\n    fields:\n      - {name: F, type: string}\n",
			"struct A: field F: unsupported field type: string",
		},
		{
			"alias to unknown type",
			"types: {Text: string}\nstructs:\n  - name: A\n    fields:\n      - {name: F, type: Text}\n",
			"unsupported field type: string",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src), YAML)
			require.NoError(t, err)
			_, err = doc.Schemas()
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestAliasChain(t *testing.T) {
	doc, err := Parse([]byte(`
types:
  Level: Small
  Small: uint8
  Loop: Loop
structs:
  - name: A
    fields:
      - {name: L, type: Level, length: 3}
      - {name: Flag}
`), YAML)
	require.NoError(t, err)

	schemas, err := doc.Schemas()
	require.NoError(t, err)
	require.Len(t, schemas, 1)

	f := schemas[0].Fields
	assert.Equal(t, schema.UintKind(8), f[0].Kind)
	assert.Equal(t, "Level", f[0].TypeName)
	assert.Equal(t, 1, f[1].Bits())
	assert.Empty(t, f[1].TypeName)
}
