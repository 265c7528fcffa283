// Package schemafile reads bit field schemas from YAML, TOML or JSON
// documents.
//
//	package: wire
//	types:
//	  Mode: uint8
//	structs:
//	  - name: Header
//	    storage: uint16
//	    overflow: reject
//	    fields:
//	      - {name: Dirty, type: bool}
//	      - {name: Kind, type: Mode, length: 3, skip: 2}
//	      - {name: Level, type: uint8, offset: 11, length: 4}
package schemafile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v2"

	"github.com/alexhholmes/bitlayout/internal/schema"
)

// Format is a schema document encoding.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, true
	case ".toml":
		return TOML, true
	case ".json":
		return JSON, true
	}
	return "", false
}

// Document is a schema file.
type Document struct {
	Package string            `yaml:"package" toml:"package" json:"package"`
	Types   map[string]string `yaml:"types" toml:"types" json:"types"` // named type → builtin type
	Structs []Struct          `yaml:"structs" toml:"structs" json:"structs"`
}

type Struct struct {
	Name         string  `yaml:"name" toml:"name" json:"name"`
	Storage      string  `yaml:"storage" toml:"storage" json:"storage"`
	Overflow     string  `yaml:"overflow" toml:"overflow" json:"overflow"`
	AllowOverlap bool    `yaml:"allow_overlap" toml:"allow_overlap" json:"allow_overlap"`
	Fields       []Field `yaml:"fields" toml:"fields" json:"fields"`
}

type Field struct {
	Name      string     `yaml:"name" toml:"name" json:"name"`
	Type      string     `yaml:"type" toml:"type" json:"type"`
	Length    int        `yaml:"length" toml:"length" json:"length"`
	Offset    *int       `yaml:"offset" toml:"offset" json:"offset"`
	Skip      int        `yaml:"skip" toml:"skip" json:"skip"`
	Extension *Extension `yaml:"extension" toml:"extension" json:"extension"`
}

type Extension struct {
	Offset int  `yaml:"offset" toml:"offset" json:"offset"`
	Length int  `yaml:"length" toml:"length" json:"length"`
	Keep   bool `yaml:"keep" toml:"keep" json:"keep"`
}

// Load reads and decodes the schema file at path.
func Load(path string) (*Document, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, errors.Errorf("unknown schema file extension: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading schema file")
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return doc, nil
}

// Parse decodes a schema document.
func Parse(data []byte, format Format) (*Document, error) {
	doc := &Document{}
	var err error
	switch format {
	case YAML:
		err = yaml.UnmarshalStrict(data, doc)
	case TOML:
		err = toml.NewDecoder(bytes.NewReader(data)).Strict(true).Decode(doc)
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(doc)
	default:
		return nil, errors.Errorf("unknown schema format: %s", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", format)
	}
	return doc, nil
}

// Schemas converts the document into one schema per struct, in document
// order. Layout rules are checked later by analyzer.Analyze.
func (d *Document) Schemas() ([]*schema.Schema, error) {
	out := make([]*schema.Schema, 0, len(d.Structs))
	for _, st := range d.Structs {
		s, err := d.convert(st)
		if err != nil {
			return nil, errors.Wrapf(err, "struct %s", st.Name)
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *Document) convert(st Struct) (*schema.Schema, error) {
	width, err := schema.ParseWidth(st.Storage)
	if err != nil {
		return nil, err
	}
	policy, err := schema.ParseOverflowPolicy(st.Overflow)
	if err != nil {
		return nil, err
	}

	b := schema.Define(width).Named(st.Name).Overflow(policy)
	if st.AllowOverlap {
		b.AllowOverlap()
	}

	for _, f := range st.Fields {
		kind, err := d.kindOf(f.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", f.Name)
		}

		var opts []schema.FieldOption
		if f.Length != 0 {
			opts = append(opts, schema.Length(f.Length))
		}
		if f.Offset != nil {
			opts = append(opts, schema.At(*f.Offset))
		}
		if f.Skip != 0 {
			opts = append(opts, schema.Skip(f.Skip))
		}
		if ext := f.Extension; ext != nil {
			opts = append(opts, schema.Extend(ext.Offset, ext.Length, ext.Keep))
		}
		if f.Type != "" && f.Type != kind.GoType() {
			opts = append(opts, schema.As(f.Type))
		}
		b.Field(f.Name, kind, opts...)
	}
	return b.Build(), nil
}

// kindOf resolves a type name through the document's named types. An empty
// type is a one bit unsigned field.
func (d *Document) kindOf(typ string) (schema.Kind, error) {
	if typ == "" {
		return schema.UintKind(8), nil
	}
	resolved := typ
	for seen := 0; seen <= len(d.Types); seen++ {
		underlying, ok := d.Types[resolved]
		if !ok {
			break
		}
		resolved = underlying
	}
	return schema.ParseKind(resolved)
}
