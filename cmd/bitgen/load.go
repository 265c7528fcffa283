package main

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/alexhholmes/bitlayout"
	"github.com/alexhholmes/bitlayout/internal/analyzer"
	"github.com/alexhholmes/bitlayout/internal/parser"
	"github.com/alexhholmes/bitlayout/internal/schemafile"
)

// source is one input file with its compiled layouts
type source struct {
	path    string
	pkg     string
	layouts []*analyzer.Layout
}

// layout returns the layout of the named struct
func (s *source) layout(name string) (*analyzer.Layout, error) {
	for _, l := range s.layouts {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, errors.Errorf("%s: no bit field struct named %s", s.path, name)
}

// diagnostics is a list of positioned problems, one per line
type diagnostics []error

func (d diagnostics) Error() string {
	lines := make([]string, len(d))
	for i, err := range d {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

func load(path string) (*source, error) {
	if _, ok := schemafile.FormatOf(path); ok {
		return loadSchemaFile(path)
	}
	if filepath.Ext(path) == ".go" {
		return loadGoFile(path)
	}
	return nil, errors.Errorf("%s: unsupported input, want .go, .yaml, .toml or .json", path)
}

func loadGoFile(path string) (*source, error) {
	f, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}

	var diags diagnostics
	for _, d := range f.Diagnostics {
		diags = append(diags, d)
	}

	reg := parser.NewTypeRegistry()
	reg.RegisterFile(f)

	src := &source{path: path, pkg: f.Package}
	for _, t := range f.Types {
		s, err := reg.Schema(t)
		if err != nil {
			diags = append(diags, err)
			continue
		}
		l, err := bitlayout.Compile(s)
		if err != nil {
			diags = append(diags, parser.Diagnostic{Pos: t.Pos, Msg: err.Error()})
			continue
		}
		src.layouts = append(src.layouts, l)
	}

	if len(diags) > 0 {
		return nil, diags
	}
	return src, nil
}

func loadSchemaFile(path string) (*source, error) {
	doc, err := schemafile.Load(path)
	if err != nil {
		return nil, err
	}
	schemas, err := doc.Schemas()
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	src := &source{path: path, pkg: doc.Package}
	if src.pkg == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		src.pkg = filepath.Base(filepath.Dir(abs))
	}

	for _, s := range schemas {
		l, err := bitlayout.Compile(s)
		if err != nil {
			return nil, errors.Wrap(err, path)
		}
		src.layouts = append(src.layouts, l)
	}
	return src, nil
}
