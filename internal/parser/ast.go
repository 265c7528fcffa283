package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strings"
)

// File is a parsed Go source file
type File struct {
	Path    string
	Package string
	Types   []*TypeLayout
	// Aliases maps named types declared in the file to their underlying type
	// (type Flags uint8 → "Flags": "uint8").
	Aliases map[string]string
	// Diagnostics collects malformed annotations and tags. Types with
	// diagnostics are left out of Types.
	Diagnostics []Diagnostic
}

// TypeLayout represents a parsed struct with @bitfield annotation
type TypeLayout struct {
	Name   string
	Anno   *TypeAnnotation
	Fields []Field
	Pos    token.Position
}

// Field represents a struct field with bits tag
type Field struct {
	Name   string
	GoType string
	Tag    *FieldTag
	Pos    token.Position
}

// Diagnostic is a positioned parse problem
type Diagnostic struct {
	Pos token.Position
	Msg string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Msg)
}

// ParseFile parses a Go source file and extracts types with @bitfield annotations
func ParseFile(filename string) (*File, error) {
	return ParseSource(filename, nil)
}

// ParseSource is ParseFile for in-memory source. src may be nil, in which
// case filename is read.
func ParseSource(filename string, src any) (*File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	f := &File{
		Path:    filename,
		Package: file.Name.Name,
		Aliases: make(map[string]string),
	}
	extractTypes(fset, file, f)
	return f, nil
}

func extractTypes(fset *token.FileSet, file *ast.File, out *File) {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)

			// Named basic types: type Flags uint8
			if ident, ok := typeSpec.Type.(*ast.Ident); ok {
				out.Aliases[typeSpec.Name.Name] = ident.Name
				continue
			}

			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue // Not a struct
			}

			// A lone type spec keeps its doc comment on the GenDecl
			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}

			pos := fset.Position(typeSpec.Pos())
			anno, err := extractAnnotation(doc)
			if err != nil {
				out.Diagnostics = append(out.Diagnostics, Diagnostic{Pos: pos, Msg: err.Error()})
				continue
			}
			if anno == nil {
				continue // No @bitfield, skip this type
			}

			fields, diags := extractFields(fset, structType)
			if len(diags) > 0 {
				out.Diagnostics = append(out.Diagnostics, diags...)
				continue
			}

			out.Types = append(out.Types, &TypeLayout{
				Name:   typeSpec.Name.Name,
				Anno:   anno,
				Fields: fields,
				Pos:    pos,
			})
		}
	}
}

func extractAnnotation(doc *ast.CommentGroup) (*TypeAnnotation, error) {
	if doc == nil {
		return nil, nil
	}

	// Extract comment text lines
	var lines []string
	for _, comment := range doc.List {
		lines = append(lines, CleanComment(comment.Text))
	}

	anno, found, err := FindAnnotation(lines)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return anno, nil
}

func extractFields(fset *token.FileSet, structType *ast.StructType) ([]Field, []Diagnostic) {
	var fields []Field
	var diags []Diagnostic

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			continue // Embedded field, skip
		}

		if field.Tag == nil {
			continue // No tags
		}

		tag := reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
		bitsTag, ok := tag.Lookup("bits")
		if !ok {
			continue // No bits tag
		}

		pos := fset.Position(field.Pos())
		parsed, err := ParseTag(bitsTag)
		if err != nil {
			diags = append(diags, Diagnostic{Pos: pos, Msg: fmt.Sprintf("field %s: %v", field.Names[0].Name, err)})
			continue
		}

		goType := typeToString(field.Type)
		for _, name := range field.Names {
			fields = append(fields, Field{
				Name:   name.Name,
				GoType: goType,
				Tag:    parsed,
				Pos:    fset.Position(name.Pos()),
			})
		}
	}

	return fields, diags
}

// typeToString converts AST type expression to string
// Only identifiers can carry bit field values
func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		// Qualified type: pkg.Flags
		if x, ok := t.X.(*ast.Ident); ok {
			return x.Name + "." + t.Sel.Name
		}
		return "unknown"
	case *ast.StarExpr:
		return "*" + typeToString(t.X)
	case *ast.ArrayType:
		return "[]" + typeToString(t.Elt)
	default:
		return "unknown"
	}
}
