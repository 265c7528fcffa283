package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/alexhholmes/bitlayout/internal/analyzer"
	"github.com/alexhholmes/bitlayout/internal/schema"
)

// Options control the generated file
type Options struct {
	Package string // package clause of the generated file
	Source  string // input file named in the header, optional
	// Overflow set to Reject emits TryPack for every struct, not only for
	// structs declaring overflow=reject
	Overflow schema.OverflowPolicy
}

// Generator generates pack/unpack code for bit field layouts
type Generator struct {
	layouts []*analyzer.Layout
	opts    Options
}

// NewGenerator creates a new code generator
func NewGenerator(layouts []*analyzer.Layout, opts Options) *Generator {
	return &Generator{layouts: layouts, opts: opts}
}

// Generate returns the formatted source of the whole file
func (g *Generator) Generate() ([]byte, error) {
	if g.opts.Package == "" {
		return nil, errors.New("codegen: package name required")
	}

	var out bytes.Buffer
	if g.opts.Source != "" {
		fmt.Fprintf(&out, "// Code generated by bitgen from %s. DO NOT EDIT.\n\n", g.opts.Source)
	} else {
		out.WriteString("// Code generated by bitgen. DO NOT EDIT.\n\n")
	}
	fmt.Fprintf(&out, "package %s\n\n", g.opts.Package)

	if g.needsFmt() {
		out.WriteString("import \"fmt\"\n\n")
	}

	for _, l := range g.layouts {
		out.WriteString(g.GenerateType(l))
		Logger().Debug("generated type", zap.String("type", l.Name), zap.Int("fields", len(l.Regions)))
	}

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "format generated code")
	}
	return src, nil
}

// needsFmt returns true if any TryPack is emitted
func (g *Generator) needsFmt() bool {
	for _, l := range g.layouts {
		if g.rejects(l) && len(checkedRegions(l)) > 0 {
			return true
		}
	}
	return false
}

func (g *Generator) rejects(l *analyzer.Layout) bool {
	return l.Overflow == schema.Reject || g.opts.Overflow == schema.Reject
}

// GenerateType returns the unformatted code for one layout
func (g *Generator) GenerateType(l *analyzer.Layout) string {
	var code strings.Builder

	code.WriteString(g.generateConsts(l))
	code.WriteString(g.generatePack(l))
	code.WriteString(g.generateUnpack(l))
	code.WriteString(g.generateConversion(l))
	if g.rejects(l) {
		code.WriteString(g.generateTryPack(l))
	}

	return code.String()
}

// generateConsts generates the offset and mask constants of every region
func (g *Generator) generateConsts(l *analyzer.Layout) string {
	if len(l.Regions) == 0 {
		return ""
	}

	var code strings.Builder
	code.WriteString(fmt.Sprintf("// %s bit positions (%d of %d bits used)\n", l.Name, l.Used, l.Width))
	code.WriteString("const (\n")
	for _, r := range l.Regions {
		n := constName(l.Name, r.Field.Name)
		code.WriteString(fmt.Sprintf("\t%sOffset = %d\n", n, r.Offset))
		code.WriteString(fmt.Sprintf("\t%sMask = %#x\n", n, r.Mask))
		if r.Extended() {
			code.WriteString(fmt.Sprintf("\t%sExtOffset = %d\n", n, r.ExtOffset))
			code.WriteString(fmt.Sprintf("\t%sExtMask = %#x\n", n, r.ExtMask))
		}
	}
	code.WriteString(")\n\n")

	return code.String()
}

// generatePack generates the Pack method
func (g *Generator) generatePack(l *analyzer.Layout) string {
	var code strings.Builder
	word := l.Width.GoType()

	code.WriteString(fmt.Sprintf("// Pack folds v into a %s. Values wider than their field are truncated.\n", word))
	code.WriteString(fmt.Sprintf("func (v %s) Pack() %s {\n", l.Name, word))
	if len(l.Regions) == 0 {
		code.WriteString("\treturn 0\n}\n\n")
		return code.String()
	}

	code.WriteString("\tvar w uint64\n")
	for _, r := range l.Regions {
		code.WriteString(packOp(l, r))
	}
	code.WriteString(fmt.Sprintf("\treturn %s\n", wordCast(word, "w")))
	code.WriteString("}\n\n")

	return code.String()
}

func packOp(l *analyzer.Layout, r analyzer.Region) string {
	n := constName(l.Name, r.Field.Name)
	field := "v." + r.Field.Name

	if r.Field.Kind.Class == schema.Bool {
		return fmt.Sprintf("\tif %s {\n\t\tw |= %sMask\n\t}\n", field, n)
	}

	x := valueExpr(r.Field, field)
	switch {
	case r.Keep():
		return fmt.Sprintf("\tw |= (%s << %sOffset) & (%sMask | %sExtMask)\n", x, n, n, n)
	case r.Extended():
		return fmt.Sprintf("\tw |= (%s << %sOffset) & %sMask\n\tw |= (%s >> %d << %sExtOffset) & %sExtMask\n",
			x, n, n, x, r.Bits, n, n)
	default:
		return fmt.Sprintf("\tw |= (%s << %sOffset) & %sMask\n", x, n, n)
	}
}

// generateUnpack generates the Unpack<Type> function
func (g *Generator) generateUnpack(l *analyzer.Layout) string {
	var code strings.Builder
	word := l.Width.GoType()

	code.WriteString(fmt.Sprintf("// Unpack%s splits w into a %s\n", l.Name, l.Name))
	code.WriteString(fmt.Sprintf("func Unpack%s(w %s) %s {\n", l.Name, word, l.Name))
	if len(l.Regions) == 0 {
		code.WriteString(fmt.Sprintf("\treturn %s{}\n}\n\n", l.Name))
		return code.String()
	}

	code.WriteString(fmt.Sprintf("\tx := %s\n", widen(word, "w")))
	code.WriteString(fmt.Sprintf("\tvar v %s\n", l.Name))
	for _, r := range l.Regions {
		code.WriteString(unpackOp(l, r))
	}
	code.WriteString("\treturn v\n")
	code.WriteString("}\n\n")

	return code.String()
}

func unpackOp(l *analyzer.Layout, r analyzer.Region) string {
	n := constName(l.Name, r.Field.Name)
	host := r.Field.HostType()

	var expr string
	switch {
	case r.Field.Kind.Class == schema.Bool:
		expr = fmt.Sprintf("x&%sMask != 0", n)
		if r.Field.TypeName != "" {
			expr = fmt.Sprintf("%s(%s)", host, expr)
		}
		return fmt.Sprintf("\tv.%s = %s\n", r.Field.Name, expr)
	case r.Keep():
		expr = fmt.Sprintf("(x & (%sMask | %sExtMask)) >> %sOffset", n, n, n)
	case r.Extended():
		expr = fmt.Sprintf("(x&%sExtMask)>>%sExtOffset<<%d | (x&%sMask)>>%sOffset", n, n, r.Bits, n, n)
	default:
		expr = fmt.Sprintf("(x & %sMask) >> %sOffset", n, n)
	}
	return fmt.Sprintf("\tv.%s = %s(%s)\n", r.Field.Name, host, expr)
}

// generateConversion generates Uint<N>, the conversion into the storage word
func (g *Generator) generateConversion(l *analyzer.Layout) string {
	word := l.Width.GoType()
	method := "Uint" + strings.TrimPrefix(word, "uint")

	var code strings.Builder
	code.WriteString(fmt.Sprintf("// %s converts v to its storage word\n", method))
	code.WriteString(fmt.Sprintf("func (v %s) %s() %s {\n", l.Name, method, word))
	code.WriteString("\treturn v.Pack()\n")
	code.WriteString("}\n\n")

	return code.String()
}

// generateTryPack generates TryPack, the checked variant of Pack
func (g *Generator) generateTryPack(l *analyzer.Layout) string {
	var code strings.Builder
	word := l.Width.GoType()

	code.WriteString("// TryPack is Pack that fails instead of truncating\n")
	code.WriteString(fmt.Sprintf("func (v %s) TryPack() (%s, error) {\n", l.Name, word))
	for _, r := range checkedRegions(l) {
		n := constName(l.Name, r.Field.Name)
		x := valueExpr(r.Field, "v."+r.Field.Name)
		bits := r.ValueBits()

		if r.Keep() {
			code.WriteString(fmt.Sprintf("\tif x := %s; (x<<%sOffset&(%sMask|%sExtMask))>>%sOffset != x {\n",
				x, n, n, n, n))
		} else {
			code.WriteString(fmt.Sprintf("\tif x := %s; x&^%#x != 0 {\n", x, analyzer.LowMask(bits)))
		}
		code.WriteString(fmt.Sprintf("\t\treturn 0, fmt.Errorf(\"'%s' exceeded mask value: %%d does not fit in %d bits\", x)\n",
			r.Field.Name, bits))
		code.WriteString("\t}\n")
	}
	code.WriteString("\treturn v.Pack(), nil\n")
	code.WriteString("}\n\n")

	return code.String()
}

// checkedRegions returns the regions whose value type can hold more bits
// than the region stores
func checkedRegions(l *analyzer.Layout) []analyzer.Region {
	var out []analyzer.Region
	for _, r := range l.Regions {
		if r.Field.Kind.Class == schema.Bool {
			continue
		}
		if r.Keep() || r.ValueBits() < r.Field.Kind.Width {
			out = append(out, r)
		}
	}
	return out
}

// valueExpr converts a field to its bit pattern as uint64
func valueExpr(f schema.Field, expr string) string {
	if f.Kind.Width >= 64 {
		return fmt.Sprintf("uint64(%s)", expr)
	}
	return fmt.Sprintf("uint64(uint%d(%s))", f.Kind.Width, expr)
}

func wordCast(word, expr string) string {
	if word == "uint64" {
		return expr
	}
	return fmt.Sprintf("%s(%s)", word, expr)
}

// widen converts a word expression to uint64
func widen(word, expr string) string {
	if word == "uint64" {
		return expr
	}
	return fmt.Sprintf("uint64(%s)", expr)
}

// constName builds the unexported constant prefix for a field
// Sample, FirstValue → sampleFirstValue
func constName(typeName, field string) string {
	if typeName == "" {
		return field
	}
	return strings.ToLower(typeName[:1]) + typeName[1:] + field
}
