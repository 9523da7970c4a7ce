// Package generator renders assembled output items as Go source: one
// struct per type definition, methods for the recognized derives, and
// the stored-literal constant with its lazy accessor.
package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/abdullah-albanna/json-to-struct/internal/assemble"
	"github.com/abdullah-albanna/json-to-struct/internal/casing"
	"github.com/abdullah-albanna/json-to-struct/internal/models"
)

// Derives with a direct rendering. Anything else is preserved as a
// marker comment so the metadata is never silently dropped.
const (
	deriveClone     = "Clone"
	deriveDebug     = "Debug"
	derivePartialEq = "PartialEq"
	deriveSerialize = "Serialize"
	deriveDeserial  = "Deserialize"
)

// Generator is responsible for rendering Go source from output items
type Generator struct {
	imports map[string]struct{}
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{imports: make(map[string]struct{})}
}

// Generate renders the items of one or more invocations into a single
// Go source file body.
func (g *Generator) Generate(items []assemble.Item, packageName string) (string, error) {
	var body bytes.Buffer

	for i, item := range items {
		if i > 0 {
			body.WriteString("\n")
		}
		switch {
		case item.Constant != nil:
			g.writeConstant(&body, item.Constant)
		case item.Type != nil:
			if err := g.writeType(&body, item); err != nil {
				return "", err
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by json-to-struct. DO NOT EDIT.\n\n")
	buf.WriteString(fmt.Sprintf("package %s\n", packageName))
	g.writeImports(&buf)
	buf.WriteString("\n")
	buf.Write(body.Bytes())

	return buf.String(), nil
}

// writeImports emits the import block with standard library imports
// first and third-party imports after a blank line.
func (g *Generator) writeImports(buf *bytes.Buffer) {
	if len(g.imports) == 0 {
		return
	}

	var stdLib, thirdParty []string
	for imp := range g.imports {
		if strings.Contains(imp, ".") {
			thirdParty = append(thirdParty, imp)
		} else {
			stdLib = append(stdLib, imp)
		}
	}
	sort.Strings(stdLib)
	sort.Strings(thirdParty)

	buf.WriteString("\nimport (\n")
	for _, imp := range stdLib {
		buf.WriteString(fmt.Sprintf("\t%q\n", imp))
	}
	if len(stdLib) > 0 && len(thirdParty) > 0 {
		buf.WriteString("\n")
	}
	for _, imp := range thirdParty {
		if imp == "github.com/goccy/go-json" {
			buf.WriteString("\tjson \"github.com/goccy/go-json\"\n")
			continue
		}
		buf.WriteString(fmt.Sprintf("\t%q\n", imp))
	}
	buf.WriteString(")\n")
}

func (g *Generator) writeType(buf *bytes.Buffer, item assemble.Item) error {
	def := item.Type

	for _, d := range def.Derives {
		switch d {
		case deriveClone, deriveDebug, derivePartialEq, deriveSerialize, deriveDeserial:
		default:
			buf.WriteString(fmt.Sprintf("// json-to-struct:derive(%s)\n", d))
		}
	}

	buf.WriteString(fmt.Sprintf("type %s struct {\n", def.Name))

	// Column widths so field names, types, and tags line up.
	maxNameWidth, maxTypeWidth := 0, 0
	names := make([]string, len(def.Fields))
	types := make([]string, len(def.Fields))
	for i, f := range def.Fields {
		names[i] = casing.Exported(f.Binding)
		types[i] = goType(f.Type)
		if len(names[i]) > maxNameWidth {
			maxNameWidth = len(names[i])
		}
		if len(types[i]) > maxTypeWidth {
			maxTypeWidth = len(types[i])
		}
	}

	for i, f := range def.Fields {
		buf.WriteString(fmt.Sprintf("\t%-*s %-*s %s\n",
			maxNameWidth, names[i],
			maxTypeWidth, types[i],
			fieldTag(f, item)))
	}
	buf.WriteString("}\n")

	for _, d := range def.Derives {
		switch d {
		case deriveClone:
			g.writeClone(buf, def)
		case deriveDebug:
			g.writeString(buf, def)
		case derivePartialEq:
			g.writeEqual(buf, def)
		}
	}
	return nil
}

// fieldTag builds the struct tag: the json key follows the rename
// policy when one is active and the raw wire key otherwise; the
// original wire key rides in an alias tag for decode-time acceptance.
func fieldTag(f models.Field, item assemble.Item) string {
	key := f.Wire
	if item.Rename != models.CasingNone {
		key = f.Binding
	}
	if item.Alias {
		return fmt.Sprintf("`json:%q alias:%q`", key, f.Wire)
	}
	return fmt.Sprintf("`json:%q`", key)
}

func goType(t models.FieldType) string {
	switch t.Kind {
	case models.ScalarType:
		switch t.Scalar {
		case models.ScalarBool:
			return "bool"
		case models.ScalarNumber:
			return "float64"
		default:
			return "string"
		}
	case models.OptionalType:
		return "*" + goType(*t.Elem)
	case models.CollectionType:
		return "[]" + goType(*t.Elem)
	case models.ReferenceType:
		return t.Ref
	default:
		return "any"
	}
}

// writeClone emits a deep-copy method. Scalars are covered by the
// value copy; pointers, slices, and nested definitions are rebuilt.
func (g *Generator) writeClone(buf *bytes.Buffer, def *models.TypeDef) {
	buf.WriteString(fmt.Sprintf("\n// Clone returns a deep copy of the %s.\n", def.Name))
	buf.WriteString(fmt.Sprintf("func (x %s) Clone() %s {\n", def.Name, def.Name))
	buf.WriteString("\tout := x\n")
	for _, f := range def.Fields {
		target := "out." + casing.Exported(f.Binding)
		writeCloneStmts(buf, f.Type, target, target, 1, 0)
	}
	buf.WriteString("\treturn out\n")
	buf.WriteString("}\n")
}

// writeCloneStmts emits the statements that turn a shallow copy of dst
// into a deep one. dst and src may be the same expression; every
// rebuild goes through a fresh temporary so the source is never
// clobbered mid-copy.
func writeCloneStmts(buf *bytes.Buffer, t models.FieldType, dst, src string, indent, depth int) {
	pad := strings.Repeat("\t", indent)
	switch t.Kind {
	case models.ReferenceType:
		buf.WriteString(fmt.Sprintf("%s%s = %s.Clone()\n", pad, dst, src))
	case models.OptionalType:
		if isScalar(*t.Elem) {
			buf.WriteString(fmt.Sprintf("%sif %s != nil {\n", pad, src))
			buf.WriteString(fmt.Sprintf("%s\tv%d := *%s\n", pad, depth, src))
			buf.WriteString(fmt.Sprintf("%s\t%s = &v%d\n", pad, dst, depth))
			buf.WriteString(pad + "}\n")
			return
		}
		buf.WriteString(fmt.Sprintf("%sif %s != nil {\n", pad, src))
		buf.WriteString(fmt.Sprintf("%s\tv%d := *%s\n", pad, depth, src))
		writeCloneStmts(buf, *t.Elem, fmt.Sprintf("v%d", depth), fmt.Sprintf("v%d", depth), indent+1, depth+1)
		buf.WriteString(fmt.Sprintf("%s\t%s = &v%d\n", pad, dst, depth))
		buf.WriteString(pad + "}\n")
	case models.CollectionType:
		buf.WriteString(fmt.Sprintf("%sif %s != nil {\n", pad, src))
		buf.WriteString(fmt.Sprintf("%s\ts%d := make(%s, len(%s))\n", pad, depth, goType(t), src))
		buf.WriteString(fmt.Sprintf("%s\tcopy(s%d, %s)\n", pad, depth, src))
		if !isScalar(*t.Elem) {
			buf.WriteString(fmt.Sprintf("%s\tfor i%d := range s%d {\n", pad, depth, depth))
			elem := fmt.Sprintf("s%d[i%d]", depth, depth)
			writeCloneStmts(buf, *t.Elem, elem, elem, indent+2, depth+1)
			buf.WriteString(pad + "\t}\n")
		}
		buf.WriteString(fmt.Sprintf("%s\t%s = s%d\n", pad, dst, depth))
		buf.WriteString(pad + "}\n")
	}
}

func isScalar(t models.FieldType) bool {
	return t.Kind == models.ScalarType
}

// writeString emits the Debug rendering: the type name followed by the
// serialized value.
func (g *Generator) writeString(buf *bytes.Buffer, def *models.TypeDef) {
	g.imports["github.com/goccy/go-json"] = struct{}{}
	buf.WriteString(fmt.Sprintf("\n// String renders the %s for debugging.\n", def.Name))
	buf.WriteString(fmt.Sprintf("func (x %s) String() string {\n", def.Name))
	buf.WriteString("\tb, _ := json.Marshal(x)\n")
	buf.WriteString(fmt.Sprintf("\treturn %q + string(b)\n", def.Name))
	buf.WriteString("}\n")
}

func (g *Generator) writeEqual(buf *bytes.Buffer, def *models.TypeDef) {
	g.imports["reflect"] = struct{}{}
	buf.WriteString(fmt.Sprintf("\n// Equal reports whether two %s values are deeply equal.\n", def.Name))
	buf.WriteString(fmt.Sprintf("func (x %s) Equal(other %s) bool {\n", def.Name, def.Name))
	buf.WriteString("\treturn reflect.DeepEqual(x, other)\n")
	buf.WriteString("}\n")
}

// writeConstant emits the canonical stored literal and a lazily
// decoded accessor.
func (g *Generator) writeConstant(buf *bytes.Buffer, c *assemble.Constant) {
	g.imports["sync"] = struct{}{}
	g.imports["github.com/goccy/go-json"] = struct{}{}

	varName := strcase.ToLowerCamel(c.Name)
	accessor := strcase.ToCamel(c.Name)

	buf.WriteString(fmt.Sprintf("// %s preserves the original literal in canonical form.\n", c.Name))
	buf.WriteString(fmt.Sprintf("const %s = %s\n\n", c.Name, strconv.Quote(c.JSON)))

	buf.WriteString(fmt.Sprintf("var %s = sync.OnceValue(func() map[string]any {\n", varName))
	buf.WriteString("\tvar v map[string]any\n")
	buf.WriteString(fmt.Sprintf("\tif err := json.Unmarshal([]byte(%s), &v); err != nil {\n", c.Name))
	buf.WriteString("\t\tpanic(\"json-to-struct: stored literal is not valid JSON: \" + err.Error())\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn v\n")
	buf.WriteString("})\n\n")

	buf.WriteString(fmt.Sprintf("// %s returns the decoded stored literal.\n", accessor))
	buf.WriteString(fmt.Sprintf("func %s() map[string]any {\n", accessor))
	buf.WriteString(fmt.Sprintf("\treturn %s()\n", varName))
	buf.WriteString("}\n")
}
