// Package codegen emits ordinary Go source from a schema model: struct
// types with wire-faithful json tags, string enums with their variant
// constants, and a qualified operation-name manifest for dispatcher units.
// The emitted identifiers come from the registry, so separately generated
// units agree on every name.
package codegen

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/graphsmith/appsync/config"
	"github.com/graphsmith/appsync/registry"
	"github.com/graphsmith/appsync/schema"
)

// Generator renders one generated file per config.
type Generator struct {
	cfg *config.Config
	reg *registry.Registry

	buf        strings.Builder
	importPkgs map[string]bool
}

// New returns a generator for the given config and registry.
func New(cfg *config.Config, reg *registry.Registry) *Generator {
	return &Generator{cfg: cfg, reg: reg, importPkgs: map[string]bool{}}
}

// Generate renders the file and returns the formatted source.
func (g *Generator) Generate() ([]byte, error) {
	mode := g.reg.Mode()

	if mode != registry.OperationsOnly {
		for _, e := range g.reg.Model().Enums {
			g.writeEnum(e)
		}
		for _, t := range g.reg.Model().Types {
			g.writeStruct(t)
		}
	}
	if mode != registry.TypesOnly {
		g.writeOperations()
	}

	var header strings.Builder
	header.WriteString("// Code generated by appsyncgen, DO NOT EDIT.\n\n")
	fmt.Fprintf(&header, "package %s\n\n", g.cfg.Package)
	if len(g.importPkgs) > 0 {
		header.WriteString("import (\n")
		paths := make([]string, 0, len(g.importPkgs))
		for path := range g.importPkgs {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			fmt.Fprintf(&header, "\t%q\n", path)
		}
		header.WriteString(")\n\n")
	}

	src := []byte(header.String() + g.buf.String())
	formatted, err := imports.Process(g.cfg.Output, src, nil)
	if err != nil {
		return nil, fmt.Errorf("codegen: format %s: %w", g.cfg.Output, err)
	}
	return formatted, nil
}

// Write renders the file and writes it to the configured output path.
func (g *Generator) Write() error {
	src, err := g.Generate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.cfg.Output, src, 0o644); err != nil {
		return fmt.Errorf("codegen: write %s: %w", g.cfg.Output, err)
	}
	return nil
}

func (g *Generator) writeEnum(e *schema.EnumDefinition) {
	name := g.reg.TypeName(e.Name)
	fmt.Fprintf(&g.buf, "// %s is the %s enum from the schema.\n", name, e.Name)
	fmt.Fprintf(&g.buf, "type %s string\n\n", name)

	g.buf.WriteString("const (\n")
	for _, v := range e.Values {
		fmt.Fprintf(&g.buf, "\t%s %s = %q\n", g.reg.EnumValueName(e.Name, v.Name), name, v.Name)
	}
	g.buf.WriteString(")\n\n")

	fmt.Fprintf(&g.buf, "// All%s lists every %s variant in schema order.\n", name, name)
	fmt.Fprintf(&g.buf, "func All%s() []%s {\n\treturn []%s{", name, name, name)
	for i, v := range e.Values {
		if i > 0 {
			g.buf.WriteString(", ")
		}
		g.buf.WriteString(g.reg.EnumValueName(e.Name, v.Name))
	}
	g.buf.WriteString("}\n}\n\n")

	fmt.Fprintf(&g.buf, "// Valid reports whether v is a declared %s variant.\n", name)
	fmt.Fprintf(&g.buf, "func (v %s) Valid() bool {\n\tswitch v {\n\tcase ", name)
	for i, v := range e.Values {
		if i > 0 {
			g.buf.WriteString(", ")
		}
		g.buf.WriteString(g.reg.EnumValueName(e.Name, v.Name))
	}
	g.buf.WriteString(":\n\t\treturn true\n\t}\n\treturn false\n}\n\n")
}

func (g *Generator) writeStruct(t *schema.TypeDefinition) {
	name := g.reg.TypeName(t.Name)
	what := "object"
	if t.Input {
		what = "input object"
	}
	fmt.Fprintf(&g.buf, "// %s is the %s %s from the schema.\n", name, t.Name, what)
	fmt.Fprintf(&g.buf, "type %s struct {\n", name)
	for _, f := range t.Fields {
		tag := f.Name
		if f.Type.Nullable {
			tag += ",omitzero"
		}
		fmt.Fprintf(&g.buf, "\t%s %s `json:%q`\n", g.reg.FieldName(t.Name, f.Name), g.goType(f.Type), tag)
	}
	g.buf.WriteString("}\n\n")
}

func (g *Generator) writeOperations() {
	ops := g.reg.Operations()
	if len(ops) == 0 {
		return
	}
	g.buf.WriteString("// Qualified operation names for dispatcher bindings.\n")
	if g.cfg.Emit.OperationsOnly {
		fmt.Fprintf(&g.buf, "// Model types for these operations live in %s.\n", g.cfg.Emit.ModelImport)
	}
	g.buf.WriteString("const (\n")
	for _, op := range ops {
		fmt.Fprintf(&g.buf, "\t// %s%s expects a handler func(ctx%s) (%s, error).\n",
			op.Kind, g.reg.OperationName(op), g.argSummary(op), g.returnSummary(op))
		fmt.Fprintf(&g.buf, "\t%s%s = %q\n", op.Kind, g.reg.OperationName(op), op.Kind.String()+"."+op.Name)
	}
	g.buf.WriteString(")\n\n")
}

func (g *Generator) argSummary(op *schema.OperationDefinition) string {
	var b strings.Builder
	for _, a := range op.Args {
		fmt.Fprintf(&b, ", %s %s", g.reg.ArgName(a.Name), a.Type)
	}
	return b.String()
}

func (g *Generator) returnSummary(op *schema.OperationDefinition) string {
	if op.Kind == schema.Subscription {
		return "*filters.FilterGroup"
	}
	return op.Return.String()
}

// goType renders the Go type expression for a schema type reference and
// records any package it needs.
func (g *Generator) goType(ref *schema.TypeRef) string {
	var prefix string
	if ref.Nullable && !(ref.Kind == schema.RefScalar && ref.Scalar == schema.ScalarAWSJSON && !ref.IsList()) {
		prefix = "*"
	}
	if ref.IsList() {
		return prefix + "[]" + g.goType(ref.Elem)
	}
	if ref.Kind == schema.RefScalar {
		expr, pkg := scalarExpr(ref.Scalar)
		if pkg != "" {
			g.importPkgs[pkg] = true
		}
		return prefix + expr
	}
	return prefix + g.reg.TypeName(ref.Name)
}

func scalarExpr(kind schema.ScalarKind) (expr, pkg string) {
	const scalarsPkg = "github.com/graphsmith/appsync/scalars"
	switch kind {
	case schema.ScalarString:
		return "string", ""
	case schema.ScalarInt:
		return "int32", ""
	case schema.ScalarFloat:
		return "float64", ""
	case schema.ScalarBoolean:
		return "bool", ""
	case schema.ScalarID:
		return "scalars.ID", scalarsPkg
	case schema.ScalarAWSEmail:
		return "scalars.AWSEmail", scalarsPkg
	case schema.ScalarAWSPhone:
		return "scalars.AWSPhone", scalarsPkg
	case schema.ScalarAWSTimestamp:
		return "scalars.AWSTimestamp", scalarsPkg
	case schema.ScalarAWSDate:
		return "scalars.AWSDate", scalarsPkg
	case schema.ScalarAWSTime:
		return "scalars.AWSTime", scalarsPkg
	case schema.ScalarAWSDateTime:
		return "scalars.AWSDateTime", scalarsPkg
	case schema.ScalarAWSURL:
		return "scalars.AWSURL", scalarsPkg
	case schema.ScalarAWSJSON:
		return "jsontext.Value", "github.com/go-json-experiment/json/jsontext"
	case schema.ScalarAWSIPAddress:
		return "netip.Addr", "net/netip"
	default:
		return "any", ""
	}
}
