package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// prelude declares the AWS scalars and AppSync directives so user schemas
// validate exactly as AppSync accepts them, without having to re-declare the
// platform's built-ins. Same move as gqlgen's own prelude.
const prelude = `
scalar AWSEmail
scalar AWSPhone
scalar AWSTimestamp
scalar AWSDate
scalar AWSTime
scalar AWSDateTime
scalar AWSJSON
scalar AWSURL
scalar AWSIPAddress

directive @aws_subscribe(mutations: [String!]!) on FIELD_DEFINITION
directive @aws_api_key on FIELD_DEFINITION | OBJECT
directive @aws_iam on FIELD_DEFINITION | OBJECT
directive @aws_oidc on FIELD_DEFINITION | OBJECT
directive @aws_lambda on FIELD_DEFINITION | OBJECT
directive @aws_cognito_user_pools(cognito_groups: [String]) on FIELD_DEFINITION | OBJECT
directive @aws_auth(cognito_groups: [String]) on FIELD_DEFINITION | OBJECT
`

// awsScalarDecls names the prelude scalars so they can be told apart from
// custom scalar declarations in the user's own source.
var awsScalarDecls = map[string]bool{
	"AWSEmail": true, "AWSPhone": true, "AWSTimestamp": true,
	"AWSDate": true, "AWSTime": true, "AWSDateTime": true,
	"AWSJSON": true, "AWSURL": true, "AWSIPAddress": true,
}

// Parse builds the schema model from GraphQL schema source text, applying
// overrides during construction. It fails with a *SchemaError when the
// source does not parse, an operation references an undefined or unsupported
// type, or an override targets a name the schema does not define.
func Parse(source string, overrides *Overrides) (*Model, error) {
	doc, err := gqlparser.LoadSchema(
		&ast.Source{Name: "appsync-prelude.graphql", Input: prelude, BuiltIn: true},
		&ast.Source{Name: "schema.graphql", Input: source},
	)
	if err != nil {
		return nil, &SchemaError{msg: "parse failed", err: err}
	}

	p := &modelParser{
		doc:       doc,
		overrides: newOverrideTable(overrides),
		excluded:  map[string]string{},
	}
	return p.build()
}

type modelParser struct {
	doc       *ast.Schema
	overrides *overrideTable
	excluded  map[string]string // type name -> construct kind, for reference diagnostics
	errs      []error
}

func (p *modelParser) errorf(format string, args ...any) {
	p.errs = append(p.errs, fmt.Errorf(format, args...))
}

func (p *modelParser) build() (*Model, error) {
	m := &Model{}

	rootNames := map[string]OperationKind{}
	for kind, def := range map[OperationKind]*ast.Definition{
		Query: p.doc.Query, Mutation: p.doc.Mutation, Subscription: p.doc.Subscription,
	} {
		if def != nil {
			rootNames[def.Name] = kind
		}
	}

	// The Types map is unordered; iterate sorted so two builds from the same
	// input yield the same model.
	for _, name := range slices.Sorted(maps.Keys(p.doc.Types)) {
		def := p.doc.Types[name]
		if def.BuiltIn {
			continue
		}
		if _, isRoot := rootNames[def.Name]; isRoot {
			continue
		}
		switch def.Kind {
		case ast.Object:
			m.Types = append(m.Types, p.typeDefinition(def, false))
		case ast.InputObject:
			m.Types = append(m.Types, p.typeDefinition(def, true))
		case ast.Enum:
			m.Enums = append(m.Enums, p.enumDefinition(def))
		case ast.Scalar:
			if !awsScalarDecls[def.Name] {
				p.excluded[def.Name] = "custom scalar"
				m.Warnings = append(m.Warnings, fmt.Sprintf("custom scalar %q is not supported and was excluded", def.Name))
			}
		case ast.Union:
			p.excluded[def.Name] = "union"
			m.Warnings = append(m.Warnings, fmt.Sprintf("union type %q is not supported and was excluded", def.Name))
		case ast.Interface:
			p.excluded[def.Name] = "interface"
			m.Warnings = append(m.Warnings, fmt.Sprintf("interface type %q is not supported and was excluded", def.Name))
		}
	}

	// Root containers in a fixed kind order; operations keep declaration
	// order within each kind.
	for _, root := range []struct {
		kind OperationKind
		def  *ast.Definition
	}{
		{Query, p.doc.Query}, {Mutation, p.doc.Mutation}, {Subscription, p.doc.Subscription},
	} {
		if root.def == nil {
			continue
		}
		for _, f := range root.def.Fields {
			if strings.HasPrefix(f.Name, "__") {
				continue // introspection fields
			}
			m.Operations = append(m.Operations, p.operation(root.kind, f))
		}
	}

	m.index()
	p.resolveReferences(m)

	for _, key := range p.overrides.leftovers() {
		p.errorf("override %s targets a name the schema does not define", key)
	}
	if len(p.errs) > 0 {
		return nil, &SchemaError{msg: "invalid schema or overrides", err: errors.Join(p.errs...)}
	}
	return m, nil
}

func (p *modelParser) typeDefinition(def *ast.Definition, input bool) *TypeDefinition {
	t := &TypeDefinition{
		Name:   def.Name,
		GoName: p.overrides.takeName(def.Name),
		Input:  input,
	}
	seen := map[string]bool{}
	for _, f := range def.Fields {
		if seen[f.Name] {
			p.errorf("type %q declares field %q twice", def.Name, f.Name)
			continue
		}
		seen[f.Name] = true
		field := &FieldDefinition{
			Name:   f.Name,
			GoName: p.overrides.takeName(def.Name, f.Name),
			Type:   typeRef(f.Type),
		}
		if repl := p.overrides.takeType(def.Name, f.Name); repl != "" {
			replaceNamed(field.Type, repl)
		}
		t.Fields = append(t.Fields, field)
	}
	return t
}

func (p *modelParser) enumDefinition(def *ast.Definition) *EnumDefinition {
	e := &EnumDefinition{
		Name:   def.Name,
		GoName: p.overrides.takeName(def.Name),
	}
	for _, v := range def.EnumValues {
		e.Values = append(e.Values, &EnumValue{
			Name:   v.Name,
			GoName: p.overrides.takeName(def.Name, v.Name),
		})
	}
	return e
}

func (p *modelParser) operation(kind OperationKind, f *ast.FieldDefinition) *OperationDefinition {
	op := &OperationDefinition{
		Kind:   kind,
		Name:   f.Name,
		GoName: p.overrides.takeName(kind.String(), f.Name),
		Return: typeRef(f.Type),
	}
	if repl := p.overrides.takeType(kind.String(), f.Name); repl != "" {
		replaceNamed(op.Return, repl)
	}
	// A subscription result is never guaranteed by the service, so its
	// return is nullable no matter what the schema says.
	if kind == Subscription {
		op.Return.Nullable = true
	}
	for _, a := range f.Arguments {
		arg := &ArgumentDefinition{Name: a.Name, Type: typeRef(a.Type)}
		if repl := p.overrides.takeType(kind.String(), f.Name, a.Name); repl != "" {
			replaceNamed(arg.Type, repl)
		}
		op.Args = append(op.Args, arg)
	}
	if d := f.Directives.ForName("aws_subscribe"); d != nil && kind == Subscription {
		if arg := d.Arguments.ForName("mutations"); arg != nil {
			for _, child := range arg.Value.Children {
				op.TriggerMutations = append(op.TriggerMutations, child.Value.Raw)
			}
		}
	}
	return op
}

// typeRef converts a gqlparser type node; names are kept as schema names and
// resolved in a second pass once every definition is known.
func typeRef(t *ast.Type) *TypeRef {
	if t.NamedType == "" {
		return &TypeRef{Elem: typeRef(t.Elem), Nullable: !t.NonNull}
	}
	return &TypeRef{Name: t.NamedType, Nullable: !t.NonNull}
}

// replaceNamed swaps the innermost named type of ref for the override
// replacement, preserving list and nullability modifiers.
func replaceNamed(ref *TypeRef, replacement string) {
	for ref.IsList() {
		ref = ref.Elem
	}
	ref.Name = replacement
}

// resolveReferences classifies every type reference in the model and rejects
// references to undefined or excluded types.
func (p *modelParser) resolveReferences(m *Model) {
	for _, t := range m.Types {
		for _, f := range t.Fields {
			p.resolve(m, f.Type, fmt.Sprintf("field %s.%s", t.Name, f.Name))
		}
	}
	for _, op := range m.Operations {
		for _, a := range op.Args {
			p.resolve(m, a.Type, fmt.Sprintf("argument %q of %s %s", a.Name, op.Kind, op.Name))
		}
		p.resolve(m, op.Return, fmt.Sprintf("return type of %s %s", op.Kind, op.Name))
	}
}

func (p *modelParser) resolve(m *Model, ref *TypeRef, context string) {
	for ref.IsList() {
		ref = ref.Elem
	}
	if kind, ok := ScalarByName(ref.Name); ok {
		ref.Kind, ref.Scalar = RefScalar, kind
		return
	}
	if t := m.Type(ref.Name); t != nil {
		if t.Input {
			ref.Kind = RefInput
		} else {
			ref.Kind = RefObject
		}
		return
	}
	if m.Enum(ref.Name) != nil {
		ref.Kind = RefEnum
		return
	}
	if construct, ok := p.excluded[ref.Name]; ok {
		p.errorf("%s references %s %q, which is not supported", context, construct, ref.Name)
		return
	}
	p.errorf("%s references undefined type %q", context, ref.Name)
}
