// Package schema parses an AppSync GraphQL schema document into an immutable
// model of types, enums and operations. The model is built once at startup
// (or generator time), has every type reference resolved, and is consumed
// read-only by the registry, the dispatcher and the code generator.
package schema

import (
	"fmt"
)

// SchemaError reports malformed or inconsistent schema/override input. It is
// fatal at build time and never reaches a request.
type SchemaError struct {
	msg string
	err error
}

func (e *SchemaError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("schema: %s: %v", e.msg, e.err)
	}
	return "schema: " + e.msg
}

func (e *SchemaError) Unwrap() error { return e.err }

func schemaErrorf(format string, args ...any) *SchemaError {
	return &SchemaError{msg: fmt.Sprintf(format, args...)}
}

// ScalarKind identifies one of the recognized scalar types. The mapping to
// Go types is fixed: standard GraphQL scalars map to Go primitives (Int is
// int32, per the GraphQL spec), ID and the AWS scalars map to the wrapper
// types in the scalars package.
type ScalarKind int

const (
	ScalarString ScalarKind = iota
	ScalarID
	ScalarInt
	ScalarFloat
	ScalarBoolean
	ScalarAWSEmail
	ScalarAWSPhone
	ScalarAWSTimestamp
	ScalarAWSDate
	ScalarAWSTime
	ScalarAWSDateTime
	ScalarAWSJSON
	ScalarAWSURL
	ScalarAWSIPAddress
)

var scalarNames = map[string]ScalarKind{
	"String":       ScalarString,
	"ID":           ScalarID,
	"Int":          ScalarInt,
	"Float":        ScalarFloat,
	"Boolean":      ScalarBoolean,
	"AWSEmail":     ScalarAWSEmail,
	"AWSPhone":     ScalarAWSPhone,
	"AWSTimestamp": ScalarAWSTimestamp,
	"AWSDate":      ScalarAWSDate,
	"AWSTime":      ScalarAWSTime,
	"AWSDateTime":  ScalarAWSDateTime,
	"AWSJSON":      ScalarAWSJSON,
	"AWSURL":       ScalarAWSURL,
	"AWSIPAddress": ScalarAWSIPAddress,
}

// ScalarByName resolves a scalar by its schema name.
func ScalarByName(name string) (ScalarKind, bool) {
	k, ok := scalarNames[name]
	return k, ok
}

func (k ScalarKind) String() string {
	for name, kind := range scalarNames {
		if kind == k {
			return name
		}
	}
	return fmt.Sprintf("ScalarKind(%d)", int(k))
}

// RefKind says what a TypeRef's name resolves to.
type RefKind int

const (
	RefScalar RefKind = iota
	RefObject
	RefInput
	RefEnum
)

// TypeRef is a resolved reference to a scalar, object, input object or enum,
// carrying the GraphQL nullability and list modifiers. For a list, Elem is
// set and Name is empty.
type TypeRef struct {
	Name     string
	Kind     RefKind
	Scalar   ScalarKind // valid when Kind == RefScalar
	Nullable bool
	Elem     *TypeRef // non-nil for lists
}

// IsList reports whether the reference is a list type.
func (r *TypeRef) IsList() bool { return r.Elem != nil }

// String renders the reference in GraphQL notation, e.g. "[Player!]!".
func (r *TypeRef) String() string {
	var s string
	if r.IsList() {
		s = "[" + r.Elem.String() + "]"
	} else {
		s = r.Name
	}
	if !r.Nullable {
		s += "!"
	}
	return s
}

// FieldDefinition is one named field of an object or input object. GoName is
// empty unless renamed by an override; the wire name is always Name.
type FieldDefinition struct {
	Name   string
	GoName string
	Type   *TypeRef
}

// TypeDefinition is an object or input object type.
type TypeDefinition struct {
	Name   string
	GoName string
	Input  bool
	Fields []*FieldDefinition
}

// Field returns the field with the given schema name.
func (t *TypeDefinition) Field(name string) *FieldDefinition {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// EnumValue is one variant of an enum, independently renameable.
type EnumValue struct {
	Name   string
	GoName string
}

// EnumDefinition is an enum type with its ordered variants.
type EnumDefinition struct {
	Name   string
	GoName string
	Values []*EnumValue
}

// Value returns the variant with the given schema name.
func (e *EnumDefinition) Value(name string) *EnumValue {
	for _, v := range e.Values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// OperationKind is the root container an operation belongs to.
type OperationKind int

const (
	Query OperationKind = iota
	Mutation
	Subscription
)

func (k OperationKind) String() string {
	switch k {
	case Query:
		return "Query"
	case Mutation:
		return "Mutation"
	case Subscription:
		return "Subscription"
	default:
		return fmt.Sprintf("OperationKind(%d)", int(k))
	}
}

// ArgumentDefinition is one declared operation argument.
type ArgumentDefinition struct {
	Name string
	Type *TypeRef
}

// OperationDefinition is one query, mutation or subscription. For
// subscriptions, Return is always nullable and TriggerMutations lists the
// mutations named by the @aws_subscribe directive.
type OperationDefinition struct {
	Kind             OperationKind
	Name             string
	GoName           string
	Args             []*ArgumentDefinition
	Return           *TypeRef
	TriggerMutations []string
}

// Arg returns the argument with the given schema name.
func (o *OperationDefinition) Arg(name string) *ArgumentDefinition {
	for _, a := range o.Args {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Model is the parsed, immutable schema model.
type Model struct {
	Types      []*TypeDefinition
	Enums      []*EnumDefinition
	Operations []*OperationDefinition

	// Warnings lists unsupported constructs that were recognized and
	// excluded (unions, interfaces, custom scalar declarations), one entry
	// per construct.
	Warnings []string

	typesByName map[string]*TypeDefinition
	enumsByName map[string]*EnumDefinition
	opsByKey    map[string]*OperationDefinition
}

// Type returns the object or input type with the given schema name.
func (m *Model) Type(name string) *TypeDefinition { return m.typesByName[name] }

// Enum returns the enum with the given schema name.
func (m *Model) Enum(name string) *EnumDefinition { return m.enumsByName[name] }

// Operation returns the operation with the given kind and schema name.
func (m *Model) Operation(kind OperationKind, name string) *OperationDefinition {
	return m.opsByKey[opKey(kind, name)]
}

// OperationsOfKind returns all operations of one kind in declaration order.
func (m *Model) OperationsOfKind(kind OperationKind) []*OperationDefinition {
	var ops []*OperationDefinition
	for _, op := range m.Operations {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

func opKey(kind OperationKind, name string) string {
	return kind.String() + "." + name
}

func (m *Model) index() {
	m.typesByName = make(map[string]*TypeDefinition, len(m.Types))
	for _, t := range m.Types {
		m.typesByName[t.Name] = t
	}
	m.enumsByName = make(map[string]*EnumDefinition, len(m.Enums))
	for _, e := range m.Enums {
		m.enumsByName[e.Name] = e
	}
	m.opsByKey = make(map[string]*OperationDefinition, len(m.Operations))
	for _, op := range m.Operations {
		m.opsByKey[opKey(op.Kind, op.Name)] = op
	}
}
