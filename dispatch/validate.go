package dispatch

import (
	"context"
	"fmt"
	"net/netip"
	"reflect"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/graphsmith/appsync"
	"github.com/graphsmith/appsync/filters"
	"github.com/graphsmith/appsync/scalars"
	"github.com/graphsmith/appsync/schema"
)

var (
	contextType     = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
	eventType       = reflect.TypeOf((*appsync.Event)(nil))
	filterGroupType = reflect.TypeOf((*filters.FilterGroup)(nil))
	idType          = reflect.TypeOf(scalars.ID(""))
)

// scalarTypes is the fixed scalar mapping. Int is int32 on purpose: the
// GraphQL Int scalar is a 32-bit signed integer, and a wider handler
// parameter would silently accept values the schema forbids.
var scalarTypes = map[schema.ScalarKind]reflect.Type{
	schema.ScalarString:       reflect.TypeOf(""),
	schema.ScalarID:           idType,
	schema.ScalarInt:          reflect.TypeOf(int32(0)),
	schema.ScalarFloat:        reflect.TypeOf(float64(0)),
	schema.ScalarBoolean:      reflect.TypeOf(false),
	schema.ScalarAWSEmail:     reflect.TypeOf(scalars.AWSEmail{}),
	schema.ScalarAWSPhone:     reflect.TypeOf(scalars.AWSPhone{}),
	schema.ScalarAWSTimestamp: reflect.TypeOf(scalars.AWSTimestamp(0)),
	schema.ScalarAWSDate:      reflect.TypeOf(scalars.AWSDate{}),
	schema.ScalarAWSTime:      reflect.TypeOf(scalars.AWSTime{}),
	schema.ScalarAWSDateTime:  reflect.TypeOf(scalars.AWSDateTime{}),
	schema.ScalarAWSJSON:      reflect.TypeOf(jsontext.Value(nil)),
	schema.ScalarAWSURL:       reflect.TypeOf(scalars.AWSURL{}),
	schema.ScalarAWSIPAddress: reflect.TypeOf(netip.Addr{}),
}

// Validate checks every recorded binding against the registry and every
// registry operation against the bindings. It must succeed before Handle
// accepts its first request; an unvalidated router refuses to serve.
func (r *Router) Validate() error {
	errs := append([]error{}, r.bindErrs...)

	for _, b := range r.ordered {
		op := r.reg.Operation(b.kind, b.name)
		if op == nil {
			errs = append(errs, fmt.Errorf("%s %q: bound but not declared in the schema", b.kind, b.name))
			continue
		}
		b.op = op
		if err := r.checkSignature(b); err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", b.kind, b.name, err))
		}
	}

	for _, op := range r.reg.Operations() {
		if _, ok := r.bindings[bindingKey(op.Kind, op.Name)]; !ok {
			errs = append(errs, fmt.Errorf("%s %q: no handler bound", op.Kind, op.Name))
		}
	}

	if len(errs) > 0 {
		return &BindingError{errs: errs}
	}
	r.validated.Store(true)
	return nil
}

func (r *Router) checkSignature(b *binding) error {
	t := b.fn.Type()
	if t.Kind() != reflect.Func {
		return fmt.Errorf("handler is %s, expected a function", t.Kind())
	}
	if t.IsVariadic() {
		return fmt.Errorf("handler must not be variadic")
	}

	if t.NumIn() == 0 || t.In(0) != contextType {
		return fmt.Errorf("first parameter must be context.Context")
	}
	params := make([]reflect.Type, 0, t.NumIn()-1)
	for i := 1; i < t.NumIn(); i++ {
		params = append(params, t.In(i))
	}
	if n := len(params); n > 0 && params[n-1] == eventType {
		b.wantsEvent = true
		params = params[:n-1]
	}
	if len(params) != len(b.op.Args) {
		return fmt.Errorf("takes %d argument(s), schema declares %d", len(params), len(b.op.Args))
	}
	for i, arg := range b.op.Args {
		if err := checkType(r.reg.Model(), arg.Type, params[i], map[string]bool{}); err != nil {
			return fmt.Errorf("argument %q: %w", arg.Name, err)
		}
	}
	b.argTypes = params

	if t.NumOut() != 2 || t.Out(1) != errorType {
		return fmt.Errorf("must return (T, error)")
	}
	if b.op.Kind == schema.Subscription {
		if t.Out(0) != filterGroupType {
			return fmt.Errorf("subscription handler must return (*filters.FilterGroup, error), found (%s, error)", t.Out(0))
		}
		return nil
	}
	if err := checkType(r.reg.Model(), b.op.Return, t.Out(0), map[string]bool{}); err != nil {
		return fmt.Errorf("return value: %w", err)
	}
	return nil
}

// checkType verifies that a Go type matches a schema type reference:
// nullable maps to a pointer, list to a slice, scalars to their fixed Go
// types, enums to a named string type, objects and inputs to structs whose
// JSON field set matches the schema type, recursively. seen guards against
// reference cycles between object types.
func checkType(m *schema.Model, ref *schema.TypeRef, t reflect.Type, seen map[string]bool) error {
	if ref.Nullable {
		// AWSJSON is already a nullable raw value; a pointer would be
		// doubly optional.
		if !ref.IsList() && ref.Kind == schema.RefScalar && ref.Scalar == schema.ScalarAWSJSON {
			return checkExact(scalarTypes[schema.ScalarAWSJSON], t)
		}
		if t.Kind() != reflect.Pointer {
			return fmt.Errorf("expected pointer for nullable %s, found %s", ref, t)
		}
		return checkType(m, nonNull(ref), t.Elem(), seen)
	}
	if ref.IsList() {
		if t.Kind() != reflect.Slice {
			return fmt.Errorf("expected slice for %s, found %s", ref, t)
		}
		return checkType(m, ref.Elem, t.Elem(), seen)
	}

	switch ref.Kind {
	case schema.RefScalar:
		return checkExact(scalarTypes[ref.Scalar], t)
	case schema.RefEnum:
		if t.Kind() != reflect.String || t.PkgPath() == "" || t == idType {
			return fmt.Errorf("expected a named string type for enum %s, found %s", ref.Name, t)
		}
		return nil
	case schema.RefObject, schema.RefInput:
		return checkStruct(m, ref.Name, t, seen)
	default:
		return fmt.Errorf("unresolved type reference %s", ref)
	}
}

func checkExact(want, got reflect.Type) error {
	if want != got {
		return fmt.Errorf("expected %s, found %s", want, got)
	}
	return nil
}

func checkStruct(m *schema.Model, typeName string, t reflect.Type, seen map[string]bool) error {
	def := m.Type(typeName)
	if def == nil {
		return fmt.Errorf("schema type %q not found", typeName)
	}
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct for %s, found %s", typeName, t)
	}
	// A cycle means this pairing is already being checked further up.
	key := typeName + "|" + t.String()
	if seen[key] {
		return nil
	}
	seen[key] = true

	byWire := map[string]reflect.StructField{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, skip := jsonFieldName(f)
		if skip {
			continue
		}
		byWire[name] = f
	}

	for _, fd := range def.Fields {
		sf, ok := byWire[fd.Name]
		if !ok {
			return fmt.Errorf("%s: struct %s has no field for %q", typeName, t, fd.Name)
		}
		if err := checkType(m, fd.Type, sf.Type, seen); err != nil {
			return fmt.Errorf("%s.%s: %w", typeName, fd.Name, err)
		}
		delete(byWire, fd.Name)
	}
	for name := range byWire {
		return fmt.Errorf("%s: struct %s has extra field %q not in the schema", typeName, t, name)
	}
	return nil
}

// jsonFieldName returns the wire name of a struct field: the json tag name
// when present, the field name otherwise. skip is true for json:"-".
func jsonFieldName(f reflect.StructField) (name string, skip bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return f.Name, false
	}
	if tag == "-" {
		return "", true
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			if i == 0 {
				return f.Name, false
			}
			return tag[:i], false
		}
	}
	if tag == "" {
		return f.Name, false
	}
	return tag, false
}

// nonNull returns ref with the outermost nullability stripped.
func nonNull(ref *schema.TypeRef) *schema.TypeRef {
	clone := *ref
	clone.Nullable = false
	return &clone
}
