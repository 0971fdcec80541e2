// Package registry exposes read-only lookups over a parsed schema model and
// derives the canonical Go identifier for every schema name. Identifier
// derivation is deterministic: the same schema and override input always
// yields the same names, so a shared type library and a handler unit built
// separately agree without coordination.
package registry

import (
	"fmt"
	"strings"

	"github.com/graphsmith/appsync/schema"
)

// Mode selects the split-build variant of a registry.
type Mode int

const (
	// Full serves both type and operation lookups.
	Full Mode = iota
	// TypesOnly omits the operation table: the unit only shares generated
	// types and runs no dispatcher.
	TypesOnly
	// OperationsOnly serves the operation table while type definitions are
	// imported from an externally built type library.
	OperationsOnly
)

func (m Mode) String() string {
	switch m {
	case Full:
		return "full"
	case TypesOnly:
		return "types-only"
	case OperationsOnly:
		return "operations-only"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Registry is an immutable view over a schema model. Build it once at
// startup and share it freely; every method is safe for concurrent use.
type Registry struct {
	model *schema.Model
	mode  Mode
}

// New builds a registry over model.
func New(model *schema.Model, mode Mode) (*Registry, error) {
	if model == nil {
		return nil, fmt.Errorf("registry: nil model")
	}
	if mode < Full || mode > OperationsOnly {
		return nil, fmt.Errorf("registry: unknown mode %d", int(mode))
	}
	return &Registry{model: model, mode: mode}, nil
}

// Model returns the underlying schema model.
func (r *Registry) Model() *schema.Model { return r.model }

// Mode returns the split-build mode the registry was created with.
func (r *Registry) Mode() Mode { return r.mode }

// Type looks up an object or input type by schema name. Nil in
// OperationsOnly mode is not an error path: operations-only units import
// their types externally but still validate against the model, so lookups
// stay available.
func (r *Registry) Type(name string) *schema.TypeDefinition { return r.model.Type(name) }

// Enum looks up an enum by schema name.
func (r *Registry) Enum(name string) *schema.EnumDefinition { return r.model.Enum(name) }

// Operation looks up an operation by kind and schema name. In TypesOnly mode
// there is no operation table and the lookup always misses.
func (r *Registry) Operation(kind schema.OperationKind, name string) *schema.OperationDefinition {
	if r.mode == TypesOnly {
		return nil
	}
	return r.model.Operation(kind, name)
}

// Operations returns every operation, or nothing in TypesOnly mode.
func (r *Registry) Operations() []*schema.OperationDefinition {
	if r.mode == TypesOnly {
		return nil
	}
	return r.model.Operations
}

// ResolveOperation resolves a wire operation reference: either qualified
// ("Mutation.createPlayer") or a bare field name, which must be unambiguous
// across the three root containers.
func (r *Registry) ResolveOperation(ref string) (*schema.OperationDefinition, error) {
	if kindName, opName, ok := strings.Cut(ref, "."); ok {
		var kind schema.OperationKind
		switch kindName {
		case "Query":
			kind = schema.Query
		case "Mutation":
			kind = schema.Mutation
		case "Subscription":
			kind = schema.Subscription
		default:
			return nil, fmt.Errorf("unknown operation container %q in %q", kindName, ref)
		}
		if op := r.Operation(kind, opName); op != nil {
			return op, nil
		}
		return nil, fmt.Errorf("no operation %q", ref)
	}

	var found *schema.OperationDefinition
	for _, op := range r.Operations() {
		if op.Name == ref {
			if found != nil {
				return nil, fmt.Errorf("operation name %q is ambiguous (%s and %s); qualify it as Kind.name", ref, found.Kind, op.Kind)
			}
			found = op
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no operation %q", ref)
	}
	return found, nil
}

// TypeName returns the canonical Go type identifier for an object, input or
// enum schema name: the override-applied name when one was configured,
// otherwise the deterministic PascalCase derivation.
func (r *Registry) TypeName(name string) string {
	if t := r.model.Type(name); t != nil && t.GoName != "" {
		return Exported(t.GoName)
	}
	if e := r.model.Enum(name); e != nil && e.GoName != "" {
		return Exported(e.GoName)
	}
	return Exported(name)
}

// FieldName returns the Go struct field identifier for typeName.fieldName.
func (r *Registry) FieldName(typeName, fieldName string) string {
	if t := r.model.Type(typeName); t != nil {
		if f := t.Field(fieldName); f != nil && f.GoName != "" {
			return Exported(f.GoName)
		}
	}
	return Exported(fieldName)
}

// EnumValueName returns the Go constant identifier for enumName.variant,
// prefixed with the enum's own type name (Team.RUST -> TeamRust).
func (r *Registry) EnumValueName(enumName, variant string) string {
	base := variant
	if e := r.model.Enum(enumName); e != nil {
		if v := e.Value(variant); v != nil && v.GoName != "" {
			base = v.GoName
		}
	}
	return r.TypeName(enumName) + Exported(base)
}

// OperationName returns the Go identifier used for an operation in generated
// manifests (createPlayer -> CreatePlayer, override-applied).
func (r *Registry) OperationName(op *schema.OperationDefinition) string {
	if op.GoName != "" {
		return Exported(op.GoName)
	}
	return Exported(op.Name)
}

// ArgName returns the Go parameter identifier for an operation argument,
// with reserved words escaped.
func (r *Registry) ArgName(name string) string {
	return Unexported(name)
}
