package schema

import (
	"sort"
	"strings"
)

// Overrides is the schema override table, applied while the model is built.
//
// Names maps a schema-qualified name to a replacement identifier:
//
//	Player: GamePlayer          # rename a type or enum
//	Player.id: playerID         # rename a field
//	Team.RUST: Ferris           # rename an enum variant
//	Mutation.createPlayer: addPlayer
//
// Types maps a field, operation return or operation argument to a
// replacement type, for scalar substitution (e.g. representing an ID as a
// plain String):
//
//	Player.id: String
//	Query.player.id: String     # operation argument
//	Mutation.createPlayer: Player
//
// Overriding a name that does not exist in the schema is a SchemaError, never
// silently ignored.
type Overrides struct {
	Names map[string]string `yaml:"names,omitempty"`
	Types map[string]string `yaml:"types,omitempty"`
}

// overrideTable tracks which entries were consumed during model
// construction so that leftovers can be reported as errors.
type overrideTable struct {
	names map[string]string
	types map[string]string
}

func newOverrideTable(o *Overrides) *overrideTable {
	t := &overrideTable{names: map[string]string{}, types: map[string]string{}}
	if o == nil {
		return t
	}
	for k, v := range o.Names {
		t.names[k] = v
	}
	for k, v := range o.Types {
		t.types[k] = v
	}
	return t
}

// takeName consumes and returns the name override for the dotted key parts,
// or "" when none is configured.
func (t *overrideTable) takeName(parts ...string) string {
	key := strings.Join(parts, ".")
	v, ok := t.names[key]
	if ok {
		delete(t.names, key)
	}
	return v
}

// takeType consumes and returns the type override for the dotted key parts.
func (t *overrideTable) takeType(parts ...string) string {
	key := strings.Join(parts, ".")
	v, ok := t.types[key]
	if ok {
		delete(t.types, key)
	}
	return v
}

// leftovers returns the override keys that matched nothing in the schema, in
// sorted order.
func (t *overrideTable) leftovers() []string {
	var keys []string
	for k := range t.names {
		keys = append(keys, "names."+k)
	}
	for k := range t.types {
		keys = append(keys, "types."+k)
	}
	sort.Strings(keys)
	return keys
}
