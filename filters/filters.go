// Package filters builds AppSync enhanced subscription filters: an OR of
// filter groups, each group an AND of up to five field predicates, at most
// five groups. The limits mirror the fixed capacity of the downstream
// filtering evaluator and are enforced at construction so an oversized
// filter never reaches the wire.
//
//	team, _ := filters.NewFieldPath("player.team")
//	score, _ := filters.NewFieldPath("score")
//	group, _ := filters.NewGroup(team.Eq("RUST"), score.Ge(3))
//	fg, _ := filters.New(group)
package filters

import (
	"fmt"
	"strings"
)

// MaxFiltersPerGroup and MaxGroups are hard structural limits of the
// downstream subscription filtering evaluator.
const (
	MaxFiltersPerGroup = 5
	MaxGroups          = 5
)

// FilterError reports a malformed predicate or a capacity violation.
type FilterError struct {
	msg string
}

func (e *FilterError) Error() string { return e.msg }

func filterErrorf(format string, args ...any) *FilterError {
	return &FilterError{msg: fmt.Sprintf(format, args...)}
}

// FieldPath names a dotted field location inside the published payload,
// e.g. "player.team".
type FieldPath struct {
	path string
}

// NewFieldPath validates path: it must be non-empty and every dot-separated
// segment must be a non-empty run of letters, digits or underscores starting
// with a letter or underscore.
func NewFieldPath(path string) (FieldPath, error) {
	if path == "" {
		return FieldPath{}, filterErrorf("field path is empty")
	}
	for _, segment := range strings.Split(path, ".") {
		if !validSegment(segment) {
			return FieldPath{}, filterErrorf("field path %q has invalid segment %q", path, segment)
		}
	}
	return FieldPath{path: path}, nil
}

func validSegment(segment string) bool {
	if segment == "" {
		return false
	}
	for i, r := range segment {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (p FieldPath) String() string { return p.path }

// Filter pairs a field path with one predicate operator and its operand.
type Filter struct {
	FieldName string `json:"fieldName"`
	Operator  string `json:"operator"`
	Value     any    `json:"value,omitzero"`
}

// Eq matches when the field equals value.
func (p FieldPath) Eq(value any) Filter { return Filter{p.path, "eq", value} }

// Ne matches when the field differs from value.
func (p FieldPath) Ne(value any) Filter { return Filter{p.path, "ne", value} }

// Le matches when the field is less than or equal to value.
func (p FieldPath) Le(value any) Filter { return Filter{p.path, "le", value} }

// Lt matches when the field is strictly less than value.
func (p FieldPath) Lt(value any) Filter { return Filter{p.path, "lt", value} }

// Ge matches when the field is greater than or equal to value.
func (p FieldPath) Ge(value any) Filter { return Filter{p.path, "ge", value} }

// Gt matches when the field is strictly greater than value.
func (p FieldPath) Gt(value any) Filter { return Filter{p.path, "gt", value} }

// Contains matches when the field (string or list) contains value.
func (p FieldPath) Contains(value any) Filter { return Filter{p.path, "contains", value} }

// NotContains matches when the field does not contain value.
func (p FieldPath) NotContains(value any) Filter { return Filter{p.path, "notContains", value} }

// BeginsWith matches string fields with the given prefix.
func (p FieldPath) BeginsWith(prefix string) Filter { return Filter{p.path, "beginsWith", prefix} }

// In matches when the field equals one of values.
func (p FieldPath) In(values ...any) Filter { return Filter{p.path, "in", values} }

// NotIn matches when the field equals none of values.
func (p FieldPath) NotIn(values ...any) Filter { return Filter{p.path, "notIn", values} }

// Between matches when lo <= field <= hi.
func (p FieldPath) Between(lo, hi any) Filter { return Filter{p.path, "between", []any{lo, hi}} }

// IsNull matches when the field is null or absent.
func (p FieldPath) IsNull() Filter { return Filter{FieldName: p.path, Operator: "isNull"} }

// Group is an AND of up to MaxFiltersPerGroup filters.
type Group struct {
	Filters []Filter `json:"filters"`
}

// NewGroup builds a Group, failing when more than MaxFiltersPerGroup filters
// are supplied.
func NewGroup(fs ...Filter) (Group, error) {
	if len(fs) > MaxFiltersPerGroup {
		return Group{}, filterErrorf("group holds %d filters, the limit is %d filters per group", len(fs), MaxFiltersPerGroup)
	}
	return Group{Filters: fs}, nil
}

// And returns a new Group with f appended, failing at the per-group limit.
func (g Group) And(f Filter) (Group, error) {
	return NewGroup(append(append([]Filter{}, g.Filters...), f)...)
}

// FilterGroup is the value a subscription handler returns: an OR across up
// to MaxGroups groups. The zero value means "no additional filtering" and
// serializes to nothing.
type FilterGroup struct {
	Groups []Group `json:"filterGroups"`
}

// New builds a FilterGroup, failing when more than MaxGroups groups are
// supplied.
func New(groups ...Group) (*FilterGroup, error) {
	if len(groups) > MaxGroups {
		return nil, filterErrorf("filter holds %d groups, the limit is %d groups", len(groups), MaxGroups)
	}
	return &FilterGroup{Groups: groups}, nil
}

// Or returns a new FilterGroup with g appended, failing at the group limit.
func (fg *FilterGroup) Or(g Group) (*FilterGroup, error) {
	return New(append(append([]Group{}, fg.Groups...), g)...)
}
