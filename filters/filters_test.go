package filters_test

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphsmith/appsync/filters"
)

func TestNewFieldPath(t *testing.T) {
	t.Parallel()

	valid := []string{"team", "player.team", "a.b.c", "_meta", "severity2", "snake_case.x9"}
	for _, path := range valid {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			p, err := filters.NewFieldPath(path)
			require.NoError(t, err)
			assert.Equal(t, path, p.String())
		})
	}

	invalid := []string{"", ".", "team.", ".team", "9lives", "play er", "team..name", "team-name", "émoji"}
	for _, path := range invalid {
		t.Run("invalid "+path, func(t *testing.T) {
			t.Parallel()
			_, err := filters.NewFieldPath(path)
			require.Error(t, err)
			var filterErr *filters.FilterError
			assert.ErrorAs(t, err, &filterErr)
		})
	}
}

func TestGroupLimit(t *testing.T) {
	t.Parallel()

	p, err := filters.NewFieldPath("n")
	require.NoError(t, err)

	full := make([]filters.Filter, 0, filters.MaxFiltersPerGroup)
	for i := 0; i < filters.MaxFiltersPerGroup; i++ {
		full = append(full, p.Eq(i))
	}

	g, err := filters.NewGroup(full...)
	require.NoError(t, err)
	assert.Len(t, g.Filters, filters.MaxFiltersPerGroup)

	_, err = g.And(p.Eq(99))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5 filters per group")

	_, err = filters.NewGroup(append(full, p.Eq(99))...)
	require.Error(t, err)
}

func TestFilterGroupLimit(t *testing.T) {
	t.Parallel()

	p, err := filters.NewFieldPath("n")
	require.NoError(t, err)

	groups := make([]filters.Group, 0, filters.MaxGroups)
	for i := 0; i < filters.MaxGroups; i++ {
		g, err := filters.NewGroup(p.Eq(i))
		require.NoError(t, err)
		groups = append(groups, g)
	}

	fg, err := filters.New(groups...)
	require.NoError(t, err)
	assert.Len(t, fg.Groups, filters.MaxGroups)

	extra, err := filters.NewGroup(p.Eq(99))
	require.NoError(t, err)
	_, err = fg.Or(extra)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5 groups")
}

func TestFilterWireShape(t *testing.T) {
	t.Parallel()

	team, err := filters.NewFieldPath("player.team")
	require.NoError(t, err)
	score, err := filters.NewFieldPath("score")
	require.NoError(t, err)

	group, err := filters.NewGroup(team.Eq("RUST"), score.Ge(3))
	require.NoError(t, err)
	fg, err := filters.New(group)
	require.NoError(t, err)

	out, err := json.Marshal(fg)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"filterGroups":[{"filters":[
			{"fieldName":"player.team","operator":"eq","value":"RUST"},
			{"fieldName":"score","operator":"ge","value":3}
		]}]}`,
		string(out))
}

func TestOperators(t *testing.T) {
	t.Parallel()

	p, err := filters.NewFieldPath("f")
	require.NoError(t, err)

	tests := []struct {
		filter   filters.Filter
		operator string
		value    any
	}{
		{p.Eq("x"), "eq", "x"},
		{p.Ne("x"), "ne", "x"},
		{p.Le(1), "le", 1},
		{p.Lt(1), "lt", 1},
		{p.Ge(1), "ge", 1},
		{p.Gt(1), "gt", 1},
		{p.Contains("x"), "contains", "x"},
		{p.NotContains("x"), "notContains", "x"},
		{p.BeginsWith("pre"), "beginsWith", "pre"},
		{p.In("a", "b"), "in", []any{"a", "b"}},
		{p.NotIn("a", "b"), "notIn", []any{"a", "b"}},
		{p.Between(1, 9), "between", []any{1, 9}},
		{p.IsNull(), "isNull", nil},
	}
	for _, tt := range tests {
		t.Run(tt.operator, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, "f", tt.filter.FieldName)
			assert.Equal(t, tt.operator, tt.filter.Operator)
			assert.Equal(t, tt.value, tt.filter.Value)
		})
	}
}

func TestIsNullOmitsValue(t *testing.T) {
	t.Parallel()

	p, err := filters.NewFieldPath("deleted")
	require.NoError(t, err)
	out, err := json.Marshal(p.IsNull())
	require.NoError(t, err)
	assert.JSONEq(t, `{"fieldName":"deleted","operator":"isNull"}`, string(out))
}
