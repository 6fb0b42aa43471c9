package selector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name string
	id   int
}

func (i item) Name() string { return i.name }

var candidates = []item{
	{"alpha", 1},
	{"beta", 2},
	{"gamma", 3},
	{"delta", 4},
}

func TestByName_RequestedOrder(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		wantIDs  []int
	}{
		{name: "empty selection", selected: nil, wantIDs: nil},
		{name: "candidate order", selected: []string{"alpha", "gamma"}, wantIDs: []int{1, 3}},
		{name: "reversed order", selected: []string{"delta", "beta", "alpha"}, wantIDs: []int{4, 2, 1}},
		{name: "repeated request", selected: []string{"beta", "beta"}, wantIDs: []int{2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Collect(ByName(tt.selected, candidates))
			require.NoError(t, err)

			var ids []int
			for _, g := range got {
				ids = append(ids, g.id)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestByName_UnknownName(t *testing.T) {
	got, err := Collect(ByName([]string{"beta", "omega", "alpha"}, candidates))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownName))

	var une *UnknownNameError
	require.ErrorAs(t, err, &une)
	assert.Equal(t, "omega", une.Name)
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, une.Available)
	assert.Contains(t, err.Error(), "omega")
	assert.Contains(t, err.Error(), "gamma")

	// items before the miss are kept, nothing after it is produced
	require.Len(t, got, 1)
	assert.Equal(t, "beta", got[0].name)
}

func TestByName_FirstMatchWins(t *testing.T) {
	dupes := []item{{"x", 1}, {"y", 2}, {"x", 3}}

	got, err := Collect(ByName([]string{"x", "y", "x"}, dupes))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].id)
	assert.Equal(t, 2, got[1].id)
	assert.Equal(t, 1, got[2].id)
}

func TestByName_Lazy(t *testing.T) {
	var scanned int
	objs := []counting{{name: "a", n: &scanned}, {name: "b", n: &scanned}}

	seq := ByName([]string{"a", "b", "missing"}, objs)
	assert.Zero(t, scanned, "no scanning before iteration")

	for v, err := range seq {
		require.NoError(t, err)
		assert.Equal(t, "a", v.name)
		break
	}
	assert.Equal(t, 1, scanned, "iteration stops at break")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, Names(candidates))
	assert.Empty(t, Names([]item{}))
}

type counting struct {
	name string
	n    *int
}

func (c counting) Name() string {
	*c.n++
	return c.name
}
