package unionfind

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedComponents(u *UnionFind[int]) [][]int {
	comps := u.Components()
	for _, c := range comps {
		sort.Ints(c)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })
	return comps
}

func TestAddIsIdempotent(t *testing.T) {
	u := New[int]()
	u.Add(1)
	u.Add(1)
	u.Add(2)

	assert.Equal(t, 2, u.Len())
	assert.Equal(t, [][]int{{1}, {2}}, sortedComponents(u))
}

func TestUnionMergesSets(t *testing.T) {
	u := New[int]()
	for i := 0; i < 6; i++ {
		u.Add(i)
	}
	u.Union(0, 1)
	u.Union(2, 3)
	u.Union(1, 3)
	u.Union(3, 0) // already joined

	assert.True(t, u.Connected(0, 2))
	assert.False(t, u.Connected(0, 4))
	assert.Equal(t, [][]int{{0, 1, 2, 3}, {4}, {5}}, sortedComponents(u))
}

func TestUnionRegistersUnknownKeys(t *testing.T) {
	u := New[string]()
	u.Union("a", "b")

	require.True(t, u.Has("a"))
	require.True(t, u.Has("b"))
	assert.Equal(t, u.Find("a"), u.Find("b"))
}

func TestFindUnknownKey(t *testing.T) {
	u := New[int]()
	assert.Equal(t, 7, u.Find(7))
	assert.False(t, u.Has(7))
	assert.False(t, u.Connected(7, 7))
}

func TestComponentsCoverEveryKeyOnce(t *testing.T) {
	type key struct{ x, y int }
	u := NewWithCapacity[key](100)
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			u.Add(key{x, y})
		}
	}
	// join every row
	for y := 0; y < 10; y++ {
		for x := 1; x < 10; x++ {
			u.Union(key{x - 1, y}, key{x, y})
		}
	}

	seen := map[key]int{}
	comps := u.Components()
	require.Len(t, comps, 10)
	for _, c := range comps {
		require.Len(t, c, 10)
		for _, k := range c {
			seen[k]++
		}
	}
	require.Len(t, seen, 100)
	for k, n := range seen {
		assert.Equal(t, 1, n, "key %v", k)
	}
}
