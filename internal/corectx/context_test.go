package corectx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corecalc/corecalc/internal/corectx"
)

func TestLookupMissesOnEmptyContext(t *testing.T) {
	_, ok := corectx.Lookup("x", corectx.Empty[int]())
	assert.False(t, ok)
}

func TestInsertThenLookupFindsValue(t *testing.T) {
	ctx := corectx.Insert("x", 1, corectx.Empty[int]())
	v, ok := corectx.Lookup("x", ctx)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestInsertShadowsWithoutRemovingOlderBinding(t *testing.T) {
	ctx := corectx.Insert("x", 1, corectx.Empty[int]())
	ctx = corectx.Insert("x", 2, ctx)

	v, ok := corectx.Lookup("x", ctx)
	assert.True(t, ok)
	assert.Equal(t, 2, v, "Lookup must find the most recent binding")

	entries := corectx.ToList(ctx)
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].Value, "ToList is newest-first")
	assert.Equal(t, 1, entries[1].Value)
}

func TestInsertDoesNotMutateParentContext(t *testing.T) {
	parent := corectx.Insert("x", 1, corectx.Empty[int]())
	childA := corectx.Insert("y", 2, parent)
	childB := corectx.Insert("z", 3, parent)

	_, ok := corectx.Lookup("y", childB)
	assert.False(t, ok, "sibling branches must not see each other's bindings")
	_, ok = corectx.Lookup("z", childA)
	assert.False(t, ok)

	vy, ok := corectx.Lookup("y", childA)
	assert.True(t, ok)
	assert.Equal(t, 2, vy)
}

func TestToListOldestFirstReversesToList(t *testing.T) {
	ctx := corectx.Insert("a", 1, corectx.Empty[int]())
	ctx = corectx.Insert("b", 2, ctx)
	ctx = corectx.Insert("c", 3, ctx)

	oldest := corectx.ToListOldestFirst(ctx)
	assert.Equal(t, []string{"a", "b", "c"}, namesOf(oldest))

	newest := corectx.ToList(ctx)
	assert.Equal(t, []string{"c", "b", "a"}, namesOf(newest))
}

func namesOf(entries []corectx.Entry[int]) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
