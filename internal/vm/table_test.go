package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSetGetDelete(t *testing.T) {
	pool := NewStringPool()
	table := NewTable()

	key := pool.Intern("answer")
	isNew := table.Set(key, NumberVal(42))
	assert.True(t, isNew)

	value, ok := table.Get(key)
	require.True(t, ok)
	assert.Equal(t, 42.0, value.AsNumber())

	isNew = table.Set(key, NumberVal(43))
	assert.False(t, isNew, "re-setting an existing key is not an insert")

	ok = table.Delete(key)
	assert.True(t, ok)
	_, ok = table.Get(key)
	assert.False(t, ok)
}

func TestTableDeleteMissingKey(t *testing.T) {
	pool := NewStringPool()
	table := NewTable()
	assert.False(t, table.Delete(pool.Intern("nope")))
}

func TestTableGrowthPreservesEntries(t *testing.T) {
	pool := NewStringPool()
	table := NewTable()

	const n = 200
	keys := make([]*ObjString, n)
	for i := 0; i < n; i++ {
		keys[i] = pool.Intern(string(rune('a'+(i%26))) + itoa(i) + "x")
		table.Set(keys[i], NumberVal(float64(i)))
	}

	for i := 0; i < n; i++ {
		value, ok := table.Get(keys[i])
		require.True(t, ok)
		assert.Equal(t, float64(i), value.AsNumber())
	}
}

func TestTableTombstoneReuseKeepsProbingWorking(t *testing.T) {
	pool := NewStringPool()
	table := NewTable()

	a, b, c := pool.Intern("a"), pool.Intern("b"), pool.Intern("c")
	table.Set(a, NumberVal(1))
	table.Set(b, NumberVal(2))
	table.Set(c, NumberVal(3))

	table.Delete(b)

	value, ok := table.Get(c)
	require.True(t, ok, "deleting b must not break the probe chain to c")
	assert.Equal(t, 3.0, value.AsNumber())
}

func TestStringPoolInterningIsIdempotentAndReferenceEqual(t *testing.T) {
	pool := NewStringPool()

	a := pool.Intern("hello")
	b := pool.Intern("hello")
	assert.Same(t, a, b, "equal characters must intern to the same reference")

	c := pool.Intern("hello")
	assert.Same(t, a, c, "interning is idempotent")

	d := pool.Intern("world")
	assert.NotSame(t, a, d)
}
