package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqualityIsStrictAcrossKinds(t *testing.T) {
	assert.True(t, NilVal().Equals(NilVal()))
	assert.False(t, NilVal().Equals(BoolVal(false)), "nil and false are different kinds")
	assert.False(t, NumberVal(0).Equals(BoolVal(false)), "0 and false are different kinds")
	assert.True(t, NumberVal(1).Equals(NumberVal(1)))
	assert.False(t, NumberVal(1).Equals(NumberVal(2)))
}

func TestValueEqualityForInternedStrings(t *testing.T) {
	pool := NewStringPool()
	a := ObjVal(pool.Intern("same"))
	b := ObjVal(pool.Intern("same"))
	assert.True(t, a.Equals(b), "equal-content interned strings compare equal")
}

func TestIsFalsey(t *testing.T) {
	assert.True(t, NilVal().IsFalsey())
	assert.True(t, BoolVal(false).IsFalsey())
	assert.False(t, BoolVal(true).IsFalsey())
	assert.False(t, NumberVal(0).IsFalsey(), "0 is truthy")

	pool := NewStringPool()
	assert.False(t, ObjVal(pool.Intern("")).IsFalsey(), "empty string is truthy")
}

func TestValueStringRendering(t *testing.T) {
	assert.Equal(t, "nil", NilVal().String())
	assert.Equal(t, "true", BoolVal(true).String())
	assert.Equal(t, "false", BoolVal(false).String())
	assert.Equal(t, "3.5", NumberVal(3.5).String())
	assert.Equal(t, "10", NumberVal(10).String())

	pool := NewStringPool()
	assert.Equal(t, "hi", ObjVal(pool.Intern("hi")).String())
}
