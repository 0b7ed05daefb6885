package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureUpvalueReusesExistingAtSameSlot(t *testing.T) {
	machine := New(NewStringPool(), nil, nil)
	machine.stack = make([]Value, 5)

	a := machine.captureUpvalue(2)
	b := machine.captureUpvalue(2)
	assert.Same(t, a, b)
}

func TestCaptureUpvalueKeepsOpenListDescending(t *testing.T) {
	machine := New(NewStringPool(), nil, nil)
	machine.stack = make([]Value, 5)

	machine.captureUpvalue(1)
	machine.captureUpvalue(3)
	machine.captureUpvalue(2)

	var locations []int
	for uv := machine.openUpvalues; uv != nil; uv = uv.Next {
		locations = append(locations, uv.Location)
	}
	assert.Equal(t, []int{3, 2, 1}, locations)
}

func TestCloseUpvaluesClosesEverythingAtOrAboveSlot(t *testing.T) {
	machine := New(NewStringPool(), nil, nil)
	machine.stack = []Value{NumberVal(10), NumberVal(20), NumberVal(30)}

	low := machine.captureUpvalue(0)
	mid := machine.captureUpvalue(1)
	high := machine.captureUpvalue(2)

	machine.closeUpvalues(1)

	require.True(t, mid.isClosed())
	require.True(t, high.isClosed())
	assert.False(t, low.isClosed(), "slots below lastSlot stay open")
	assert.Equal(t, 20.0, mid.Closed.AsNumber())
	assert.Equal(t, 30.0, high.Closed.AsNumber())
	assert.Same(t, low, machine.openUpvalues)
}
