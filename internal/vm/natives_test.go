package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockNativeReturnsANumber(t *testing.T) {
	got, err := run(t, `var t = clock(); print t >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, []string{"true"}, got)
}

func TestClockNativeRejectsBeingTreatedAsAClass(t *testing.T) {
	_, err := run(t, `class C < clock {}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Superclass must be a class.")
}
