package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileTopLevelScriptEndsInReturn(t *testing.T) {
	pool := NewStringPool()
	var errBuf bytes.Buffer

	fn, ok := Compile(`print 1;`, pool, &errBuf)
	require.True(t, ok)
	require.NotNil(t, fn)
	assert.Equal(t, 0, fn.Arity)
	require.NotZero(t, fn.Chunk.Len())
	assert.Equal(t, byte(OP_RETURN), fn.Chunk.Code[fn.Chunk.Len()-1])
}

func TestCompileErrorReportsLineAndColumn(t *testing.T) {
	pool := NewStringPool()
	var errBuf bytes.Buffer

	_, ok := Compile("var;", pool, &errBuf)
	assert.False(t, ok)
	assert.Contains(t, errBuf.String(), "[line 1")
	assert.Contains(t, errBuf.String(), "Error")
}

func TestCompilePanicModeRecoversAtNextStatement(t *testing.T) {
	pool := NewStringPool()
	var errBuf bytes.Buffer

	// The first statement is malformed; synchronize() should recover at the
	// following `print` so only one error is reported, not a cascade.
	_, ok := Compile(`var; print "after";`, pool, &errBuf)
	assert.False(t, ok)

	errorCount := 0
	for _, b := range errBuf.String() {
		if b == '\n' {
			errorCount++
		}
	}
	assert.Equal(t, 1, errorCount, "panic-mode recovery should suppress the cascade")
}

func TestCompileTooManyLocalsIsAnError(t *testing.T) {
	pool := NewStringPool()
	var errBuf bytes.Buffer

	var source bytes.Buffer
	source.WriteString("fun f(){")
	for i := 0; i < 300; i++ {
		source.WriteString("var x")
		source.WriteString(itoa(i))
		source.WriteString(";")
	}
	source.WriteString("}")

	_, ok := Compile(source.String(), pool, &errBuf)
	assert.False(t, ok)
	assert.Contains(t, errBuf.String(), "Too many local variables in function.")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestUsingThisOutsideClassIsCompileError(t *testing.T) {
	pool := NewStringPool()
	var errBuf bytes.Buffer

	_, ok := Compile(`print this;`, pool, &errBuf)
	assert.False(t, ok)
	assert.Contains(t, errBuf.String(), "Can't use 'this' outside of a class.")
}

func TestInvalidAssignmentTargetIsCompileError(t *testing.T) {
	pool := NewStringPool()
	var errBuf bytes.Buffer

	_, ok := Compile(`1 + 2 = 3;`, pool, &errBuf)
	assert.False(t, ok)
	assert.Contains(t, errBuf.String(), "Invalid assignment target.")
}
