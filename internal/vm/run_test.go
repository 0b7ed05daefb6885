package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run compiles and executes source against a fresh VM, returning captured
// stdout lines and whatever error (compile or runtime) occurred.
func run(t *testing.T, source string) ([]string, error) {
	t.Helper()
	pool := NewStringPool()
	var stdout, stderr bytes.Buffer

	fn, ok := Compile(source, pool, &stderr)
	if !ok {
		return nil, &compileFailure{stderr.String()}
	}

	machine := New(pool, &stdout, &stderr)
	if err := machine.Interpret(fn); err != nil {
		return splitLines(stdout.String()), err
	}
	return splitLines(stdout.String()), nil
}

type compileFailure struct{ message string }

func (c *compileFailure) Error() string { return c.message }

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "arithmetic precedence",
			source: `print 1 + 2 * 3;`,
			want:   []string{"6"},
		},
		{
			name:   "block scoping shadows outer",
			source: `var a=1; { var a=2; print a; } print a;`,
			want:   []string{"2", "1"},
		},
		{
			name:   "recursive fibonacci",
			source: `fun fib(n){ if (n<2) return n; return fib(n-1)+fib(n-2); } print fib(10);`,
			want:   []string{"55"},
		},
		{
			name:   "closures capture by reference",
			source: `fun mk(){ var i=0; fun inc(){ i=i+1; return i; } return inc; } var c=mk(); print c(); print c(); print c();`,
			want:   []string{"1", "2", "3"},
		},
		{
			name:   "single inheritance",
			source: `class A { greet(){ print "hi"; } } class B < A {} B().greet();`,
			want:   []string{"hi"},
		},
		{
			name:   "initializer and field access",
			source: `class Cake { init(f){ this.f=f; } taste(){ print "The "+this.f+" cake"; } } Cake("lemon").taste();`,
			want:   []string{"The lemon cake"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := run(t, c.source)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestUnterminatedStringIsCompileError(t *testing.T) {
	_, err := run(t, `print "oops;`)
	require.Error(t, err)
	var cf *compileFailure
	assert.ErrorAs(t, err, &cf)
}

func TestAddingNumberAndStringIsRuntimeError(t *testing.T) {
	_, err := run(t, `1 + "a";`)
	require.Error(t, err)
	var cf *compileFailure
	assert.NotErrorAs(t, err, &cf, "this is a runtime error, not a compile error")
	assert.Contains(t, err.Error(), "Operands must be two numbers or two strings.")
}

func TestReadingLocalInItsOwnInitializerIsCompileError(t *testing.T) {
	_, err := run(t, `{ var a = a; }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't read local variable in its own initializer.")
}

func TestClassInheritingFromItselfIsCompileError(t *testing.T) {
	_, err := run(t, `class A < A {}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A class can't inherit from itself.")
}

func TestDeepRecursionOverflowsTheFrameStack(t *testing.T) {
	_, err := run(t, `fun recurse(n){ return recurse(n+1); } recurse(0);`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stack overflow.")
}

func TestGlobalAssignmentToUndefinedNameIsRuntimeError(t *testing.T) {
	_, err := run(t, `undeclared = 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'undeclared'.")
}
