// Package cli implements the interpreter's command-line entry point: an
// interactive REPL and a file runner, sharing one VM instance so that
// globals and the string pool persist across REPL lines.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/loxvm/loxvm/internal/config"
	"github.com/loxvm/loxvm/internal/vm"
)

// Run is the program's single entry point. It implements the contract in
// full: no arguments starts the REPL, one argument runs that file, and
// anything else is a usage error.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	settings := config.LoadSettings(".loxconfig.yaml")

	switch len(args) {
	case 1:
		return runREPL(settings, stdin, stdout, stderr)
	case 2:
		return runFile(args[1], settings, stdout, stderr)
	default:
		fmt.Fprintln(stderr, "Usage: main [path]")
		return config.ExitUsage
	}
}

// session ties a VM and string pool to a run, and carries a UUID whose
// prefix the interactive REPL banner shows to identify the invocation.
type session struct {
	id   uuid.UUID
	pool *vm.StringPool
	vm   *vm.VM
}

func newSession(stdout, stderr io.Writer) *session {
	pool := vm.NewStringPool()
	return &session{
		id:   uuid.New(),
		pool: pool,
		vm:   vm.New(pool, stdout, stderr),
	}
}

func runREPL(settings config.Settings, stdin io.Reader, stdout, stderr io.Writer) int {
	sess := newSession(stdout, stderr)

	interactive := false
	if f, ok := stdin.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd())
	}

	if interactive {
		fmt.Fprintf(stdout, "lox %s (session %s)\n", config.Version, sess.id.String()[:8])
	}

	scanner := bufio.NewScanner(stdin)
	for {
		if interactive {
			fmt.Fprint(stdout, settings.Prompt)
		}
		if !scanner.Scan() {
			if interactive {
				fmt.Fprintln(stdout)
			}
			return config.ExitOK
		}
		line := scanner.Text()

		start := time.Now()
		steps0 := sess.vm.Steps
		sess.interpret(line, stderr)

		if settings.ShowStats {
			elapsed := time.Since(start)
			steps := sess.vm.Steps - steps0
			fmt.Fprintf(stdout, "  [%s instructions in %s]\n", humanize.Comma(steps), elapsed)
		}
	}
}

func runFile(path string, settings config.Settings, stdout, stderr io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: could not read file %q: %v\n", path, err)
		return config.ExitUsage
	}

	sess := newSession(stdout, stderr)
	start := time.Now()

	result := sess.interpret(string(source), stderr)

	if settings.ShowStats {
		elapsed := time.Since(start)
		fmt.Fprintf(stderr, "[%s instructions in %s]\n", humanize.Comma(sess.vm.Steps), elapsed)
	}

	return result
}

// interpret compiles and runs source against the session's persistent VM,
// returning the process exit code the caller should use if this were the
// final (or only) unit of work: 0 on success, 65 on compile error, 70 on
// runtime error.
func (s *session) interpret(source string, stderr io.Writer) int {
	fn, ok := vm.Compile(source, s.pool, stderr)
	if !ok {
		return config.ExitCompileError
	}
	if err := s.vm.Interpret(fn); err != nil {
		return config.ExitRuntimeError
	}
	return config.ExitOK
}
