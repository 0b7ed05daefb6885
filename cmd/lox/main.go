// Command lox is the Lox bytecode interpreter's executable: a REPL when
// invoked with no arguments, a file runner when given one path.
package main

import (
	"os"

	"github.com/loxvm/loxvm/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
