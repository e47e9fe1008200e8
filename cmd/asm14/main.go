// asm14 is the command-line interface to the two-pass assembler.
package main

import (
	"context"
	"os"

	"github.com/oriya-dev/asm14/internal/cli"
	"github.com/oriya-dev/asm14/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Assembler(),
}

func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
