package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/oriya-dev/asm14/internal/asm"
	"github.com/oriya-dev/asm14/internal/cli"
	"github.com/oriya-dev/asm14/internal/log"
)

// Assembler is the command that translates source code into the three
// object/externals/entries files (spec.md §6).
//
//	asm14 asm FILE...
func Assembler() cli.Command {
	return new(assembler)
}

type assembler struct {
	debug bool
}

func (assembler) Description() string {
	return "assemble source files into object code"
}

func (assembler) Usage(out io.Writer) error {
	var err error
	_, err = fmt.Fprintln(out, `asm file...

Assemble one or more basenames: each "name" argument opens "name.as" and,
on success, writes "name.object", "name.external", and "name.entry".`)

	return err
}

func (a *assembler) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	fs.BoolVar(&a.debug, "debug", false, "enable debug logging")

	return fs
}

// Run assembles every basename in args, printing accumulated diagnostics for
// any that fail. It exits 0 iff every input assembled without a blocking
// diagnostic (spec.md §6).
func (a *assembler) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if a.debug {
		log.LogLevel.Set(log.Debug)
	}

	if len(args) == 0 {
		logger.Error("asm: no input files")
		return 1
	}

	status := 0

	for _, basename := range args {
		assembler := asm.NewAssembler(logger)

		if err := assembler.Run(basename); err != nil {
			// spec.md §9: diagnostics print to stderr, in source order, one
			// run at a time; §7 requires every line to still be visited, so
			// this prints the full accumulated list, not just the first.
			for _, d := range assembler.Diagnostics() {
				fmt.Fprintln(os.Stderr, d.Error())
			}

			status = 1

			continue
		}

		fmt.Fprintf(stdout, "%s: assembled\n", basename)
	}

	return status
}
