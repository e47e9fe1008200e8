// Package asm drives the two-pass assembler: it owns the symbol table, the
// two memory images, and the diagnostic list, and coordinates the first and
// second passes over one source file (spec.md §2, §4.3, §4.6).
//
// Unlike the teacher's single-pass-then-generate split (Parser builds a
// syntax tree, Generator walks it), this dialect's second pass re-tokenizes
// the same source lines rather than an AST (spec.md §9's iterator-per-line
// design), so both passes live on one Assembler that keeps the raw lines
// around between them.
package asm

import (
	"bufio"
	"fmt"
	"os"

	"github.com/oriya-dev/asm14/internal/diag"
	"github.com/oriya-dev/asm14/internal/image"
	"github.com/oriya-dev/asm14/internal/line"
	"github.com/oriya-dev/asm14/internal/log"
	"github.com/oriya-dev/asm14/internal/symtab"
)

// InstructionOrigin is the fixed starting address of the instruction image
// (spec.md §3).
const InstructionOrigin = 100

// Assembler runs both passes for a single source file and holds the state
// that must survive between them: the symbol table (built in pass one, read
// in pass two), the two memory images, and the accumulated diagnostics.
type Assembler struct {
	log *log.Logger

	symbols symtab.Table
	instr   *image.Image
	data    *image.Image
	diags   diag.List

	lines []string // raw source lines, 0-indexed; line N is lines[N-1]

	// shouldEncode mirrors the original's single `should_encode` boolean:
	// cleared by the first blocking diagnostic and never set again for the
	// rest of the run. Diagnostics keep accumulating on every offending line, but
	// encoding is suppressed globally from that point on (spec.md §9).
	shouldEncode bool

	instrFinalCount uint16 // instruction counter's value at the end of pass one

	// externRefs maps an extern symbol's name to every address that refers
	// to it, in the order those references are encountered during pass two.
	externRefs map[string][]uint16
}

// NewAssembler returns an Assembler ready to run against one source file.
func NewAssembler(logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Assembler{
		log:          logger,
		instr:        image.New(InstructionOrigin),
		data:         image.New(0),
		shouldEncode: true,
	}
}

// Run opens <basename>.as, runs both passes, and, if neither pass produced a
// blocking diagnostic, writes the three output files next to the source
// (spec.md §6). It returns a joined error wrapping every diagnostic when
// blocking; nil on success.
func (a *Assembler) Run(basename string) error {
	path := basename + ".as"

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("asm: %w", err)
	}
	defer f.Close()

	if err := a.readLines(f); err != nil {
		return fmt.Errorf("asm: %w", err)
	}

	a.log.Debug("first pass", "file", path, "lines", len(a.lines))
	a.firstPass()

	if a.diags.Blocking() {
		a.log.Debug("first pass failed", "diagnostics", len(a.diags.All()))
		return a.diags.Err()
	}

	a.log.Debug("second pass", "file", path)
	a.secondPass()

	if a.diags.Blocking() {
		a.log.Debug("second pass failed", "diagnostics", len(a.diags.All()))
		return a.diags.Err()
	}

	if err := a.emit(basename); err != nil {
		return fmt.Errorf("asm: %w", err)
	}

	a.log.Debug("assembled",
		"file", path,
		"instructions", a.instr.Size(),
		"data", a.data.Size(),
		"symbols", a.symbols.Len(),
	)

	return nil
}

// Diagnostics returns every diagnostic accumulated so far, including
// non-blocking warnings recorded during a successful run. The CLI prints
// them when a run fails.
func (a *Assembler) Diagnostics() []*diag.Diagnostic {
	return a.diags.All()
}

func (a *Assembler) readLines(f *os.File) error {
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		a.lines = append(a.lines, scanner.Text())
	}

	return scanner.Err()
}

// fail records a diagnostic for lineNum and clears shouldEncode, per the
// global first-failure-onward suppression design note (spec.md §9).
func (a *Assembler) fail(lineNum int, code diag.Code, format string, args ...any) {
	a.diags.Add(lineNum, code, format, args...)
	a.shouldEncode = false
}

// warn records a non-blocking diagnostic; it does not affect shouldEncode.
func (a *Assembler) warn(lineNum int, code diag.Code, format string, args ...any) {
	a.diags.Add(lineNum, code, format, args...)
}

// newIterator returns a line.Iterator positioned at the start of text.
func newIterator(text string) *line.Iterator {
	it := new(line.Iterator)
	it.Put(text)

	return it
}
