package asm

import (
	"bytes"
	"encoding"
	"fmt"
	"os"

	"github.com/oriya-dev/asm14/internal/encoder"
	"github.com/oriya-dev/asm14/internal/image"
	"github.com/oriya-dev/asm14/internal/symtab"
)

// The three emitted artifacts each implement encoding.TextMarshaler, the
// pattern the teacher's own object encoder uses (internal/encoding's
// Intel-Hex-flavored writer) — a dedicated type per file, built from data the
// Assembler already owns, exercised by emit below rather than by any
// generic io.Writer plumbing.
var (
	_ encoding.TextMarshaler = ObjectListing{}
	_ encoding.TextMarshaler = ExternalsTable{}
	_ encoding.TextMarshaler = EntriesTable{}
)

// ObjectListing renders the `<basename>.object` file (spec.md §6): a header
// line of (data count, instruction count), then one line per instruction
// word at its address, then one line per data word at its offset address.
type ObjectListing struct {
	DataCount   int
	InstrCount  int
	Instr       []image.Word
	InstrOrigin uint16
	Data        []image.Word
	DataOrigin  uint16
}

func (o ObjectListing) MarshalText() ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%9d\t%-9d\n", o.DataCount, o.InstrCount)

	addr := o.InstrOrigin
	for _, w := range o.Instr {
		fmt.Fprintf(&buf, "%04d\t%s\n", addr, encoder.VisualBits(w.Value))
		addr++
	}

	addr = o.DataOrigin
	for _, w := range o.Data {
		fmt.Fprintf(&buf, "%04d\t%s\n", addr, encoder.VisualBits(w.Value))
		addr++
	}

	return buf.Bytes(), nil
}

// ExternalsTable renders the `<basename>.external` file: one line per
// reference site of every Extern symbol, in symbol-insertion order and then
// reference-encounter order (spec.md §6, §8).
type ExternalsTable struct {
	Symbols []symtab.Symbol
	Refs    map[string][]uint16
}

func (e ExternalsTable) MarshalText() ([]byte, error) {
	var buf bytes.Buffer

	for _, sym := range e.Symbols {
		if sym.Kind != symtab.Extern {
			continue
		}

		for _, addr := range e.Refs[sym.Name] {
			fmt.Fprintf(&buf, "%s\t%d\n", sym.Name, addr)
		}
	}

	return buf.Bytes(), nil
}

// EntriesTable renders the `<basename>.entry` file: one line per Entry
// symbol, in insertion order (spec.md §6, §8). Unlike the buggy source
// variant design note §9 calls out, this filters on symtab.Entry, never
// symtab.Extern.
type EntriesTable struct {
	Symbols []symtab.Symbol
}

func (e EntriesTable) MarshalText() ([]byte, error) {
	var buf bytes.Buffer

	for _, sym := range e.Symbols {
		if sym.Kind != symtab.Entry {
			continue
		}

		fmt.Fprintf(&buf, "%s\t%d\n", sym.Name, sym.Address)
	}

	return buf.Bytes(), nil
}

// emit writes the three output files next to basename. It is only ever
// called after both passes complete with no blocking diagnostic, which is
// spec.md §7's "on success only" guarantee; no further atomicity dance is
// needed beyond that ordering.
func (a *Assembler) emit(basename string) error {
	obj := ObjectListing{
		DataCount:   a.data.Size(),
		InstrCount:  int(a.instrFinalCount - a.instr.Origin),
		Instr:       a.instr.Words,
		InstrOrigin: a.instr.Origin,
		Data:        a.data.Words,
		DataOrigin:  a.instrFinalCount,
	}

	symbols := a.symbols.All()

	ext := ExternalsTable{Symbols: symbols, Refs: a.externRefs}
	ent := EntriesTable{Symbols: symbols}

	if err := writeMarshaled(basename+".object", obj); err != nil {
		return err
	}

	if err := writeMarshaled(basename+".external", ext); err != nil {
		return err
	}

	if err := writeMarshaled(basename+".entry", ent); err != nil {
		return err
	}

	return nil
}

func writeMarshaled(path string, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return fmt.Errorf("asm: %w", err)
	}

	if err := os.WriteFile(path, text, 0o644); err != nil {
		return fmt.Errorf("asm: %w", err)
	}

	return nil
}
