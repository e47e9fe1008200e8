// Package diag implements the assembler's diagnostic list: an append-only
// record of (line, code, message) tuples accumulated across both passes and
// printed, in source order, when assembly fails. Every Code is blocking
// (suppresses encoding on its line and file emission at the end of the run)
// except SymbolIgnoredWarn, which is informational only.
package diag

import (
	"errors"
	"fmt"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type Code -output code_string.go

// Code identifies the kind of a Diagnostic.
type Code uint8

// The closed set of diagnostic kinds from spec.md §7.
const (
	SyntaxError Code = iota
	SymbolRedefinition
	SymbolIgnoredWarn
	InvalidLabelDef
	LabelAlreadyExtern
	LabelAlreadyEntry
	LabelIsReserved
	OperandRange
	UnknownOperand
)

// Diagnostic is one accumulated record. It is never edited after it is
// appended to a List.
type Diagnostic struct {
	Line int
	Text string
	Code Code
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d: %s: %s", d.Line, d.Code, d.Text)
}

// Is reports whether target is a Diagnostic with the same Code, letting
// callers test `errors.Is(err, &diag.Diagnostic{Code: diag.SyntaxError})`.
func (d *Diagnostic) Is(target error) bool {
	other, ok := target.(*Diagnostic)
	if !ok {
		return false
	}

	return other.Code == d.Code
}

// List is the append-only diagnostic list. The zero value is ready to use.
type List struct {
	entries []*Diagnostic
}

// Add appends a diagnostic for line carrying code and a formatted message.
func (l *List) Add(line int, code Code, format string, args ...any) {
	l.entries = append(l.entries, &Diagnostic{
		Line: line,
		Code: code,
		Text: fmt.Sprintf(format, args...),
	})
}

// All returns the accumulated diagnostics in the order they were added,
// which is source order within a pass, pass-one before pass-two (spec.md
// §5's ordering guarantee).
func (l *List) All() []*Diagnostic {
	return l.entries
}

// Blocking reports whether the list contains any diagnostic other than
// SymbolIgnoredWarn. A blocking diagnostic suppresses creation of the three
// output files (spec.md §7).
func (l *List) Blocking() bool {
	for _, d := range l.entries {
		if d.Code != SymbolIgnoredWarn {
			return true
		}
	}

	return false
}

// Err joins every diagnostic into a single error, or nil if the list is
// empty. Each *Diagnostic already implements error and Is, so callers can
// use errors.Is/errors.As on the result.
func (l *List) Err() error {
	if len(l.entries) == 0 {
		return nil
	}

	errs := make([]error, len(l.entries))
	for i, d := range l.entries {
		errs[i] = d
	}

	return errors.Join(errs...)
}
