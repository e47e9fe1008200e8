// Package symtab implements the assembler's symbol table: an
// insertion-ordered mapping from label name to (kind, address). Traversal
// order matters here because the externals and entries files must list
// symbols in the order they appear in the source (spec.md §3, §8), which a
// bare map cannot give us — the teacher's own `SymbolTable map[string]vm.Word`
// is generalized into an ordered slice-plus-index instead of reused as-is.
package symtab

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer -type Kind -output kind_string.go

// Kind classifies a Symbol.
type Kind uint8

// The four symbol kinds.
const (
	Code Kind = iota
	Data
	Entry
	Extern
)

// Symbol is one entry in the table.
type Symbol struct {
	Name    string
	Kind    Kind
	Address uint16

	// InData is true when Address is a data-image offset rather than an
	// instruction-image address — set by DefineData, and carried through an
	// Entry promotion/completion. OffsetData uses it to find every symbol
	// that still needs the final instruction count added in.
	InData bool
}

// RedefinitionError reports that name was already defined as a code or data
// label and cannot be defined again.
type RedefinitionError struct{ Name string }

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("symbol redefinition: %q", e.Name)
}

func (e *RedefinitionError) Is(target error) bool {
	_, ok := target.(*RedefinitionError)
	return ok
}

// AlreadyExternError reports that name is declared .extern and cannot be
// promoted to .entry or redefined as code/data.
type AlreadyExternError struct{ Name string }

func (e *AlreadyExternError) Error() string {
	return fmt.Sprintf("%q already declared .extern", e.Name)
}

func (e *AlreadyExternError) Is(target error) bool {
	_, ok := target.(*AlreadyExternError)
	return ok
}

// AlreadyEntryError reports that name is already an Entry and cannot be
// declared .extern.
type AlreadyEntryError struct{ Name string }

func (e *AlreadyEntryError) Error() string {
	return fmt.Sprintf("%q already declared .entry", e.Name)
}

func (e *AlreadyEntryError) Is(target error) bool {
	_, ok := target.(*AlreadyEntryError)
	return ok
}

// Table is the insertion-ordered symbol table. The zero value is ready to
// use.
type Table struct {
	index map[string]int
	syms  []Symbol
}

func (t *Table) init() {
	if t.index == nil {
		t.index = make(map[string]int)
	}
}

// Lookup returns the symbol named name and whether it exists.
func (t *Table) Lookup(name string) (Symbol, bool) {
	t.init()

	i, ok := t.index[name]
	if !ok {
		return Symbol{}, false
	}

	return t.syms[i], true
}

// DefineCode inserts or completes a Code-kind symbol at addr. See the
// promotion matrix in SPEC_FULL.md §5.
func (t *Table) DefineCode(name string, addr uint16) error {
	return t.define(name, Code, addr)
}

// DefineData inserts or completes a Data-kind symbol at addr.
func (t *Table) DefineData(name string, addr uint16) error {
	return t.define(name, Data, addr)
}

func (t *Table) define(name string, kind Kind, addr uint16) error {
	t.init()

	i, ok := t.index[name]
	if !ok {
		t.append(Symbol{Name: name, Kind: kind, Address: addr, InData: kind == Data})
		return nil
	}

	switch t.syms[i].Kind {
	case Code, Data:
		return &RedefinitionError{Name: name}
	case Extern:
		return &AlreadyExternError{Name: name}
	case Entry:
		// Forward .entry declaration is completed by the definition that
		// follows it: keep the Entry kind, fill in the address and record
		// which image it lives in.
		t.syms[i].Address = addr
		t.syms[i].InData = kind == Data
		return nil
	}

	return nil
}

// DeclareEntry records a `.entry NAME` directive. If NAME is unseen it is
// inserted as a placeholder Entry at address 0, to be completed when its
// Code/Data definition is encountered (spec.md concrete scenario 5). If
// NAME already names a Code/Data symbol, it is promoted to Entry in place,
// keeping its address. A NAME already Extern is a conflict. A NAME already
// Entry is a harmless no-op re-declaration (see DESIGN.md Open Question 2).
func (t *Table) DeclareEntry(name string) error {
	t.init()

	i, ok := t.index[name]
	if !ok {
		t.append(Symbol{Name: name, Kind: Entry})
		return nil
	}

	switch t.syms[i].Kind {
	case Code, Data:
		t.syms[i].Kind = Entry
		return nil
	case Extern:
		return &AlreadyExternError{Name: name}
	case Entry:
		return nil
	}

	return nil
}

// DeclareExtern records an `.extern NAME` directive: an Extern symbol at
// address 0. NAME must not already exist under any kind.
func (t *Table) DeclareExtern(name string) error {
	t.init()

	i, ok := t.index[name]
	if !ok {
		t.append(Symbol{Name: name, Kind: Extern})
		return nil
	}

	switch t.syms[i].Kind {
	case Entry:
		return &AlreadyEntryError{Name: name}
	default:
		return &RedefinitionError{Name: name}
	}
}

func (t *Table) append(s Symbol) {
	t.index[s.Name] = len(t.syms)
	t.syms = append(t.syms, s)
}

// OffsetData adds instrFinal — the instruction-image counter's value at the
// end of pass one — to the Address of every symbol living in the data image,
// converting pass one's raw data-offset addresses into spec.md §3's "ICF +
// offset" addresses. Called exactly once, after pass one finishes.
func (t *Table) OffsetData(instrFinal uint16) {
	for i := range t.syms {
		if t.syms[i].InData {
			t.syms[i].Address += instrFinal
		}
	}
}

// All returns the symbols in insertion order. Callers must not retain the
// returned slice across further mutation of the table.
func (t *Table) All() []Symbol {
	return t.syms
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int {
	return len(t.syms)
}

// Offset computes the distance from addr to the symbol's address, used by
// callers that need PC-relative-style range checks on operand patches.
func (t *Table) Offset(name string, addr uint16) (int32, bool) {
	sym, ok := t.Lookup(name)
	if !ok {
		return 0, false
	}

	return int32(sym.Address) - int32(addr), true
}
