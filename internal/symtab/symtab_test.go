package symtab_test

import (
	"errors"
	"testing"

	"github.com/oriya-dev/asm14/internal/symtab"
)

func TestDefineCodeInsertsAndRedefines(t *testing.T) {
	var tab symtab.Table

	if err := tab.DefineCode("MAIN", 100); err != nil {
		t.Fatalf("DefineCode: %v", err)
	}

	sym, ok := tab.Lookup("MAIN")
	if !ok || sym.Kind != symtab.Code || sym.Address != 100 {
		t.Fatalf("Lookup(MAIN) = %+v, %v", sym, ok)
	}

	err := tab.DefineCode("MAIN", 101)

	var redef *symtab.RedefinitionError
	if !errors.As(err, &redef) {
		t.Fatalf("DefineCode on existing name = %v, want *RedefinitionError", err)
	}
}

func TestDeclareEntryForwardAndBackward(t *testing.T) {
	var tab symtab.Table

	if err := tab.DeclareEntry("Y"); err != nil {
		t.Fatalf("DeclareEntry: %v", err)
	}

	if err := tab.DefineCode("Y", 100); err != nil {
		t.Fatalf("DefineCode: %v", err)
	}

	sym, ok := tab.Lookup("Y")
	if !ok || sym.Kind != symtab.Entry || sym.Address != 100 {
		t.Fatalf("Lookup(Y) = %+v, %v, want Entry @100", sym, ok)
	}

	var tab2 symtab.Table

	if err := tab2.DefineCode("Z", 103); err != nil {
		t.Fatalf("DefineCode: %v", err)
	}

	if err := tab2.DeclareEntry("Z"); err != nil {
		t.Fatalf("DeclareEntry: %v", err)
	}

	sym2, ok := tab2.Lookup("Z")
	if !ok || sym2.Kind != symtab.Entry || sym2.Address != 103 {
		t.Fatalf("Lookup(Z) = %+v, %v, want Entry @103", sym2, ok)
	}
}

func TestExternConflicts(t *testing.T) {
	var tab symtab.Table

	if err := tab.DeclareExtern("EXT"); err != nil {
		t.Fatalf("DeclareExtern: %v", err)
	}

	var alreadyExtern *symtab.AlreadyExternError
	if err := tab.DeclareEntry("EXT"); !errors.As(err, &alreadyExtern) {
		t.Fatalf("DeclareEntry on Extern = %v, want *AlreadyExternError", err)
	}

	if err := tab.DefineCode("EXT", 100); !errors.As(err, &alreadyExtern) {
		t.Fatalf("DefineCode on Extern = %v, want *AlreadyExternError", err)
	}
}

func TestEntryCannotBeDeclaredExtern(t *testing.T) {
	var tab symtab.Table

	if err := tab.DeclareEntry("Y"); err != nil {
		t.Fatalf("DeclareEntry: %v", err)
	}

	var alreadyEntry *symtab.AlreadyEntryError
	if err := tab.DeclareExtern("Y"); !errors.As(err, &alreadyEntry) {
		t.Fatalf("DeclareExtern on Entry = %v, want *AlreadyEntryError", err)
	}
}

func TestRedeclaringEntryIsNotAnError(t *testing.T) {
	var tab symtab.Table

	if err := tab.DeclareEntry("Y"); err != nil {
		t.Fatalf("DeclareEntry: %v", err)
	}

	if err := tab.DeclareEntry("Y"); err != nil {
		t.Fatalf("second DeclareEntry = %v, want nil (idempotent)", err)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	var tab symtab.Table

	names := []string{"C", "A", "B"}
	for i, name := range names {
		if err := tab.DefineData(name, uint16(i)); err != nil {
			t.Fatalf("DefineData(%s): %v", name, err)
		}
	}

	all := tab.All()
	if len(all) != len(names) {
		t.Fatalf("All() has %d symbols, want %d", len(all), len(names))
	}

	for i, name := range names {
		if all[i].Name != name {
			t.Errorf("All()[%d].Name = %q, want %q", i, all[i].Name, name)
		}
	}
}
