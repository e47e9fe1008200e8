package diag_test

import (
	"errors"
	"testing"

	"github.com/oriya-dev/asm14/internal/diag"
)

func TestBlockingIgnoresOnlyWarnings(t *testing.T) {
	var list diag.List

	list.Add(1, diag.SymbolIgnoredWarn, "label ignored")

	if list.Blocking() {
		t.Fatal("Blocking() = true with only a warning, want false")
	}

	list.Add(2, diag.SyntaxError, "bad syntax")

	if !list.Blocking() {
		t.Fatal("Blocking() = false after a syntax error, want true")
	}
}

func TestAllPreservesOrder(t *testing.T) {
	var list diag.List

	list.Add(3, diag.SyntaxError, "third")
	list.Add(1, diag.SyntaxError, "first")
	list.Add(2, diag.SyntaxError, "second")

	all := list.All()
	if len(all) != 3 || all[0].Line != 3 || all[1].Line != 1 || all[2].Line != 2 {
		t.Fatalf("All() = %v, want insertion order 3,1,2", all)
	}
}

func TestErrJoinsAndIsMatchesByCode(t *testing.T) {
	var list diag.List

	list.Add(5, diag.SymbolRedefinition, "X redefined")

	err := list.Err()
	if err == nil {
		t.Fatal("Err() = nil, want a joined error")
	}

	if !errors.Is(err, &diag.Diagnostic{Code: diag.SymbolRedefinition}) {
		t.Error("errors.Is did not match by Code")
	}

	if errors.Is(err, &diag.Diagnostic{Code: diag.SyntaxError}) {
		t.Error("errors.Is matched an unrelated Code")
	}
}

func TestErrNilWhenEmpty(t *testing.T) {
	var list diag.List

	if err := list.Err(); err != nil {
		t.Fatalf("Err() on empty list = %v, want nil", err)
	}
}
