package line_test

import (
	"testing"

	"github.com/oriya-dev/asm14/internal/line"
)

func TestNextWordAndUnget(t *testing.T) {
	var it line.Iterator
	it.Put("MAIN: mov r1, r2")

	label := it.NextWord(": ")
	if label != "MAIN" {
		t.Fatalf("label = %q, want MAIN", label)
	}

	it.ConsumeBlanks()

	opcode := it.NextWord(" ")
	if opcode != "mov" {
		t.Fatalf("opcode = %q, want mov", opcode)
	}

	it.UngetWord(opcode)

	again := it.NextWord(" ")
	if again != opcode {
		t.Fatalf("after unget, NextWord = %q, want %q", again, opcode)
	}
}

func TestConsumeBlanksAndPeek(t *testing.T) {
	var it line.Iterator
	it.Put("   mov")

	it.ConsumeBlanks()

	c, ok := it.Peek()
	if !ok || c != 'm' {
		t.Fatalf("Peek() = %q, %v, want 'm', true", c, ok)
	}
}

func TestJumpTo(t *testing.T) {
	var it line.Iterator
	it.Put("LABEL[r2]")

	it.JumpTo('[')

	rest := it.NextWord("]")
	if rest != "r2" {
		t.Fatalf("rest = %q, want r2", rest)
	}
}

func TestIsEndOnEmptyLine(t *testing.T) {
	var it line.Iterator
	it.Put("")

	if !it.IsEnd() {
		t.Fatal("IsEnd() = false on empty line")
	}

	if w := it.NextWord(" "); w != "" {
		t.Fatalf("NextWord on empty line = %q, want empty", w)
	}
}

func TestAdvancePastEndIsNoop(t *testing.T) {
	var it line.Iterator
	it.Put("x")

	it.Advance()
	it.Advance()
	it.Advance()

	if !it.IsEnd() {
		t.Fatal("expected IsEnd after advancing past a one-byte line")
	}
}
