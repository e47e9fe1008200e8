package isa_test

import (
	"testing"

	"github.com/oriya-dev/asm14/internal/isa"
)

func TestGetOpcode(t *testing.T) {
	tests := []struct {
		word string
		want isa.Opcode
		ok   bool
	}{
		{"mov", isa.MOV, true},
		{"MOV", isa.MOV, true},
		{"stop", isa.STOP, true},
		{"bogus", 0, false},
	}

	for _, tc := range tests {
		got, ok := isa.GetOpcode(tc.word)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("GetOpcode(%q) = %v, %v; want %v, %v", tc.word, got, ok, tc.want, tc.ok)
		}
	}
}

func TestGetSyntaxGroup(t *testing.T) {
	tests := []struct {
		op   isa.Opcode
		want isa.Group
	}{
		{isa.MOV, isa.Group1},
		{isa.CMP, isa.Group2},
		{isa.NOT, isa.Group3},
		{isa.RTS, isa.Group4},
		{isa.JMP, isa.Group5},
		{isa.PRN, isa.Group6},
		{isa.LEA, isa.Group7},
	}

	for _, tc := range tests {
		if got := isa.GetSyntaxGroup(tc.op); got != tc.want {
			t.Errorf("GetSyntaxGroup(%v) = %v, want %v", tc.op, got, tc.want)
		}
	}
}

func TestIsValidLabel(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"MAIN", true},
		{"label1", true},
		{"1label", false},
		{"", false},
		{"mov", false},
		{"r3", false},
		{"a_b", false},
	}

	for _, tc := range tests {
		if got := isa.IsValidLabel(tc.word); got != tc.want {
			t.Errorf("IsValidLabel(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestIsRegisterName(t *testing.T) {
	for i := 0; i < 8; i++ {
		r := string(rune('0' + i))
		if !isa.IsRegisterName("r" + r) {
			t.Errorf("IsRegisterName(r%s) = false, want true", r)
		}
	}

	if isa.IsRegisterName("r8") {
		t.Error("IsRegisterName(r8) = true, want false")
	}
}

func TestGetOperandKind(t *testing.T) {
	tests := []struct {
		token string
		want  isa.AddressingMode
		ok    bool
	}{
		{"#5", isa.Immediate, true},
		{"#-1", isa.Immediate, true},
		{"r2", isa.Register, true},
		{"ARR[r1]", isa.Index, true},
		{"LABEL", isa.Label, true},
		{"", 0, false},
	}

	for _, tc := range tests {
		got, ok := isa.GetOperandKind(tc.token)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("GetOperandKind(%q) = %v, %v; want %v, %v", tc.token, got, ok, tc.want, tc.ok)
		}
	}
}

func TestModeAllowed(t *testing.T) {
	if isa.ModeAllowed(isa.NOT, isa.Immediate, false) {
		t.Error("NOT should not allow an immediate destination")
	}

	if !isa.ModeAllowed(isa.CMP, isa.Immediate, false) {
		t.Error("CMP should allow an immediate destination")
	}

	if isa.ModeAllowed(isa.LEA, isa.Immediate, true) {
		t.Error("LEA should not allow an immediate source")
	}
}
