// Package isa describes the instruction set of the 14-bit instructional
// machine: its opcodes, addressing modes, syntax groups, and the lexical
// predicates the assembler's passes use to classify source tokens.
//
// Bit layout of an encoded instruction word (bit 13 leftmost):
//
//	bit:  13 12 | 11  10  9  8 | 7  6  5 | 4  3  2 | 1  0
//	      [ G ] [     OPCODE  ] [ SRC ]   [ DEST ]  [ARE]
//
// SRC and DEST hold the corresponding operand's AddressingMode value (zero
// when the operand does not exist); register numbers and operand values are
// carried in the trailing word(s) instead. G is unused except for Group5
// opcodes: OpcodeWord sets bit 12 for a parameterized jump, and
// LabelInOpcode then reuses bits 12-13 (with bits 2-7) for the jump target's
// address.
package isa

import "strings"

//go:generate go run golang.org/x/tools/cmd/stringer -type Opcode -output opcode_string.go
//go:generate go run golang.org/x/tools/cmd/stringer -type AddressingMode -output mode_string.go

// Opcode identifies one of the sixteen machine instructions.
type Opcode uint8

// The machine's instruction set.
const (
	MOV Opcode = iota
	CMP
	ADD
	SUB
	LEA
	NOT
	CLR
	INC
	DEC
	JMP
	BNE
	JSR
	RED
	PRN
	RTS
	STOP

	NumOpcodes
)

// AddressingMode identifies how an operand's value is located.
type AddressingMode uint8

// The machine's four addressing modes, in the same order as the operand
// kinds they classify into.
const (
	Immediate AddressingMode = iota // #NUMBER
	Label                           // IDENT
	Index                           // IDENT[rN]
	Register                        // rN

	NumModes
)

// Group classifies an opcode by operand arity and how the second pass
// computes its encoded span, per the span table:
//
//	Group1, Group2, Group7 (two operands): 2 words if both registers, else 3
//	Group3, Group6 (one operand):          2 words
//	Group5 (variable):                     1 + parameter count, or 2 if bare
//	Group4 (no operands):                  1 word
type Group uint8

// Syntax groups.
const (
	Group1 Group = iota + 1
	Group2
	Group3
	Group4
	Group5
	Group6
	Group7
)

// opcodeInfo describes one mnemonic: its numeric value, syntax group, and
// which addressing modes are legal for its source and destination operands
// (nil means the operand does not exist).
type opcodeInfo struct {
	op     Opcode
	group  Group
	srcOK  []AddressingMode // legal modes for the source operand, nil if none
	destOK []AddressingMode // legal modes for the destination operand, nil if none
}

var allModes = []AddressingMode{Immediate, Label, Index, Register}
var noImmediate = []AddressingMode{Label, Index, Register}
var labelOrIndex = []AddressingMode{Label, Index}

var opcodeTable = map[string]opcodeInfo{
	"MOV":  {MOV, Group1, allModes, noImmediate},
	"CMP":  {CMP, Group2, allModes, allModes},
	"ADD":  {ADD, Group1, allModes, noImmediate},
	"SUB":  {SUB, Group1, allModes, noImmediate},
	"LEA":  {LEA, Group7, labelOrIndex, noImmediate},
	"NOT":  {NOT, Group3, nil, noImmediate},
	"CLR":  {CLR, Group3, nil, noImmediate},
	"INC":  {INC, Group3, nil, noImmediate},
	"DEC":  {DEC, Group3, nil, noImmediate},
	"JMP":  {JMP, Group5, nil, labelOrIndex},
	"BNE":  {BNE, Group5, nil, labelOrIndex},
	"JSR":  {JSR, Group5, nil, labelOrIndex},
	"RED":  {RED, Group3, nil, noImmediate},
	"PRN":  {PRN, Group6, nil, allModes},
	"RTS":  {RTS, Group4, nil, nil},
	"STOP": {STOP, Group4, nil, nil},
}

var opcodeNames = func() map[Opcode]string {
	m := make(map[Opcode]string, len(opcodeTable))
	for name, info := range opcodeTable {
		m[info.op] = name
	}

	return m
}()

// registerNames is the closed set of valid register operands.
var registerNames = map[string]bool{
	"r0": true, "r1": true, "r2": true, "r3": true,
	"r4": true, "r5": true, "r6": true, "r7": true,
}

// directiveNames is the closed set of directive keywords, recognized with
// their leading dot stripped.
var directiveNames = map[string]bool{
	"data": true, "string": true, "entry": true, "extern": true,
}

// MaxLabelLen is the longest identifier this dialect accepts as a label.
const MaxLabelLen = 31

// GetOpcode returns the opcode named by word and true, or the zero Opcode and
// false if word is not one of the sixteen mnemonics. Matching is
// case-insensitive, matching the dialect's convention of upper-case
// directives alongside lower-case mnemonics in example programs.
func GetOpcode(word string) (Opcode, bool) {
	info, ok := opcodeTable[strings.ToUpper(word)]
	if !ok {
		return 0, false
	}

	return info.op, true
}

// Name returns the canonical lower-case mnemonic for op.
func (op Opcode) Name() string {
	name, ok := opcodeNames[op]
	if !ok {
		return "UNKNOWN"
	}

	return strings.ToLower(name)
}

// GetSyntaxGroup returns the syntax group of op.
func GetSyntaxGroup(op Opcode) Group {
	for _, info := range opcodeTable {
		if info.op == op {
			return info.group
		}
	}

	return 0
}

// HasSource reports whether op takes a source operand.
func HasSource(op Opcode) bool {
	return len(modesFor(op, true)) > 0
}

// HasDest reports whether op takes a destination operand.
func HasDest(op Opcode) bool {
	return len(modesFor(op, false)) > 0
}

// ModeAllowed reports whether mode is legal for op's source (src=true) or
// destination (src=false) operand.
func ModeAllowed(op Opcode, mode AddressingMode, src bool) bool {
	for _, m := range modesFor(op, src) {
		if m == mode {
			return true
		}
	}

	return false
}

func modesFor(op Opcode, src bool) []AddressingMode {
	for _, info := range opcodeTable {
		if info.op != op {
			continue
		}

		if src {
			return info.srcOK
		}

		return info.destOK
	}

	return nil
}

// IsRegisterName reports whether word is one of r0 through r7.
func IsRegisterName(word string) bool {
	return registerNames[word]
}

// IsDirective reports whether word (without its leading '.') names one of the
// four directives.
func IsDirective(word string) bool {
	return directiveNames[strings.ToLower(word)]
}

// IsValidLabel reports whether word may be used as a label: it must start
// with a letter, contain only letters and digits, fit within MaxLabelLen, and
// not collide with an opcode mnemonic or register name.
func IsValidLabel(word string) bool {
	if word == "" || len(word) > MaxLabelLen {
		return false
	}

	if !isLetter(word[0]) {
		return false
	}

	for i := 1; i < len(word); i++ {
		if !isLetter(word[i]) && !isDigit(word[i]) {
			return false
		}
	}

	if _, ok := GetOpcode(word); ok {
		return false
	}

	if IsRegisterName(strings.ToLower(word)) {
		return false
	}

	return true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// GetOperandKind classifies a single operand token into its addressing mode.
// The second result is false if token matches none of the four shapes.
func GetOperandKind(token string) (AddressingMode, bool) {
	switch {
	case token == "":
		return 0, false
	case token[0] == '#':
		return Immediate, true
	case IsRegisterName(token):
		return Register, true
	case strings.ContainsRune(token, '['):
		return Index, true
	case IsValidLabel(token):
		return Label, true
	default:
		return 0, false
	}
}
