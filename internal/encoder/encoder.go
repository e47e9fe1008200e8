// Package encoder implements spec.md §4.4: it turns a classified opcode or
// directive, together with its already-classified operands, into the
// sequence of 14-bit machine words appended to the instruction or data
// image. Label operands are encoded twice: pass one emits a zero-valued
// placeholder (ARE=Absolute), and pass two patches the same word in place
// once the symbol table is complete (see internal/asm/secondpass.go).
package encoder

import (
	"fmt"

	"github.com/oriya-dev/asm14/internal/image"
	"github.com/oriya-dev/asm14/internal/isa"
)

// ARE is the two-bit Absolute/Relocatable/External field carried by every
// word bits 0-1.
type ARE uint8

// The three ARE values. Relocatable and External share no bit pattern with
// Absolute, matching the dialect's convention that bit 1 alone marks a
// relocated internal reference and bit 0 alone marks an external one.
const (
	Absolute  ARE = 0 // 00
	External  ARE = 1 // 01
	Relocated ARE = 2 // 10
)

// Bit widths and shifts of the opcode word, per SPEC_FULL.md §6.5:
//
//	bit:  13 12 | 11  10  9  8 | 7  6  5 | 4  3  2 | 1  0
//	      [ G ] [     OPCODE  ] [ SRC ]   [ DEST ]  [ARE]
const (
	areShift  = 0
	destShift = 2
	srcShift  = 5
	opShift   = 8
	gShift    = 12

	fieldMask3 = 0x7
	opMask     = 0xF
	gMask      = 0x3
)

// OpcodeWord encodes the first word of an instruction. srcMode/destMode
// carry the addressing mode of each operand (zero when the operand does not
// exist); param reports whether this is a group-5 parameterized jump, which
// sets bit 12 (the G field). LabelInOpcode later overwrites the G bits with
// the label address's high bits, so the flag does not survive in the final
// word; the second pass recognizes the parameterized form from the source
// text.
func OpcodeWord(op isa.Opcode, srcMode, destMode isa.AddressingMode, hasSrc, hasDest, param bool) image.Word {
	var v uint16

	v |= uint16(op) & opMask << opShift

	if hasSrc {
		v |= uint16(srcMode) & fieldMask3 << srcShift
	}

	if hasDest {
		v |= uint16(destMode) & fieldMask3 << destShift
	}

	if param {
		v |= 1 << gShift
	}

	v |= uint16(Absolute) << areShift

	return image.Word{Value: v & image.Mask}
}

// RegisterPair encodes the single shared operand word used when both
// operands of a two-operand instruction are Register mode (spec.md concrete
// scenario 1).
func RegisterPair(srcReg, destReg int) image.Word {
	v := (uint16(srcReg) & fieldMask3 << srcShift) |
		(uint16(destReg) & fieldMask3 << destShift) |
		uint16(Absolute)

	return image.Word{Value: v & image.Mask}
}

// Register encodes a lone register operand (one-operand instructions in
// syntax groups 3 and 6, which always reserve a dedicated operand word
// regardless of addressing mode).
func Register(reg int) image.Word {
	v := (uint16(reg) & fieldMask3 << destShift) | uint16(Absolute)
	return image.Word{Value: v & image.Mask}
}

// Immediate encodes a `#N` operand, sign-extending value into the word's
// 12-bit payload above the ARE field.
func Immediate(value int) image.Word {
	v := (uint16(value) & 0xFFF << destShift) | uint16(Absolute)
	return image.Word{Value: v & image.Mask}
}

// Label encodes a direct label reference. addr and are are both zero in
// pass one (the placeholder); pass two patches this same word with the
// resolved address and the Relocated or External ARE.
func Label(addr uint16, are ARE) image.Word {
	v := (addr & 0xFFF << destShift) | uint16(are)
	return image.Word{Value: v & image.Mask}
}

// LabelInOpcode re-encodes opcodeWord to carry a label address directly, for
// the group-5 parameterized-jump form where no separate label word is
// emitted (SPEC_FULL.md §6.5). It reuses exactly the SRC/DEST bits (bits
// 2-7, six bits) for the address's low bits and the G bits (bits 12-13, two
// bits) for its high bits, leaving OPCODE (bits 8-11) untouched so the word
// still carries a recoverable opcode; the combined 8-bit field is why
// parameterized jump targets are limited to this toy machine's small address
// space.
func LabelInOpcode(opcodeWord image.Word, addr uint16, are ARE) image.Word {
	const (
		lowMask  = 0x3F // bits 2-7: address bits 0-5
		highMask = 0x3  // bits 12-13: address bits 6-7
	)

	v := uint16(opcodeWord.Value) &^ (lowMask<<destShift | highMask<<gShift | 0x3)
	v |= (addr & lowMask) << destShift
	v |= ((addr >> 6) & highMask) << gShift
	v |= uint16(are)

	return image.Word{Value: v & image.Mask, Span: opcodeWord.Span}
}

// Index encodes an `IDENT[rN]` operand into a single word: the base address
// in the high bits, the index register directly below it, and the ARE field
// at the bottom. addr/are are placeholders in pass one, patched in pass two
// exactly like Label.
func Index(addr uint16, indexReg int, are ARE) image.Word {
	const addrMask = 0x1FF

	v := (addr & addrMask << srcShift) |
		(uint16(indexReg) & fieldMask3 << destShift) |
		uint16(are)

	return image.Word{Value: v & image.Mask}
}

// Param encodes one parameter-list register operand of a parameterized
// group-5 jump.
func Param(reg int) image.Word {
	v := uint16(reg) & fieldMask3 << destShift
	return image.Word{Value: v & image.Mask}
}

// Data encodes one `.data` integer into a single sign-extended word.
func Data(value int) image.Word {
	v := uint16(value) & image.Mask
	return image.Word{Value: v}
}

// String encodes s as one word per byte plus a trailing zero terminator
// word, matching spec.md's `.string` semantics.
func String(s string) []image.Word {
	words := make([]image.Word, 0, len(s)+1)

	for i := 0; i < len(s); i++ {
		words = append(words, image.Word{Value: uint16(s[i]) & image.Mask})
	}

	return append(words, image.Word{Value: 0})
}

// Span computes the number of words (including the opcode word) an
// instruction of any syntax group occupies, per spec.md §4.6's table.
func Span(group isa.Group, srcMode, destMode isa.AddressingMode, hasSrc, hasDest bool, paramCount int, hasParams bool) (int, error) {
	switch group {
	case isa.Group1, isa.Group2, isa.Group7:
		if hasSrc && hasDest && srcMode == isa.Register && destMode == isa.Register {
			return 2, nil
		}

		return 3, nil
	case isa.Group3, isa.Group6:
		return 2, nil
	case isa.Group4:
		return 1, nil
	case isa.Group5:
		if hasParams {
			return 1 + paramCount, nil
		}

		return 2, nil
	default:
		return 0, fmt.Errorf("encoder: unknown syntax group %d", group)
	}
}

// VisualBits renders the low 14 bits of v most-significant-bit-first using
// '/' for 1 and '.' for 0, the format the object file uses for each word
// (spec.md §6).
func VisualBits(v uint16) string {
	buf := make([]byte, 14)

	for i := 0; i < 14; i++ {
		bit := (v >> (13 - i)) & 1
		if bit == 1 {
			buf[i] = '/'
		} else {
			buf[i] = '.'
		}
	}

	return string(buf)
}
