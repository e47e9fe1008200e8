package asm

import (
	"strings"

	"github.com/oriya-dev/asm14/internal/diag"
	"github.com/oriya-dev/asm14/internal/encoder"
	"github.com/oriya-dev/asm14/internal/isa"
	"github.com/oriya-dev/asm14/internal/line"
	"github.com/oriya-dev/asm14/internal/symtab"
)

// secondPass implements spec.md §4.6: it rewinds the instruction counter to
// its origin and re-walks the same source lines pass one already validated,
// this time patching every Label/Index operand word against the now-complete
// symbol table instead of re-encoding anything. Directives are skipped
// outright — their bookkeeping (entry promotion, data words) is already done.
func (a *Assembler) secondPass() {
	a.instr.Reset()
	a.externRefs = make(map[string][]uint16)

	for i, text := range a.lines {
		a.secondPassLine(i+1, text)
	}
}

func (a *Assembler) secondPassLine(lineNum int, text string) {
	it := newIterator(text)
	it.ConsumeBlanks()

	if it.IsEnd() {
		return
	}

	if c, _ := it.Peek(); c == ';' {
		return
	}

	first := it.NextWord(" \t")
	if first == "" {
		return
	}

	if isDirectiveWord(first, "entry") || isDirectiveWord(first, "extern") {
		return
	}

	if strings.HasSuffix(first, ":") {
		it.ConsumeBlanks()

		next := it.NextWord(" \t")
		switch {
		case isDirectiveWord(next, "entry"), isDirectiveWord(next, "extern"),
			isDirectiveWord(next, "data"), isDirectiveWord(next, "string"):
			return
		default:
			if op, ok := isa.GetOpcode(next); ok {
				a.patchInstruction(lineNum, op, it)
			}
		}

		return
	}

	if op, ok := isa.GetOpcode(first); ok {
		a.patchInstruction(lineNum, op, it)
	}
}

// patchInstruction re-parses one instruction's operands and patches whichever
// trailing word(s) carry a Label or Index reference, then advances the
// instruction counter by the span pass one recorded on the opcode word
// (spec.md §4.6's "skip-by-span walk" — no operand re-counting needed, the
// span is read off the word itself).
func (a *Assembler) patchInstruction(lineNum int, op isa.Opcode, it *line.Iterator) {
	addr := a.instr.Counter
	idx := int(addr - a.instr.Origin)

	w, ok := a.instr.At(idx)
	if !ok {
		return
	}

	span := int(w.Span)
	if span == 0 {
		span = 1
	}

	rest := it.NextWord("\x00")

	group := isa.GetSyntaxGroup(op)
	if group == isa.Group5 {
		a.patchGroup5(lineNum, addr, idx, rest)
		a.instr.Counter += uint16(span)

		return
	}

	hasSrc, hasDest := isa.HasSource(op), isa.HasDest(op)
	tokens := splitOperands(rest)

	var srcTok, destTok string

	switch {
	case hasSrc && hasDest && len(tokens) == 2:
		srcTok, destTok = tokens[0], tokens[1]
	case hasSrc && !hasDest && len(tokens) == 1:
		srcTok = tokens[0]
	case hasDest && !hasSrc && len(tokens) == 1:
		destTok = tokens[0]
	default:
		a.instr.Counter += uint16(span)
		return
	}

	switch {
	case hasSrc && hasDest:
		srcOp, errS := parseOperand(srcTok)
		destOp, errD := parseOperand(destTok)

		if errS != nil || errD != nil {
			break
		}

		if srcOp.mode == isa.Register && destOp.mode == isa.Register {
			break // shared register word, nothing to patch
		}

		a.patchOperandWord(lineNum, addr+1, idx+1, srcOp)
		a.patchOperandWord(lineNum, addr+2, idx+2, destOp)
	case hasSrc:
		if srcOp, err := parseOperand(srcTok); err == nil {
			a.patchOperandWord(lineNum, addr+1, idx+1, srcOp)
		}
	case hasDest:
		if destOp, err := parseOperand(destTok); err == nil {
			a.patchOperandWord(lineNum, addr+1, idx+1, destOp)
		}
	}

	a.instr.Counter += uint16(span)
}

// patchGroup5 patches the jmp/bne/jsr operand: either the dedicated operand
// word of the bare label/index form, or the address bits folded into the
// opcode word itself for the parameterized `LABEL(r1, r2, ...)` form.
func (a *Assembler) patchGroup5(lineNum int, addr uint16, idx int, rest string) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return
	}

	if open := strings.IndexByte(rest, '('); open >= 0 {
		label := strings.TrimSpace(rest[:open])

		sym, are, ok := a.resolveLabel(lineNum, label, addr)
		if !ok {
			return
		}

		w, _ := a.instr.At(idx)
		a.instr.Patch(idx, encoder.LabelInOpcode(w, sym.Address, are))

		return
	}

	opnd, err := parseOperand(rest)
	if err != nil {
		return
	}

	a.patchOperandWord(lineNum, addr+1, idx+1, opnd)
}

// patchOperandWord patches the Label or Index operand word at image index
// idx with its resolved address and ARE field. Immediate and Register
// operands are already final from pass one and are left untouched.
func (a *Assembler) patchOperandWord(lineNum int, addr uint16, idx int, op operand) {
	switch op.mode {
	case isa.Label:
		sym, are, ok := a.resolveLabel(lineNum, op.label, addr)
		if !ok {
			return
		}

		a.instr.Patch(idx, encoder.Label(sym.Address, are))
	case isa.Index:
		sym, are, ok := a.resolveLabel(lineNum, op.label, addr)
		if !ok {
			return
		}

		a.instr.Patch(idx, encoder.Index(sym.Address, op.register, are))
	}
}

// resolveLabel looks up name, records addr as one of its external reference
// sites when it is an Extern symbol, and reports the ARE field a reference to
// it must carry.
func (a *Assembler) resolveLabel(lineNum int, name string, addr uint16) (symtab.Symbol, encoder.ARE, bool) {
	sym, ok := a.symbols.Lookup(name)
	if !ok {
		a.fail(lineNum, diag.UnknownOperand, "undefined label %q", name)
		return symtab.Symbol{}, 0, false
	}

	if sym.Kind == symtab.Extern {
		a.externRefs[sym.Name] = append(a.externRefs[sym.Name], addr)
		return sym, encoder.External, true
	}

	return sym, encoder.Relocated, true
}
