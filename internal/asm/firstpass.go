package asm

import (
	"errors"
	"strconv"
	"strings"

	"github.com/oriya-dev/asm14/internal/diag"
	"github.com/oriya-dev/asm14/internal/encoder"
	"github.com/oriya-dev/asm14/internal/image"
	"github.com/oriya-dev/asm14/internal/isa"
	"github.com/oriya-dev/asm14/internal/line"
	"github.com/oriya-dev/asm14/internal/symtab"
)

// firstPass drives lines 1..N, dispatching each to one of the six terminal
// states (plus the two pseudo-states) from spec.md §4.3's table. Dispatch is
// a single Go switch on the line's first word (and, for a label, on the word
// after it in handleLabelDef) rather than a function-pointer table; the
// states are not represented by a separate type.
func (a *Assembler) firstPass() {
	for i, text := range a.lines {
		a.firstPassLine(i+1, text)
	}

	a.instrFinalCount = a.instr.Counter
	a.symbols.OffsetData(a.instrFinalCount)
}

func (a *Assembler) firstPassLine(lineNum int, text string) {
	it := newIterator(text)
	it.ConsumeBlanks()

	if it.IsEnd() {
		return // blank line
	}

	if c, _ := it.Peek(); c == ';' {
		return // comment line
	}

	first := it.NextWord(" \t")
	if first == "" {
		return
	}

	switch {
	case isDirectiveWord(first, "entry"):
		a.handleEntry(lineNum, it)
	case isDirectiveWord(first, "extern"):
		a.handleExtern(lineNum, it)
	case strings.HasSuffix(first, ":"):
		a.handleLabelDef(lineNum, strings.TrimSuffix(first, ":"), it)
	default:
		if op, ok := isa.GetOpcode(first); ok {
			a.handleOpcode(lineNum, op, "", it)
		} else {
			a.fail(lineNum, diag.SyntaxError, "unrecognized token %q", first)
		}
	}
}

// isDirectiveWord reports whether word is the directive spelled ".name",
// case-insensitively.
func isDirectiveWord(word, name string) bool {
	return len(word) == len(name)+1 && word[0] == '.' && strings.EqualFold(word[1:], name)
}

// handleLabelDef implements the SYM_DATA/SYM_STR/SYM_DEF states and the
// SYM_IGNORED pseudo-state: a colon-terminated identifier is only a valid
// label definition when followed by .data, .string, or a known opcode; any
// other following token is a syntax error. A label immediately preceding
// .entry/.extern is meaningless in this dialect and is warned about, not
// rejected (spec.md §4.3).
func (a *Assembler) handleLabelDef(lineNum int, label string, it *line.Iterator) {
	it.ConsumeBlanks()
	next := it.NextWord(" \t")

	switch {
	case next == "":
		a.fail(lineNum, diag.SyntaxError, "label %q not followed by a directive or opcode", label)
	case isDirectiveWord(next, "entry"):
		a.warn(lineNum, diag.SymbolIgnoredWarn, "label %q before .entry is ignored", label)
		a.handleEntry(lineNum, it)
	case isDirectiveWord(next, "extern"):
		a.warn(lineNum, diag.SymbolIgnoredWarn, "label %q before .extern is ignored", label)
		a.handleExtern(lineNum, it)
	case isDirectiveWord(next, "data"):
		a.handleData(lineNum, label, it)
	case isDirectiveWord(next, "string"):
		a.handleString(lineNum, label, it)
	default:
		if op, ok := isa.GetOpcode(next); ok {
			a.handleOpcode(lineNum, op, label, it)
		} else {
			a.fail(lineNum, diag.SyntaxError, "label %q followed by unknown token %q", label, next)
		}
	}
}

// validateLabel checks label against the dialect's naming rules, recording
// the precise diagnostic for a reserved-word collision versus any other
// syntactic defect.
func (a *Assembler) validateLabel(lineNum int, label string) bool {
	if _, ok := isa.GetOpcode(label); ok {
		a.fail(lineNum, diag.LabelIsReserved, "label %q collides with opcode mnemonic", label)
		return false
	}

	if isa.IsRegisterName(strings.ToLower(label)) {
		a.fail(lineNum, diag.LabelIsReserved, "label %q collides with a register name", label)
		return false
	}

	if !isa.IsValidLabel(label) {
		a.fail(lineNum, diag.InvalidLabelDef, "invalid label %q", label)
		return false
	}

	return true
}

// symtabCode maps a symtab conflict into its diagnostic code.
func symtabCode(err error) diag.Code {
	switch {
	case errors.Is(err, &symtab.RedefinitionError{}):
		return diag.SymbolRedefinition
	case errors.Is(err, &symtab.AlreadyExternError{}):
		return diag.LabelAlreadyExtern
	case errors.Is(err, &symtab.AlreadyEntryError{}):
		return diag.LabelAlreadyEntry
	default:
		return diag.SyntaxError
	}
}

// handleEntry implements SYM_ENT: `.entry NAME`.
func (a *Assembler) handleEntry(lineNum int, it *line.Iterator) {
	it.ConsumeBlanks()

	name := it.NextWord(" \t")
	if name == "" {
		a.fail(lineNum, diag.SyntaxError, ".entry requires a label operand")
		return
	}

	if err := a.symbols.DeclareEntry(name); err != nil {
		a.fail(lineNum, symtabCode(err), "%s", err.Error())
	}
}

// handleExtern implements SYM_EXT: `.extern NAME`.
func (a *Assembler) handleExtern(lineNum int, it *line.Iterator) {
	it.ConsumeBlanks()

	name := it.NextWord(" \t")
	if name == "" {
		a.fail(lineNum, diag.SyntaxError, ".extern requires a label operand")
		return
	}

	if err := a.symbols.DeclareExtern(name); err != nil {
		a.fail(lineNum, symtabCode(err), "%s", err.Error())
	}
}

// handleData implements SYM_DATA: `LABEL: .data N, N, ...`.
func (a *Assembler) handleData(lineNum int, label string, it *line.Iterator) {
	addr := a.data.Counter

	if label != "" {
		if !a.validateLabel(lineNum, label) {
			return
		}

		if err := a.symbols.DefineData(label, addr); err != nil {
			a.fail(lineNum, symtabCode(err), "%s", err.Error())
		}
	}

	rest := strings.TrimSpace(it.NextWord("\x00"))
	if rest == "" {
		a.fail(lineNum, diag.SyntaxError, ".data requires at least one value")
		return
	}

	values := make([]int, 0, 4)

	for _, tok := range strings.Split(rest, ",") {
		tok = strings.TrimSpace(tok)

		v, err := strconv.Atoi(tok)
		if err != nil {
			a.fail(lineNum, diag.OperandRange, "invalid .data value %q", tok)
			return
		}

		values = append(values, v)
	}

	if !a.shouldEncode {
		return
	}

	for _, v := range values {
		a.data.Append(encoder.Data(v))
	}
}

// handleString implements SYM_STR: `LABEL: .string "text"`.
func (a *Assembler) handleString(lineNum int, label string, it *line.Iterator) {
	addr := a.data.Counter

	if label != "" {
		if !a.validateLabel(lineNum, label) {
			return
		}

		if err := a.symbols.DefineData(label, addr); err != nil {
			a.fail(lineNum, symtabCode(err), "%s", err.Error())
		}
	}

	rest := strings.TrimSpace(it.NextWord("\x00"))
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		a.fail(lineNum, diag.SyntaxError, ".string requires a quoted literal, got %q", rest)
		return
	}

	content := rest[1 : len(rest)-1]

	if !a.shouldEncode {
		return
	}

	for _, w := range encoder.String(content) {
		a.data.Append(w)
	}
}

// handleOpcode implements SYM_DEF and OPCODE: an optional label followed by
// a mnemonic and its operands.
func (a *Assembler) handleOpcode(lineNum int, op isa.Opcode, label string, it *line.Iterator) {
	addr := a.instr.Counter

	if label != "" {
		if !a.validateLabel(lineNum, label) {
			return
		}

		if err := a.symbols.DefineCode(label, addr); err != nil {
			a.fail(lineNum, symtabCode(err), "%s", err.Error())
		}
	}

	rest := it.NextWord("\x00")

	group := isa.GetSyntaxGroup(op)
	if group == isa.Group5 {
		a.handleGroup5(lineNum, op, rest)
		return
	}

	hasSrc, hasDest := isa.HasSource(op), isa.HasDest(op)

	var want int
	if hasSrc {
		want++
	}

	if hasDest {
		want++
	}

	tokens := splitOperands(rest)

	if want == 0 {
		if len(tokens) != 0 {
			a.fail(lineNum, diag.SyntaxError, "%s takes no operands", op.Name())
			return
		}

		if a.shouldEncode {
			w := encoder.OpcodeWord(op, 0, 0, false, false, false)
			w.Span = 1
			a.instr.Append(w)
		}

		return
	}

	if len(tokens) != want {
		a.fail(lineNum, diag.SyntaxError, "%s expects %d operand(s), got %d", op.Name(), want, len(tokens))
		return
	}

	var srcTok, destTok string

	switch {
	case hasSrc && hasDest:
		srcTok, destTok = tokens[0], tokens[1]
	case hasSrc:
		srcTok = tokens[0]
	default:
		destTok = tokens[0]
	}

	var srcOp, destOp operand

	var err error

	if hasSrc {
		srcOp, err = parseOperand(srcTok)
		if err != nil || !isa.ModeAllowed(op, srcOp.mode, true) {
			a.fail(lineNum, diag.UnknownOperand, "%s: invalid source operand %q", op.Name(), srcTok)
			return
		}
	}

	if hasDest {
		destOp, err = parseOperand(destTok)
		if err != nil || !isa.ModeAllowed(op, destOp.mode, false) {
			a.fail(lineNum, diag.UnknownOperand, "%s: invalid destination operand %q", op.Name(), destTok)
			return
		}
	}

	switch {
	case hasSrc && hasDest:
		if srcOp.mode == isa.Register && destOp.mode == isa.Register {
			w := encoder.OpcodeWord(op, isa.Register, isa.Register, true, true, false)
			w.Span = 2

			if a.shouldEncode {
				a.instr.Append(w)
				a.instr.Append(encoder.RegisterPair(srcOp.register, destOp.register))
			}
		} else {
			w := encoder.OpcodeWord(op, srcOp.mode, destOp.mode, true, true, false)
			w.Span = 3

			if a.shouldEncode {
				a.instr.Append(w)
				a.instr.Append(a.encodeOperandWord(srcOp))
				a.instr.Append(a.encodeOperandWord(destOp))
			}
		}
	case hasSrc:
		w := encoder.OpcodeWord(op, srcOp.mode, 0, true, false, false)
		w.Span = 2

		if a.shouldEncode {
			a.instr.Append(w)
			a.instr.Append(a.encodeOperandWord(srcOp))
		}
	default:
		w := encoder.OpcodeWord(op, 0, destOp.mode, false, true, false)
		w.Span = 2

		if a.shouldEncode {
			a.instr.Append(w)
			a.instr.Append(a.encodeOperandWord(destOp))
		}
	}
}

// handleGroup5 implements the jmp/bne/jsr operand shapes: a bare label or
// index operand (span 2), or a parameterized `LABEL(r1, r2, ...)` form
// (span 1+N, with the label address embedded directly in the opcode word;
// see encoder.LabelInOpcode).
func (a *Assembler) handleGroup5(lineNum int, op isa.Opcode, rest string) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		a.fail(lineNum, diag.SyntaxError, "%s requires an operand", op.Name())
		return
	}

	if open := strings.IndexByte(rest, '('); open >= 0 {
		if !strings.HasSuffix(rest, ")") {
			a.fail(lineNum, diag.SyntaxError, "unterminated parameter list in %q", rest)
			return
		}

		label := strings.TrimSpace(rest[:open])
		if !isa.IsValidLabel(label) {
			a.fail(lineNum, diag.UnknownOperand, "%s: invalid jump target %q", op.Name(), label)
			return
		}

		argsText := rest[open+1 : len(rest)-1]

		var regs []int

		for _, tok := range strings.Split(argsText, ",") {
			tok = strings.TrimSpace(tok)

			reg, ok := parseRegisterToken(tok)
			if !ok {
				a.fail(lineNum, diag.UnknownOperand, "%s: invalid parameter %q", op.Name(), tok)
				return
			}

			regs = append(regs, reg)
		}

		w := encoder.OpcodeWord(op, 0, isa.Label, false, true, true)
		w.Span = uint8(1 + len(regs))

		if a.shouldEncode {
			placed := encoder.LabelInOpcode(w, 0, encoder.Absolute)
			placed.Span = w.Span
			a.instr.Append(placed)

			for _, r := range regs {
				a.instr.Append(encoder.Param(r))
			}
		}

		return
	}

	opnd, err := parseOperand(rest)
	if err != nil || (opnd.mode != isa.Label && opnd.mode != isa.Index) {
		a.fail(lineNum, diag.UnknownOperand, "%s: invalid operand %q", op.Name(), rest)
		return
	}

	w := encoder.OpcodeWord(op, 0, opnd.mode, false, true, false)
	w.Span = 2

	if a.shouldEncode {
		a.instr.Append(w)
		a.instr.Append(a.encodeOperandWord(opnd))
	}
}

// encodeOperandWord encodes a single already-classified, already-validated
// operand into the trailing word it occupies. Label and Index operands are
// placeholders here (address 0, ARE Absolute); the second pass patches them
// once the symbol table is complete.
func (a *Assembler) encodeOperandWord(op operand) image.Word {
	switch op.mode {
	case isa.Immediate:
		return encoder.Immediate(op.immediate)
	case isa.Register:
		return encoder.Register(op.register)
	case isa.Label:
		return encoder.Label(0, encoder.Absolute)
	case isa.Index:
		return encoder.Index(0, op.register, encoder.Absolute)
	default:
		return image.Word{}
	}
}
