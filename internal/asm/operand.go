package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oriya-dev/asm14/internal/isa"
)

// operand is one parsed operand token: its addressing mode plus whichever of
// immediate/register/label fields that mode uses.
type operand struct {
	mode      isa.AddressingMode
	text      string
	immediate int
	register  int    // Register mode: the register number. Index mode: the index register.
	label     string // Label and Index modes: the referenced identifier.
}

// splitOperands splits the comma-separated operand list of a two- or
// one-operand instruction. The dialect's operand tokens (#N, rN, IDENT,
// IDENT[rN]) never themselves contain a comma, so a plain split suffices.
func splitOperands(rest string) []string {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil
	}

	parts := strings.Split(rest, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// parseRegisterToken parses "rN" into its register number.
func parseRegisterToken(tok string) (int, bool) {
	if !isa.IsRegisterName(tok) {
		return 0, false
	}

	return int(tok[1] - '0'), true
}

// parseOperand classifies and decodes a single operand token.
func parseOperand(tok string) (operand, error) {
	tok = strings.TrimSpace(tok)

	mode, ok := isa.GetOperandKind(tok)
	if !ok {
		return operand{}, fmt.Errorf("invalid operand %q", tok)
	}

	switch mode {
	case isa.Immediate:
		v, err := strconv.Atoi(strings.TrimPrefix(tok, "#"))
		if err != nil {
			return operand{}, fmt.Errorf("invalid immediate %q: %w", tok, err)
		}

		return operand{mode: mode, text: tok, immediate: v}, nil

	case isa.Register:
		reg, _ := parseRegisterToken(tok)
		return operand{mode: mode, text: tok, register: reg}, nil

	case isa.Index:
		open := strings.IndexByte(tok, '[')
		if open < 0 || !strings.HasSuffix(tok, "]") {
			return operand{}, fmt.Errorf("malformed index operand %q", tok)
		}

		label := tok[:open]
		regTok := tok[open+1 : len(tok)-1]

		reg, ok := parseRegisterToken(regTok)
		if !ok {
			return operand{}, fmt.Errorf("invalid index register %q in %q", regTok, tok)
		}

		return operand{mode: mode, text: tok, label: label, register: reg}, nil

	case isa.Label:
		return operand{mode: mode, text: tok, label: tok}, nil

	default:
		return operand{}, fmt.Errorf("unrecognized operand %q", tok)
	}
}
