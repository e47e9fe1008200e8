package encoder_test

import (
	"testing"

	"github.com/oriya-dev/asm14/internal/encoder"
	"github.com/oriya-dev/asm14/internal/isa"
)

func TestRegisterPairPacksBothRegisters(t *testing.T) {
	w := encoder.RegisterPair(1, 2)

	if got := (w.Value >> 5) & 0x7; got != 1 {
		t.Errorf("src register bits = %d, want 1", got)
	}

	if got := (w.Value >> 2) & 0x7; got != 2 {
		t.Errorf("dest register bits = %d, want 2", got)
	}

	if w.Value&0x3 != uint16(encoder.Absolute) {
		t.Errorf("ARE bits = %d, want Absolute", w.Value&0x3)
	}
}

func TestLabelPatchesAddressAndARE(t *testing.T) {
	w := encoder.Label(101, encoder.External)

	if got := (w.Value >> 2) & 0xFFF; got != 101 {
		t.Errorf("address bits = %d, want 101", got)
	}

	if w.Value&0x3 != uint16(encoder.External) {
		t.Errorf("ARE bits = %d, want External", w.Value&0x3)
	}
}

func TestVisualBitsIsFourteenCharsMSBFirst(t *testing.T) {
	bits := encoder.VisualBits(0x0001)

	if len(bits) != 14 {
		t.Fatalf("len(VisualBits) = %d, want 14", len(bits))
	}

	if bits[13] != '/' {
		t.Errorf("VisualBits(1)[13] = %q, want '/'", bits[13])
	}

	for i := 0; i < 13; i++ {
		if bits[i] != '.' {
			t.Errorf("VisualBits(1)[%d] = %q, want '.'", i, bits[i])
		}
	}
}

func TestStringEncodesBytesPlusTerminator(t *testing.T) {
	words := encoder.String("ab")

	if len(words) != 3 {
		t.Fatalf("len(String(ab)) = %d, want 3", len(words))
	}

	if words[0].Value != 'a' || words[1].Value != 'b' || words[2].Value != 0 {
		t.Fatalf("String(ab) = %v, want [a, b, 0]", words)
	}
}

func TestSpanTable(t *testing.T) {
	tests := []struct {
		name       string
		group      isa.Group
		srcMode    isa.AddressingMode
		destMode   isa.AddressingMode
		hasSrc     bool
		hasDest    bool
		paramCount int
		hasParams  bool
		want       int
	}{
		{"group1 register-register", isa.Group1, isa.Register, isa.Register, true, true, 0, false, 2},
		{"group1 label-register", isa.Group1, isa.Label, isa.Register, true, true, 0, false, 3},
		{"group3 one operand", isa.Group3, 0, isa.Register, false, true, 0, false, 2},
		{"group4 no operands", isa.Group4, 0, 0, false, false, 0, false, 1},
		{"group5 bare label", isa.Group5, 0, isa.Label, false, true, 0, false, 2},
		{"group5 parameterized", isa.Group5, 0, isa.Label, false, true, 3, true, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := encoder.Span(tc.group, tc.srcMode, tc.destMode, tc.hasSrc, tc.hasDest, tc.paramCount, tc.hasParams)
			if err != nil {
				t.Fatalf("Span: %v", err)
			}

			if got != tc.want {
				t.Errorf("Span() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDataSignExtendsIntoFourteenBits(t *testing.T) {
	w := encoder.Data(-1)

	if w.Value != image14bitMask {
		t.Errorf("Data(-1) = %#x, want %#x", w.Value, image14bitMask)
	}
}

const image14bitMask = 0x3FFF
