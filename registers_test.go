package wiimote

import "testing"

func TestRegistersBankSelectsByUpperByteIgnoringLowBit(t *testing.T) {
	var r Registers

	cases := []struct {
		offset uint32
		want   RegisterBank
	}{
		{0xa20000, BankSpeaker},
		{0xa30000, BankSpeaker}, // low bit of the selector byte is ignored
		{0xa40000, BankExtension},
		{0xa60000, BankMotionPlus},
		{0xb00000, BankIRCamera},
	}

	for _, c := range cases {
		reg, bank := r.bank(c.offset)
		if bank != c.want {
			t.Errorf("bank(%#06x) = %#02x, want %#02x", c.offset, bank, c.want)
		}
		if reg == nil {
			t.Errorf("bank(%#06x) returned nil array", c.offset)
		}
	}
}

func TestRegistersBankUnknownSelectorReturnsNil(t *testing.T) {
	var r Registers
	reg, bank := r.bank(0xc00000)
	if reg != nil || bank != 0 {
		t.Errorf("expected (nil, 0) for unknown selector, got (%v, %#02x)", reg, bank)
	}
}
