package wiimote

// RegisterBank identifies one of the four 256-byte register pages, keyed by
// the value that appears in the upper byte of a 24-bit memory address with
// its low bit masked off (spec.md §3: "(offset >> 16) & 0xfe").
type RegisterBank byte

const (
	BankSpeaker    RegisterBank = 0xa2
	BankExtension  RegisterBank = 0xa4
	BankMotionPlus RegisterBank = 0xa6
	BankIRCamera   RegisterBank = 0xb0
)

// Registers holds the four register banks. Unlike the original C core's
// process-global arrays, these live as a field of Device (spec.md §9).
type Registers struct {
	A2 [256]byte // speaker
	A4 [256]byte // extension
	A6 [256]byte // MotionPlus / active-extension passthrough
	B0 [256]byte // IR camera
}

// bank returns the register page addressed by the upper byte of offset,
// per spec.md's "(offset >> 16) & 0xfe" selection rule.
func (r *Registers) bank(offset uint32) (*[256]byte, RegisterBank) {
	switch RegisterBank((offset >> 16) & 0xfe) {
	case BankSpeaker:
		return &r.A2, BankSpeaker
	case BankExtension:
		return &r.A4, BankExtension
	case BankMotionPlus:
		return &r.A6, BankMotionPlus
	case BankIRCamera:
		return &r.B0, BankIRCamera
	default:
		return nil, 0
	}
}

// nunchukIdentity and classicIdentity are the literal six-byte identity
// blocks a host reads at a4 0xfa..0xff to discover which extension is
// plugged in (spec.md §6).
var (
	nunchukIdentity = [6]byte{0x00, 0x00, 0xa4, 0x20, 0x00, 0x00}
	classicIdentity = [6]byte{0x00, 0x00, 0xa4, 0x20, 0x01, 0x01}
)

// f1IdentityBlock is the literal 64-byte block a write to a4 0xf1 copies
// into a6 0x50..0x8f (spec.md §4.1, §6).
var f1IdentityBlock = [64]byte{
	0xe7, 0x98, 0x31, 0x8a, 0x18, 0x82, 0x37, 0x5e, 0x02, 0x4f, 0x68, 0x47, 0x78, 0xef, 0xbb, 0xd7,
	0x86, 0xc8, 0x95, 0xbd, 0x20, 0x9b, 0xeb, 0x8b, 0x79, 0x81, 0xdc, 0x61, 0x13, 0x54, 0x79, 0x4c,
	0xb7, 0x26, 0x82, 0x17, 0xe8, 0x0f, 0xa9, 0xb5, 0x45, 0xa0, 0x38, 0x8e, 0x9e, 0x86, 0x72, 0x55,
	0x3d, 0x46, 0x2e, 0x3e, 0x10, 0x1f, 0x8e, 0x0c, 0xf4, 0x04, 0x89, 0x4c, 0xca, 0x3e, 0x9f, 0x36,
}

// motionPlusCalibration is the literal 112-byte block a6 0x20..0x8f holds
// once the MotionPlus is active (spec.md §4.1, §6).
var motionPlusCalibration = [112]byte{
	// 0x20..0x2f
	0x7c, 0x97, 0x7f, 0x0a, 0x7c, 0xa8, 0x33, 0xb7, 0xcc, 0x12, 0x33, 0x08, 0xc8, 0x01, 0x72, 0xd4,
	// 0x30..0x3f
	0x7c, 0x53, 0x87, 0x58, 0x7c, 0x9f, 0x36, 0xb2, 0xc9, 0x34, 0x35, 0xf8, 0x2d, 0x60, 0xd7, 0xd5,
	// 0x40..0x4f
	0x81, 0x80, 0x80, 0x28, 0xb4, 0xb3, 0xb3, 0x26, 0xe3, 0x22, 0x7a, 0xd8, 0x1b, 0x81, 0x31, 0x86,
	// 0x50..0x5f
	0x15, 0x6d, 0xe0, 0x23, 0x20, 0x79, 0xd3, 0x73, 0x01, 0xa9, 0xf0, 0x25, 0xb0, 0xbc, 0xff, 0xe1,
	// 0x60..0x6f
	0xd8, 0x3f, 0x82, 0x52, 0x75, 0x99, 0xbe, 0xdb, 0xcb, 0x61, 0x60, 0x0f, 0x35, 0xbd, 0xd4, 0x4d,
	// 0x70..0x7f
	0x5c, 0x9f, 0x5d, 0x81, 0x71, 0xde, 0x22, 0xe6, 0xb9, 0x23, 0xa4, 0x58, 0xb7, 0x62, 0x33, 0xa4,
	// 0x80..0x8f
	0xcd, 0x8b, 0x3a, 0xfe, 0x98, 0xf0, 0xd9, 0x57, 0x0c, 0xe8, 0x27, 0x51, 0xb6, 0xea, 0xe5, 0x78,
}
