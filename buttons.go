package wiimote

// Button is a bit of the core-buttons bitmap reported in every regular
// report's first two bytes.
//
// Values and bit positions mirror the real Wiimote wire format, not the
// enumeration order of the teacher binding's Key type (which numbers keys
// by kernel key-code, not by wire position).
type Button uint16

// Bit positions are chosen so the packed 16-bit buttons field (bits 1-5
// and 8-13) leaves bit 0 of the first wire byte free for the rumble
// reflection (spec.md §3, §8: "mirrored back in the LSB of every outbound
// report") and bits 6-7 of each wire byte free for the accelerometer's low
// bits, without clobbering a named button: Left..Plus fill bits 1-5 of the
// first wire byte, and Two..Home fill bits 0-5 of the second wire byte.
const (
	ButtonLeft  Button = 1 << 1
	ButtonRight Button = 1 << 2
	ButtonDown  Button = 1 << 3
	ButtonUp    Button = 1 << 4
	ButtonPlus  Button = 1 << 5

	ButtonTwo   Button = 1 << 8
	ButtonOne   Button = 1 << 9
	ButtonB     Button = 1 << 10
	ButtonA     Button = 1 << 11
	ButtonMinus Button = 1 << 12
	ButtonHome  Button = 1 << 13
)

// coreButtonsMask keeps only the bits the real device ever sets in the
// buttons sub-block; any other bit set in UsrState.Buttons is ignored by
// the generator.
const coreButtonsMask = ButtonLeft | ButtonRight | ButtonDown | ButtonUp | ButtonPlus | ButtonHome |
	ButtonTwo | ButtonOne | ButtonB | ButtonA | ButtonMinus

// ExtID identifies which extension controller the device currently
// presents through the extension register's identity block.
type ExtID byte

const (
	ExtNone       ExtID = 0x00
	ExtNunchuk    ExtID = 0x01
	ExtClassic    ExtID = 0x02
	ExtMotionPlus ExtID = 0x04
)
