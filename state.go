package wiimote

// IRObject is one of the four blob slots the IR camera sub-block reports.
// An all-0xff object (X == 0x3ff, Y == 0x3ff, Size == 0xff) means "no
// object tracked in this slot", matching the real device's fill value.
type IRObject struct {
	X, Y uint16 // 10-bit
	Size byte   // 0xff when the slot is empty
}

// noObjectIR is the cleared-slot fill value (all bytes 0xff once packed).
var noObjectIR = IRObject{X: 0x3ff, Y: 0x3ff, Size: 0xff}

// NunchukState is the externally-supplied state of a Nunchuk extension.
type NunchukState struct {
	StickX, StickY    byte   // 8-bit
	AccelX, AccelY, AccelZ uint16 // 10-bit
	ButtonC, ButtonZ  bool
}

// ClassicState is the externally-supplied state of a Classic Controller.
type ClassicState struct {
	LeftX, LeftY   byte // 6-bit
	RightX, RightY byte // 5-bit
	TriggerL, TriggerR byte // 5-bit
	Buttons ClassicButtons
}

// ClassicButtons mirrors the Classic Controller's own button bitmap, which
// is independent of the core-buttons bitmap.
type ClassicButtons uint16

const (
	ClassicA ClassicButtons = 1 << iota
	ClassicB
	ClassicX
	ClassicY
	ClassicPlus
	ClassicMinus
	ClassicHome
	ClassicL
	ClassicR
	ClassicZL
	ClassicZR
	ClassicUp
	ClassicDown
	ClassicLeft
	ClassicRight
)

// MotionPlusState is the externally-supplied state of an active MotionPlus.
type MotionPlusState struct {
	Yaw, Roll, Pitch                   uint16 // 14-bit angular velocity
	YawSlow, RollSlow, PitchSlow bool
}

// UsrState holds everything supplied by the input provider: buttons,
// accelerometer, IR camera and extension samples. The report processor
// never writes to this struct; only the input provider (out of the core's
// scope) and Device's own initializer do.
type UsrState struct {
	Buttons Button

	AccelX, AccelY, AccelZ uint16 // 10-bit, stored left-shifted by 2

	IR [4]IRObject

	Nunchuk    NunchukState
	Classic    ClassicState
	MotionPlus MotionPlusState
}

// SysState holds everything the device itself manages in response to host
// writes: LEDs, reporting mode, extension identity/connection, the
// MotionPlus state machine and the response queue. The input provider never
// writes to this struct.
type SysState struct {
	Rumble bool

	LED1, LED2, LED3, LED4 bool

	ReportingMode       byte
	ReportingContinuous bool
	ReportChanged       bool

	IRCamEnabled    bool
	SpeakerEnabled  bool
	BatteryLevel    byte

	Extension          ExtID
	ExtensionConnected bool
	ExtensionEncrypted bool
	ExtensionReportType byte

	WMPState wmpState

	// tries counts every read of a4 0xf6/0xf7 made while the MotionPlus is
	// active; only Reset sets it back to zero. Per-device per spec.md §9
	// (the original C core keeps this as a process-global that is never
	// reset).
	tries int

	queue responseQueue

	// seq flips every tick a regular interleaved (0x3e/0x3f) report is
	// emitted, selecting which half of the pair comes next. appendExtension
	// also flips it each time it alternates MotionPlus and extension frames
	// during passthrough.
	seq bool
	// irHold is the usr-state snapshot taken when the first half of an
	// interleaved pair was emitted, so the second half stays consistent
	// with it even if usr changes in between (spec.md §4.2).
	irHold UsrState
}

// wmpState is the MotionPlus activation state machine (spec.md §4.4).
type wmpState int

const (
	wmpInactive               wmpState = 0
	wmpActive                 wmpState = 1
	wmpPassthroughDeactivated wmpState = 3
)
