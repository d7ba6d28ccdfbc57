package wiimote

// Device is one emulated Wiimote: its device-managed state, its
// externally-supplied state, its register banks and its EEPROM handle.
// Unlike the original C core's process-global arrays, a Device is an
// ordinary value a host can create one of per connection (spec.md §9).
type Device struct {
	Sys SysState
	Usr UsrState

	Regs   Registers
	EEPROM EEPROM

	Tracer Tracer
}

// NewDevice creates a Device with the real Wiimote's documented power-on
// defaults (spec.md §3, §4.4) and ensures the EEPROM backing file exists.
// A nil tracer discards all trace output.
func NewDevice(eepromPath string, tracer Tracer) (*Device, error) {
	if tracer == nil {
		tracer = nopTracer{}
	}

	dev := &Device{
		EEPROM: EEPROM{Path: eepromPath},
		Tracer: tracer,
	}
	if err := dev.EEPROM.EnsureFile(); err != nil {
		return nil, err
	}
	dev.Reset()
	return dev, nil
}

// Reset restores power-on defaults without touching the EEPROM backing
// file, the way the original core's init_wiimote zeroes sys/usr in place.
func (d *Device) Reset() {
	d.Sys = SysState{
		ReportingMode: 0x30,
		BatteryLevel:  0xff,
	}
	d.Usr = UsrState{
		AccelX: 0x80 << 2,
		AccelY: 0x80 << 2,
		AccelZ: 0x97 << 2,
	}
	for i := range d.Usr.IR {
		d.Usr.IR[i] = noObjectIR
	}

	d.Usr.Nunchuk = NunchukState{
		StickX: 128, StickY: 128,
		AccelX: 512, AccelY: 512, AccelZ: 760,
	}
	d.Usr.Classic = ClassicState{
		LeftX: 32, LeftY: 32,
		RightX: 15, RightY: 15,
	}
	d.Usr.MotionPlus = MotionPlusState{
		Yaw: 0x1f7f, Roll: 0x1f7f, Pitch: 0x1f7f,
		YawSlow: true, RollSlow: true, PitchSlow: true,
	}

	d.Regs = Registers{}

	d.Sys.Extension = ExtNunchuk
	d.Sys.ExtensionConnected = true
	d.initExtension()

	if d.Sys.Extension != ExtNone {
		d.Sys.queue.pushStatus(&d.Sys)
	}
}
