package wiimote

// initExtension rewrites the a4/a6 identity and calibration blocks to
// match the current extension/MotionPlus state, the way a real Wiimote
// re-announces its passthrough identity every time that state changes
// (spec.md §4.4, §6).
func (d *Device) initExtension() {
	if d.Sys.WMPState == wmpActive {
		d.initMotionPlusIdentity()
		return
	}
	d.initExtensionIdentity()
}

// initMotionPlusIdentity fills register bank a6 with the MotionPlus's own
// calibration data and identity bytes, used while the MotionPlus occupies
// the extension bus position.
func (d *Device) initMotionPlusIdentity() {
	a6 := &d.Regs.A6

	a6[0xfc] = 0xa4
	d.Sys.ExtensionEncrypted = false

	a6[0xf0] = 0x55
	a6[0xf1] = 0xff
	a6[0xf2] = 0xff
	a6[0xf3] = 0xff
	a6[0xf4] = 0xff
	a6[0xf5] = 0xff
	a6[0xf6] = 0x00

	copy(a6[0x20:0x90], motionPlusCalibration[:])

	// a6[0xfe] is left at whatever initExtensionIdentity last set it to in
	// the real device's commented-out source; it is set explicitly here to
	// extension_report_type so a host reading it back sees the value it
	// requested when activating (spec.md §4.4 scenario S5).
	a6[0xfe] = d.Sys.ExtensionReportType

	a6[0xf7] = 0x0c
	a6[0xf8] = 0x00
	a6[0xf9] = 0x00
}

// initExtensionIdentity fills a6 with the generic "MotionPlus present but
// inactive" identity and a4 with the identity of whatever extension is
// physically plugged in (none, Nunchuk or Classic Controller).
func (d *Device) initExtensionIdentity() {
	a6 := &d.Regs.A6

	a6[0xfa] = 0x00
	a6[0xfb] = 0x00
	a6[0xfc] = 0xa6
	a6[0xfd] = 0x20
	a6[0xff] = 0x05

	a6[0xf7] = 0x0c
	a6[0xf8] = 0xff
	a6[0xf9] = 0xff

	d.Sys.ExtensionReportType = byte(d.Sys.Extension)

	a4 := &d.Regs.A4
	switch d.Sys.Extension {
	case ExtNunchuk:
		copy(a4[0xfa:0x100], nunchukIdentity[:])
	case ExtClassic:
		copy(a4[0xfa:0x100], classicIdentity[:])
	default:
		for i := 0xfa; i <= 0xff; i++ {
			a4[i] = 0xff
		}
	}
}

// transitionWMPState moves the MotionPlus state machine to newState,
// rewrites the identity blocks to match, and queues the acknowledgement
// plus the unplug/replug status pair a host expects whenever the
// extension bus position changes occupant (spec.md §4.4).
func (d *Device) transitionWMPState(newState wmpState) {
	d.Sys.WMPState = newState
	d.initExtension()

	d.Sys.queue.pushAck(0x16, 0x00)

	d.Sys.ExtensionConnected = false
	d.Sys.queue.pushStatus(&d.Sys)

	d.Sys.ExtensionConnected = true
	d.Sys.queue.pushStatus(&d.Sys)
}
