package wiimote

import "testing"

func TestCoreButtonsMaskLeavesBitPackingRoomFree(t *testing.T) {
	// bit 0 of the low buttons byte must stay clear for the rumble
	// reflection, and bits 6-7 of each wire byte must stay clear for the
	// accelerometer's low bits, without clobbering a named button.
	low := byte(coreButtonsMask)
	high := byte(coreButtonsMask >> 8)

	if low&0x01 != 0 {
		t.Errorf("low buttons byte = %#02x, bit 0 must be free for the rumble reflection", low)
	}
	if low&0xc0 != 0 {
		t.Errorf("low buttons byte = %#02x, bits 6-7 must be free for accel x low bits", low)
	}
	if high&0xc0 != 0 {
		t.Errorf("high buttons byte = %#02x, bits 6-7 must be free for accel y/z low bits", high)
	}
}

func TestNoObjectIRSentinel(t *testing.T) {
	if noObjectIR.X != 0x3ff || noObjectIR.Y != 0x3ff || noObjectIR.Size != 0xff {
		t.Errorf("noObjectIR = %+v, want all bits set", noObjectIR)
	}
}

func TestDeviceResetPowerOnDefaults(t *testing.T) {
	dev := newTestDevice(t)

	if dev.Sys.ReportingMode != 0x30 {
		t.Errorf("ReportingMode = %#02x, want 0x30", dev.Sys.ReportingMode)
	}
	if dev.Sys.BatteryLevel != 0xff {
		t.Errorf("BatteryLevel = %#02x, want 0xff", dev.Sys.BatteryLevel)
	}
	if dev.Sys.Extension != ExtNunchuk {
		t.Errorf("Extension = %v, want ExtNunchuk", dev.Sys.Extension)
	}
	if !dev.Sys.ExtensionConnected {
		t.Error("expected ExtensionConnected true by default")
	}
	if dev.Sys.queue.empty() {
		t.Error("expected a status report queued on reset when an extension is present")
	}
	for _, obj := range dev.Usr.IR {
		if obj != noObjectIR {
			t.Errorf("IR slot = %+v, want the cleared sentinel", obj)
		}
	}
}
