package wiimote

import (
	"bytes"
	"log"
	"os"
	"testing"
)

func freshQueue(dev *Device) {
	dev.Sys.queue = responseQueue{}
}

// spec.md §7 distinguishes "address-out-of-range" (a single err=8
// memory-response) from "EEPROM file missing or unreadable" (no reply at
// all, logged to the trace sink); a read against a valid range whose
// backing file has disappeared must take the second path, not the first.
func TestProcessEEPROMFileMissingProducesNoReplyAndLogs(t *testing.T) {
	path := t.TempDir() + "/eeprom.bin"
	var logged bytes.Buffer
	dev, err := NewDevice(path, NewLogTracer(log.New(&logged, "", 0)))
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	freshQueue(dev)

	if err := os.Remove(path); err != nil {
		t.Fatalf("removing backing file: %v", err)
	}

	dev.Process([]byte{0xa2, 0x17, 0x00, 0x00, 0x10, 0x00, 0x00, 0x10})

	if !dev.Sys.queue.empty() {
		t.Errorf("expected no queued reply when the backing file is missing, got %+v", dev.Sys.queue)
	}
	if logged.Len() == 0 {
		t.Error("expected the missing-file failure to be logged to the tracer")
	}
}

// S1 — LED set: process a2 11 f0, expect the next generated report to be an
// ack of type 0x22 with payload 11 00, and all four LEDs now on.
func TestScenarioLEDSet(t *testing.T) {
	dev := newTestDevice(t)
	freshQueue(dev)

	dev.Process([]byte{0xa2, 0x11, 0xf0})

	if !(dev.Sys.LED1 && dev.Sys.LED2 && dev.Sys.LED3 && dev.Sys.LED4) {
		t.Fatalf("expected all four LEDs on, got %v %v %v %v",
			dev.Sys.LED1, dev.Sys.LED2, dev.Sys.LED3, dev.Sys.LED4)
	}

	var buf [maxReportLen]byte
	n := dev.Generate(buf[:])
	if n == 0 {
		t.Fatal("expected a generated report")
	}
	if buf[1] != 0x22 {
		t.Fatalf("report type = %#02x, want 0x22", buf[1])
	}
	if buf[4] != 0x11 || buf[5] != 0x00 {
		t.Fatalf("ack payload = %#02x %#02x, want 11 00", buf[4], buf[5])
	}
}

// S2 — mode switch then regular report: process a2 12 00 31, then a tick
// with usr changed. First generated report is the ack for 0x12; second is a
// fresh 0x31 report of length 7 (2 buttons + 3 accelerometer bytes).
func TestScenarioModeSwitchThenRegularReport(t *testing.T) {
	dev := newTestDevice(t)
	freshQueue(dev)

	dev.Process([]byte{0xa2, 0x12, 0x00, 0x31})
	if dev.Sys.ReportingMode != 0x31 {
		t.Fatalf("ReportingMode = %#02x, want 0x31", dev.Sys.ReportingMode)
	}
	if dev.Sys.ReportingContinuous {
		t.Fatal("expected ReportingContinuous false")
	}
	dev.Sys.ReportChanged = true

	var buf [maxReportLen]byte

	n := dev.Generate(buf[:])
	if n == 0 || buf[1] != 0x22 || buf[4] != 0x12 || buf[5] != 0x00 {
		t.Fatalf("first report = % x, want an ack for type 0x12", buf[:n])
	}

	n = dev.Generate(buf[:])
	if buf[1] != 0x31 {
		t.Fatalf("second report type = %#02x, want 0x31", buf[1])
	}
	if n != 7 {
		t.Fatalf("second report length = %d, want 7", n)
	}
}

// S3 — memory read across chunks: a 32-byte EEPROM read splits into two
// 16-byte memory-response reports, both with a full (0xf) size nibble.
func TestScenarioMemoryReadAcrossChunks(t *testing.T) {
	dev := newTestDevice(t)
	freshQueue(dev)

	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = byte(0xa0 + i)
	}
	if err := dev.EEPROM.Write(0x10, payload); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dev.Process([]byte{0xa2, 0x17, 0x00, 0x00, 0x00, 0x10, 0x00, 0x20})

	first, ok := dev.Sys.queue.pop()
	if !ok {
		t.Fatal("expected a first memory-response report")
	}
	if first.Data[1] != 0x21 {
		t.Fatalf("first report type = %#02x, want 0x21", first.Data[1])
	}
	if first.Data[4]>>4 != 0xf {
		t.Fatalf("first size nibble = %#x, want 0xf", first.Data[4]>>4)
	}
	if first.Data[5] != 0x00 || first.Data[6] != 0x10 {
		t.Fatalf("first offset = %#02x %#02x, want 00 10", first.Data[5], first.Data[6])
	}
	for i := 0; i < 16; i++ {
		if want := byte(0xa0 + i); first.Data[7+i] != want {
			t.Fatalf("first data[%d] = %#02x, want %#02x", i, first.Data[7+i], want)
		}
	}

	second, ok := dev.Sys.queue.pop()
	if !ok {
		t.Fatal("expected a second memory-response report")
	}
	if second.Data[4]>>4 != 0xf {
		t.Fatalf("second size nibble = %#x, want 0xf", second.Data[4]>>4)
	}
	if second.Data[5] != 0x00 || second.Data[6] != 0x20 {
		t.Fatalf("second offset = %#02x %#02x, want 00 20", second.Data[5], second.Data[6])
	}
	for i := 0; i < 16; i++ {
		if want := byte(0xb0 + i); second.Data[7+i] != want {
			t.Fatalf("second data[%d] = %#02x, want %#02x", i, second.Data[7+i], want)
		}
	}
}

// S4 — out-of-range read: a read crossing 0x16FF produces a single
// memory-response report with error nibble 8.
func TestScenarioOutOfRangeRead(t *testing.T) {
	dev := newTestDevice(t)
	freshQueue(dev)

	dev.Process([]byte{0xa2, 0x17, 0x00, 0x00, 0x16, 0xfe, 0x00, 0x10})

	rpt, ok := dev.Sys.queue.pop()
	if !ok {
		t.Fatal("expected a memory-response report")
	}
	if rpt.Data[1] != 0x21 {
		t.Fatalf("type = %#02x, want 0x21", rpt.Data[1])
	}
	if errNibble := rpt.Data[4] & 0x0f; errNibble != 0x8 {
		t.Fatalf("err nibble = %#x, want 8", errNibble)
	}
}

// S5 — MotionPlus activate: writing a6 0xfe with bit 2 set activates the
// MotionPlus, in order producing an ack for 0x16, a status with
// extension_connected=0, then one with extension_connected=1, with a6's
// identity bytes showing the requested report type.
func TestScenarioMotionPlusActivate(t *testing.T) {
	dev := newTestDevice(t)
	dev.Sys.Extension = ExtNunchuk
	dev.initExtensionIdentity()
	freshQueue(dev)

	dev.Process([]byte{0xa2, 0x16, 0x04, 0xa6, 0x00, 0xfe, 0x01, 0x04, 0x00})

	if dev.Sys.WMPState != wmpActive {
		t.Fatalf("WMPState = %v, want wmpActive", dev.Sys.WMPState)
	}

	ack, ok := dev.Sys.queue.pop()
	if !ok || ack.Data[1] != 0x22 || ack.Data[4] != 0x16 {
		t.Fatalf("expected an ack for type 0x16, got %+v ok=%v", ack, ok)
	}

	unplugged, ok := dev.Sys.queue.pop()
	if !ok || unplugged.Data[1] != 0x20 || unplugged.Data[4]&(1<<1) != 0 {
		t.Fatalf("expected a status report with extension_connected=0, got %+v ok=%v", unplugged, ok)
	}

	replugged, ok := dev.Sys.queue.pop()
	if !ok || replugged.Data[1] != 0x20 || replugged.Data[4]&(1<<1) == 0 {
		t.Fatalf("expected a status report with extension_connected=1, got %+v ok=%v", replugged, ok)
	}

	identity := dev.Regs.A6[0xfa:0x100]
	if identity[0] != 0x00 || identity[1] != 0x00 || identity[2] != 0xa4 || identity[3] != 0x20 {
		t.Fatalf("a6[0xfa:0xfe] = % x, want 00 00 a4 20", identity[:4])
	}
	if identity[4] != dev.Sys.ExtensionReportType {
		t.Fatalf("a6[0xfe] = %#02x, want it to match extension_report_type %#02x", identity[4], dev.Sys.ExtensionReportType)
	}
	if identity[5] != 0x05 {
		t.Fatalf("a6[0xff] = %#02x, want 0x05", identity[5])
	}
}

// S6 — MotionPlus read-a6 hidden: after activation, reading bank a6 returns
// a single memory-response report with error nibble 7.
func TestScenarioMotionPlusReadA6Hidden(t *testing.T) {
	dev := newTestDevice(t)
	dev.Sys.Extension = ExtNunchuk
	dev.initExtensionIdentity()
	freshQueue(dev)
	dev.Process([]byte{0xa2, 0x16, 0x04, 0xa6, 0x00, 0xfe, 0x01, 0x04, 0x00})
	freshQueue(dev)

	dev.Process([]byte{0xa2, 0x17, 0x04, 0xa6, 0x00, 0x00, 0x00, 0x10})

	rpt, ok := dev.Sys.queue.pop()
	if !ok {
		t.Fatal("expected a memory-response report")
	}
	if rpt.Data[1] != 0x21 {
		t.Fatalf("type = %#02x, want 0x21", rpt.Data[1])
	}
	if errNibble := rpt.Data[4] & 0x0f; errNibble != 0x7 {
		t.Fatalf("err nibble = %#x, want 7", errNibble)
	}
}

func TestProcessRumbleReflectionFromAnyOutputReport(t *testing.T) {
	dev := newTestDevice(t)
	freshQueue(dev)

	dev.Process([]byte{0xa2, 0x10, 0x01})
	if !dev.Sys.Rumble {
		t.Fatal("expected Rumble true after bit 0 of the rumble-only report")
	}

	dev.Process([]byte{0xa2, 0x10, 0x00})
	if dev.Sys.Rumble {
		t.Fatal("expected Rumble false after clearing bit 0")
	}
}

func TestProcessIRCameraEnableAndSpeakerMute(t *testing.T) {
	dev := newTestDevice(t)
	freshQueue(dev)

	dev.Process([]byte{0xa2, 0x13, 0x04})
	if !dev.Sys.IRCamEnabled {
		t.Fatal("expected IRCamEnabled true")
	}

	dev.Process([]byte{0xa2, 0x14, 0x04})
	if dev.Sys.SpeakerEnabled {
		t.Fatal("expected SpeakerEnabled false when the mute bit is set")
	}
}

func TestProcessStatusRequestQueuesStatus(t *testing.T) {
	dev := newTestDevice(t)
	freshQueue(dev)

	dev.Process([]byte{0xa2, 0x15, 0x00})

	rpt, ok := dev.Sys.queue.pop()
	if !ok || rpt.Data[1] != 0x20 {
		t.Fatalf("expected a queued status report, got %+v ok=%v", rpt, ok)
	}
}
