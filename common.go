// Package wiimote emulates the device-side state of a Nintendo Wii Remote
// HID peripheral: given the stream of HID output reports a host would send
// to a real Wiimote, it maintains the state the device would maintain and
// produces the matching stream of HID input reports.
package wiimote

import (
	"errors"
	"log"
)

// ErrOutOfRange marks a memory access whose end (offset+size) lies past
// the addressable EEPROM range (0x16FF). Process never returns this error
// itself; it is exposed so tests and trace sinks can recognize why a
// mem-response carries a nonzero error nibble.
var ErrOutOfRange = errors.New("wiimote: address out of range")

// ErrRegisterHidden marks a read of register bank a6 while the MotionPlus
// is active and occupying that bank's bus position.
var ErrRegisterHidden = errors.New("wiimote: register hidden behind active motionplus")

// Tracer receives one line per inbound or outbound report, for diagnostics
// only. It must not block; Device never waits on it.
type Tracer interface {
	// Reportf is called with dir set to "host->device" or "device->host"
	// for a report that was just processed or generated, or "error" for a
	// failure with no report to show for it (spec.md §7: an EEPROM file
	// that is missing or unreadable produces no reply, only a trace line).
	Reportf(dir string, format string, args ...any)
}

// nopTracer discards everything. It is the default when a Device is built
// without an explicit Tracer.
type nopTracer struct{}

func (nopTracer) Reportf(string, string, ...any) {}

// LogTracer adapts Tracer onto the standard library's log.Logger.
type LogTracer struct {
	*log.Logger
}

// NewLogTracer wraps l, or the standard logger if l is nil.
func NewLogTracer(l *log.Logger) LogTracer {
	if l == nil {
		l = log.Default()
	}
	return LogTracer{l}
}

func (t LogTracer) Reportf(dir string, format string, args ...any) {
	t.Printf("[%s] "+format, append([]any{dir}, args...)...)
}
