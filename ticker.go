package wiimote

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// ErrTickAgain is returned by a TickDriver to mark a read as transiently
// invalid; the caller should retry without waiting on I/O readiness.
var ErrTickAgain = errors.New("wiimote: invalid tick, should retry")

// TickDriver is the transport a Ticker polls for inbound HID output
// reports. It is the one piece of the scheduling loop spec.md explicitly
// leaves to the host process (spec.md §5, §9).
type TickDriver interface {
	// FD returns a non-blocking file descriptor that becomes readable when
	// ReadReport has data waiting.
	FD() int

	// ReadReport attempts to read one inbound report.
	//
	// Return values mirror a poll-driven read: the report bytes (nil if
	// none), whether another report may already be available without
	// waiting on I/O readiness, and an error (ErrTickAgain asks for an
	// immediate retry; any other error aborts the loop).
	ReadReport() ([]byte, bool, error)
}

// Ticker drives one Device's cooperative scheduling loop: it alternates
// between feeding inbound reports to Process and, on a fixed cadence,
// calling Generate and handing the result to an output callback
// (spec.md §5's single-threaded model, expanded with a concrete driver).
type Ticker struct {
	Device *Device
	drv    TickDriver

	fd       int
	dontwait bool
}

// NewTicker creates a Ticker for dev driven by drv.
func NewTicker(dev *Device, drv TickDriver) *Ticker {
	return &Ticker{
		Device:   dev,
		drv:      drv,
		fd:       -1,
		dontwait: true,
	}
}

// Run services the loop until stop is closed or drv/out return an error
// other than ErrTickAgain. It calls out with each generated report's
// bytes; out must not retain the slice past the call.
func (t *Ticker) Run(stop <-chan struct{}, period time.Duration, out func([]byte) error) error {
	next := time.Now().Add(period)
	var buf [maxReportLen]byte

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		wait := time.Until(next)
		if wait < 0 {
			wait = 0
		}

		if !t.dontwait {
			if t.fd == -1 {
				t.fd = t.drv.FD()
			}
			if t.fd >= 0 {
				fds := [...]unix.PollFd{{
					Fd:     int32(t.fd),
					Events: unix.POLLIN,
				}}
				unix.Poll(fds[:], int(wait.Milliseconds()))
			} else {
				time.Sleep(wait)
			}
		}

		if time.Now().Before(next) {
			report, cont, err := t.drv.ReadReport()
			if errors.Is(err, ErrTickAgain) {
				t.dontwait = true
				continue
			}
			if err != nil {
				return err
			}
			t.dontwait = cont
			if report != nil {
				t.Device.Process(report)
			}
			continue
		}

		next = next.Add(period)
		if n := t.Device.Generate(buf[:]); n > 0 {
			if err := out(buf[:n]); err != nil {
				return err
			}
		}
	}
}
