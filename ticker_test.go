package wiimote

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type tickStep struct {
	report []byte
	cont   bool
	err    error
}

type fakeTickDriver struct {
	mu    sync.Mutex
	fd    int
	steps []tickStep
}

func (d *fakeTickDriver) FD() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fd
}

func (d *fakeTickDriver) ReadReport() ([]byte, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.steps) == 0 {
		// once the scripted steps run out, behave as an idle transport
		// rather than erroring, so timing jitter in a test doesn't cause a
		// spurious failure.
		return nil, false, nil
	}
	s := d.steps[0]
	d.steps = d.steps[1:]
	return s.report, s.cont, s.err
}

func newTestDevice(t *testing.T) *Device {
	t.Helper()
	dev, err := NewDevice(t.TempDir()+"/eeprom.bin", nil)
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	return dev
}

func TestTickerProcessesInboundReportsBeforeNextPeriod(t *testing.T) {
	dev := newTestDevice(t)
	ledReport := []byte{0xa2, 0x11, 0x10} // set LED1

	drv := &fakeTickDriver{
		fd: -1,
		steps: []tickStep{
			{report: ledReport, cont: false, err: nil},
		},
	}
	tk := NewTicker(dev, drv)

	stop := make(chan struct{})
	var gotReports [][]byte
	done := make(chan error, 1)
	go func() {
		done <- tk.Run(stop, 50*time.Millisecond, func(b []byte) error {
			cp := append([]byte(nil), b...)
			gotReports = append(gotReports, cp)
			close(stop)
			return nil
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop in time")
	}

	if !dev.Sys.LED1 {
		t.Fatal("expected LED1 to be set by the inbound report")
	}
	if len(gotReports) == 0 {
		t.Fatal("expected at least one generated report")
	}
}

func TestTickerRetriesOnErrTickAgain(t *testing.T) {
	dev := newTestDevice(t)

	drv := &fakeTickDriver{
		fd: -1,
		steps: []tickStep{
			{report: nil, cont: false, err: ErrTickAgain},
			{report: nil, cont: false, err: errors.New("done")},
		},
	}
	tk := NewTicker(dev, drv)

	stop := make(chan struct{})
	err := tk.Run(stop, time.Hour, func([]byte) error { return nil })
	if err == nil || err.Error() != "done" {
		t.Fatalf("expected terminal error to propagate, got %v", err)
	}
}
