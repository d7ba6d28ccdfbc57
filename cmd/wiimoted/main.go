// Command wiimoted is the minimal transport the core needs to be exercised
// end to end: a Unix domain socket where each message a client sends is one
// inbound HID output report, and each reply is one outbound HID input
// report, emulating the Bluetooth/HID link spec.md explicitly places out of
// the core's scope.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/kvikk/wiimulate"
)

var (
	sockPath   = flag.String("socket", "/tmp/wiimote.sock", "unix socket path the transport listens on")
	eepromPath = flag.String("eeprom", "eeprom.bin", "path to the EEPROM backing file")
	period     = flag.Duration("period", 16667*time.Microsecond, "polling tick interval (default ~60Hz)")
)

// connDriver adapts one accepted connection to wiimote.TickDriver. Reports
// in either direction never exceed maxReportLen bytes, so a single
// non-blocking read per poll is enough; no buffering layer is needed.
type connDriver struct {
	fd int
}

func (c *connDriver) FD() int { return c.fd }

func (c *connDriver) ReadReport() ([]byte, bool, error) {
	var buf [64]byte
	n, err := unix.Read(c.fd, buf[:])
	if err == unix.EAGAIN {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if n == 0 {
		return nil, false, io.EOF
	}
	return append([]byte(nil), buf[:n]...), true, nil
}

// serve runs one Device's cooperative Process/Generate loop against a
// single connected client until it disconnects. Per spec.md's Non-goal on
// multi-device multiplexing, wiimoted handles one connection at a time.
func serve(fd int) {
	defer unix.Close(fd)

	if err := unix.SetNonblock(fd, true); err != nil {
		log.Printf("wiimoted: setting connection non-blocking: %v", err)
		return
	}

	dev, err := wiimote.NewDevice(*eepromPath, wiimote.NewLogTracer(nil))
	if err != nil {
		log.Printf("wiimoted: creating device: %v", err)
		return
	}

	tick := wiimote.NewTicker(dev, &connDriver{fd: fd})
	stop := make(chan struct{})
	err = tick.Run(stop, *period, func(frame []byte) error {
		_, err := unix.Write(fd, frame)
		return err
	})
	if err != nil && err != io.EOF {
		log.Printf("wiimoted: connection ended: %v", err)
	}
}

func main() {
	flag.Parse()

	if err := unix.Unlink(*sockPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("wiimoted: removing stale socket: %v", err)
	}

	lfd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		log.Fatalf("wiimoted: creating socket: %v", err)
	}
	defer unix.Close(lfd)

	if err := unix.Bind(lfd, &unix.SockaddrUnix{Name: *sockPath}); err != nil {
		log.Fatalf("wiimoted: binding %s: %v", *sockPath, err)
	}
	if err := unix.Listen(lfd, 1); err != nil {
		log.Fatalf("wiimoted: listening: %v", err)
	}

	log.Printf("wiimoted: listening on %s, eeprom=%s", *sockPath, *eepromPath)
	for {
		cfd, _, err := unix.Accept(lfd)
		if err != nil {
			log.Printf("wiimoted: accept: %v", err)
			continue
		}
		log.Printf("wiimoted: client connected")
		serve(cfd)
		log.Printf("wiimoted: client disconnected")
	}
}
