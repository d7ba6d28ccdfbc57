// Command wiimotemonitor connects to a running wiimoted as an ordinary
// client would, decodes the buttons+accelerometer reports it receives, and
// mirrors them onto a virtual Linux gamepad so a developer can watch the
// emulator react with jstest/evtest instead of reading hex dumps.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/bendahl/uinput"
	"golang.org/x/sys/unix"
)

var (
	sockPath = flag.String("socket", "/tmp/wiimote.sock", "unix socket wiimoted is listening on")
	devName  = flag.String("name", "wiimote-virtual", "name of the virtual gamepad device")
)

// buttonMap pairs a core-buttons bit, at the position the emulator packs it
// into its reports (see the wiimote package's Button constants), with the
// gamepad button it drives.
var buttonMap = map[uint16]int{
	0x0002: uinput.ButtonDpadLeft,
	0x0004: uinput.ButtonDpadRight,
	0x0008: uinput.ButtonDpadDown,
	0x0010: uinput.ButtonDpadUp,
	0x0020: uinput.ButtonStart,  // Plus
	0x2000: uinput.ButtonMode,   // Home
	0x0100: uinput.ButtonSelect, // Two
	0x0200: uinput.ButtonThumbl, // One
	0x0400: uinput.ButtonSouth,  // B
	0x0800: uinput.ButtonEast,   // A
	0x1000: uinput.ButtonThumbr, // Minus
}

func main() {
	flag.Parse()

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		log.Fatalf("wiimotemonitor: creating socket: %v", err)
	}
	defer unix.Close(fd)

	if err := unix.Connect(fd, &unix.SockaddrUnix{Name: *sockPath}); err != nil {
		log.Fatalf("wiimotemonitor: connecting to %s: %v", *sockPath, err)
	}

	// request the buttons+accelerometer reporting mode (0x31), continuous.
	if _, err := unix.Write(fd, []byte{0xa2, 0x12, 0x04, 0x31}); err != nil {
		log.Fatalf("wiimotemonitor: requesting report mode: %v", err)
	}

	pad, err := uinput.CreateGamepad("/dev/uinput", []byte(*devName), 0x057e, 0x0306)
	if err != nil {
		log.Fatalf("wiimotemonitor: creating virtual gamepad: %v", err)
	}
	defer pad.Close()

	log.Printf("wiimotemonitor: mirroring %s onto %q", *sockPath, *devName)

	var prevButtons uint16
	buf := make([]byte, 64)
	for {
		n, err := unix.Read(fd, buf)
		if err != nil {
			log.Fatalf("wiimotemonitor: reading report: %v", err)
		}
		if n < 7 || buf[0] != 0xa1 || buf[1] != 0x31 {
			continue
		}

		buttons := uint16(buf[2]) | uint16(buf[3]&0x7f)<<8
		for mask, button := range buttonMap {
			switch {
			case buttons&mask != 0 && prevButtons&mask == 0:
				pad.ButtonDown(button)
			case buttons&mask == 0 && prevButtons&mask != 0:
				pad.ButtonUp(button)
			}
		}
		prevButtons = buttons

		accelX := int32(buf[4]) - 0x80
		accelY := int32(buf[5]) - 0x80
		pad.LeftStickMove(float32(accelX)/128, float32(accelY)/128)

		time.Sleep(time.Millisecond)
	}
}
