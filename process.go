package wiimote

import (
	"encoding/binary"
	"errors"
)

// Process decodes one HID output report a host sent to the device and
// applies its effect to d, queuing any acknowledgement, status or
// memory-response report it produces. buf is the full report including
// its leading I/O byte (buf[0]) and type byte (buf[1]); spec.md §4.1.
func (d *Device) Process(buf []byte) {
	if len(buf) < 2 {
		return
	}
	typ := buf[1]
	body := buf[2:]

	// every output report reflects the host's requested rumble state
	// (spec.md §4.1, §8).
	if len(body) > 0 {
		d.Sys.Rumble = body[0]&0x01 != 0
	}

	d.Tracer.Reportf("host->device", "type=%#02x % x", typ, body)

	// a report too short for the payload bytes its handler reads is
	// ignored rather than indexed past its end.
	switch typ {
	case 0x11, 0x13, 0x14, 0x19, 0x1a:
		if len(body) < 1 {
			return
		}
	case 0x12:
		if len(body) < 2 {
			return
		}
	}

	switch typ {
	case 0x10: // rumble only, no acknowledgement

	case 0x11: // player LEDs
		d.Sys.LED1 = body[0]&0x10 != 0
		d.Sys.LED2 = body[0]&0x20 != 0
		d.Sys.LED3 = body[0]&0x40 != 0
		d.Sys.LED4 = body[0]&0x80 != 0
		d.Sys.queue.pushAck(typ, 0x00)

	case 0x12: // data reporting mode
		d.Sys.ReportingContinuous = body[0]&0x04 != 0
		d.Sys.ReportingMode = body[1]
		d.Sys.queue.pushAck(typ, 0x00)

	case 0x13, 0x1a: // IR camera enable
		d.Sys.IRCamEnabled = body[0]&0x04 != 0
		d.Sys.queue.pushAck(typ, 0x00)

	case 0x14, 0x19: // speaker enable/mute
		muted := body[0]&0x04 != 0
		d.Sys.SpeakerEnabled = !muted
		d.Sys.queue.pushAck(typ, 0x00)

	case 0x15: // status information request
		d.Sys.queue.pushStatus(&d.Sys)

	case 0x16: // write memory
		d.processMemWrite(body)

	case 0x17: // read memory
		d.processMemRead(body)

	case 0x18: // speaker data; playback is out of scope (spec.md Non-goals)

	default: // unrecognized report type
	}
}

// memWriteSourceBit selects register-bank vs EEPROM in a write-memory
// report's flags byte. spec.md §9 resolves this to bit 2, not bit 0
// (bit 0 there is the rumble reflection every output report carries).
const memWriteSourceBit = 0x04

// memOffset24 decodes the report's 24-bit big-endian offset (spec.md §6:
// "[flags, off_hi, off_mid, off_lo, ...]").
func memOffset24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func (d *Device) processMemWrite(body []byte) {
	if len(body) < 5 {
		return
	}
	flags := body[0]
	offset := memOffset24(body[1:4])
	size := int(body[4])
	if size > 16 {
		size = 16
	}
	data := body[5:]
	if len(data) > size {
		data = data[:size]
	}

	if flags&memWriteSourceBit != 0 {
		d.writeRegister(offset, data)
	} else {
		d.writeEEPROM(offset, data)
	}
}

func (d *Device) processMemRead(body []byte) {
	if len(body) < 6 {
		return
	}
	flags := body[0]
	offset := memOffset24(body[1:4])
	size := binary.BigEndian.Uint16(body[4:6])

	if flags&memWriteSourceBit != 0 {
		d.readRegister(offset, size)
	} else {
		d.readEEPROM(offset, size)
	}
}

// eepromFailure handles an error from EEPROM.Write/Read. An out-of-range
// access gets the single err=8 memory-response spec.md §7 defines for it;
// any other failure (missing or unreadable backing file) produces no reply
// at all and is only logged to the trace sink, per spec.md §7's distinct
// "EEPROM file missing or unreadable" error kind.
func (d *Device) eepromFailure(err error, offset uint32) {
	if errors.Is(err, ErrOutOfRange) {
		d.Sys.queue.pushMemResp(0xf, 0x8, offset, nil)
		return
	}
	d.Tracer.Reportf("error", "eeprom access at %#06x failed: %v", offset, err)
}

func (d *Device) writeEEPROM(offset uint32, data []byte) {
	if err := d.EEPROM.Write(offset, data); err != nil {
		d.eepromFailure(err, offset)
		return
	}
	d.Sys.queue.pushAck(0x16, 0x00)
}

func (d *Device) readEEPROM(offset uint32, size uint16) {
	data, err := d.EEPROM.Read(offset, int(size))
	if err != nil {
		d.eepromFailure(err, offset)
		return
	}
	d.emitMemChunks(offset, size, data)
}

// writeRegister implements the register-bank write side effects: the
// plain byte copy every write performs, plus the handful of magic
// offsets that drive the MotionPlus state machine and the extension
// encryption/identity handshake (spec.md §4.4, §6).
func (d *Device) writeRegister(offset uint32, data []byte) {
	_, bank := d.Regs.bank(offset)
	addr := int(offset & 0xff)

	var reg *[256]byte
	switch bank {
	case BankSpeaker:
		reg = &d.Regs.A2

	case BankExtension:
		if d.Sys.WMPState == wmpActive {
			reg = &d.Regs.A6
		} else {
			reg = &d.Regs.A4
		}
		switch {
		case addr == 0xf0 && len(data) > 0 && data[0] == 0x55 && d.Sys.WMPState == wmpActive:
			d.transitionWMPState(wmpPassthroughDeactivated)
			return
		case addr == 0xfe && len(data) > 0 && data[0] == 0x00 && d.Sys.WMPState == wmpActive:
			d.transitionWMPState(wmpInactive)
			return
		case addr == 0x4c: // last byte of the encryption key upload
			d.Sys.ExtensionEncrypted = true
		case addr == 0xf1:
			d.Regs.A6[0xf7] = 0x1a
			copy(d.Regs.A6[0x50:0x90], f1IdentityBlock[:])
		}

	case BankMotionPlus:
		reg = &d.Regs.A6
		if addr == 0xfe && len(data) > 0 && data[0]&0x04 != 0 {
			d.Sys.ExtensionReportType = data[0] & 0x07
			d.transitionWMPState(wmpActive)
			return
		}

	case BankIRCamera:
		reg = &d.Regs.B0

	default:
		d.Sys.queue.pushAck(0x16, 0x00)
		return
	}

	copy(reg[addr:], data)
	d.Sys.queue.pushAck(0x16, 0x00)
}

// readRegister implements the register-bank read side effects: a6 is
// unreachable (error 7) while the MotionPlus is active since it is
// standing in for a4's identity block, and the fifth read of a4 0xf6/0xf7
// made while active (counted in Sys.tries) flips a6 0xf7 to 0x0e the way a real
// MotionPlus does during its passthrough handshake (spec.md §4.4, §9).
func (d *Device) readRegister(offset uint32, size uint16) {
	_, bank := d.Regs.bank(offset)
	addr := int(offset & 0xff)

	var reg *[256]byte
	switch bank {
	case BankSpeaker:
		reg = &d.Regs.A2

	case BankExtension:
		if d.Sys.WMPState == wmpActive {
			if addr == 0xf6 || addr == 0xf7 {
				d.Sys.tries++
				if d.Sys.tries == 5 {
					d.Regs.A6[0xf7] = 0x0e
				}
			}
			reg = &d.Regs.A6
		} else {
			reg = &d.Regs.A4
		}

	case BankMotionPlus:
		if d.Sys.WMPState == wmpActive {
			d.Sys.queue.pushMemResp(0xf, 0x7, offset, nil)
			return
		}
		reg = &d.Regs.A6

	case BankIRCamera:
		reg = &d.Regs.B0

	default:
		return
	}

	data := make([]byte, size)
	copy(data, reg[addr:])
	d.emitMemChunks(offset, size, data)
}

// emitMemChunks splits a read of size bytes starting at offset into
// 16-byte memory-response reports. The final chunk's size nibble is
// computed as (size-1)%16, not (size%16)-1 (spec.md §9): the latter
// underflows to 0xff whenever size is an exact multiple of 16.
func (d *Device) emitMemChunks(offset uint32, size uint16, data []byte) {
	total := int(size)
	chunks := (total + 15) / 16

	for i := 0; i < chunks; i++ {
		start := i * 16
		end := start + 16
		if end > total {
			end = total
		}

		sizeNibble := byte(0xf)
		if i == chunks-1 {
			sizeNibble = byte((size - 1) % 16)
		}

		d.Sys.queue.pushMemResp(sizeNibble, 0x0, offset+uint32(start), data[start:end])
	}
}
