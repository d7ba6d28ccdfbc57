package wiimote

// Generate produces the next outbound HID input report, if any, into buf
// and returns its length. It returns 0 if there is nothing to send this
// tick: the queue is empty, reporting isn't continuous, and usr hasn't
// changed since the last regular report (spec.md §4.2).
func (d *Device) Generate(buf []byte) int {
	if d.Sys.queue.empty() && !d.Sys.ReportingContinuous && !d.Sys.ReportChanged {
		return 0
	}

	var frame [maxReportLen]byte
	var length int
	var reportType byte
	var regular bool

	if d.Sys.queue.empty() {
		frame[0] = 0xa1
		frame[1] = d.Sys.ReportingMode
		reportType = d.Sys.ReportingMode
		length = 2
		regular = true
		d.Sys.ReportChanged = false
	} else {
		rpt, _ := d.Sys.queue.pop()
		frame = rpt.Data
		length = int(rpt.Len)
		reportType = frame[1]
	}

	contents := frame[2:]

	switch reportType {
	case 0x30: // core buttons
		d.appendButtons(contents[0:2])
		length += 2
	case 0x31: // core buttons + accelerometer
		d.appendButtons(contents[0:2])
		d.appendAccel(contents[0:5])
		length += 2 + 3
	case 0x32: // core buttons + 8 extension bytes
		d.appendButtons(contents[0:2])
		d.appendExtension(contents[2:10])
		length += 2 + 8
	case 0x33: // core buttons + accelerometer + 12 ir bytes
		d.appendButtons(contents[0:2])
		d.appendAccel(contents[0:5])
		d.appendIR12(contents[5:17])
		length += 2 + 3 + 12
	case 0x34: // core buttons + 19 extension bytes
		d.appendButtons(contents[0:2])
		d.appendExtension(contents[2:21])
		length += 2 + 19
	case 0x35: // core buttons + accelerometer + 16 extension bytes
		d.appendButtons(contents[0:2])
		d.appendAccel(contents[0:5])
		d.appendExtension(contents[5:21])
		length += 2 + 3 + 16
	case 0x36: // core buttons + 10 ir bytes + 9 extension bytes
		d.appendButtons(contents[0:2])
		d.appendIR10(contents[2:12])
		d.appendExtension(contents[12:21])
		length += 2 + 10 + 9
	case 0x37: // core buttons + accelerometer + 10 ir bytes + 6 extension bytes
		d.appendButtons(contents[0:2])
		d.appendAccel(contents[0:5])
		d.appendIR10(contents[5:15])
		d.appendExtension(contents[15:21])
		length += 2 + 3 + 10 + 6
	case 0x3d: // 21 extension bytes, no buttons
		d.appendExtension(contents[0:21])
		length += 21
	case 0x3e, 0x3f: // interleaved core buttons + accelerometer with ir bytes
		d.appendButtons(contents[0:2])
		d.appendInterleaved(contents[2:21])
		length += 21
	default: // queued report (acknowledgement, status or memory response),
		// or a regular report in a mode with no layout of its own.
		// A queued report's buttons bytes are placeholders the queue left
		// behind; refresh them with the live buttons state, leaving its
		// length untouched. A regular report here carries the buttons only.
		d.appendButtons(contents[0:2])
		if regular {
			length += 2
		}
	}

	d.Tracer.Reportf("device->host", "type=%#02x len=%d", reportType, length)

	return copy(buf, frame[:length])
}

// appendButtons packs the core-buttons bits (coreButtonsMask: bits 1-5 and
// 8-13) of the current buttons bitmap into dst, with bit 0 of dst[0] carrying the rumble reflection. This is the
// same byte Process reads the host's rumble request from (process.go's
// "body[0]&0x01"), so every outbound report's byte-2 LSB mirrors the most
// recently inbound one, regardless of report type (spec.md §3, §8).
func (d *Device) appendButtons(dst []byte) {
	b := uint16(d.Usr.Buttons) & uint16(coreButtonsMask)
	dst[0] = byte(b)
	dst[1] = byte(b >> 8)
	if d.Sys.Rumble {
		dst[0] |= 0x01
	}
}

// appendAccel fills dst[2:5] with the high 8 bits of each accelerometer
// axis and packs the low bits into the already-written buttons bytes at
// dst[0],dst[1]: x's two low bits at bits 6-7 of dst[0], y's low bit at
// bit 6 of dst[1], z's low bit at bit 7 of dst[1] (spec.md §4.2) — bit 0
// of dst[0] stays reserved for the rumble reflection appendButtons wrote.
func (d *Device) appendAccel(dst []byte) {
	x, y, z := d.Usr.AccelX, d.Usr.AccelY, d.Usr.AccelZ

	dst[2] = byte(x >> 2)
	dst[3] = byte(y >> 2)
	dst[4] = byte(z >> 2)

	dst[0] |= byte(x&0x3) << 6
	dst[1] |= byte(y&0x1) << 6
	dst[1] |= byte(z&0x1) << 7
}

// appendIR12 packs all four IR object slots into 12 bytes, 3 bytes per
// slot: x low8, y low8, then the two axes' high 2 bits and the size byte
// folded into one byte (spec.md §4.2). The all-0xff "no object" sentinel
// produces an all-0xff triple without any special case, since OR-ing the
// high bits against a size of 0xff always saturates to 0xff.
func (d *Device) appendIR12(dst []byte) {
	for i, obj := range d.Usr.IR {
		base := i * 3
		dst[base] = byte(obj.X & 0xff)
		dst[base+1] = byte(obj.Y & 0xff)
		third := ((obj.Y>>8)&0x3)<<6 | ((obj.X>>8)&0x3)<<4 | uint16(obj.Size)
		dst[base+2] = byte(third & 0xff)
	}
}

// appendIR10 packs two pairs of IR objects into 10 bytes, 5 bytes per
// pair with the two objects' high bits shared in the middle byte (basic
// IR format, no size field; spec.md §4.2).
func (d *Device) appendIR10(dst []byte) {
	appendIRPair(dst[0:5], d.Usr.IR[0], d.Usr.IR[1])
	appendIRPair(dst[5:10], d.Usr.IR[2], d.Usr.IR[3])
}

func appendIRPair(dst []byte, a, b IRObject) {
	dst[0] = byte(a.X & 0xff)
	dst[1] = byte(a.Y & 0xff)
	dst[2] = byte((((b.Y>>8)&0x3)<<6 | ((b.X>>8)&0x3)<<4 | ((a.Y>>8)&0x3)<<2 | (a.X>>8)&0x3) & 0xff)
	dst[3] = byte(b.X & 0xff)
	dst[4] = byte(b.Y & 0xff)
}

// appendExtension writes the 6-byte extension record matching the
// currently active extension (or, during MotionPlus passthrough, the
// alternating MotionPlus/extension pair) into the start of dst, zero
// filling the rest. Modes wider than 6 bytes reserve room for a fuller
// passthrough record that spec.md does not itself specify byte-for-byte;
// zero-filling the remainder is this implementation's resolution,
// recorded as an open decision.
func (d *Device) appendExtension(dst []byte) {
	for i := range dst {
		dst[i] = 0
	}

	var rec [6]byte
	switch {
	case d.Sys.WMPState == wmpActive && d.Sys.ExtensionReportType&0x4 != 0:
		if d.Sys.seq {
			d.fillMotionPlus(&rec)
		} else {
			d.fillPassthroughExtension(&rec)
		}
		d.Sys.seq = !d.Sys.seq
	default:
		d.fillPassthroughExtension(&rec)
	}

	copy(dst, rec[:])
}

func (d *Device) fillPassthroughExtension(rec *[6]byte) {
	switch d.Sys.Extension {
	case ExtNunchuk:
		d.fillNunchuk(rec)
	case ExtClassic:
		d.fillClassic(rec)
	}
}

// fillNunchuk packs stick x/y, the high 8 bits of each accelerometer axis
// and a trailer byte carrying the axes' low 2 bits plus the inverted (C,
// Z) buttons, matching the real Nunchuk's wire format.
func (d *Device) fillNunchuk(rec *[6]byte) {
	n := d.Usr.Nunchuk
	rec[0] = n.StickX
	rec[1] = n.StickY
	rec[2] = byte(n.AccelX >> 2)
	rec[3] = byte(n.AccelY >> 2)
	rec[4] = byte(n.AccelZ >> 2)

	var trailer byte
	trailer |= byte(n.AccelX&0x3) << 2
	trailer |= byte(n.AccelY&0x3) << 4
	trailer |= byte(n.AccelZ&0x3) << 6
	if !n.ButtonZ {
		trailer |= 0x01
	}
	if !n.ButtonC {
		trailer |= 0x02
	}
	rec[5] = trailer
}

// fillClassic packs the two analog sticks and triggers at reduced
// precision plus two inverted button bytes, matching the real Classic
// Controller's wire format.
func (d *Device) fillClassic(rec *[6]byte) {
	c := d.Usr.Classic
	lx, ly := c.LeftX&0x3f, c.LeftY&0x3f
	rx, ry := c.RightX&0x1f, c.RightY&0x1f
	tl, tr := c.TriggerL&0x1f, c.TriggerR&0x1f

	rec[0] = lx | (rx>>3)<<6
	rec[1] = ly | ((rx>>1)&0x3)<<6
	rec[2] = ry | (rx&0x1)<<7 | (tl>>3)<<5
	rec[3] = tr | (tl&0x7)<<5

	buttons := uint16(c.Buttons)
	rec[4] = byte(^buttons)
	rec[5] = byte(^(buttons >> 8))
}

// fillMotionPlus packs the three 14-bit angular velocities, their
// "slow" bits and the passthrough indicator bit, matching the real
// MotionPlus's wire format.
func (d *Device) fillMotionPlus(rec *[6]byte) {
	mp := d.Usr.MotionPlus
	rec[0] = byte(mp.Yaw & 0xff)
	rec[1] = byte(mp.Roll & 0xff)
	rec[2] = byte(mp.Pitch & 0xff)

	rec[3] = byte((mp.Yaw>>8)&0x3f) << 2
	if mp.YawSlow {
		rec[3] |= 0x02
	}
	rec[4] = byte((mp.Roll>>8)&0x3f) << 2
	if mp.RollSlow {
		rec[4] |= 0x02
	}
	rec[5] = byte((mp.Pitch>>8)&0x3f) << 2
	if mp.PitchSlow {
		rec[5] |= 0x02
	}
	rec[5] |= 0x01 // marks this half of the pair as the MotionPlus frame
}

// appendInterleaved fills the 19-byte extended-reporting sub-block used
// by modes 0x3e/0x3f: one byte of extra accelerometer precision plus a
// sequence bit, followed by all four IR objects in the 12-byte format.
// usr is snapshotted into irHold at the start of each pair (seq == false)
// so the two halves stay consistent even if usr changes mid-pair
// (spec.md §4.2).
func (d *Device) appendInterleaved(dst []byte) {
	if !d.Sys.seq {
		d.Sys.irHold = d.Usr
	}
	hold := d.Sys.irHold

	dst[0] = byte(hold.AccelX&0x3)<<6 | byte(hold.AccelY&0x3)<<4 | byte(hold.AccelZ&0x3)<<2
	if d.Sys.seq {
		dst[0] |= 0x01
	}

	for i, obj := range hold.IR {
		base := 1 + i*3
		dst[base] = byte(obj.X & 0xff)
		dst[base+1] = byte(obj.Y & 0xff)
		third := ((obj.Y>>8)&0x3)<<6 | ((obj.X>>8)&0x3)<<4 | uint16(obj.Size)
		dst[base+2] = byte(third & 0xff)
	}
	for i := 13; i < len(dst); i++ {
		dst[i] = 0
	}

	d.Sys.seq = !d.Sys.seq
}
