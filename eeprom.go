package wiimote

import (
	"fmt"
	"os"
)

// eepromVirtualLimit is the largest valid (offset+size) sum for an EEPROM
// access: spec.md §4.1 errors whenever "offset + size > 0x16FF".
const eepromVirtualLimit = 0x16ff

// eepromFileOffset is added to a virtual address to get its physical byte
// offset in the backing file (spec.md §6: "virtual 0 maps to file offset
// 0x70").
const eepromFileOffset = 0x70

// eepromMinSize is the minimum backing-file size spec.md §3 requires.
const eepromMinSize = 0x1770

// EEPROM wraps a backing file implementing the virtual-address EEPROM
// image. Per spec.md §5 the file is opened per access, never held open.
type EEPROM struct {
	Path string
}

// EnsureFile creates the backing file at e.Path if it does not already
// exist, zero-filled to at least eepromMinSize bytes. It is safe to call
// on every startup.
func (e EEPROM) EnsureFile() error {
	f, err := os.OpenFile(e.Path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("wiimote: opening eeprom file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("wiimote: stat eeprom file: %w", err)
	}
	if info.Size() < eepromMinSize {
		if err := f.Truncate(eepromMinSize); err != nil {
			return fmt.Errorf("wiimote: growing eeprom file: %w", err)
		}
	}
	return nil
}

// eepromInRange reports whether [offset, offset+size) lies entirely within the
// addressable virtual range.
func eepromInRange(offset uint32, size int) bool {
	return uint64(offset)+uint64(size) <= eepromVirtualLimit
}

// Read reads size bytes starting at virtual offset. A range whose
// offset+size exceeds 0x16FF returns ErrOutOfRange and no data.
func (e EEPROM) Read(offset uint32, size int) ([]byte, error) {
	if !eepromInRange(offset, size) {
		return nil, ErrOutOfRange
	}

	f, err := os.Open(e.Path)
	if err != nil {
		return nil, fmt.Errorf("wiimote: opening eeprom file: %w", err)
	}
	defer f.Close()

	buf := make([]byte, size)
	if _, err := f.ReadAt(buf, int64(offset)+eepromFileOffset); err != nil {
		return nil, fmt.Errorf("wiimote: reading eeprom file: %w", err)
	}
	return buf, nil
}

// Write writes data starting at virtual offset. A range whose
// offset+len(data) exceeds 0x16FF returns ErrOutOfRange and writes nothing.
func (e EEPROM) Write(offset uint32, data []byte) error {
	if !eepromInRange(offset, len(data)) {
		return ErrOutOfRange
	}

	f, err := os.OpenFile(e.Path, os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("wiimote: opening eeprom file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteAt(data, int64(offset)+eepromFileOffset); err != nil {
		return fmt.Errorf("wiimote: writing eeprom file: %w", err)
	}
	return nil
}
