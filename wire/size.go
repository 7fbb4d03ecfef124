package wire

import (
	"fmt"
)

const (
	// sizeMarker introduces a 32-bit count for sizes that do not fit one byte.
	sizeMarker = 0xFE
	// sizeInvalid is reserved; a payload containing it is malformed.
	sizeInvalid = 0xFF
)

// WriteSize encodes a non-negative element count: sizes below 0xFE take a
// single byte, larger sizes take a 0xFE marker followed by a 32-bit count in
// the buffer's byte order.
func WriteSize(buf *ByteBuffer, ctl SerializeControl, size int) error {
	if size < 0 {
		return fmt.Errorf("cannot encode a negative size (%d)", size)
	}
	if size < sizeMarker {
		if err := ctl.EnsureBuffer(1); err != nil {
			return err
		}
		Put(buf, uint8(size))
		return nil
	}
	if size > 1<<31-1 {
		return fmt.Errorf("cannot encode a size > %d (%d)", 1<<31-1, size)
	}
	if err := ctl.EnsureBuffer(5); err != nil {
		return err
	}
	Put(buf, uint8(sizeMarker))
	Put(buf, uint32(size))
	return nil
}

// ReadSize decodes a size written by WriteSize.
func ReadSize(buf *ByteBuffer, ctl DeserializeControl) (int, error) {
	if err := ctl.EnsureData(1); err != nil {
		return 0, err
	}
	b := Get[uint8](buf)
	switch b {
	case sizeInvalid:
		return 0, fmt.Errorf("malformed size prefix (0x%02x)", b)
	case sizeMarker:
		if err := ctl.EnsureData(4); err != nil {
			return 0, err
		}
		v := Get[uint32](buf)
		if v > 1<<31-1 {
			return 0, fmt.Errorf("malformed size prefix: count %d overflows", v)
		}
		return int(v), nil
	default:
		return int(b), nil
	}
}
