package wire

import (
	"github.com/bearlytools/talon/internal/conversions"
)

// WriteString encodes s as a size prefix followed by its raw UTF-8 bytes.
func WriteString(buf *ByteBuffer, ctl SerializeControl, s string) error {
	return writeStringBody(buf, ctl, s, len(s))
}

// WriteSubstring encodes only s[offset : offset+count], clamped to the string
// length, without materializing the substring. The size prefix reflects the
// clamped count.
func WriteSubstring(buf *ByteBuffer, ctl SerializeControl, s string, offset, count int) error {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s) {
		offset = len(s)
	}
	if max := len(s) - offset; count > max {
		count = max
	}
	if count < 0 {
		count = 0
	}
	return writeStringBody(buf, ctl, s[offset:offset+count], count)
}

func writeStringBody(buf *ByteBuffer, ctl SerializeControl, s string, size int) error {
	if err := WriteSize(buf, ctl, size); err != nil {
		return err
	}
	rest := conversions.UnsafeGetBytes(s)
	for len(rest) > 0 {
		room := buf.Remaining()
		if room == 0 {
			if err := ctl.FlushSerializeBuffer(); err != nil {
				return err
			}
			continue
		}
		n := room
		if n > len(rest) {
			n = len(rest)
		}
		buf.PutBytes(rest[:n])
		rest = rest[n:]
	}
	return nil
}

// ReadString decodes a string written by WriteString. It tolerates input
// delivered in arbitrary fragments.
func ReadString(buf *ByteBuffer, ctl DeserializeControl) (string, error) {
	size, err := ReadSize(buf, ctl)
	if err != nil {
		return "", err
	}
	if size == 0 {
		return "", nil
	}
	out := make([]byte, size)
	got := 0
	for got < size {
		have := buf.Remaining()
		if have == 0 {
			if err := ctl.EnsureData(1); err != nil {
				return "", err
			}
			continue
		}
		n := size - got
		if n > have {
			n = have
		}
		buf.GetBytes(out[got : got+n])
		got += n
	}
	return conversions.ByteSlice2String(out), nil
}
