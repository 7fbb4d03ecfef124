package wire

import (
	stdbinary "encoding/binary"
	"fmt"
	"io"
)

// minBufferSize is the smallest controller buffer that can stage any single
// fixed-width value plus a full size prefix.
const minBufferSize = 16

// Writer is a SerializeControl that drains its buffer into an io.Writer. It
// also offers the direct bulk path, since handing bytes straight to the
// underlying writer skips a copy.
type Writer struct {
	w   io.Writer
	buf *ByteBuffer
}

// NewWriter returns a Writer staging through a buffer of the given size.
func NewWriter(w io.Writer, size int, order stdbinary.ByteOrder) *Writer {
	if size < minBufferSize {
		size = minBufferSize
	}
	return &Writer{w: w, buf: NewByteBuffer(size, order)}
}

// Buffer returns the staging buffer values are serialized into.
func (w *Writer) Buffer() *ByteBuffer {
	return w.buf
}

// FlushSerializeBuffer implements SerializeControl.
func (w *Writer) FlushSerializeBuffer() error {
	b := w.buf.Bytes()
	if len(b) == 0 {
		return nil
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	w.buf.Reset()
	return nil
}

// EnsureBuffer implements SerializeControl.
func (w *Writer) EnsureBuffer(n int) error {
	if n > w.buf.Limit() {
		return fmt.Errorf("cannot ensure %d bytes in a %d byte serialize buffer", n, w.buf.Limit())
	}
	if w.buf.Remaining() < n {
		return w.FlushSerializeBuffer()
	}
	return nil
}

// DirectSerialize implements DirectSerializer.
func (w *Writer) DirectSerialize(buf *ByteBuffer, data []byte) (bool, error) {
	if buf != w.buf {
		return false, nil
	}
	if err := w.FlushSerializeBuffer(); err != nil {
		return false, err
	}
	_, err := w.w.Write(data)
	return true, err
}

// Reader is a DeserializeControl that refills its buffer from an io.Reader.
// Partial reads are expected; EnsureData keeps reading until the demand is
// met, which is what makes the codec correct against a fragmented stream.
type Reader struct {
	r   io.Reader
	buf *ByteBuffer
}

// NewReader returns a Reader staging through a buffer of the given size.
func NewReader(r io.Reader, size int, order stdbinary.ByteOrder) *Reader {
	if size < minBufferSize {
		size = minBufferSize
	}
	b := NewByteBuffer(size, order)
	b.SetLimit(0) // no data read yet
	return &Reader{r: r, buf: b}
}

// Buffer returns the staging buffer values are deserialized from.
func (r *Reader) Buffer() *ByteBuffer {
	return r.buf
}

// EnsureData implements DeserializeControl.
func (r *Reader) EnsureData(n int) error {
	if r.buf.Remaining() >= n {
		return nil
	}

	// Compact the unread region to the front of the buffer.
	unread := r.buf.data[r.buf.pos:r.buf.limit]
	if n > len(r.buf.data) {
		grown := make([]byte, n)
		copy(grown, unread)
		r.buf.data = grown
	} else {
		copy(r.buf.data, unread)
	}
	r.buf.pos = 0
	r.buf.limit = len(unread)

	for r.buf.Remaining() < n {
		got, err := r.r.Read(r.buf.data[r.buf.limit:])
		r.buf.limit += got
		if err != nil {
			if err == io.EOF && r.buf.Remaining() >= n {
				return nil
			}
			return err
		}
	}
	return nil
}

// DirectDeserialize implements DirectDeserializer.
func (r *Reader) DirectDeserialize(buf *ByteBuffer, dst []byte) (bool, error) {
	if buf != r.buf {
		return false, nil
	}
	// Drain whatever is already staged, then read the rest straight in.
	n := buf.Remaining()
	if n > len(dst) {
		n = len(dst)
	}
	if n > 0 {
		buf.GetBytes(dst[:n])
	}
	if n < len(dst) {
		if _, err := io.ReadFull(r.r, dst[n:]); err != nil {
			return false, err
		}
	}
	return true, nil
}
