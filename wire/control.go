package wire

// SerializeControl abstracts flow control on the output side of the codec. A
// transport layer implements it around a ByteBuffer it owns; the codec calls
// it whenever the buffer runs out of space. None of these methods perform I/O
// inside the codec itself.
type SerializeControl interface {
	// FlushSerializeBuffer drains the written region of the buffer so the
	// codec can continue putting values.
	FlushSerializeBuffer() error
	// EnsureBuffer makes at least n bytes of space available in the buffer,
	// flushing if necessary. n never exceeds the buffer's capacity for
	// fixed-width values; bulk writers loop instead of demanding large n.
	EnsureBuffer(n int) error
}

// DirectSerializer is optionally implemented by a SerializeControl that can
// accept a bulk byte run without staging it through the buffer. It is only
// consulted when no byte-order conversion is required.
type DirectSerializer interface {
	// DirectSerialize hands raw bytes to the control. It returns false if the
	// control declines, in which case the codec falls back to the buffer path.
	DirectSerialize(buf *ByteBuffer, data []byte) (bool, error)
}

// DeserializeControl abstracts flow control on the input side of the codec.
type DeserializeControl interface {
	// EnsureData makes at least n unread bytes available in the buffer,
	// obtaining more input however the transport sees fit. It returns an
	// error if the stream cannot supply them.
	EnsureData(n int) error
}

// DirectDeserializer is optionally implemented by a DeserializeControl that
// can fill a bulk byte run without staging it through the buffer. It is only
// consulted when no byte-order conversion is required.
type DirectDeserializer interface {
	// DirectDeserialize fills dst with the next len(dst) stream bytes. It
	// returns false if the control declines, in which case the codec falls
	// back to the element-wise buffer path.
	DirectDeserialize(buf *ByteBuffer, dst []byte) (bool, error)
}
