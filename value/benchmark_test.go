package value

import (
	"bytes"
	stdbinary "encoding/binary"
	"io"
	"testing"

	"github.com/bearlytools/talon/field"
	"github.com/bearlytools/talon/schema"
	"github.com/bearlytools/talon/standard"
	"github.com/bearlytools/talon/wire"
)

func benchTree(b *testing.B) *Structure {
	b.Helper()
	d, err := standard.Scalar("record", field.STFloat64, "alarm", "timeStamp")
	if err != nil {
		b.Fatalf("benchTree: %s", err)
	}
	arr, err := schema.NewScalarArray("readings", field.STFloat64)
	if err != nil {
		b.Fatalf("benchTree: %s", err)
	}
	d.AppendField(arr)

	root := Create(d).(*Structure)
	root.Sub("value").(*Scalar[float64]).Put(21.5)
	root.Sub("alarm.message").(*String).Put("minor: sensor drift")
	samples := make([]float64, 1024)
	for i := range samples {
		samples[i] = float64(i)
	}
	root.Sub("readings").(*Array[float64]).Put(samples)
	return root
}

// swappedOrder returns whichever byte order forces the element-wise codec
// path on this host.
func swappedOrder() stdbinary.ByteOrder {
	probe := []byte{0x01, 0x00}
	if stdbinary.NativeEndian.Uint16(probe) == stdbinary.LittleEndian.Uint16(probe) {
		return stdbinary.BigEndian
	}
	return stdbinary.LittleEndian
}

func benchSerialize(b *testing.B, order stdbinary.ByteOrder) {
	root := benchTree(b)
	w := wire.NewWriter(io.Discard, 4096, order)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := root.Serialize(w.Buffer(), w); err != nil {
			b.Fatal(err)
		}
		if err := w.FlushSerializeBuffer(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSerializeNative(b *testing.B) {
	benchSerialize(b, stdbinary.NativeEndian)
}

func BenchmarkSerializeSwapped(b *testing.B) {
	benchSerialize(b, swappedOrder())
}

func BenchmarkDeserializeNative(b *testing.B) {
	root := benchTree(b)
	raw := &bytes.Buffer{}
	w := wire.NewWriter(raw, 4096, stdbinary.NativeEndian)
	if err := root.Serialize(w.Buffer(), w); err != nil {
		b.Fatal(err)
	}
	if err := w.FlushSerializeBuffer(); err != nil {
		b.Fatal(err)
	}
	data := raw.Bytes()

	dst := Create(root.Descriptor()).(*Structure)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := wire.NewReader(bytes.NewReader(data), 4096, stdbinary.NativeEndian)
		if err := dst.Deserialize(r.Buffer(), r); err != nil {
			b.Fatal(err)
		}
	}
}
