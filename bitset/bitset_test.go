package bitset

import (
	"bytes"
	stdbinary "encoding/binary"
	"testing"

	"github.com/bearlytools/talon/wire"
)

func TestSetClearGet(t *testing.T) {
	b := New(0)
	for _, i := range []int{0, 5, 63, 64, 200} {
		b.Set(i)
	}
	for _, i := range []int{0, 5, 63, 64, 200} {
		if !b.Get(i) {
			t.Fatalf("TestSetClearGet: bit %d not set", i)
		}
	}
	if b.Get(1) || b.Get(199) || b.Get(10000) {
		t.Fatalf("TestSetClearGet: unset bits read back set")
	}
	if got := b.Cardinality(); got != 5 {
		t.Fatalf("TestSetClearGet: cardinality %d, want 5", got)
	}
	if got := b.Len(); got != 201 {
		t.Fatalf("TestSetClearGet: Len %d, want 201", got)
	}

	b.Clear(64)
	b.Clear(100000) // clearing past the end is a no-op
	if b.Get(64) {
		t.Fatalf("TestSetClearGet: bit 64 still set after Clear")
	}

	b.Flip(64)
	b.Flip(0)
	if !b.Get(64) || b.Get(0) {
		t.Fatalf("TestSetClearGet: Flip did not invert")
	}

	b.ClearAll()
	if !b.IsEmpty() || b.Len() != 0 {
		t.Fatalf("TestSetClearGet: not empty after ClearAll")
	}
}

func TestNextSetBit(t *testing.T) {
	b := New(0)
	for _, i := range []int{3, 64, 65, 130} {
		b.Set(i)
	}
	var got []int
	for i := b.NextSetBit(0); i >= 0; i = b.NextSetBit(i + 1) {
		got = append(got, i)
	}
	want := []int{3, 64, 65, 130}
	if len(got) != len(want) {
		t.Fatalf("TestNextSetBit: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TestNextSetBit: got %v, want %v", got, want)
		}
	}
	if got := b.NextSetBit(131); got != -1 {
		t.Fatalf("TestNextSetBit(past end): got %d, want -1", got)
	}
}

func TestLogicalOps(t *testing.T) {
	mk := func(is ...int) *BitSet {
		b := New(0)
		for _, i := range is {
			b.Set(i)
		}
		return b
	}

	tests := []struct {
		desc string
		op   func(a, b *BitSet)
		want *BitSet
	}{
		{desc: "or", op: (*BitSet).Or, want: mk(1, 2, 3, 70)},
		{desc: "and", op: (*BitSet).And, want: mk(2)},
		{desc: "andNot", op: (*BitSet).AndNot, want: mk(1)},
		{desc: "xor", op: (*BitSet).Xor, want: mk(1, 3, 70)},
	}
	for _, test := range tests {
		a := mk(1, 2)
		b := mk(2, 3, 70)
		test.op(a, b)
		if !a.Equal(test.want) {
			t.Fatalf("TestLogicalOps(%s): got %v, want %v", test.desc, a, test.want)
		}
	}
}

func TestCloneEqual(t *testing.T) {
	a := New(0)
	a.Set(7)
	a.Set(90)
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatalf("TestCloneEqual: clone differs")
	}
	b.Set(8)
	if a.Equal(b) || a.Get(8) {
		t.Fatalf("TestCloneEqual: clone shares storage with the original")
	}

	// Trailing zero words don't break equality.
	c := New(1024)
	c.Set(7)
	c.Set(90)
	if !a.Equal(c) {
		t.Fatalf("TestCloneEqual: differing capacity broke Equal")
	}
}

func TestString(t *testing.T) {
	b := New(0)
	if got := b.String(); got != "{}" {
		t.Fatalf("TestString(empty): got %q", got)
	}
	b.Set(0)
	b.Set(5)
	b.Set(70)
	if got := b.String(); got != "{0, 5, 70}" {
		t.Fatalf("TestString: got %q", got)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	src := New(0)
	for _, i := range []int{0, 9, 64, 200} {
		src.Set(i)
	}

	out := &bytes.Buffer{}
	w := wire.NewWriter(out, 16, stdbinary.LittleEndian)
	if err := src.Serialize(w.Buffer(), w); err != nil {
		t.Fatalf("TestSerializeRoundTrip: serialize: %s", err)
	}
	if err := w.FlushSerializeBuffer(); err != nil {
		t.Fatalf("TestSerializeRoundTrip: flush: %s", err)
	}

	r := wire.NewReader(bytes.NewReader(out.Bytes()), 16, stdbinary.LittleEndian)
	got := New(0)
	if err := got.Deserialize(r.Buffer(), r); err != nil {
		t.Fatalf("TestSerializeRoundTrip: deserialize: %s", err)
	}
	if !got.Equal(src) {
		t.Fatalf("TestSerializeRoundTrip: got %v, want %v", got, src)
	}
}
