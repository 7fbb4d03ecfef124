// Package bitset implements a dynamically sized bit vector. The talon change
// tracker indexes it by value-node offset: a set bit marks a node whose value
// changed since a reference snapshot. The bitset itself has no ties to any
// tree; interpreting its bits is only meaningful against the tree shape that
// produced the offsets.
package bitset

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/bearlytools/talon/wire"
)

const wordBits = 64

// BitSet is a growable vector of bits, all false until set. The zero value is
// an empty, usable BitSet.
type BitSet struct {
	words []uint64
}

// New returns a BitSet with capacity for at least nbits bits. Capacity is a
// hint only; any Set grows the vector as needed.
func New(nbits int) *BitSet {
	if nbits < 0 {
		nbits = 0
	}
	return &BitSet{words: make([]uint64, (nbits+wordBits-1)/wordBits)}
}

func (b *BitSet) grow(word int) {
	if word < len(b.words) {
		return
	}
	next := make([]uint64, word+1)
	copy(next, b.words)
	b.words = next
}

// Set sets the bit at index i to true.
func (b *BitSet) Set(i int) {
	b.grow(i / wordBits)
	b.words[i/wordBits] |= 1 << (uint(i) % wordBits)
}

// Clear sets the bit at index i to false.
func (b *BitSet) Clear(i int) {
	w := i / wordBits
	if w >= len(b.words) {
		return
	}
	b.words[w] &^= 1 << (uint(i) % wordBits)
}

// Get reports whether the bit at index i is set.
func (b *BitSet) Get(i int) bool {
	w := i / wordBits
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&(1<<(uint(i)%wordBits)) != 0
}

// Flip inverts the bit at index i.
func (b *BitSet) Flip(i int) {
	b.grow(i / wordBits)
	b.words[i/wordBits] ^= 1 << (uint(i) % wordBits)
}

// ClearAll sets every bit to false.
func (b *BitSet) ClearAll() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// NextSetBit returns the index of the first set bit at or after from, or -1
// if there is none.
func (b *BitSet) NextSetBit(from int) int {
	if from < 0 {
		from = 0
	}
	w := from / wordBits
	if w >= len(b.words) {
		return -1
	}
	cur := b.words[w] &^ ((1 << (uint(from) % wordBits)) - 1)
	for {
		if cur != 0 {
			return w*wordBits + bits.TrailingZeros64(cur)
		}
		w++
		if w >= len(b.words) {
			return -1
		}
		cur = b.words[w]
	}
}

// Cardinality returns the number of set bits.
func (b *BitSet) Cardinality() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether no bit is set.
func (b *BitSet) IsEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Len returns one past the index of the highest set bit, 0 if none is set.
func (b *BitSet) Len() int {
	for i := len(b.words) - 1; i >= 0; i-- {
		if b.words[i] != 0 {
			return i*wordBits + wordBits - bits.LeadingZeros64(b.words[i])
		}
	}
	return 0
}

func (b *BitSet) usedWords() int {
	n := len(b.words)
	for n > 0 && b.words[n-1] == 0 {
		n--
	}
	return n
}

// Or sets every bit of b that is set in o.
func (b *BitSet) Or(o *BitSet) {
	b.grow(len(o.words) - 1)
	for i, w := range o.words {
		b.words[i] |= w
	}
}

// And clears every bit of b that is not set in o.
func (b *BitSet) And(o *BitSet) {
	for i := range b.words {
		if i < len(o.words) {
			b.words[i] &= o.words[i]
		} else {
			b.words[i] = 0
		}
	}
}

// AndNot clears every bit of b that is set in o.
func (b *BitSet) AndNot(o *BitSet) {
	for i := range b.words {
		if i >= len(o.words) {
			break
		}
		b.words[i] &^= o.words[i]
	}
}

// Xor flips every bit of b that is set in o.
func (b *BitSet) Xor(o *BitSet) {
	b.grow(len(o.words) - 1)
	for i, w := range o.words {
		b.words[i] ^= w
	}
}

// Clone returns an independent copy.
func (b *BitSet) Clone() *BitSet {
	n := &BitSet{words: make([]uint64, len(b.words))}
	copy(n.words, b.words)
	return n
}

// Equal reports whether b and o have exactly the same set bits.
func (b *BitSet) Equal(o *BitSet) bool {
	long, short := b.words, o.words
	if len(short) > len(long) {
		long, short = short, long
	}
	for i, w := range long {
		var ow uint64
		if i < len(short) {
			ow = short[i]
		}
		if w != ow {
			return false
		}
	}
	return true
}

// String renders the set bit indices, e.g. "{0, 5, 7}".
func (b *BitSet) String() string {
	sb := strings.Builder{}
	sb.WriteByte('{')
	first := true
	for i := b.NextSetBit(0); i >= 0; i = b.NextSetBit(i + 1) {
		if !first {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(i))
		first = false
	}
	sb.WriteByte('}')
	return sb.String()
}

// Serialize writes the bitset as a word count followed by the used words.
func (b *BitSet) Serialize(buf *wire.ByteBuffer, ctl wire.SerializeControl) error {
	used := b.usedWords()
	if err := wire.WriteSize(buf, ctl, used); err != nil {
		return err
	}
	for _, w := range b.words[:used] {
		if err := ctl.EnsureBuffer(8); err != nil {
			return err
		}
		wire.Put(buf, w)
	}
	return nil
}

// Deserialize replaces the bitset's contents with words read from the buffer.
func (b *BitSet) Deserialize(buf *wire.ByteBuffer, ctl wire.DeserializeControl) error {
	used, err := wire.ReadSize(buf, ctl)
	if err != nil {
		return err
	}
	words := make([]uint64, used)
	for i := 0; i < used; i++ {
		if err := ctl.EnsureData(8); err != nil {
			return err
		}
		words[i] = wire.Get[uint64](buf)
	}
	b.words = words
	return nil
}
