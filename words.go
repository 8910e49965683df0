package threehalves

import (
	"math/big"
	"math/bits"
	"strconv"
	"strings"
)

// Words is a little-endian vector of 63-bit words. Words[0] holds the least
// significant 63 bits of the value. Every element must be below 1<<63; see
// Valid.
type Words []uint64

// IsZero reports whether w represents 0.
func (w Words) IsZero() bool {
	for _, v := range w {
		if v != 0 {
			return false
		}
	}
	return true
}

// Valid reports whether every word fits in 63 bits.
func (w Words) Valid() bool {
	for _, v := range w {
		if v&topBit != 0 {
			return false
		}
	}
	return true
}

// BitLen returns the length of the absolute value of w in bits. The bit length
// of 0 is 0.
func (w Words) BitLen() int {
	for i := len(w) - 1; i >= 0; i-- {
		if w[i] != 0 {
			return i*WordBits + bits.Len64(w[i])
		}
	}
	return 0
}

// Bit returns the value of the i'th bit of w. Bits past the end read as 0.
func (w Words) Bit(i int) uint {
	if i < 0 {
		return 0
	}
	idx := i / WordBits
	if idx >= len(w) {
		return 0
	}
	return uint(w[idx]>>uint(i%WordBits)) & 1
}

// Window returns the n bits of w whose most significant bit is bit top, as an
// n-bit integer. Bits below 0 or past the end of w read as 0. n must be in
// the range [0, 63].
func (w Words) Window(top, n int) uint64 {
	if n <= 0 {
		return 0
	}
	if n > WordBits {
		panic("threehalves: window wider than a word")
	}

	lo := top - n + 1
	if lo >= 0 {
		return w.bits(lo, n)
	}

	// The low end of the window hangs off bit 0; those bits are zeros.
	avail := n + lo
	if avail <= 0 {
		return 0
	}
	return w.bits(0, avail) << uint(-lo)
}

// bits returns n bits starting at bit lo; lo must be >= 0, n in [1, 63].
func (w Words) bits(lo, n int) uint64 {
	idx, off := lo/WordBits, uint(lo%WordBits)

	var v uint64
	if idx < len(w) {
		v = w[idx] >> off
	}
	if int(off)+n > WordBits && idx+1 < len(w) {
		v |= w[idx+1] << (WordBits - off)
	}
	return v & (1<<uint(n) - 1)
}

// Mul3 multiplies the value of w by 3 in place and returns the result, which
// may have grown by one word. Each word is doubled and added to itself; bits
// carried past the 63rd are tracked separately for the shift and the add and
// fed into the next word.
func (w Words) Mul3() Words {
	var shiftedBit, carryBit uint64

	for i, v := range w {
		shifted := (v << 1) + shiftedBit
		if shifted >= topBit {
			shifted ^= topBit
			shiftedBit = 1
		} else {
			shiftedBit = 0
		}

		v += shifted + carryBit
		if v >= topBit {
			v ^= topBit
			carryBit = 1
		} else {
			carryBit = 0
		}
		w[i] = v
	}

	if shiftedBit|carryBit != 0 {
		w = append(w, shiftedBit+carryBit)
	}
	return w
}

// Clone returns a copy of w that does not share its backing array.
func (w Words) Clone() Words {
	if w == nil {
		return nil
	}
	out := make(Words, len(w))
	copy(out, w)
	return out
}

// Equal reports whether w and v hold the same words.
func (w Words) Equal(v Words) bool {
	if len(w) != len(v) {
		return false
	}
	for i := range w {
		if w[i] != v[i] {
			return false
		}
	}
	return true
}

// IntoBigInt sets b to the value of w.
func (w Words) IntoBigInt(b *big.Int) {
	b.Set(big0)
	var word big.Int
	for i := len(w) - 1; i >= 0; i-- {
		b.Lsh(b, WordBits)
		word.SetUint64(w[i] & wordMask)
		b.Or(b, &word)
	}
}

// Value returns the value of w as a new big.Int.
func (w Words) Value() *big.Int {
	var v big.Int
	w.IntoBigInt(&v)
	return &v
}

// Binary renders w as a base-2 string, most significant bit first. Every
// word but the most significant is zero-padded to 63 bits, so the result is
// the minimal binary representation of Value().
func (w Words) Binary() string {
	if w.IsZero() {
		return "0"
	}

	top := len(w) - 1
	for top > 0 && w[top] == 0 {
		top--
	}

	var sb strings.Builder
	sb.Grow(top*WordBits + bits.Len64(w[top]))
	sb.WriteString(strconv.FormatUint(w[top], 2))
	for i := top - 1; i >= 0; i-- {
		s := strconv.FormatUint(w[i], 2)
		for pad := WordBits - len(s); pad > 0; pad-- {
			sb.WriteByte('0')
		}
		sb.WriteString(s)
	}
	return sb.String()
}

// String returns the decimal value of each word, one per line, least
// significant first.
func (w Words) String() string {
	var sb strings.Builder
	for i, v := range w {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.FormatUint(v, 10))
	}
	return sb.String()
}
