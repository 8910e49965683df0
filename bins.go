package threehalves

import (
	"bufio"
	"io"
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Bins is a histogram of the leading fractional bits of (3/2)^(rp+1). It has
// 1<<digits entries.
type Bins []int

// NewBins allocates a histogram for the given number of fractional digits.
// It panics if digits is outside [1, MaxDigits].
func NewBins(digits int) Bins {
	if digits < 1 || digits > MaxDigits {
		panic(errors.Errorf("threehalves: bin digits %d out of range", digits))
	}
	return make(Bins, 1<<uint(digits))
}

// Bin returns the bin number for step rp, given w == 3^(rp+1). Multiplying
// (3/2)^(rp+1) by 2^(rp+1) leaves the fraction in bits [0, rp], so the
// leading fractional digits start at bit rp.
func Bin(w Words, rp, digits int) int {
	return int(w.Window(rp, digits))
}

// Digits returns the number of fractional digits b was sized for.
func (b Bins) Digits() int {
	if len(b) == 0 {
		return 0
	}
	return bits.TrailingZeros(uint(len(b)))
}

// Add counts the bin for step rp of w.
func (b Bins) Add(w Words, rp int) {
	b[Bin(w, rp, b.Digits())]++
}

// Total returns the sum of all counts.
func (b Bins) Total() (n int) {
	for _, c := range b {
		n += c
	}
	return n
}

// Merge adds the counts in o to b. Bins collected by separate runs over
// disjoint rp ranges can be merged to give the histogram of the whole range.
func (b Bins) Merge(o Bins) error {
	if len(b) != len(o) {
		return errors.Errorf("threehalves: cannot merge %d bins into %d", len(o), len(b))
	}
	for i, c := range o {
		b[i] += c
	}
	return nil
}

// WriteTo writes one decimal count per line.
func (b Bins) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)
	var scratch []byte
	for _, c := range b {
		scratch = strconv.AppendInt(scratch[:0], int64(c), 10)
		scratch = append(scratch, '\n')
		wn, err := bw.Write(scratch)
		n += int64(wn)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadBins reads a histogram written by Bins.WriteTo. The number of lines
// must be a power of two.
func ReadBins(r io.Reader) (Bins, error) {
	var out Bins
	scn := bufio.NewScanner(r)
	line := 0
	for scn.Scan() {
		line++
		txt := strings.TrimSpace(scn.Text())
		if txt == "" {
			continue
		}
		c, err := strconv.Atoi(txt)
		if err != nil {
			return nil, errors.Wrapf(err, "threehalves: bins line %d", line)
		}
		if c < 0 {
			return nil, errors.Errorf("threehalves: bins line %d: negative count %d", line, c)
		}
		out = append(out, c)
	}
	if err := scn.Err(); err != nil {
		return nil, errors.Wrap(err, "threehalves: read bins")
	}

	if len(out) < 2 || len(out)&(len(out)-1) != 0 {
		return nil, errors.Errorf("threehalves: bins count %d is not a power of two", len(out))
	}
	return out, nil
}
