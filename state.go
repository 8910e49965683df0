package threehalves

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// State is a checkpoint of the stepping engine: Words holds 3^(RP+1).
type State struct {
	RP    int
	Words Words
}

// SeedState creates the State for rp using Generate.
func SeedState(rp int) (State, error) {
	w, err := Generate(rp)
	if err != nil {
		return State{}, err
	}
	return State{RP: rp, Words: w}, nil
}

// Next returns the state for RP+1. s is not modified.
func (s State) Next() State {
	return State{RP: s.RP + 1, Words: s.Words.Clone().Mul3()}
}

// Check verifies that Words holds exactly 3^(RP+1).
func (s State) Check() error {
	if !s.Words.Valid() {
		return errors.Errorf("threehalves: state rp %d has a word wider than %d bits", s.RP, WordBits)
	}
	exp, err := Power(s.RP)
	if err != nil {
		return err
	}
	if got := s.Words.Value(); got.Cmp(exp) != 0 {
		return errors.Errorf("threehalves: state rp %d does not hold 3^%d (bitlen %d, expected %d)",
			s.RP, s.RP+1, got.BitLen(), exp.BitLen())
	}
	return nil
}

// WriteTo writes RP on the first line followed by one decimal word per line,
// least significant first.
func (s State) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)
	scratch := strconv.AppendInt(nil, int64(s.RP), 10)
	scratch = append(scratch, '\n')
	wn, err := bw.Write(scratch)
	n += int64(wn)
	if err != nil {
		return n, err
	}

	for _, v := range s.Words {
		scratch = strconv.AppendUint(scratch[:0], v, 10)
		scratch = append(scratch, '\n')
		wn, err := bw.Write(scratch)
		n += int64(wn)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadState reads a State written by State.WriteTo. Empty input yields the
// zero State, which has no words; callers typically seed it with SeedState.
func ReadState(r io.Reader) (s State, err error) {
	scn := bufio.NewScanner(r)
	line := 0
	haveRP := false
	for scn.Scan() {
		line++
		txt := strings.TrimSpace(scn.Text())
		if txt == "" {
			continue
		}

		if !haveRP {
			rp, err := strconv.Atoi(txt)
			if err != nil {
				return State{}, errors.Wrapf(err, "threehalves: state line %d", line)
			}
			if rp < 0 {
				return State{}, errors.Wrapf(ErrNegativeRP, "threehalves: state line %d", line)
			}
			s.RP, haveRP = rp, true
			continue
		}

		v, err := strconv.ParseUint(txt, 10, 64)
		if err != nil {
			return State{}, errors.Wrapf(err, "threehalves: state line %d", line)
		}
		if v&topBit != 0 {
			return State{}, errors.Errorf("threehalves: state line %d: word %d wider than %d bits", line, v, WordBits)
		}
		s.Words = append(s.Words, v)
	}
	if err := scn.Err(); err != nil {
		return State{}, errors.Wrap(err, "threehalves: read state")
	}
	return s, nil
}
