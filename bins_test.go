package threehalves

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/shabbyrobe/golib/assert"
)

func TestBin(t *testing.T) {
	// Leading 10 fractional bits of (3/2)^1 .. (3/2)^12
	expected := []int{512, 256, 384, 64, 608, 400, 88, 644, 454, 681, 509, 764}

	tt := assert.WrapTB(t)
	s, err := SeedState(0)
	tt.MustOK(err)
	for rp, exp := range expected {
		tt.MustEqual(exp, Bin(s.Words, s.RP, DefaultDigits), "rp %d", rp)
		s = s.Next()
	}
}

func TestBinAcrossWords(t *testing.T) {
	for _, tc := range []struct {
		rp, out int
	}{
		{62, 664},
		{63, 484},
		{64, 215},
		{100, 98},
	} {
		t.Run(fmt.Sprintf("rp=%d", tc.rp), func(t *testing.T) {
			tt := assert.WrapTB(t)
			w, err := Generate(tc.rp)
			tt.MustOK(err)
			tt.MustEqual(tc.out, Bin(w, tc.rp, DefaultDigits))
		})
	}
}

func TestNewBins(t *testing.T) {
	tt := assert.WrapTB(t)
	b := NewBins(DefaultDigits)
	tt.MustEqual(1024, len(b))
	tt.MustEqual(DefaultDigits, b.Digits())
	tt.MustEqual(0, Bins(nil).Digits())

	for _, digits := range []int{0, MaxDigits + 1} {
		func() {
			defer func() {
				tt.MustAssert(recover() != nil, "digits %d did not panic", digits)
			}()
			NewBins(digits)
		}()
	}
}

func TestBinsAdd(t *testing.T) {
	tt := assert.WrapTB(t)

	b := NewBins(4)
	s, err := SeedState(0)
	tt.MustOK(err)
	for i := 0; i < 100; i++ {
		b.Add(s.Words, s.RP)
		s = s.Next()
	}
	tt.MustEqual(100, b.Total())

	// (3/2)^1 == 1.1b
	b = NewBins(4)
	w, _ := Generate(0)
	b.Add(w, 0)
	tt.MustEqual(1, b[8])
}

func TestBinsMerge(t *testing.T) {
	tt := assert.WrapTB(t)

	a := Bins{1, 2, 3, 4}
	tt.MustOK(a.Merge(Bins{10, 20, 30, 40}))
	tt.MustEqual(Bins{11, 22, 33, 44}, a)
	tt.MustAssert(a.Merge(Bins{1, 2}) != nil)
	tt.MustEqual(Bins{11, 22, 33, 44}, a)
}

func TestBinsMergeSplitRuns(t *testing.T) {
	tt := assert.WrapTB(t)

	whole := NewBins(DefaultDigits)
	s, err := SeedState(0)
	tt.MustOK(err)
	for i := 0; i < 300; i++ {
		whole.Add(s.Words, s.RP)
		s = s.Next()
	}

	first, second := NewBins(DefaultDigits), NewBins(DefaultDigits)
	s, err = SeedState(0)
	tt.MustOK(err)
	for i := 0; i < 120; i++ {
		first.Add(s.Words, s.RP)
		s = s.Next()
	}
	s, err = SeedState(120)
	tt.MustOK(err)
	for i := 120; i < 300; i++ {
		second.Add(s.Words, s.RP)
		s = s.Next()
	}

	tt.MustOK(first.Merge(second))
	tt.MustEqual(whole, first)
}

func TestBinsReadWrite(t *testing.T) {
	tt := assert.WrapTB(t)

	b := Bins{0, 5, 12, 1}
	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	tt.MustOK(err)
	tt.MustEqual("0\n5\n12\n1\n", buf.String())
	tt.MustEqual(int64(buf.Len()), n)

	rb, err := ReadBins(&buf)
	tt.MustOK(err)
	tt.MustEqual(b, rb)
}

func TestReadBinsInvalid(t *testing.T) {
	for _, tc := range []struct {
		name, in string
	}{
		{"empty", ""},
		{"single", "1\n"},
		{"notpow2", "1\n2\n3\n"},
		{"garbage", "1\nfoo\n"},
		{"negative", "1\n-2\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tt := assert.WrapTB(t)
			_, err := ReadBins(strings.NewReader(tc.in))
			tt.MustAssert(err != nil)
		})
	}
}
