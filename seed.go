package threehalves

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrNegativeRP is returned when a negative exponent offset is supplied.
var ErrNegativeRP = errors.New("threehalves: rp must not be negative")

// Power returns 3^(rp+1).
func Power(rp int) (*big.Int, error) {
	if rp < 0 {
		return nil, errors.WithStack(ErrNegativeRP)
	}
	exp := new(big.Int).SetInt64(int64(rp))
	exp.Add(exp, big1)
	return new(big.Int).Exp(big3, exp, nil), nil
}

// Generate computes 3^(rp+1) and splits it into 63-bit words, least
// significant first. The final word holds whatever bits remain and may be
// shorter than 63 bits; there is never an empty trailing word.
func Generate(rp int) (Words, error) {
	v, err := Power(rp)
	if err != nil {
		return nil, err
	}
	w, _ := WordsFromBigInt(v)
	return w, nil
}

// WordsFromBigInt splits v into 63-bit words, least significant first. Zero
// yields a single zero word. Negative values can't be represented and set ok
// to false.
func WordsFromBigInt(v *big.Int) (out Words, ok bool) {
	if v.Sign() < 0 {
		return nil, false
	}

	bitLen := v.BitLen()
	if bitLen == 0 {
		return Words{0}, true
	}

	out = make(Words, 0, wordCount(bitLen))
	var rem, word big.Int
	rem.Set(v)
	for rem.Sign() > 0 {
		word.And(&rem, bigWordMask)
		out = append(out, word.Uint64())
		rem.Rsh(&rem, WordBits)
	}
	return out, true
}

// SplitBinary applies the 63-bit window rule directly to a base-2 string,
// most significant bit first. Window n covers [len-63*(n+1), len-63*n),
// clipped at 0 for the final window.
func SplitBinary(s string) (Words, error) {
	if len(s) == 0 {
		return nil, errors.New("threehalves: empty binary string")
	}

	bitLen := len(s)
	out := make(Words, 0, wordCount(bitLen))
	for end := bitLen; end > 0; end -= WordBits {
		start := end - WordBits
		if start < 0 {
			start = 0
		}

		var v uint64
		for i := start; i < end; i++ {
			switch s[i] {
			case '0':
				v <<= 1
			case '1':
				v = v<<1 | 1
			default:
				return nil, errors.Errorf("threehalves: invalid binary digit %q at index %d", s[i], i)
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func wordCount(bitLen int) int {
	return (bitLen + WordBits - 1) / WordBits
}
