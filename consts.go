package threehalves

import (
	"math/big"
)

const (
	// WordBits is the number of value bits carried by each element of Words.
	// The 64th bit of each uint64 is reserved as an overflow marker while
	// stepping.
	WordBits = 63

	// DefaultRP is the exponent offset used when none is supplied.
	DefaultRP = 100

	// DefaultDigits is the number of leading fractional bits binned per step.
	DefaultDigits = 10

	// MaxDigits bounds the size of a Bins histogram.
	MaxDigits = 31

	wordMask = 1<<WordBits - 1
	topBit   = 1 << WordBits
)

var (
	big0 = new(big.Int).SetInt64(0)
	big1 = new(big.Int).SetInt64(1)
	big3 = new(big.Int).SetInt64(3)

	bigWordMask = new(big.Int).SetUint64(wordMask)
)
