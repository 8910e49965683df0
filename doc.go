/*
Package threehalves generates and steps exact powers of 3 stored as vectors of
63-bit words, for binning the fractional bits of the (3/2)^n sequence.

A seed for a given rp is 3^(rp+1), split into 63-bit words from the least
significant end:

	w, _ := Generate(0)
	fmt.Println(w)
	// Output: 3

	w, _ = Generate(100)
	fmt.Println(len(w), w.BitLen())
	// Output: 3 161

Words are stepped one rp at a time by multiplying by 3 with a shift-and-add
carry scheme, so a seed for rp can be advanced to rp+n without going back
through big.Int:

	s, _ := SeedState(100)
	s = s.Next()    // s.Words == Generate(101)

The leading fractional bits of (3/2)^(rp+1) are the bits of 3^(rp+1) starting
at bit rp and working down. Bin extracts them, and Bins accumulates a
histogram of them across steps.

State and Bins can be read from and written to the plain text formats used by
the threehalves command:

	- State: rp on the first line, then one decimal word per line,
	  least significant first.
	- Bins: one decimal count per line.

*/
package threehalves
