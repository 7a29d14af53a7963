// Package mathutil holds the pure bit/arithmetic helpers used by the
// value-set analyses that sit downstream of SSA construction, plus the
// set_theory lattice contract those analyses implement.
package mathutil

import "math/bits"

// BLCIC computes "bit, lowest clear, isolated, complemented":
// (x+1) & ^x. It returns the lowest clear bit of x as a one-hot value,
// or 0 when x is all-ones.
func BLCIC(x uint64) uint64 {
	return (x + 1) & ^x
}

// TZMsk computes the trailing-zero mask of x: (x-1) & ^x. The result
// masks the trailing zero bits of x, and is all-ones when x == 0.
func TZMsk(x uint64) uint64 {
	return (x - 1) & ^x
}

// BitSmear fills every bit below the highest set bit of x, by ORing x
// with successive right shifts of itself.
func BitSmear(x uint64) uint64 {
	x |= x >> 32
	x |= x >> 16
	x |= x >> 8
	x |= x >> 4
	x |= x >> 2
	x |= x >> 1
	return x
}

// GCDLCM returns (gcd(m, n), lcm(m, n)) via the Euclidean algorithm.
// lcm(0, n) == 0. The m*n product feeding the lcm division is computed
// with a 128-bit widening multiply (math/bits.Mul64) so the pair
// remains correct even when m*n overflows 64 bits; the final lcm
// itself is reported mod 2^64 if it still doesn't fit.
func GCDLCM(m, n uint64) (gcd, lcm uint64) {
	hi, lo := bits.Mul64(m, n)
	om, on := m, n
	for om != 0 {
		om, on = on%om, om
	}
	gcd = on
	if gcd == 0 {
		return gcd, 0
	}
	q, _ := bits.Div64(hi%gcd, lo, gcd)
	return gcd, q
}

// MultiplicativeInverse returns t such that (a*t) mod n == 1, using the
// extended Euclidean algorithm. It reports false ("no inverse") when
// n == 0, when a mod n == 0, or when gcd(a, n) > 1. All intermediates
// stay within uint64 via the identity t' = (t + q*(n - nt)) mod n,
// which keeps the subtraction (n - nt) non-negative since nt < n
// throughout; the q*(n - nt) product is formed with a 128-bit
// multiply (math/bits.Mul64) and reduced mod n before the addition.
func MultiplicativeInverse(a, n uint64) (t uint64, ok bool) {
	if n == 0 {
		return 0, false
	}
	a %= n
	if a == 0 {
		return 0, false
	}

	var r, nt, nr uint64 = n, 1, a
	for nr != 0 {
		ot, or_ := nt, nr
		q := r / nr
		hi, lo := bits.Mul64(q, n-nt)
		_, qn := bits.Div64(hi%n, lo, n)
		nt = t + qn
		if nt < qn || nt >= n {
			nt -= n
		}
		nr = r - q*nr
		t, r = ot, or_
	}
	if r > 1 {
		return 0, false
	}
	return t, true
}
