// Package q47 implements the arithmetic of the Q47 construction: the
// derived value P = n^q - (n-1)^q for a main-star base n and a fixed odd
// exponent q (47 in the reference catalog). P grows past 300 decimal
// digits for the catalogued bases, so everything here is arbitrary
// precision; fixed-width arithmetic is never acceptable.
package q47

import "math/big"

// Exponent is the construction exponent used for the reference catalog.
const Exponent uint = 47

// Derived computes P = n^q - (n-1)^q.
// The caller guarantees n >= 1; for n = 1 the result is 1.
func Derived(n *big.Int, q uint) *big.Int {
	e := big.NewInt(int64(q))
	p := new(big.Int).Exp(n, e, nil)
	m := new(big.Int).Sub(n, big.NewInt(1))
	m.Exp(m, e, nil)
	return p.Sub(p, m)
}

// Residue3 returns P mod 3, which fixes the dead zone of the gap scan:
// every gap k with k ≡ P (mod 3) yields a candidate P-k divisible by 3.
// For odd q the residue is always 1, since x^q ≡ x (mod 3) for every x
// and therefore P ≡ n - (n-1) ≡ 1 (mod 3); computing it per base keeps
// the filter honest for arbitrary exponents.
func Residue3(p *big.Int) int {
	r := new(big.Int).Mod(p, big.NewInt(3))
	return int(r.Int64())
}
