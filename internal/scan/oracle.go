package scan

import "math/big"

// Oracle decides probable primality of arbitrary-precision candidates.
// Implementations must never report a prime as composite; the tolerated
// failure mode is a negligible false-positive rate at the configured
// number of rounds. An error from the oracle invalidates every later
// verdict for the same base, so the scanner aborts that base on error.
type Oracle interface {
	IsProbablyPrime(x *big.Int, rounds int) (bool, error)
}

// MillerRabin is the production oracle. It delegates to the standard
// library test, which runs the requested Miller-Rabin rounds plus a
// Baillie-PSW check and is exact for candidates below 2^64.
type MillerRabin struct{}

func (MillerRabin) IsProbablyPrime(x *big.Int, rounds int) (bool, error) {
	return x.ProbablyPrime(rounds), nil
}
