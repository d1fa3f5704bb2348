// Package widemath centralizes the overflow-safe wide-integer arithmetic used
// by the pool accounting engine. All products of two balance-sized quantities
// are formed in 256-bit space before any division so intermediate overflow can
// never silently truncate a result.
package widemath

import (
	"math"

	"github.com/holiman/uint256"
)

// maxShares is 2^128 - 1, the ceiling for liquidity share counts.
var maxShares = func() *uint256.Int {
	one := uint256.NewInt(1)
	x := new(uint256.Int).Lsh(one, 128)
	return x.Sub(x, one)
}()

// FromBalance widens a native balance.
func FromBalance(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// ToBalanceSaturated narrows a wide value back to the native balance width,
// saturating at the maximum representable balance instead of overflowing.
func ToBalanceSaturated(x *uint256.Int) uint64 {
	if !x.IsUint64() {
		return math.MaxUint64
	}
	return x.Uint64()
}

// ClampShares saturates a wide value to the 128-bit share-count range.
func ClampShares(x *uint256.Int) *uint256.Int {
	if x.Gt(maxShares) {
		return new(uint256.Int).Set(maxShares)
	}
	return new(uint256.Int).Set(x)
}

// Mul returns the wide product of two native balances.
func Mul(a, b uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
}

// MulDiv returns floor(a*b/d) computed wide. d must be non-zero.
func MulDiv(a, b *uint256.Int, d *uint256.Int) *uint256.Int {
	p := new(uint256.Int).Mul(a, b)
	return p.Div(p, d)
}

// Sqrt returns floor(sqrt(x)) by the Babylonian method, seeded at x/2+1 and
// iterating while the candidate strictly decreases. Inputs of 1..3 return 1,
// zero returns zero.
func Sqrt(x *uint256.Int) *uint256.Int {
	three := uint256.NewInt(3)
	if x.Gt(three) {
		two := uint256.NewInt(2)
		z := new(uint256.Int).Set(x)
		c := new(uint256.Int).Div(x, two)
		c.Add(c, uint256.NewInt(1))
		for c.Lt(z) {
			z.Set(c)
			c.Div(x, c)
			c.Add(c, z)
			c.Div(c, two)
		}
		return z
	}
	if x.IsZero() {
		return uint256.NewInt(0)
	}
	return uint256.NewInt(1)
}

// Min returns the lesser of a and b. The share-issuance formula depends on
// this being a true minimum: the greater candidate would over-issue shares for
// an imbalanced deposit.
func Min(a, b *uint256.Int) *uint256.Int {
	if a.Gt(b) {
		return new(uint256.Int).Set(b)
	}
	return new(uint256.Int).Set(a)
}
