// Package precise provides the fixed-point rational helper the curve layer
// uses only to state and check its value-preservation invariants (swap,
// deposit, and withdraw never reduce the pool's normalized value). It is
// never on a path that produces an on-chain-bound integer, those paths are
// pure U128/U256 checked arithmetic in pkg/bigmath, so Number is free to
// use an arbitrary-precision decimal representation under the hood.
//
// Adapted from the teacher repository's primitives.Decimal wrapper around
// shopspring/decimal, narrowed to the handful of operations the curve
// invariants need, plus a hand-rolled Sqrt: shopspring/decimal has no
// native square root, and the original spl-math PreciseNumber this spec is
// distilled from implements its own Newton-iteration sqrt rather than
// reaching for one, so we do the same.
package precise

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/ammcore/swapcurve/pkg/bigmath"
)

// ErrDivisionByZero is returned by Div when the divisor is zero.
var ErrDivisionByZero = errors.New("precise: division by zero")

// sqrtIterations bounds the Newton iteration in Sqrt. From the a/2+1 seed
// each step roughly halves the guess until it nears the root, so an input
// near 2^k takes about k/2 steps plus a few more to converge. Inputs above
// roughly 2^180 can exhaust this bound, and Sqrt then returns the last
// (too large) iterate.
const sqrtIterations = 100

// Number is an arbitrary-precision decimal value used only for normalized
// pool-value comparisons.
type Number struct {
	d decimal.Decimal
}

// Zero returns the Number 0.
func Zero() Number {
	return Number{d: decimal.Zero}
}

// FromUint64 constructs a Number from a uint64.
func FromUint64(v uint64) Number {
	return Number{d: decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)}
}

// FromU128 constructs a Number from a bigmath.U128 by round-tripping
// through its decimal string representation.
func FromU128(v bigmath.U128) (Number, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return Number{}, fmt.Errorf("precise: parse u128 %s: %w", v, err)
	}
	return Number{d: d}, nil
}

// Add returns a+b.
func (a Number) Add(b Number) Number {
	return Number{d: a.d.Add(b.d)}
}

// Sub returns a-b.
func (a Number) Sub(b Number) Number {
	return Number{d: a.d.Sub(b.d)}
}

// Mul returns a*b.
func (a Number) Mul(b Number) Number {
	return Number{d: a.d.Mul(b.d)}
}

// Div returns a/b, failing with ErrDivisionByZero if b is zero.
func (a Number) Div(b Number) (Number, error) {
	if b.d.IsZero() {
		return Number{}, ErrDivisionByZero
	}
	return Number{d: a.d.DivRound(b.d, 18)}, nil
}

// GreaterThanOrEqual reports whether a >= b.
func (a Number) GreaterThanOrEqual(b Number) bool {
	return a.d.Cmp(b.d) >= 0
}

// Equal reports whether a and b represent the same value.
func (a Number) Equal(b Number) bool {
	return a.d.Equal(b.d)
}

// Sqrt returns the (non-negative) square root of a via Newton's method,
// failing if a is negative. The precise-number helper only ever square
// roots a product of two non-negative reserves, so a negative input
// indicates a caller bug, not a data condition to recover from gracefully.
func (a Number) Sqrt() (Number, error) {
	if a.d.IsNegative() {
		return Number{}, fmt.Errorf("precise: sqrt of negative number %s", a.d.String())
	}
	if a.d.IsZero() {
		return Zero(), nil
	}

	two := decimal.NewFromInt(2)
	guess := a.d
	// Seed the guess with a/2 + 1 so iteration converges from above for
	// both very small and very large inputs.
	guess = guess.DivRound(two, 18).Add(decimal.NewFromInt(1))

	for i := 0; i < sqrtIterations; i++ {
		// next = (guess + a/guess) / 2
		quotient := a.d.DivRound(guess, 30)
		next := guess.Add(quotient).DivRound(two, 30)
		if next.Sub(guess).Abs().LessThan(decimal.New(1, -15)) {
			guess = next
			break
		}
		guess = next
	}
	return Number{d: guess.Round(18)}, nil
}

// String renders the Number in decimal form.
func (a Number) String() string {
	return a.d.String()
}
