// Package bigmath provides the checked, wide-integer arithmetic the
// swap-curve engine runs on. Every operation fails with an explicit error
// on overflow or divide-by-zero rather than wrapping silently, the curve
// math must be deterministic across platforms and must never produce a
// wrong-but-plausible output (see the "Wide integers" design note).
//
// U256 carries 256-bit intermediates (the stable-swap Newton iteration
// routinely climbs into the 192-bit range); U128 is the 128-bit type the
// curve layer's public signatures use, range-checked against U256 on every
// narrowing conversion.
package bigmath

import (
	"fmt"

	"github.com/holiman/uint256"
)

// U256 is an unsigned 256-bit integer with checked arithmetic. The zero
// value is the integer zero.
type U256 struct {
	val uint256.Int
}

// ZeroU256 returns the additive identity.
func ZeroU256() U256 { return U256{} }

// OneU256 returns the multiplicative identity.
func OneU256() U256 {
	var z uint256.Int
	z.SetOne()
	return U256{val: z}
}

// NewU256 constructs a U256 from a uint64.
func NewU256(v uint64) U256 {
	var z uint256.Int
	z.SetUint64(v)
	return U256{val: z}
}

// U256FromU128 widens a U128 to U256. Always succeeds.
func U256FromU128(v U128) U256 {
	return U256{val: v.val}
}

// IsZero reports whether a is zero.
func (a U256) IsZero() bool {
	return a.val.IsZero()
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a U256) Cmp(b U256) int {
	return a.val.Cmp(&b.val)
}

// Equal reports whether a and b represent the same value.
func (a U256) Equal(b U256) bool {
	return a.val.Cmp(&b.val) == 0
}

// TryAdd returns a+b, failing with ErrArithmeticOverflow if the sum does
// not fit in 256 bits.
func (a U256) TryAdd(b U256) (U256, error) {
	var z uint256.Int
	_, overflow := z.AddOverflow(&a.val, &b.val)
	if overflow {
		return U256{}, fmt.Errorf("%w: %s + %s", ErrArithmeticOverflow, a, b)
	}
	return U256{val: z}, nil
}

// TrySub returns a-b, failing with ErrArithmeticOverflow if b > a.
func (a U256) TrySub(b U256) (U256, error) {
	var z uint256.Int
	_, underflow := z.SubOverflow(&a.val, &b.val)
	if underflow {
		return U256{}, fmt.Errorf("%w: %s - %s", ErrArithmeticOverflow, a, b)
	}
	return U256{val: z}, nil
}

// TryMul returns a*b, failing with ErrArithmeticOverflow if the product
// does not fit in 256 bits.
func (a U256) TryMul(b U256) (U256, error) {
	var z uint256.Int
	_, overflow := z.MulOverflow(&a.val, &b.val)
	if overflow {
		return U256{}, fmt.Errorf("%w: %s * %s", ErrArithmeticOverflow, a, b)
	}
	return U256{val: z}, nil
}

// TryDiv returns a/b rounded toward zero (floor, since both operands are
// unsigned), failing with ErrDivideByZero if b is zero.
func (a U256) TryDiv(b U256) (U256, error) {
	if b.IsZero() {
		return U256{}, fmt.Errorf("%w: %s / %s", ErrDivideByZero, a, b)
	}
	var z uint256.Int
	z.Div(&a.val, &b.val)
	return U256{val: z}, nil
}

// TryMod returns a%b, failing with ErrDivideByZero if b is zero.
func (a U256) TryMod(b U256) (U256, error) {
	if b.IsZero() {
		return U256{}, fmt.Errorf("%w: %s %% %s", ErrDivideByZero, a, b)
	}
	var z uint256.Int
	z.Mod(&a.val, &b.val)
	return U256{val: z}, nil
}

// TryPow returns a raised to the exp power, failing with
// ErrArithmeticOverflow on the first multiplication that would overflow.
// exp is a small exponent (the curve math never raises past 2), so this is
// implemented as repeated checked multiplication rather than via a
// wrapping Exp, which would silently discard the overflow we must catch.
func (a U256) TryPow(exp uint8) (U256, error) {
	if exp == 0 {
		return OneU256(), nil
	}
	result := a
	for i := uint8(1); i < exp; i++ {
		var err error
		result, err = result.TryMul(a)
		if err != nil {
			return U256{}, err
		}
	}
	return result, nil
}

// TryCeilDiv divides a by b, rounding the quotient toward +infinity, and
// also returns the remainder from the underlying floor division (0 when b
// divides a evenly). When a is zero it returns (0, 0) without touching b's
// validity beyond the zero check. Fails with ErrDivideByZero when b is
// zero.
func (a U256) TryCeilDiv(b U256) (quotient U256, remainder U256, err error) {
	if b.IsZero() {
		return U256{}, U256{}, fmt.Errorf("%w: %s /^ %s", ErrDivideByZero, a, b)
	}
	if a.IsZero() {
		return ZeroU256(), ZeroU256(), nil
	}
	var q, r uint256.Int
	q.Div(&a.val, &b.val)
	r.Mod(&a.val, &b.val)
	if !r.IsZero() {
		var one uint256.Int
		one.SetOne()
		q.Add(&q, &one)
	}
	return U256{val: q}, U256{val: r}, nil
}

// AbsDiff returns max(a,b)-min(a,b). Total: never fails.
func (a U256) AbsDiff(b U256) U256 {
	if a.val.Cmp(&b.val) >= 0 {
		var z uint256.Int
		z.Sub(&a.val, &b.val)
		return U256{val: z}
	}
	var z uint256.Int
	z.Sub(&b.val, &a.val)
	return U256{val: z}
}

// ToU128 narrows a to a U128, failing with ErrConversionFailure if a does
// not fit in 128 bits.
func (a U256) ToU128() (U128, error) {
	if a.val[2] != 0 || a.val[3] != 0 {
		return U128{}, fmt.Errorf("%w: %s does not fit in 128 bits", ErrConversionFailure, a)
	}
	return U128{val: a.val}, nil
}

// String renders a in base 10.
func (a U256) String() string {
	return a.val.Dec()
}
