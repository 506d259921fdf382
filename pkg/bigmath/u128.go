package bigmath

import (
	"fmt"

	"github.com/holiman/uint256"
)

// U128 is an unsigned 128-bit integer with checked arithmetic. It is the
// type the curve layer exposes at its boundary (reserves, amounts, pool
// token supply); internally it is backed by the same 256-bit limb storage
// as U256 so that every operation can be bounds-checked against the full
// 128-bit range after the fact, rather than reimplementing fixed-width
// carry logic. The zero value is the integer zero.
type U128 struct {
	val uint256.Int
}

func fitsU128(v *uint256.Int) bool {
	return v[2] == 0 && v[3] == 0
}

// ZeroU128 returns the additive identity.
func ZeroU128() U128 { return U128{} }

// OneU128 returns the multiplicative identity.
func OneU128() U128 {
	var z uint256.Int
	z.SetOne()
	return U128{val: z}
}

// NewU128 constructs a U128 from a uint64.
func NewU128(v uint64) U128 {
	var z uint256.Int
	z.SetUint64(v)
	return U128{val: z}
}

// IsZero reports whether a is zero.
func (a U128) IsZero() bool {
	return a.val.IsZero()
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a U128) Cmp(b U128) int {
	return a.val.Cmp(&b.val)
}

// Equal reports whether a and b represent the same value.
func (a U128) Equal(b U128) bool {
	return a.val.Cmp(&b.val) == 0
}

// ToU256 widens a to U256. Always succeeds.
func (a U128) ToU256() U256 {
	return U256{val: a.val}
}

// TryAdd returns a+b, failing with ErrArithmeticOverflow if the sum does
// not fit in 128 bits.
func (a U128) TryAdd(b U128) (U128, error) {
	var z uint256.Int
	_, overflow := z.AddOverflow(&a.val, &b.val)
	if overflow || !fitsU128(&z) {
		return U128{}, fmt.Errorf("%w: %s + %s", ErrArithmeticOverflow, a, b)
	}
	return U128{val: z}, nil
}

// TrySub returns a-b, failing with ErrArithmeticOverflow if b > a.
func (a U128) TrySub(b U128) (U128, error) {
	var z uint256.Int
	_, underflow := z.SubOverflow(&a.val, &b.val)
	if underflow {
		return U128{}, fmt.Errorf("%w: %s - %s", ErrArithmeticOverflow, a, b)
	}
	return U128{val: z}, nil
}

// TryMul returns a*b, failing with ErrArithmeticOverflow if the product
// does not fit in 128 bits.
func (a U128) TryMul(b U128) (U128, error) {
	var z uint256.Int
	_, overflow := z.MulOverflow(&a.val, &b.val)
	if overflow || !fitsU128(&z) {
		return U128{}, fmt.Errorf("%w: %s * %s", ErrArithmeticOverflow, a, b)
	}
	return U128{val: z}, nil
}

// TryDiv returns a/b rounded toward zero, failing with ErrDivideByZero if
// b is zero.
func (a U128) TryDiv(b U128) (U128, error) {
	if b.IsZero() {
		return U128{}, fmt.Errorf("%w: %s / %s", ErrDivideByZero, a, b)
	}
	var z uint256.Int
	z.Div(&a.val, &b.val)
	return U128{val: z}, nil
}

// TryPow returns a raised to the exp power, failing with
// ErrArithmeticOverflow on the first multiplication that would overflow
// 128 bits.
func (a U128) TryPow(exp uint8) (U128, error) {
	if exp == 0 {
		return OneU128(), nil
	}
	result := a
	for i := uint8(1); i < exp; i++ {
		var err error
		result, err = result.TryMul(a)
		if err != nil {
			return U128{}, err
		}
	}
	return result, nil
}

// TryCeilDiv divides a by b, rounding the quotient toward +infinity, and
// also returns the floor-division remainder. When a is zero it returns
// (0, 0). Fails with ErrDivideByZero when b is zero.
func (a U128) TryCeilDiv(b U128) (quotient U128, remainder U128, err error) {
	if b.IsZero() {
		return U128{}, U128{}, fmt.Errorf("%w: %s /^ %s", ErrDivideByZero, a, b)
	}
	if a.IsZero() {
		return ZeroU128(), ZeroU128(), nil
	}
	var q, r uint256.Int
	q.Div(&a.val, &b.val)
	r.Mod(&a.val, &b.val)
	if !r.IsZero() {
		var one uint256.Int
		one.SetOne()
		q.Add(&q, &one)
	}
	// q <= a <= maxU128 so it always fits; no overflow check needed.
	return U128{val: q}, U128{val: r}, nil
}

// AbsDiff returns max(a,b)-min(a,b). Total: never fails.
func (a U128) AbsDiff(b U128) U128 {
	if a.val.Cmp(&b.val) >= 0 {
		var z uint256.Int
		z.Sub(&a.val, &b.val)
		return U128{val: z}
	}
	var z uint256.Int
	z.Sub(&b.val, &a.val)
	return U128{val: z}
}

// Uint64 narrows a to a uint64, failing with ErrConversionFailure if a does
// not fit in 64 bits.
func (a U128) Uint64() (uint64, error) {
	if a.val[1] != 0 || a.val[2] != 0 || a.val[3] != 0 {
		return 0, fmt.Errorf("%w: %s does not fit in 64 bits", ErrConversionFailure, a)
	}
	return a.val[0], nil
}

// String renders a in base 10.
func (a U128) String() string {
	return a.val.Dec()
}
