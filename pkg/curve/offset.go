package curve

import (
	"fmt"

	"github.com/ammcore/swapcurve/pkg/bigmath"
	"github.com/ammcore/swapcurve/pkg/precise"
)

// OffsetCurve is a constant-product curve where token B's reserve is
// padded by a fixed TokenBOffset before the invariant is applied. It lets
// a pool quote token B against token A before any real B liquidity has
// been deposited, at the cost of disallowing further deposits once
// created (see AllowsDeposits): a later depositor would be priced against
// the synthetic reserve and diluted relative to the real one.
type OffsetCurve struct {
	TokenBOffset uint64
}

var _ Curve = OffsetCurve{}

// NewOffsetCurve validates tokenBOffset and constructs the curve.
func NewOffsetCurve(tokenBOffset uint64) (OffsetCurve, error) {
	c := OffsetCurve{TokenBOffset: tokenBOffset}
	if err := c.Validate(); err != nil {
		return OffsetCurve{}, err
	}
	return c, nil
}

// Validate requires TokenBOffset to be strictly positive; an offset of
// zero degenerates to a plain ConstantProductCurve and should be
// constructed as one.
func (c OffsetCurve) Validate() error {
	if c.TokenBOffset == 0 {
		return fmt.Errorf("%w: token_b_offset must be > 0", ErrInvalidCurve)
	}
	return nil
}

// SwapWithoutFees reuses the constant-product closed form against a
// synthetic reserve pair where the B-side reserve is padded by
// TokenBOffset, then reports the real (un-padded) amounts released.
func (c OffsetCurve) SwapWithoutFees(
	sourceAmount bigmath.U128,
	poolSourceAmount bigmath.U128,
	poolDestinationAmount bigmath.U128,
	direction TradeDirection,
) (SwapResult, error) {
	offset := bigmath.NewU128(c.TokenBOffset)

	switch direction {
	case AtoB:
		syntheticDest, err := poolDestinationAmount.TryAdd(offset)
		if err != nil {
			return SwapResult{}, err
		}
		return constantProductSwap(sourceAmount, poolSourceAmount, syntheticDest)
	case BtoA:
		syntheticSource, err := poolSourceAmount.TryAdd(offset)
		if err != nil {
			return SwapResult{}, err
		}
		return constantProductSwap(sourceAmount, syntheticSource, poolDestinationAmount)
	default:
		return SwapResult{}, fmt.Errorf("%w: unknown trade direction", ErrInvalidCurve)
	}
}

// PoolTokensToTradingTokens splits against the real reserves only: the
// synthetic offset exists solely to support quoting, never to be
// withdrawn, and AllowsDeposits forbids the deposit side entirely.
func (OffsetCurve) PoolTokensToTradingTokens(
	poolTokens bigmath.U128,
	poolTokenSupply bigmath.U128,
	reserveA bigmath.U128,
	reserveB bigmath.U128,
	round RoundDirection,
) (TradingTokenSplit, error) {
	return poolTokensToTradingTokens(poolTokens, poolTokenSupply, reserveA, reserveB, round)
}

// ValidateSupply allows the real token B reserve to start at zero: that
// is the entire point of the offset.
func (OffsetCurve) ValidateSupply(tokenAAmount, _ uint64) error {
	if tokenAAmount == 0 {
		return ErrEmptySupply
	}
	return nil
}

// AllowsDeposits is always false: see the type doc comment.
func (OffsetCurve) AllowsDeposits() bool {
	return false
}

// NewPoolSupply returns the default fixed initial LP supply.
func (OffsetCurve) NewPoolSupply() bigmath.U128 {
	return bigmath.NewU128(InitialSwapPoolAmount)
}

// NormalizedValue returns sqrt(reserveA * (reserveB + TokenBOffset)),
// counting the synthetic reserve so the invariant tracks what
// SwapWithoutFees actually prices against.
func (c OffsetCurve) NormalizedValue(reserveA, reserveB bigmath.U128) (precise.Number, error) {
	a, err := precise.FromU128(reserveA)
	if err != nil {
		return precise.Number{}, err
	}
	syntheticB, err := reserveB.TryAdd(bigmath.NewU128(c.TokenBOffset))
	if err != nil {
		return precise.Number{}, err
	}
	b, err := precise.FromU128(syntheticB)
	if err != nil {
		return precise.Number{}, err
	}
	return a.Mul(b).Sqrt()
}
