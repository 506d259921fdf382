package curve

import (
	"fmt"

	"github.com/ammcore/swapcurve/pkg/bigmath"
	"github.com/ammcore/swapcurve/pkg/precise"
)

// ConstantPriceCurve prices token B linearly against token A: one unit of
// B always equals TokenBPrice units of A, regardless of reserves. Useful
// for pegged-asset pairs where a stable-swap's amplification machinery
// would be overkill.
type ConstantPriceCurve struct {
	TokenBPrice uint64
}

var _ Curve = ConstantPriceCurve{}

// NewConstantPriceCurve validates tokenBPrice and constructs the curve.
func NewConstantPriceCurve(tokenBPrice uint64) (ConstantPriceCurve, error) {
	c := ConstantPriceCurve{TokenBPrice: tokenBPrice}
	if err := c.Validate(); err != nil {
		return ConstantPriceCurve{}, err
	}
	return c, nil
}

// Validate requires TokenBPrice to be strictly positive.
func (c ConstantPriceCurve) Validate() error {
	if c.TokenBPrice == 0 {
		return fmt.Errorf("%w: token_b_price must be > 0", ErrInvalidCurve)
	}
	return nil
}

// SwapWithoutFees converts linearly at the fixed price. On AtoB, the
// destination amount floors (the trader may leave dust unconsumed, whose
// disposition is the caller's policy); on BtoA, the conversion is exact,
// subject to overflow.
func (c ConstantPriceCurve) SwapWithoutFees(
	sourceAmount bigmath.U128,
	_ bigmath.U128,
	_ bigmath.U128,
	direction TradeDirection,
) (SwapResult, error) {
	if sourceAmount.IsZero() {
		return SwapResult{}, nil
	}
	price := bigmath.NewU128(c.TokenBPrice)

	switch direction {
	case AtoB:
		destinationReleased, err := sourceAmount.TryDiv(price)
		if err != nil {
			return SwapResult{}, err
		}
		if destinationReleased.IsZero() {
			return SwapResult{}, nil
		}
		sourceConsumed, err := destinationReleased.TryMul(price)
		if err != nil {
			return SwapResult{}, err
		}
		return SwapResult{SourceConsumed: sourceConsumed, DestinationReleased: destinationReleased}, nil
	case BtoA:
		destinationReleased, err := sourceAmount.TryMul(price)
		if err != nil {
			return SwapResult{}, err
		}
		return SwapResult{SourceConsumed: sourceAmount, DestinationReleased: destinationReleased}, nil
	default:
		return SwapResult{}, fmt.Errorf("%w: unknown trade direction", ErrInvalidCurve)
	}
}

// PoolTokensToTradingTokens normalizes token B onto token A's basis by
// multiplying by TokenBPrice, runs the shared §4.2.2 split against that
// normalized reserve pair, then de-normalizes the B-side result, rounding
// the de-normalization the same direction as the split itself. Without
// this normalization, a price asymmetry between A and B would let
// depositors and withdrawers dilute or drain the side priced richer.
func (c ConstantPriceCurve) PoolTokensToTradingTokens(
	poolTokens bigmath.U128,
	poolTokenSupply bigmath.U128,
	reserveA bigmath.U128,
	reserveB bigmath.U128,
	round RoundDirection,
) (TradingTokenSplit, error) {
	price := bigmath.NewU128(c.TokenBPrice)

	normalizedB, err := reserveB.TryMul(price)
	if err != nil {
		return TradingTokenSplit{}, err
	}

	split, err := poolTokensToTradingTokens(poolTokens, poolTokenSupply, reserveA, normalizedB, round)
	if err != nil {
		return TradingTokenSplit{}, err
	}

	var amountB bigmath.U128
	switch round {
	case Ceiling:
		amountB, _, err = split.AmountB.TryCeilDiv(price)
	default:
		amountB, err = split.AmountB.TryDiv(price)
	}
	if err != nil {
		return TradingTokenSplit{}, err
	}

	return TradingTokenSplit{AmountA: split.AmountA, AmountB: amountB}, nil
}

// ValidateSupply allows one side to start at zero: the curve's fixed price
// fully determines the value of a one-sided deposit. Both sides zero is
// still rejected, a pool with no reserves at all has nothing for the
// price to fill in.
func (ConstantPriceCurve) ValidateSupply(tokenAAmount, tokenBAmount uint64) error {
	if tokenAAmount == 0 && tokenBAmount == 0 {
		return ErrEmptySupply
	}
	return nil
}

// AllowsDeposits is always true.
func (ConstantPriceCurve) AllowsDeposits() bool {
	return true
}

// NewPoolSupply returns the default fixed initial LP supply.
func (ConstantPriceCurve) NewPoolSupply() bigmath.U128 {
	return bigmath.NewU128(InitialSwapPoolAmount)
}

// NormalizedValue returns (reserveA + reserveB*TokenBPrice) / 2.
func (c ConstantPriceCurve) NormalizedValue(reserveA, reserveB bigmath.U128) (precise.Number, error) {
	a, err := precise.FromU128(reserveA)
	if err != nil {
		return precise.Number{}, err
	}
	b, err := precise.FromU128(reserveB)
	if err != nil {
		return precise.Number{}, err
	}
	price := precise.FromUint64(c.TokenBPrice)
	sum := a.Add(b.Mul(price))
	return sum.Div(precise.FromUint64(2))
}
