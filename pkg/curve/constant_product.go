package curve

import (
	"github.com/ammcore/swapcurve/pkg/bigmath"
	"github.com/ammcore/swapcurve/pkg/precise"
)

// ConstantProductCurve implements the classic x*y=k invariant. It carries
// no parameters: any two pools using it behave identically given the same
// reserves.
type ConstantProductCurve struct{}

var _ Curve = ConstantProductCurve{}

// SwapWithoutFees computes the closed-form constant-product swap:
//
//	newX = X + dx
//	newY = ceil(X*Y / newX)   // ceiling biases the pool in its favor
//	dy   = Y - newY
//
// direction is accepted to satisfy the Curve interface but unused: the
// formula is symmetric in which side is "source" once poolSourceAmount and
// poolDestinationAmount are given, unlike OffsetCurve or ConstantPriceCurve
// which must know which side carries their parameter.
func (ConstantProductCurve) SwapWithoutFees(
	sourceAmount bigmath.U128,
	poolSourceAmount bigmath.U128,
	poolDestinationAmount bigmath.U128,
	_ TradeDirection,
) (SwapResult, error) {
	return constantProductSwap(sourceAmount, poolSourceAmount, poolDestinationAmount)
}

// constantProductSwap is factored out so OffsetCurve (§4.5) can reuse it
// against a synthetic reserve without duplicating the ceiling-division
// logic.
func constantProductSwap(
	sourceAmount bigmath.U128,
	poolSourceAmount bigmath.U128,
	poolDestinationAmount bigmath.U128,
) (SwapResult, error) {
	if sourceAmount.IsZero() {
		return SwapResult{}, nil
	}

	newSource, err := poolSourceAmount.TryAdd(sourceAmount)
	if err != nil {
		return SwapResult{}, err
	}

	invariant, err := bigmath.U256FromU128(poolSourceAmount).TryMul(bigmath.U256FromU128(poolDestinationAmount))
	if err != nil {
		return SwapResult{}, err
	}
	newDestWide, _, err := invariant.TryCeilDiv(bigmath.U256FromU128(newSource))
	if err != nil {
		return SwapResult{}, err
	}
	newDestination, err := newDestWide.ToU128()
	if err != nil {
		return SwapResult{}, err
	}

	destinationReleased, err := poolDestinationAmount.TrySub(newDestination)
	if err != nil {
		return SwapResult{}, err
	}

	// Open question (spec §9): when dx is so small the exact destination
	// release would floor to less than one token, report the trade as a
	// no-op on both legs rather than consuming the source for zero
	// output. The caller is expected to surface ErrZeroTradingTokens.
	if destinationReleased.IsZero() {
		return SwapResult{}, nil
	}

	return SwapResult{SourceConsumed: sourceAmount, DestinationReleased: destinationReleased}, nil
}

// PoolTokensToTradingTokens delegates to the shared §4.2.2 splitter.
func (ConstantProductCurve) PoolTokensToTradingTokens(
	poolTokens bigmath.U128,
	poolTokenSupply bigmath.U128,
	reserveA bigmath.U128,
	reserveB bigmath.U128,
	round RoundDirection,
) (TradingTokenSplit, error) {
	return poolTokensToTradingTokens(poolTokens, poolTokenSupply, reserveA, reserveB, round)
}

// Validate always succeeds: ConstantProductCurve carries no parameters.
func (ConstantProductCurve) Validate() error {
	return nil
}

// ValidateSupply requires both reserves strictly positive.
func (ConstantProductCurve) ValidateSupply(tokenAAmount, tokenBAmount uint64) error {
	return validateNonZeroSupply(tokenAAmount, tokenBAmount)
}

// AllowsDeposits is always true for the constant-product curve.
func (ConstantProductCurve) AllowsDeposits() bool {
	return true
}

// NewPoolSupply returns the default fixed initial LP supply.
func (ConstantProductCurve) NewPoolSupply() bigmath.U128 {
	return bigmath.NewU128(InitialSwapPoolAmount)
}

// NormalizedValue returns sqrt(reserveA * reserveB), the tokens^1-dimension
// normalization of the natural x*y invariant.
func (ConstantProductCurve) NormalizedValue(reserveA, reserveB bigmath.U128) (precise.Number, error) {
	a, err := precise.FromU128(reserveA)
	if err != nil {
		return precise.Number{}, err
	}
	b, err := precise.FromU128(reserveB)
	if err != nil {
		return precise.Number{}, err
	}
	return a.Mul(b).Sqrt()
}

// validateNonZeroSupply is the default ValidateSupply behavior shared by
// every curve except ConstantPriceCurve and OffsetCurve, which allow one
// side to start at zero.
func validateNonZeroSupply(tokenAAmount, tokenBAmount uint64) error {
	if tokenAAmount == 0 || tokenBAmount == 0 {
		return ErrEmptySupply
	}
	return nil
}
