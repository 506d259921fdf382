package curve

import "github.com/ammcore/swapcurve/pkg/bigmath"

// poolTokensToTradingTokens is the shared §4.2.2 splitter reused by all
// four curves: constant-product, stable, and offset pass their real
// reserves straight through, while constant-price first normalizes
// reserve B by its price; this routine does the proportional split.
//
// For each side i: amount_i = poolTokens * reserve_i / poolTokenSupply,
// rounded per round. The multiplication is carried out in 256 bits since
// poolTokens and a reserve can each already be near the 128-bit boundary.
func poolTokensToTradingTokens(
	poolTokens bigmath.U128,
	poolTokenSupply bigmath.U128,
	reserveA bigmath.U128,
	reserveB bigmath.U128,
	round RoundDirection,
) (TradingTokenSplit, error) {
	amountA, err := splitSide(poolTokens, reserveA, poolTokenSupply, round)
	if err != nil {
		return TradingTokenSplit{}, err
	}
	amountB, err := splitSide(poolTokens, reserveB, poolTokenSupply, round)
	if err != nil {
		return TradingTokenSplit{}, err
	}
	return TradingTokenSplit{AmountA: amountA, AmountB: amountB}, nil
}

// splitSide computes floor(amount * reserve / supply), then for Ceiling
// rounds the quotient up by one when there is a nonzero remainder, but
// only when the floor quotient is already nonzero. A side whose exact
// share floors to zero stays at zero even under Ceiling: this is the
// legitimate zero split documented on ErrZeroTradingTokens, not a bug,
// and the concrete seed scenarios (spec §8, e.g. deposit Δ=1, supply=100,
// a=999, b=1 → token_b=0 under Ceiling) depend on this exact behavior.
func splitSide(amount, reserve, supply bigmath.U128, round RoundDirection) (bigmath.U128, error) {
	numerator, err := bigmath.U256FromU128(amount).TryMul(bigmath.U256FromU128(reserve))
	if err != nil {
		return bigmath.U128{}, err
	}
	denominator := bigmath.U256FromU128(supply)

	floor, err := numerator.TryDiv(denominator)
	if err != nil {
		return bigmath.U128{}, err
	}
	if round != Ceiling || floor.IsZero() {
		return floor.ToU128()
	}

	remainder, err := numerator.TryMod(denominator)
	if err != nil {
		return bigmath.U128{}, err
	}
	if remainder.IsZero() {
		return floor.ToU128()
	}
	ceiled, err := floor.TryAdd(bigmath.OneU256())
	if err != nil {
		return bigmath.U128{}, err
	}
	return ceiled.ToU128()
}
