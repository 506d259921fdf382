package curve

import (
	"github.com/ammcore/swapcurve/pkg/bigmath"
	"github.com/ammcore/swapcurve/pkg/precise"
)

// Curve is the capability set every pricing curve implements. There are
// four concrete variants, ConstantProductCurve, ConstantPriceCurve,
// OffsetCurve, StableCurve, sharing this one interface rather than an
// inheritance hierarchy: their parameter shapes are fundamentally
// different (one carries no parameters at all, the others one to three
// scalars), and dispatch happens at most once per transaction, so runtime
// indirection through an interface costs nothing that matters.
//
// Contract:
//   - SwapWithoutFees must not decrease the pool's NormalizedValue; any
//     rounding error is absorbed by the pool, never the trader.
//   - PoolTokensToTradingTokens must favor the pool under both rounding
//     directions: Ceiling (deposit) must never award a depositor more
//     claim on the pool than proportional, except that a side whose exact
//     share is below one token is charged zero (see splitSide); Floor
//     (withdraw) must never pay a withdrawing LP more than proportional.
//   - Validate must reject any parameter combination violating the
//     invariants documented on the concrete type.
//
// Error Conditions:
//   - ArithmeticOverflow, DivideByZero, ConversionFailure (from
//     pkg/bigmath) on any intermediate that would overflow or divide by
//     zero.
//   - ErrCalculationFailure when an iterative solver produces an
//     unusable intermediate (e.g. a zero scaling factor).
//   - ErrInvalidCurve / ErrEmptySupply from Validate / ValidateSupply.
//
// Thread Safety: every implementation is an immutable value type; all
// methods are pure functions of their arguments and the receiver. Safe for
// concurrent use by multiple goroutines without synchronization.
type Curve interface {
	// SwapWithoutFees computes how much destination token is released for
	// sourceAmount of source token, given the pool's current reserves.
	// When sourceAmount is zero, it returns a zero SwapResult. Fees are
	// out of scope here (spec §1), the caller applies trade/owner/host
	// fees before and after calling this.
	SwapWithoutFees(
		sourceAmount bigmath.U128,
		poolSourceAmount bigmath.U128,
		poolDestinationAmount bigmath.U128,
		direction TradeDirection,
	) (SwapResult, error)

	// PoolTokensToTradingTokens converts an amount of pool (LP) tokens
	// into the underlying trading-token amounts, given the pool's total
	// LP supply and current reserves, rounding per round.
	PoolTokensToTradingTokens(
		poolTokens bigmath.U128,
		poolTokenSupply bigmath.U128,
		reserveA bigmath.U128,
		reserveB bigmath.U128,
		round RoundDirection,
	) (TradingTokenSplit, error)

	// Validate rejects curve parameters outside the ranges documented on
	// the concrete type (ErrInvalidCurve).
	Validate() error

	// ValidateSupply validates the initial token amounts supplied when a
	// pool is created. Most curves require both sides strictly positive
	// (ErrEmptySupply otherwise); ConstantPriceCurve and OffsetCurve
	// override this to allow one side to start at zero.
	ValidateSupply(tokenAAmount, tokenBAmount uint64) error

	// AllowsDeposits reports whether the curve permits deposits after
	// pool initialization. False only for OffsetCurve, which would
	// otherwise let later depositors be diluted by its synthetic offset
	// reserve.
	AllowsDeposits() bool

	// NewPoolSupply returns the LP token supply to mint for a newly
	// initialized pool.
	NewPoolSupply() bigmath.U128

	// NormalizedValue returns a scalar of dimension tokens^1 summarizing
	// the pool's total value at the given reserves, used only to state
	// and check the value-preservation invariants in tests, never on a
	// path that produces an on-chain-bound integer.
	NormalizedValue(reserveA, reserveB bigmath.U128) (precise.Number, error)
}
