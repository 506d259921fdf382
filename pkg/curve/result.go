package curve

import "github.com/ammcore/swapcurve/pkg/bigmath"

// SwapResult is the outcome of SwapWithoutFees: how much source token the
// trade actually consumed, and how much destination token it released.
// SourceConsumed can be less than the amount requested (e.g. the
// constant-price curve returns unused dust to the caller's policy).
type SwapResult struct {
	SourceConsumed      bigmath.U128
	DestinationReleased bigmath.U128
}

// TradingTokenSplit is the per-side result of converting an amount of pool
// (LP) tokens into the underlying trading tokens, or vice versa.
type TradingTokenSplit struct {
	AmountA bigmath.U128
	AmountB bigmath.U128
}
