package simulate

import (
	"github.com/ammcore/swapcurve/pkg/bigmath"
	"github.com/ammcore/swapcurve/pkg/curve"
)

// StepKind selects which curve operation a Step applies.
type StepKind int

const (
	// StepSwap applies Curve.SwapWithoutFees.
	StepSwap StepKind = iota
	// StepDeposit applies Curve.PoolTokensToTradingTokens with Ceiling
	// rounding and mints Amount pool tokens.
	StepDeposit
	// StepWithdraw applies Curve.PoolTokensToTradingTokens with Floor
	// rounding and burns Amount pool tokens.
	StepWithdraw
)

// String renders the step kind for failure messages.
func (k StepKind) String() string {
	switch k {
	case StepSwap:
		return "swap"
	case StepDeposit:
		return "deposit"
	case StepWithdraw:
		return "withdraw"
	default:
		return "unknown"
	}
}

// Step is one operation in a simulated sequence against a pool. Amount is
// the source amount for a swap, or the pool-token amount for a deposit or
// withdraw. Direction is only consulted for StepSwap.
type Step struct {
	Kind      StepKind
	Amount    bigmath.U128
	Direction curve.TradeDirection
}
