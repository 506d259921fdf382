// Package simulate replays sequences of swap/deposit/withdraw steps
// against a pkg/curve.Curve and checks that pool value per pool token is
// never lost, the
// same property-testing role the teacher's pkg/backtest engine plays for
// trading strategies, adapted from portfolio valuation over market
// snapshots to reserve valuation over curve operations.
package simulate

import "github.com/ammcore/swapcurve/pkg/bigmath"

// Config holds runner configuration.
type Config struct {
	// InitialReserveA and InitialReserveB seed the pool before the first
	// step runs.
	InitialReserveA bigmath.U128
	InitialReserveB bigmath.U128

	// FailFast stops the run at the first step that decreases normalized
	// value per pool token, returning an error. When false, the run continues and
	// collects every violation in Result.Violations instead.
	FailFast bool
}

// DefaultConfig returns sensible defaults for ad hoc exploration.
func DefaultConfig() Config {
	return Config{
		InitialReserveA: bigmath.NewU128(1_000_000_000),
		InitialReserveB: bigmath.NewU128(1_000_000_000),
		FailFast:        true,
	}
}
