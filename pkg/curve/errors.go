package curve

import "errors"

var (
	// ErrInvalidCurve indicates a curve's constructor parameters violated
	// one of the invariants in the data model (e.g. a zero token_b_price,
	// or an amplification coefficient outside (MinAmp, MaxAmp)).
	ErrInvalidCurve = errors.New("curve: invalid curve parameters")

	// ErrEmptySupply indicates ValidateSupply rejected the initial token
	// amounts supplied to a new pool.
	ErrEmptySupply = errors.New("curve: empty token supply")

	// ErrCalculationFailure indicates an iterative solver (the stable-swap
	// Newton iterations) produced an intermediate value outside its
	// representable range, or that required scaling factors were
	// configured as zero.
	ErrCalculationFailure = errors.New("curve: calculation failure")

	// ErrZeroTradingTokens indicates a pool-token split would yield zero
	// trading tokens for a side the caller required to be non-zero. The
	// curve math itself returns zero legitimately in this case; raising
	// this error is the embedder's responsibility, not the math's, it is
	// declared here only so that embedders share one sentinel.
	ErrZeroTradingTokens = errors.New("curve: pool token split yielded zero trading tokens")
)

// Arithmetic failures (ArithmeticOverflow, DivideByZero, ConversionFailure)
// are not re-declared here: every solver in this package propagates
// pkg/bigmath's sentinel errors directly (via %w), so callers can use
// errors.Is against bigmath.ErrArithmeticOverflow and friends without an
// extra layer of indirection. FeeCalculationFailure similarly belongs to
// pkg/feeadapter, the package that actually raises it.
