package curve

// InitialSwapPoolAmount is the default initial supply of pool (LP) tokens
// minted for a new pool, mirroring the Balancer-style fixed-supply
// convention: the teacher's own go-ethereum-adjacent Uniswap example
// (dropped from this repository, see DESIGN.md) uses the geometric mean
// of supplied amounts instead, but this spec follows the fixed-supply
// approach.
const InitialSwapPoolAmount uint64 = 1_000_000_000

// TokensInPool is hard-coded to 2: this core never supports more than two
// tokens per pool (spec Non-goals).
const TokensInPool = 2

// MinAmp and MaxAmp are exclusive bounds on a StableCurve's amplification
// coefficient.
const (
	MinAmp uint64 = 1
	MaxAmp uint64 = 1_000_000
)

// stableIterations bounds the Newton iterations in the stable-swap D and y
// solvers. It is a safety rail, not a tuned convergence budget, see the
// "Non-convergent iterations" design note: the solver does not error when
// this bound is hit, it returns the last iterate.
const stableIterations = 256
