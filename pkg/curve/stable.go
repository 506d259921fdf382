package curve

import (
	"fmt"

	"github.com/ammcore/swapcurve/pkg/bigmath"
	"github.com/ammcore/swapcurve/pkg/precise"
)

// StableCurve implements the Curve.fi-style stable-swap invariant for two
// coins: A·n²·Σxᵢ + D = A·D·n² + D^(n+1)/(n²·Πxᵢ), fixed at n=2. Amp
// trades capital efficiency near the peg for slippage away from it;
// TokenAFactor/TokenBFactor rescale reserves of differing decimals onto a
// shared basis before D and y are solved for.
type StableCurve struct {
	Amp          uint64
	TokenAFactor uint64
	TokenBFactor uint64
}

var _ Curve = StableCurve{}

// NewStableCurve validates its parameters and constructs the curve.
func NewStableCurve(amp, tokenAFactor, tokenBFactor uint64) (StableCurve, error) {
	c := StableCurve{Amp: amp, TokenAFactor: tokenAFactor, TokenBFactor: tokenBFactor}
	if err := c.Validate(); err != nil {
		return StableCurve{}, err
	}
	return c, nil
}

// Validate requires MinAmp < Amp < MaxAmp and both scaling factors
// strictly positive (a zero factor is a contract violation: see §3).
func (c StableCurve) Validate() error {
	if c.Amp <= MinAmp || c.Amp >= MaxAmp {
		return fmt.Errorf("%w: amp out of range (%d, %d)", ErrInvalidCurve, MinAmp, MaxAmp)
	}
	if c.TokenAFactor == 0 || c.TokenBFactor == 0 {
		return fmt.Errorf("%w: scaling factors must be > 0", ErrInvalidCurve)
	}
	return nil
}

// ValidateSupply requires both reserves strictly positive.
func (StableCurve) ValidateSupply(tokenAAmount, tokenBAmount uint64) error {
	return validateNonZeroSupply(tokenAAmount, tokenBAmount)
}

// AllowsDeposits is always true.
func (StableCurve) AllowsDeposits() bool {
	return true
}

// NewPoolSupply returns the default fixed initial LP supply.
func (StableCurve) NewPoolSupply() bigmath.U128 {
	return bigmath.NewU128(InitialSwapPoolAmount)
}

// ann returns Ann = Amp*n, n=2, matching the original's choice to store
// the leverage parameter this way rather than Amp*n^(n-1): for n=2 the
// two coincide, but the naming documents which identity the solver below
// actually uses.
func (c StableCurve) ann() (bigmath.U256, error) {
	amp := bigmath.U256FromU128(bigmath.NewU128(c.Amp))
	return amp.TryMul(bigmath.NewU256(2))
}

// scaleUp multiplies a reserve or amount by its side's decimal-alignment
// factor. A zero factor fails with ErrCalculationFailure; every swap and
// NormalizedValue path scales up both sides before any scaleDown, so this
// check also guards scaleDown's divisor.
func scaleUp(amount, factor bigmath.U128) (bigmath.U128, error) {
	if factor.IsZero() {
		return bigmath.U128{}, fmt.Errorf("%w: zero scaling factor", ErrCalculationFailure)
	}
	wide, err := bigmath.U256FromU128(amount).TryMul(bigmath.U256FromU128(factor))
	if err != nil {
		return bigmath.U128{}, err
	}
	return wide.ToU128()
}

// scaleDown divides a scaled value back down by its side's factor,
// rounding up when roundUp is true. §4.6.3 step 4 requires roundUp=true
// on the descaled new-y term so the remaining pool, not the trader, is
// favored by the rounding.
func scaleDown(amount, factor bigmath.U128, roundUp bool) (bigmath.U128, error) {
	if roundUp {
		q, _, err := amount.TryCeilDiv(factor)
		return q, err
	}
	return amount.TryDiv(factor)
}

// computeD solves the stable-swap invariant for D given two reserves
// already on a common scaled basis, per §4.6.1. All arithmetic is carried
// in 256 bits: D² and D·D/(2x) both approach the 128-bit boundary for
// large reserves well before the final result does.
func computeD(xA, xB, ann bigmath.U256) (bigmath.U256, error) {
	s, err := xA.TryAdd(xB)
	if err != nil {
		return bigmath.U256{}, err
	}
	if s.IsZero() {
		return bigmath.ZeroU256(), nil
	}

	two := bigmath.NewU256(2)
	twoXA, err := two.TryMul(xA)
	if err != nil {
		return bigmath.U256{}, err
	}
	twoXB, err := two.TryMul(xB)
	if err != nil {
		return bigmath.U256{}, err
	}

	d := s
	for i := 0; i < stableIterations; i++ {
		// D_P = D*D/(2*xA) * D/(2*xB), staged to avoid an intermediate
		// D^3 that would overflow well before the true quotient does.
		dp, err := d.TryMul(d)
		if err != nil {
			return bigmath.U256{}, err
		}
		dp, err = dp.TryDiv(twoXA)
		if err != nil {
			return bigmath.U256{}, err
		}
		dp, err = dp.TryMul(d)
		if err != nil {
			return bigmath.U256{}, err
		}
		dp, err = dp.TryDiv(twoXB)
		if err != nil {
			return bigmath.U256{}, err
		}

		annS, err := ann.TryMul(s)
		if err != nil {
			return bigmath.U256{}, err
		}
		dpN, err := dp.TryMul(two)
		if err != nil {
			return bigmath.U256{}, err
		}
		numerator, err := annS.TryAdd(dpN)
		if err != nil {
			return bigmath.U256{}, err
		}
		numerator, err = numerator.TryMul(d)
		if err != nil {
			return bigmath.U256{}, err
		}

		annMinus1, err := ann.TrySub(bigmath.OneU256())
		if err != nil {
			return bigmath.U256{}, err
		}
		term1, err := annMinus1.TryMul(d)
		if err != nil {
			return bigmath.U256{}, err
		}
		three := bigmath.NewU256(3)
		term2, err := three.TryMul(dp)
		if err != nil {
			return bigmath.U256{}, err
		}
		denominator, err := term1.TryAdd(term2)
		if err != nil {
			return bigmath.U256{}, err
		}

		dNext, err := numerator.TryDiv(denominator)
		if err != nil {
			return bigmath.U256{}, err
		}

		if dNext.AbsDiff(d).Cmp(bigmath.OneU256()) <= 0 {
			return dNext, nil
		}
		d = dNext
	}
	return d, nil
}

// computeY solves for the counter-reserve given Ann, the new source
// reserve x, and the invariant D, per §4.6.2.
func computeY(ann, x, d bigmath.U256) (bigmath.U256, error) {
	two := bigmath.NewU256(2)

	dOverAnn, err := d.TryDiv(ann)
	if err != nil {
		return bigmath.U256{}, err
	}
	b, err := x.TryAdd(dOverAnn)
	if err != nil {
		return bigmath.U256{}, err
	}

	xTimesN, err := x.TryMul(two)
	if err != nil {
		return bigmath.U256{}, err
	}
	dSquared, err := d.TryMul(d)
	if err != nil {
		return bigmath.U256{}, err
	}
	term1, err := dSquared.TryDiv(xTimesN)
	if err != nil {
		return bigmath.U256{}, err
	}
	annTimesN, err := ann.TryMul(two)
	if err != nil {
		return bigmath.U256{}, err
	}
	term2, err := d.TryDiv(annTimesN)
	if err != nil {
		return bigmath.U256{}, err
	}
	c, err := term1.TryMul(term2)
	if err != nil {
		return bigmath.U256{}, err
	}

	y := d
	for i := 0; i < stableIterations; i++ {
		ySquared, err := y.TryMul(y)
		if err != nil {
			return bigmath.U256{}, err
		}
		numerator, err := ySquared.TryAdd(c)
		if err != nil {
			return bigmath.U256{}, err
		}

		twoY, err := two.TryMul(y)
		if err != nil {
			return bigmath.U256{}, err
		}
		denomPlusB, err := twoY.TryAdd(b)
		if err != nil {
			return bigmath.U256{}, err
		}
		denominator, err := denomPlusB.TrySub(d)
		if err != nil {
			return bigmath.U256{}, err
		}

		// try_ceil_div already yields 0 when numerator is zero and
		// bumps a zero floor with a nonzero remainder up to 1,
		// exactly the §4.6.2 contract for approximating a root rather
		// than performing an exact divide.
		yNext, _, err := numerator.TryCeilDiv(denominator)
		if err != nil {
			return bigmath.U256{}, err
		}

		if yNext.Equal(y) {
			return yNext, nil
		}
		y = yNext
	}
	return y, nil
}

// SwapWithoutFees runs the §4.6.3 scaling pipeline around computeD and
// computeY.
func (c StableCurve) SwapWithoutFees(
	sourceAmount bigmath.U128,
	poolSourceAmount bigmath.U128,
	poolDestinationAmount bigmath.U128,
	direction TradeDirection,
) (SwapResult, error) {
	if sourceAmount.IsZero() {
		return SwapResult{}, nil
	}

	sourceFactor := bigmath.NewU128(c.TokenAFactor)
	destFactor := bigmath.NewU128(c.TokenBFactor)
	if direction == BtoA {
		sourceFactor, destFactor = destFactor, sourceFactor
	}

	scaledSource, err := scaleUp(sourceAmount, sourceFactor)
	if err != nil {
		return SwapResult{}, err
	}
	scaledPoolSource, err := scaleUp(poolSourceAmount, sourceFactor)
	if err != nil {
		return SwapResult{}, err
	}
	scaledPoolDest, err := scaleUp(poolDestinationAmount, destFactor)
	if err != nil {
		return SwapResult{}, err
	}

	ann, err := c.ann()
	if err != nil {
		return SwapResult{}, err
	}

	d, err := computeD(bigmath.U256FromU128(scaledPoolSource), bigmath.U256FromU128(scaledPoolDest), ann)
	if err != nil {
		return SwapResult{}, err
	}

	newSourceReserve, err := scaledPoolSource.TryAdd(scaledSource)
	if err != nil {
		return SwapResult{}, err
	}

	newYWide, err := computeY(ann, bigmath.U256FromU128(newSourceReserve), d)
	if err != nil {
		return SwapResult{}, err
	}
	newY, err := newYWide.ToU128()
	if err != nil {
		return SwapResult{}, fmt.Errorf("%w: new reserve exceeds 128 bits: %v", ErrCalculationFailure, err)
	}

	scaledDownNewY, err := scaleDown(newY, destFactor, true)
	if err != nil {
		return SwapResult{}, err
	}

	destinationReleased, err := poolDestinationAmount.TrySub(scaledDownNewY)
	if err != nil {
		return SwapResult{}, err
	}

	if destinationReleased.IsZero() {
		return SwapResult{}, nil
	}

	return SwapResult{SourceConsumed: sourceAmount, DestinationReleased: destinationReleased}, nil
}

// PoolTokensToTradingTokens delegates to the shared §4.2.2 splitter
// (§4.6.5): the split operates on real, unscaled reserves, so no
// TokenAFactor/TokenBFactor rescaling applies here.
func (StableCurve) PoolTokensToTradingTokens(
	poolTokens bigmath.U128,
	poolTokenSupply bigmath.U128,
	reserveA bigmath.U128,
	reserveB bigmath.U128,
	round RoundDirection,
) (TradingTokenSplit, error) {
	return poolTokensToTradingTokens(poolTokens, poolTokenSupply, reserveA, reserveB, round)
}

// NormalizedValue is the invariant D itself: D is already dimension-1 by
// construction (spec §4.2), unlike the constant-product/offset curves'
// a*b which needs a square root to reach that dimension.
func (c StableCurve) NormalizedValue(reserveA, reserveB bigmath.U128) (precise.Number, error) {
	sourceFactor := bigmath.NewU128(c.TokenAFactor)
	destFactor := bigmath.NewU128(c.TokenBFactor)

	scaledA, err := scaleUp(reserveA, sourceFactor)
	if err != nil {
		return precise.Number{}, err
	}
	scaledB, err := scaleUp(reserveB, destFactor)
	if err != nil {
		return precise.Number{}, err
	}

	ann, err := c.ann()
	if err != nil {
		return precise.Number{}, err
	}

	dWide, err := computeD(bigmath.U256FromU128(scaledA), bigmath.U256FromU128(scaledB), ann)
	if err != nil {
		return precise.Number{}, err
	}
	d, err := dWide.ToU128()
	if err != nil {
		return precise.Number{}, fmt.Errorf("%w: invariant exceeds 128 bits: %v", ErrCalculationFailure, err)
	}

	return precise.FromU128(d)
}
