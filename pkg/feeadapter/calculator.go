package feeadapter

import (
	"fmt"

	"github.com/ammcore/swapcurve/pkg/bigmath"
)

// maxBasisPoints is 100% expressed in basis points; a mint configured at
// or above this rate would leave nothing for the recipient, which
// calculate_inverse_fee cannot invert.
const maxBasisPoints = 10_000

// TransferFeeCalculator computes a Token-2022-style transfer fee: the
// lesser of amount*BasisPoints/10000 (rounded up) and a flat cap.
// Implementations are value types with no mutable state, mirroring the
// rest of this module.
type TransferFeeCalculator interface {
	// CalculateFee returns the fee withheld on a transfer of amount.
	CalculateFee(amount bigmath.U128) (bigmath.U128, error)

	// CalculateInverseFee returns the smallest pre-fee amount pre such
	// that CalculateFee(pre) subtracted from pre is at least
	// postFeeAmount, i.e. the smallest pre with
	// pre - CalculateFee(pre) >= postFeeAmount.
	CalculateInverseFee(postFeeAmount bigmath.U128) (bigmath.U128, error)
}

// NoTransferFee is the passthrough calculator for mints without the
// transfer-fee extension: the trivial witness that satisfies
// TransferFeeCalculator's contract by construction.
type NoTransferFee struct{}

var _ TransferFeeCalculator = NoTransferFee{}

func (NoTransferFee) CalculateFee(bigmath.U128) (bigmath.U128, error) {
	return bigmath.ZeroU128(), nil
}

func (NoTransferFee) CalculateInverseFee(postFeeAmount bigmath.U128) (bigmath.U128, error) {
	return postFeeAmount, nil
}

// BasisPointsFee models a Token-2022 TransferFeeConfig epoch fee: up to
// MaximumFee, capped beyond it.
type BasisPointsFee struct {
	BasisPoints uint16
	MaximumFee  bigmath.U128
}

var _ TransferFeeCalculator = BasisPointsFee{}

func (c BasisPointsFee) CalculateFee(amount bigmath.U128) (bigmath.U128, error) {
	if c.BasisPoints == 0 || amount.IsZero() {
		return bigmath.ZeroU128(), nil
	}
	numerator, err := bigmath.U256FromU128(amount).TryMul(bigmath.NewU256(uint64(c.BasisPoints)))
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	feeWide, _, err := numerator.TryCeilDiv(bigmath.NewU256(maxBasisPoints))
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	fee, err := feeWide.ToU128()
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	if fee.Cmp(c.MaximumFee) > 0 {
		return c.MaximumFee, nil
	}
	return fee, nil
}

// CalculateInverseFee inverts CalculateFee by estimating the pre-fee
// amount from the flat rate, taking post+MaximumFee instead when that is
// smaller, then nudging up by one unit at a time (at most three checks)
// until the contract (pre - fee(pre) >= post) holds. The ceiling estimate
// under basis-point rounding undershoots by at most a unit or two in
// practice.
func (c BasisPointsFee) CalculateInverseFee(postFeeAmount bigmath.U128) (bigmath.U128, error) {
	if postFeeAmount.IsZero() || c.BasisPoints == 0 {
		return postFeeAmount, nil
	}
	if c.BasisPoints >= maxBasisPoints {
		return bigmath.U128{}, fmt.Errorf("%w: basis points %d >= 100%%", ErrFeeCalculationFailure, c.BasisPoints)
	}

	maxFeeAtCap, err := postFeeAmount.TryAdd(c.MaximumFee)
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}

	numerator, err := bigmath.U256FromU128(postFeeAmount).TryMul(bigmath.NewU256(maxBasisPoints))
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	denominator := bigmath.NewU256(maxBasisPoints - uint64(c.BasisPoints))
	preWide, _, err := numerator.TryCeilDiv(denominator)
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	pre, err := preWide.ToU128()
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	if maxFeeAtCap.Cmp(pre) < 0 {
		// The fee never exceeds MaximumFee, so post+MaximumFee always
		// satisfies the contract; it is the answer when it undercuts the
		// flat-rate estimate.
		return maxFeeAtCap, nil
	}

	for i := 0; i < 3; i++ {
		fee, err := c.CalculateFee(pre)
		if err != nil {
			return bigmath.U128{}, err
		}
		net, err := pre.TrySub(fee)
		if err != nil {
			return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
		}
		if net.Cmp(postFeeAmount) >= 0 {
			return pre, nil
		}
		pre, err = pre.TryAdd(bigmath.OneU128())
		if err != nil {
			return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
		}
	}
	return pre, nil
}
