package feeadapter

import (
	"fmt"

	"github.com/ammcore/swapcurve/pkg/bigmath"
)

// TradeFees describes the owner-trading-fee and host-fee rates the
// embedder charges on top of whatever TransferFeeCalculator applies ,
// these are pool-level fee shares, distinct from the mint-level
// transfer fee.
type TradeFees struct {
	OwnerTradeFeeNumerator   uint64
	OwnerTradeFeeDenominator uint64
	HostFeeNumerator         uint64
	HostFeeDenominator       uint64
}

// OwnerTradingFee returns floor(amount * OwnerTradeFeeNumerator / OwnerTradeFeeDenominator).
func (f TradeFees) OwnerTradingFee(amount bigmath.U128) (bigmath.U128, error) {
	return ratio(amount, f.OwnerTradeFeeNumerator, f.OwnerTradeFeeDenominator)
}

// HostFee returns floor(ownerFee * HostFeeNumerator / HostFeeDenominator),
// the host's carve-out from the owner trading fee.
func (f TradeFees) HostFee(ownerFee bigmath.U128) (bigmath.U128, error) {
	return ratio(ownerFee, f.HostFeeNumerator, f.HostFeeDenominator)
}

func ratio(amount bigmath.U128, numerator, denominator uint64) (bigmath.U128, error) {
	if numerator == 0 || denominator == 0 {
		return bigmath.ZeroU128(), nil
	}
	wide, err := bigmath.U256FromU128(amount).TryMul(bigmath.NewU256(numerator))
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	wide, err = wide.TryDiv(bigmath.NewU256(denominator))
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	return wide.ToU128()
}

// SubTransferFee returns amount minus whatever calc withholds on a
// single transfer, the one-shot form used whenever the caller does not
// need the three-leg input decomposition below.
func SubTransferFee(calc TransferFeeCalculator, amount bigmath.U128) (bigmath.U128, error) {
	fee, err := calc.CalculateFee(amount)
	if err != nil {
		return bigmath.U128{}, err
	}
	return amount.TrySub(fee)
}

// AddInverseTransferFee delegates to calc's inverse, satisfying
// SubTransferFee(calc, AddInverseTransferFee(calc, post)) >= post by
// construction (see TransferFeeCalculator.CalculateInverseFee).
func AddInverseTransferFee(calc TransferFeeCalculator, postFeeAmount bigmath.U128) (bigmath.U128, error) {
	return calc.CalculateInverseFee(postFeeAmount)
}

// SubInputTransferFees partitions a gross swap input into three legs ,
// the amount reaching the pool vault, the owner trading fee, and an
// optional host-fee carve-out from the owner fee, applies calc's
// transfer fee to each leg independently, and returns amountIn net of
// all three transfer fees.
//
// Because each leg's transfer fee is computed (and rounds) separately,
// the result is at most 3 units below SubTransferFee(calc, amountIn)
// when includeHost is true, or at most 2 units below it otherwise: each
// leg's independent ceiling can shave at most one extra unit relative to
// applying the fee once to the combined amount.
func SubInputTransferFees(
	calc TransferFeeCalculator,
	fees TradeFees,
	amountIn bigmath.U128,
	includeHost bool,
) (bigmath.U128, error) {
	ownerAndHostFee, err := fees.OwnerTradingFee(amountIn)
	if err != nil {
		return bigmath.U128{}, err
	}

	hostFee := bigmath.ZeroU128()
	hostTransferFee := bigmath.ZeroU128()
	if includeHost {
		hostFee, err = fees.HostFee(ownerAndHostFee)
		if err != nil {
			return bigmath.U128{}, err
		}
		hostTransferFee, err = calc.CalculateFee(hostFee)
		if err != nil {
			return bigmath.U128{}, err
		}
	}

	ownerFee, err := ownerAndHostFee.TrySub(hostFee)
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	ownerTransferFee, err := calc.CalculateFee(ownerFee)
	if err != nil {
		return bigmath.U128{}, err
	}

	vaultAmountIn, err := amountIn.TrySub(ownerAndHostFee)
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	vaultTransferFee, err := calc.CalculateFee(vaultAmountIn)
	if err != nil {
		return bigmath.U128{}, err
	}

	netAmount, err := amountIn.TrySub(vaultTransferFee)
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	netAmount, err = netAmount.TrySub(ownerTransferFee)
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}
	netAmount, err = netAmount.TrySub(hostTransferFee)
	if err != nil {
		return bigmath.U128{}, fmt.Errorf("%w: %v", ErrFeeCalculationFailure, err)
	}

	return netAmount, nil
}
