package feeadapter

import (
	"testing"

	"github.com/ammcore/swapcurve/pkg/bigmath"
)

func TestSubTransferFee(t *testing.T) {
	calc := BasisPointsFee{BasisPoints: 100, MaximumFee: bigmath.NewU128(1_000_000)}
	got, err := SubTransferFee(calc, bigmath.NewU128(1000))
	if err != nil {
		t.Fatalf("SubTransferFee: %v", err)
	}
	if !got.Equal(bigmath.NewU128(990)) {
		t.Errorf("SubTransferFee(1000) = %v, want 990", got)
	}
}

func TestSubInputTransferFeesWithinThreeUnitsOfOneShot(t *testing.T) {
	calc := BasisPointsFee{BasisPoints: 50, MaximumFee: bigmath.NewU128(1_000_000)}
	fees := TradeFees{
		OwnerTradeFeeNumerator:   25,
		OwnerTradeFeeDenominator: 10000,
		HostFeeNumerator:         20,
		HostFeeDenominator:       100,
	}
	amountIn := bigmath.NewU128(1_000_000)

	oneShot, err := SubTransferFee(calc, amountIn)
	if err != nil {
		t.Fatalf("SubTransferFee: %v", err)
	}

	for _, includeHost := range []bool{true, false} {
		net, err := SubInputTransferFees(calc, fees, amountIn, includeHost)
		if err != nil {
			t.Fatalf("SubInputTransferFees(includeHost=%v): %v", includeHost, err)
		}
		if net.Cmp(oneShot) > 0 {
			t.Errorf("includeHost=%v: net=%v exceeds one-shot=%v", includeHost, net, oneShot)
		}
		diff := oneShot.AbsDiff(net)
		maxDiff := uint64(2)
		if includeHost {
			maxDiff = 3
		}
		d, err := diff.Uint64()
		if err != nil {
			t.Fatalf("diff.Uint64(): %v", err)
		}
		if d > maxDiff {
			t.Errorf("includeHost=%v: one-shot - net = %d, want <= %d", includeHost, d, maxDiff)
		}
	}
}

func TestSubInputTransferFeesNoFeeExtension(t *testing.T) {
	var calc NoTransferFee
	fees := TradeFees{OwnerTradeFeeNumerator: 25, OwnerTradeFeeDenominator: 10000}
	amountIn := bigmath.NewU128(500_000)

	net, err := SubInputTransferFees(calc, fees, amountIn, false)
	if err != nil {
		t.Fatalf("SubInputTransferFees: %v", err)
	}
	if !net.Equal(amountIn) {
		t.Errorf("SubInputTransferFees() with no transfer-fee extension = %v, want %v", net, amountIn)
	}
}

func TestAddInverseTransferFee(t *testing.T) {
	calc := BasisPointsFee{BasisPoints: 100, MaximumFee: bigmath.NewU128(1_000_000)}
	post := bigmath.NewU128(990)
	pre, err := AddInverseTransferFee(calc, post)
	if err != nil {
		t.Fatalf("AddInverseTransferFee: %v", err)
	}
	net, err := SubTransferFee(calc, pre)
	if err != nil {
		t.Fatalf("SubTransferFee: %v", err)
	}
	if net.Cmp(post) < 0 {
		t.Errorf("sub(add_inverse(%v)) = %v, want >= %v", post, net, post)
	}
}

func TestTradeFeesZeroRates(t *testing.T) {
	var fees TradeFees
	amount := bigmath.NewU128(1000)
	owner, err := fees.OwnerTradingFee(amount)
	if err != nil || !owner.IsZero() {
		t.Fatalf("OwnerTradingFee() = %v, %v, want 0, nil", owner, err)
	}
	host, err := fees.HostFee(amount)
	if err != nil || !host.IsZero() {
		t.Fatalf("HostFee() = %v, %v, want 0, nil", host, err)
	}
}
