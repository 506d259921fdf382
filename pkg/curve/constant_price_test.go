package curve

import (
	"testing"

	"github.com/ammcore/swapcurve/pkg/bigmath"
	"github.com/ammcore/swapcurve/pkg/precise"
)

func TestConstantPriceSwapAtoB(t *testing.T) {
	c := ConstantPriceCurve{TokenBPrice: 5}
	// dy = floor(23/5) = 4; consumed = 4*5 = 20, leaving 3 units of dust
	// unconsumed per the Floor-on-AtoB contract.
	result, err := c.SwapWithoutFees(bigmath.NewU128(23), bigmath.NewU128(0), bigmath.NewU128(0), AtoB)
	if err != nil {
		t.Fatalf("SwapWithoutFees: %v", err)
	}
	if !result.DestinationReleased.Equal(bigmath.NewU128(4)) {
		t.Errorf("DestinationReleased = %v, want 4", result.DestinationReleased)
	}
	if !result.SourceConsumed.Equal(bigmath.NewU128(20)) {
		t.Errorf("SourceConsumed = %v, want 20", result.SourceConsumed)
	}
}

func TestConstantPriceSwapBtoA(t *testing.T) {
	c := ConstantPriceCurve{TokenBPrice: 5}
	result, err := c.SwapWithoutFees(bigmath.NewU128(4), bigmath.NewU128(0), bigmath.NewU128(0), BtoA)
	if err != nil {
		t.Fatalf("SwapWithoutFees: %v", err)
	}
	if !result.DestinationReleased.Equal(bigmath.NewU128(20)) {
		t.Errorf("DestinationReleased = %v, want 20", result.DestinationReleased)
	}
	if !result.SourceConsumed.Equal(bigmath.NewU128(4)) {
		t.Errorf("SourceConsumed = %v, want 4", result.SourceConsumed)
	}
}

func TestConstantPriceSwapAtoBDust(t *testing.T) {
	c := ConstantPriceCurve{TokenBPrice: 5}
	result, err := c.SwapWithoutFees(bigmath.NewU128(4), bigmath.NewU128(0), bigmath.NewU128(0), AtoB)
	if err != nil {
		t.Fatalf("SwapWithoutFees: %v", err)
	}
	if !result.SourceConsumed.IsZero() || !result.DestinationReleased.IsZero() {
		t.Errorf("dust AtoB swap = %+v, want zero result", result)
	}
}

func TestConstantPricePoolTokensToTradingTokens(t *testing.T) {
	c := ConstantPriceCurve{TokenBPrice: 5}
	// normalizedB = 200*5 = 1000; amountA = 10*1000/100 = 100;
	// normalizedAmountB = 10*1000/100 = 100; amountB = 100/5 = 20.
	split, err := c.PoolTokensToTradingTokens(
		bigmath.NewU128(10), bigmath.NewU128(100),
		bigmath.NewU128(1000), bigmath.NewU128(200),
		Floor,
	)
	if err != nil {
		t.Fatalf("PoolTokensToTradingTokens: %v", err)
	}
	if !split.AmountA.Equal(bigmath.NewU128(100)) {
		t.Errorf("AmountA = %v, want 100", split.AmountA)
	}
	if !split.AmountB.Equal(bigmath.NewU128(20)) {
		t.Errorf("AmountB = %v, want 20", split.AmountB)
	}
}

func TestConstantPriceValidate(t *testing.T) {
	if _, err := NewConstantPriceCurve(0); err == nil {
		t.Error("NewConstantPriceCurve(0): want error")
	}
	if _, err := NewConstantPriceCurve(5); err != nil {
		t.Errorf("NewConstantPriceCurve(5): %v", err)
	}
}

func TestConstantPriceValidateSupplyAllowsOneZeroSide(t *testing.T) {
	c := ConstantPriceCurve{TokenBPrice: 5}
	if err := c.ValidateSupply(100, 0); err != nil {
		t.Errorf("ValidateSupply(100, 0): %v, want nil", err)
	}
	if err := c.ValidateSupply(0, 100); err != nil {
		t.Errorf("ValidateSupply(0, 100): %v, want nil", err)
	}
}

func TestConstantPriceValidateSupplyRejectsBothZero(t *testing.T) {
	c := ConstantPriceCurve{TokenBPrice: 5}
	if err := c.ValidateSupply(0, 0); err == nil {
		t.Error("ValidateSupply(0, 0): want error")
	}
}

func TestConstantPriceNormalizedValue(t *testing.T) {
	c := ConstantPriceCurve{TokenBPrice: 5}
	value, err := c.NormalizedValue(bigmath.NewU128(100), bigmath.NewU128(20))
	if err != nil {
		t.Fatalf("NormalizedValue: %v", err)
	}
	// (100 + 20*5)/2 = (100+100)/2 = 100.
	if !value.Equal(precise.FromUint64(100)) {
		t.Errorf("NormalizedValue(100, 20) = %s, want 100", value)
	}
}
