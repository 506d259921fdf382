package curve

import (
	"testing"

	"github.com/ammcore/swapcurve/pkg/bigmath"
	"github.com/ammcore/swapcurve/pkg/precise"
)

func TestConstantProductSwapWithoutFees(t *testing.T) {
	c := ConstantProductCurve{}

	// 1000*1000 = 1_000_000 invariant; newSource = 1100;
	// newDest = ceil(1_000_000 / 1100) = 910; dy = 1000 - 910 = 90.
	result, err := c.SwapWithoutFees(bigmath.NewU128(100), bigmath.NewU128(1000), bigmath.NewU128(1000), AtoB)
	if err != nil {
		t.Fatalf("SwapWithoutFees: %v", err)
	}
	if !result.SourceConsumed.Equal(bigmath.NewU128(100)) {
		t.Errorf("SourceConsumed = %v, want 100", result.SourceConsumed)
	}
	if !result.DestinationReleased.Equal(bigmath.NewU128(90)) {
		t.Errorf("DestinationReleased = %v, want 90", result.DestinationReleased)
	}
}

func TestConstantProductSwapZeroSourceAmount(t *testing.T) {
	c := ConstantProductCurve{}
	result, err := c.SwapWithoutFees(bigmath.ZeroU128(), bigmath.NewU128(1000), bigmath.NewU128(1000), AtoB)
	if err != nil {
		t.Fatalf("SwapWithoutFees: %v", err)
	}
	if !result.SourceConsumed.IsZero() || !result.DestinationReleased.IsZero() {
		t.Errorf("SwapWithoutFees(0, ...) = %+v, want zero result", result)
	}
}

func TestConstantProductSwapDustRoundsToZero(t *testing.T) {
	c := ConstantProductCurve{}
	// A huge source reserve and a destination reserve of 1 means even a
	// nonzero dx can't move the destination reserve below 1.
	result, err := c.SwapWithoutFees(
		bigmath.NewU128(1),
		bigmath.NewU128(1_000_000_000_000_000_000),
		bigmath.NewU128(1),
		AtoB,
	)
	if err != nil {
		t.Fatalf("SwapWithoutFees: %v", err)
	}
	if !result.SourceConsumed.IsZero() || !result.DestinationReleased.IsZero() {
		t.Errorf("dust swap = %+v, want zero result (open question §9)", result)
	}
}

func TestConstantProductPoolTokensToTradingTokens(t *testing.T) {
	c := ConstantProductCurve{}

	split, err := c.PoolTokensToTradingTokens(
		bigmath.NewU128(100), bigmath.NewU128(1000),
		bigmath.NewU128(500), bigmath.NewU128(2000),
		Floor,
	)
	if err != nil {
		t.Fatalf("PoolTokensToTradingTokens: %v", err)
	}
	if !split.AmountA.Equal(bigmath.NewU128(50)) || !split.AmountB.Equal(bigmath.NewU128(200)) {
		t.Errorf("split = %+v, want {50, 200}", split)
	}

	// 7*3/10 = 2.1: floor 2, ceil 3.
	floorSplit, err := c.PoolTokensToTradingTokens(
		bigmath.NewU128(7), bigmath.NewU128(10), bigmath.NewU128(3), bigmath.NewU128(3), Floor,
	)
	if err != nil {
		t.Fatalf("PoolTokensToTradingTokens: %v", err)
	}
	if !floorSplit.AmountA.Equal(bigmath.NewU128(2)) {
		t.Errorf("floor AmountA = %v, want 2", floorSplit.AmountA)
	}

	ceilSplit, err := c.PoolTokensToTradingTokens(
		bigmath.NewU128(7), bigmath.NewU128(10), bigmath.NewU128(3), bigmath.NewU128(3), Ceiling,
	)
	if err != nil {
		t.Fatalf("PoolTokensToTradingTokens: %v", err)
	}
	if !ceilSplit.AmountA.Equal(bigmath.NewU128(3)) {
		t.Errorf("ceil AmountA = %v, want 3", ceilSplit.AmountA)
	}
}

func TestConstantProductValidateSupply(t *testing.T) {
	c := ConstantProductCurve{}
	if err := c.ValidateSupply(0, 10); err == nil {
		t.Error("ValidateSupply(0, 10): want error")
	}
	if err := c.ValidateSupply(10, 0); err == nil {
		t.Error("ValidateSupply(10, 0): want error")
	}
	if err := c.ValidateSupply(10, 10); err != nil {
		t.Errorf("ValidateSupply(10, 10): %v", err)
	}
}

func TestConstantProductNormalizedValue(t *testing.T) {
	c := ConstantProductCurve{}
	value, err := c.NormalizedValue(bigmath.NewU128(4), bigmath.NewU128(9))
	if err != nil {
		t.Fatalf("NormalizedValue: %v", err)
	}
	// 4*9 = 36 is a perfect square, so Newton's method converges exactly.
	if !value.Equal(precise.FromUint64(6)) {
		t.Errorf("NormalizedValue(4, 9) = %s, want 6", value)
	}
}

func TestConstantProductDefaults(t *testing.T) {
	c := ConstantProductCurve{}
	if !c.AllowsDeposits() {
		t.Error("AllowsDeposits() = false, want true")
	}
	if !c.NewPoolSupply().Equal(bigmath.NewU128(InitialSwapPoolAmount)) {
		t.Errorf("NewPoolSupply() = %v, want %d", c.NewPoolSupply(), InitialSwapPoolAmount)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate(): %v", err)
	}
}
