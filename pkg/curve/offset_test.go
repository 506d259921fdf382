package curve

import (
	"testing"

	"github.com/ammcore/swapcurve/pkg/bigmath"
	"github.com/ammcore/swapcurve/pkg/precise"
)

// withinTolerance reports whether diff is within one unit of zero either
// direction, loose, since these tests only sanity-check Sqrt's
// reconstruction error, not exercise precise's own convergence.
func withinTolerance(diff precise.Number) bool {
	tolerance := precise.FromUint64(1)
	negated := precise.Zero().Sub(diff)
	return tolerance.GreaterThanOrEqual(diff) && tolerance.GreaterThanOrEqual(negated)
}

func TestOffsetSwapAtoB(t *testing.T) {
	c := OffsetCurve{TokenBOffset: 50}
	// syntheticDest = 0+50 = 50; newSource = 110; invariant = 100*50 = 5000;
	// newDest = ceil(5000/110) = 46; destReleased = 50-46 = 4.
	result, err := c.SwapWithoutFees(bigmath.NewU128(10), bigmath.NewU128(100), bigmath.NewU128(0), AtoB)
	if err != nil {
		t.Fatalf("SwapWithoutFees: %v", err)
	}
	if !result.SourceConsumed.Equal(bigmath.NewU128(10)) {
		t.Errorf("SourceConsumed = %v, want 10", result.SourceConsumed)
	}
	if !result.DestinationReleased.Equal(bigmath.NewU128(4)) {
		t.Errorf("DestinationReleased = %v, want 4", result.DestinationReleased)
	}
}

func TestOffsetSwapBtoA(t *testing.T) {
	c := OffsetCurve{TokenBOffset: 50}
	// syntheticSource = 100+50 = 150; newSource(synthetic) = 160;
	// invariant = 150*200 = 30000; newDest = ceil(30000/160) = 188;
	// destReleased = 200-188 = 12.
	result, err := c.SwapWithoutFees(bigmath.NewU128(10), bigmath.NewU128(100), bigmath.NewU128(200), BtoA)
	if err != nil {
		t.Fatalf("SwapWithoutFees: %v", err)
	}
	if !result.SourceConsumed.Equal(bigmath.NewU128(10)) {
		t.Errorf("SourceConsumed = %v, want 10", result.SourceConsumed)
	}
	if !result.DestinationReleased.Equal(bigmath.NewU128(12)) {
		t.Errorf("DestinationReleased = %v, want 12", result.DestinationReleased)
	}
}

func TestOffsetValidateSupplyAllowsZeroRealB(t *testing.T) {
	c := OffsetCurve{TokenBOffset: 50}
	if err := c.ValidateSupply(100, 0); err != nil {
		t.Errorf("ValidateSupply(100, 0): %v, want nil", err)
	}
	if err := c.ValidateSupply(0, 100); err == nil {
		t.Error("ValidateSupply(0, 100): want error")
	}
}

func TestOffsetDisallowsDeposits(t *testing.T) {
	c := OffsetCurve{TokenBOffset: 50}
	if c.AllowsDeposits() {
		t.Error("AllowsDeposits() = true, want false")
	}
}

func TestOffsetNormalizedValue(t *testing.T) {
	c := OffsetCurve{TokenBOffset: 50}
	// sqrt(100 * (0 + 50)) = sqrt(5000).
	value, err := c.NormalizedValue(bigmath.NewU128(100), bigmath.NewU128(0))
	if err != nil {
		t.Fatalf("NormalizedValue: %v", err)
	}
	squared := value.Mul(value)
	diff := squared.Sub(precise.FromUint64(5000))
	if !withinTolerance(diff) {
		t.Errorf("NormalizedValue(100, 0)^2 = %s, want ~5000", squared)
	}
}
