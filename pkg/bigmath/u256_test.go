package bigmath

import (
	"errors"
	"testing"
)

func TestU256ToU128(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		v := NewU256(42)
		narrow, err := v.ToU128()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := narrow.Uint64()
		if got != 42 {
			t.Errorf("got %d, want 42", got)
		}
	})

	t.Run("overflow", func(t *testing.T) {
		big128, err := NewU256(1).TryPow(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// shift a 1-bit value up past the 128-bit boundary by doubling it
		// 130 times, landing at 2^130.
		two := NewU256(2)
		v := big128
		for i := 0; i < 130; i++ {
			v, err = v.TryMul(two)
			if err != nil {
				t.Fatalf("unexpected overflow building fixture: %v", err)
			}
		}
		if _, err := v.ToU128(); !errors.Is(err, ErrConversionFailure) {
			t.Errorf("expected ErrConversionFailure, got %v", err)
		}
	})
}

func TestU256Arithmetic(t *testing.T) {
	a := NewU256(100)
	b := NewU256(30)

	sum, err := a.TryAdd(b)
	if err != nil || sum.Cmp(NewU256(130)) != 0 {
		t.Errorf("100+30 failed: %v %v", sum, err)
	}

	diff, err := a.TrySub(b)
	if err != nil || diff.Cmp(NewU256(70)) != 0 {
		t.Errorf("100-30 failed: %v %v", diff, err)
	}

	if _, err := b.TrySub(a); !errors.Is(err, ErrArithmeticOverflow) {
		t.Errorf("expected ErrArithmeticOverflow on underflow, got %v", err)
	}

	prod, err := a.TryMul(b)
	if err != nil || prod.Cmp(NewU256(3000)) != 0 {
		t.Errorf("100*30 failed: %v %v", prod, err)
	}

	quot, err := a.TryDiv(b)
	if err != nil || quot.Cmp(NewU256(3)) != 0 {
		t.Errorf("100/30 failed: %v %v", quot, err)
	}

	if _, err := a.TryDiv(ZeroU256()); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
}

func TestU256AbsDiff(t *testing.T) {
	a := NewU256(5)
	b := NewU256(9)
	if a.AbsDiff(b).Cmp(NewU256(4)) != 0 {
		t.Errorf("abs_diff(5,9) should be 4")
	}
	if b.AbsDiff(a).Cmp(NewU256(4)) != 0 {
		t.Errorf("abs_diff(9,5) should be 4")
	}
}
