package domain

import (
	"errors"
	"math"
	"testing"
)

func TestCheckedAdd(t *testing.T) {
	t.Parallel()

	sum, err := CheckedAdd(3, 4)
	if err != nil || sum != 7 {
		t.Fatalf("CheckedAdd(3,4) = %d, %v", sum, err)
	}
	if _, err := CheckedAdd(math.MaxInt64, 1); !errors.Is(err, ErrBalanceOverflow) {
		t.Fatalf("expected ErrBalanceOverflow, got %v", err)
	}
	if sum, err := CheckedAdd(math.MaxInt64-1, 1); err != nil || sum != math.MaxInt64 {
		t.Fatalf("expected exact max to fit, got %d, %v", sum, err)
	}
}

func TestCheckedSub(t *testing.T) {
	t.Parallel()

	diff, err := CheckedSub(7, 4)
	if err != nil || diff != 3 {
		t.Fatalf("CheckedSub(7,4) = %d, %v", diff, err)
	}
	if _, err := CheckedSub(3, 4); !errors.Is(err, ErrNotEnoughBalance) {
		t.Fatalf("expected ErrNotEnoughBalance, got %v", err)
	}
	if diff, err := CheckedSub(4, 4); err != nil || diff != 0 {
		t.Fatalf("expected draining to zero to succeed, got %d, %v", diff, err)
	}
}

func TestCustodyAccount(t *testing.T) {
	t.Parallel()

	p := Pledge{PledgeID: "abc"}
	if got := p.CustodyAccount(); got != "pledge:abc" {
		t.Fatalf("CustodyAccount() = %q", got)
	}
}
