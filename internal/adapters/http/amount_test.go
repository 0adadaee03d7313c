package http

import (
	"errors"
	"testing"

	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
)

func TestResolveAmount(t *testing.T) {
	t.Parallel()

	if got, err := resolveAmount(42, "", 9); err != nil || got != 42 {
		t.Fatalf("base passthrough = %d, %v", got, err)
	}
	if got, err := resolveAmount(0, "2.5", 9); err != nil || got != 2_500_000_000 {
		t.Fatalf("decimal conversion = %d, %v", got, err)
	}
	if got, err := resolveAmount(0, "0.000000001", 9); err != nil || got != 1 {
		t.Fatalf("smallest unit = %d, %v", got, err)
	}

	// A decimal finer than one base unit must be rejected, not rounded.
	if _, err := resolveAmount(0, "0.0000000001", 9); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for sub-unit decimal, got %v", err)
	}
	if _, err := resolveAmount(0, "-1", 9); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative, got %v", err)
	}
	if _, err := resolveAmount(0, "not-a-number", 9); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for junk, got %v", err)
	}
	if _, err := resolveAmount(0, "99999999999999999999", 9); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for overflow, got %v", err)
	}
	if _, err := resolveAmount(5, "1", 9); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput when both fields set, got %v", err)
	}
}
