package http

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
)

// resolveAmount picks the wire amount: either base units directly, or a
// decimal string in display units converted at this boundary. The core only
// ever sees integer base units, so a decimal that does not land exactly on a
// base unit is rejected rather than rounded.
func resolveAmount(base int64, dec string, scale int32) (int64, error) {
	dec = strings.TrimSpace(dec)
	if dec == "" {
		return base, nil
	}
	if base != 0 {
		return 0, domain.ErrInvalidInput
	}
	d, err := decimal.NewFromString(dec)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	shifted := d.Shift(scale)
	if !shifted.IsInteger() {
		return 0, domain.ErrInvalidInput
	}
	if shifted.Cmp(decimal.NewFromInt(math.MaxInt64)) > 0 || shifted.IsNegative() {
		return 0, domain.ErrInvalidInput
	}
	return shifted.IntPart(), nil
}
