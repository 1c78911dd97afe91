package domain

import (
	"math/big"
)

const (
	GasMarginNumerator   = 150
	GasMarginDenominator = 100
)

// GasWithMargin applies the 150% safety margin to a gas estimate.
func GasWithMargin(estimate uint64) (uint64, error) {
	limit := new(big.Int).SetUint64(estimate)
	limit.Mul(limit, big.NewInt(GasMarginNumerator))
	limit.Quo(limit, big.NewInt(GasMarginDenominator))
	if !limit.IsUint64() {
		return 0, ErrorNumericOverflow
	}
	return limit.Uint64(), nil
}
