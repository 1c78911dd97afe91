package domain

import (
	"math/big"
)

// BalanceSnapshot is the last known token balance against the posting threshold. Amounts
// are in the token's smallest unit.
type BalanceSnapshot struct {
	Balance   *big.Int
	Threshold *big.Int
	Decimals  uint8
}

func NewBalanceSnapshot(balance, threshold *big.Int, decimals uint8) BalanceSnapshot {
	return BalanceSnapshot{
		Balance:   copyOrZero(balance),
		Threshold: copyOrZero(threshold),
		Decimals:  decimals,
	}
}

// EmptySnapshot is what a session holds before the first check or after a disconnect; it
// never passes the gate.
func EmptySnapshot() BalanceSnapshot {
	return BalanceSnapshot{Decimals: DefaultDecimals}
}

func (s BalanceSnapshot) IsEmpty() bool {
	return s.Balance == nil || s.Threshold == nil
}

// MeetsThreshold is the gate: balance >= threshold, compared exactly.
func (s BalanceSnapshot) MeetsThreshold() bool {
	if s.IsEmpty() {
		return false
	}
	return MeetsThreshold(s.Balance, s.Threshold)
}

func MeetsThreshold(balance, threshold *big.Int) bool {
	if balance == nil || threshold == nil {
		return false
	}
	return balance.Cmp(threshold) >= 0
}

func copyOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
