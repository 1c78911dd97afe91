package domain

import (
	"math/big"
	"testing"
)

func TestMeetsThreshold(t *testing.T) {
	big30 := new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)
	below30 := new(big.Int).Sub(big30, big.NewInt(1))

	tests := []struct {
		name      string
		balance   *big.Int
		threshold *big.Int
		want      bool
	}{
		{"equal", big.NewInt(100), big.NewInt(100), true},
		{"above", big.NewInt(101), big.NewInt(100), true},
		{"below", big.NewInt(99), big.NewInt(100), false},
		{"zero threshold", big.NewInt(0), big.NewInt(0), true},
		{"huge above", big30, below30, true},
		{"huge below", below30, big30, false},
		{"nil balance", nil, big.NewInt(1), false},
	}

	for _, tt := range tests {
		if got := MeetsThreshold(tt.balance, tt.threshold); got != tt.want {
			t.Errorf("%v: MeetsThreshold = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBalanceSnapshot_MeetsThreshold(t *testing.T) {
	if EmptySnapshot().MeetsThreshold() {
		t.Error("empty snapshot must not pass the gate")
	}

	s := NewBalanceSnapshot(big.NewInt(5), big.NewInt(5), 18)
	if !s.MeetsThreshold() {
		t.Error("balance == threshold must pass the gate")
	}
}

func TestNewBalanceSnapshot_Copies(t *testing.T) {
	balance := big.NewInt(10)
	s := NewBalanceSnapshot(balance, nil, 18)

	balance.SetInt64(0)
	if s.Balance.Int64() != 10 {
		t.Errorf("snapshot balance = %v, want 10", s.Balance)
	}
	if s.Threshold.Sign() != 0 {
		t.Errorf("nil threshold should become zero, got %v", s.Threshold)
	}
}
