package domain

import (
	"errors"
	"math"
	"testing"
)

func TestGasWithMargin(t *testing.T) {
	tests := []struct {
		estimate uint64
		want     uint64
	}{
		{0, 0},
		{21000, 31500},
		{100001, 150001},
		{3, 4},
	}

	for _, tt := range tests {
		got, err := GasWithMargin(tt.estimate)
		if err != nil {
			t.Fatalf("GasWithMargin(%d) error: %v", tt.estimate, err)
		}
		if got != tt.want {
			t.Errorf("GasWithMargin(%d) = %d, want %d", tt.estimate, got, tt.want)
		}
	}
}

func TestGasWithMargin_Overflow(t *testing.T) {
	if _, err := GasWithMargin(math.MaxUint64); !errors.Is(err, ErrorNumericOverflow) {
		t.Errorf("expected ErrorNumericOverflow, got %v", err)
	}
}
