package util

import (
	"math/big"
	"testing"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad big int %q", s)
	}
	return v
}

func TestFormatTokens(t *testing.T) {
	tests := []struct {
		amount   string
		decimals uint8
		want     string
	}{
		{"0", 18, "0"},
		{"1500000000000000000", 18, "1.5"},
		{"1000000000000000000", 18, "1"},
		{"1", 18, "0.000000000000000001"},
		{"123456", 2, "1234.56"},
		{"120", 2, "1.2"},
		{"42", 0, "42"},
		{"1000000000000000000000000000000", 18, "1000000000000"},
		{"999999999999999999999999999999", 18, "999999999999.999999999999999999"},
		{"-2500", 3, "-2.5"},
	}

	for _, tt := range tests {
		got := FormatTokens(mustBig(t, tt.amount), tt.decimals)
		if got != tt.want {
			t.Errorf("FormatTokens(%v, %d) = %q, want %q", tt.amount, tt.decimals, got, tt.want)
		}
	}
}

func TestFormatTokens_Nil(t *testing.T) {
	if got := FormatTokens(nil, 18); got != "0" {
		t.Errorf("FormatTokens(nil) = %q, want %q", got, "0")
	}
}

func TestFormatTokens_DoesNotMutate(t *testing.T) {
	amount := mustBig(t, "1500000000000000000")
	FormatTokens(amount, 18)
	if amount.String() != "1500000000000000000" {
		t.Errorf("amount mutated to %v", amount)
	}
}

func TestHumanTokens(t *testing.T) {
	got := HumanTokens(mustBig(t, "1234567500000000000000000"), 18, "PST")
	if got != "1,234,567.5 PST" {
		t.Errorf("HumanTokens = %q, want %q", got, "1,234,567.5 PST")
	}

	if got := HumanTokens(nil, 18, ""); got != "0" {
		t.Errorf("HumanTokens(nil) = %q, want %q", got, "0")
	}
}
