package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"poster/domain/util"
)

type DiagnosticReport struct {
	UserAddress   common.Address
	PosterAddress common.Address
	TokenAddress  common.Address

	PosterTokenAddress common.Address
	PosterThreshold    *big.Int
	PosterOwner        common.Address

	TokenName     string
	TokenSymbol   string
	TokenDecimals uint8
	UserBalance   *big.Int
}

func (r *DiagnosticReport) TokenAddressesMatch() bool {
	return r.PosterTokenAddress == r.TokenAddress
}

func (r *DiagnosticReport) HasEnoughTokens() bool {
	return MeetsThreshold(r.UserBalance, r.PosterThreshold)
}

func (r *DiagnosticReport) ThresholdFormatted() string {
	return util.FormatTokens(r.PosterThreshold, r.TokenDecimals)
}

func (r *DiagnosticReport) BalanceFormatted() string {
	return util.FormatTokens(r.UserBalance, r.TokenDecimals)
}

func (r *DiagnosticReport) Problems() []string {
	problems := make([]string, 0, 2)
	if !r.HasEnoughTokens() {
		problems = append(problems, "Insufficient tokens!")
	}
	if !r.TokenAddressesMatch() {
		problems = append(problems, "Token address mismatch!")
	}
	return problems
}

func (r *DiagnosticReport) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔍 DIAGNOSTIC REPORT\n\n")
	fmt.Fprintf(&b, "Poster Contract:\n")
	fmt.Fprintf(&b, "- Address: %v\n", r.PosterAddress.Hex())
	fmt.Fprintf(&b, "- Token Address: %v\n", r.PosterTokenAddress.Hex())
	fmt.Fprintf(&b, "- Threshold: %v tokens\n", r.ThresholdFormatted())
	fmt.Fprintf(&b, "- Owner: %v\n\n", r.PosterOwner.Hex())

	fmt.Fprintf(&b, "Token Contract:\n")
	fmt.Fprintf(&b, "- Name: %v\n", r.TokenName)
	fmt.Fprintf(&b, "- Symbol: %v\n", r.TokenSymbol)
	fmt.Fprintf(&b, "- Your Balance: %v tokens\n", r.BalanceFormatted())
	fmt.Fprintf(&b, "- Decimals: %v\n\n", r.TokenDecimals)

	fmt.Fprintf(&b, "Status:\n")
	fmt.Fprintf(&b, "- Token addresses match: %v\n", r.TokenAddressesMatch())
	fmt.Fprintf(&b, "- Has enough tokens: %v\n", r.HasEnoughTokens())
	fmt.Fprintf(&b, "- Need: %v, Have: %v\n\n", r.ThresholdFormatted(), r.BalanceFormatted())

	problems := r.Problems()
	if len(problems) == 0 {
		fmt.Fprintf(&b, "✅ All checks passed\n")
	}
	for _, p := range problems {
		fmt.Fprintf(&b, "❌ PROBLEM: %v\n", p)
	}

	return b.String()
}
