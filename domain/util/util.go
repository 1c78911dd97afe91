package util

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatTokens renders amount / 10^decimals exactly. Trailing fractional zeros are
// trimmed and a zero fraction is omitted; nil and zero amounts give "0".
func FormatTokens(amount *big.Int, decimals uint8) string {
	sign, whole, fraction := splitTokens(amount, decimals)
	if fraction == "" {
		return sign + whole.String()
	}
	return sign + whole.String() + "." + fraction
}

// HumanTokens is FormatTokens with the whole part grouped by thousands, for display only.
func HumanTokens(amount *big.Int, decimals uint8, symbol string) string {
	sign, whole, fraction := splitTokens(amount, decimals)
	res := sign + humanize.BigComma(whole)
	if fraction != "" {
		res += "." + fraction
	}
	if symbol != "" {
		res = fmt.Sprintf("%v %v", res, symbol)
	}
	return res
}

func splitTokens(amount *big.Int, decimals uint8) (string, *big.Int, string) {
	if amount == nil || amount.Sign() == 0 {
		return "", new(big.Int), ""
	}

	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, rem := new(big.Int).QuoRem(new(big.Int).Abs(amount), divisor, new(big.Int))
	if rem.Sign() == 0 {
		return sign, whole, ""
	}

	fraction := rem.String()
	fraction = strings.Repeat("0", int(decimals)-len(fraction)) + fraction
	return sign, whole, strings.TrimRight(fraction, "0")
}
