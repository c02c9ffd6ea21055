package utils

import (
	"fmt"
	"strings"

	"github.com/hance08/banksim/internal/constants"
	"github.com/shopspring/decimal"
)

func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(constants.AmountScale)
}

// ParseAmount accepts plain decimal strings such as "150", "150.5" or "-3.25".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	s := strings.TrimSpace(amountStr)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %s", amountStr)
	}
	return d, nil
}

// ShortID trims an opaque id for table output.
func ShortID(id string) string {
	if len(id) <= constants.ShortIDLen {
		return id
	}
	return id[:constants.ShortIDLen]
}
