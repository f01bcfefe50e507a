package shop

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var priceRegex = regexp.MustCompile(`[\$€£]?\s*(\d+(?:\.\d+)?)`)

// ParsePrice extracts the first number from a free-text price such as "$19.99".
// It is best effort and returns zero when no number is found.
func ParsePrice(s string) decimal.Decimal {
	match := priceRegex.FindStringSubmatch(s)
	if len(match) < 2 {
		return decimal.Zero
	}

	price, err := decimal.NewFromString(match[1])
	if err != nil {
		return decimal.Zero
	}
	return price
}

// priceTier returns the money bags shown next to a price.
func priceTier(price decimal.Decimal) string {
	switch {
	case price.LessThan(decimal.NewFromInt(15)):
		return "💰"
	case price.LessThan(decimal.NewFromInt(30)):
		return "💰💰"
	default:
		return "💰💰💰"
	}
}
