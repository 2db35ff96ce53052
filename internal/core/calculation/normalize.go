package calculation

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Converter converts monetary amounts between currencies.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// Money is an amount tagged with its ISO currency code.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NormalizeValues expresses every value in target. An empty target means the currency of
// the first value. Values already in the target currency are returned untouched.
func NormalizeValues(ctx context.Context, conv Converter, values []Money, target string) ([]decimal.Decimal, error) {
	if len(values) == 0 {
		return []decimal.Decimal{}, nil
	}

	target = strings.ToUpper(strings.TrimSpace(target))
	if target == "" {
		target = strings.ToUpper(values[0].Currency)
	}

	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		if strings.EqualFold(v.Currency, target) {
			out[i] = v.Amount
			continue
		}
		if conv == nil {
			return nil, invalidInputf("no currency converter for %s -> %s", v.Currency, target)
		}
		converted, err := conv.Convert(ctx, v.Amount, strings.ToUpper(v.Currency), target)
		if err != nil {
			return nil, fmt.Errorf("convert %s %s to %s: %w", v.Amount, v.Currency, target, err)
		}
		out[i] = converted
	}
	return out, nil
}
