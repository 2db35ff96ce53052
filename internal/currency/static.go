package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedCurrency is returned when no rate is configured for a currency.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// StaticConverter converts through a fixed table of rates against one base currency.
// A rate is the number of base units one unit of the currency buys.
type StaticConverter struct {
	base  string
	rates map[string]decimal.Decimal
}

// NewStaticConverter parses rates such as {"EUR": "1.08"}. The base currency is
// implicitly 1 and may be omitted.
func NewStaticConverter(base string, rates map[string]string) (*StaticConverter, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		return nil, fmt.Errorf("base currency is required")
	}

	c := &StaticConverter{
		base:  base,
		rates: map[string]decimal.Decimal{base: decimal.NewFromInt(1)},
	}
	for code, raw := range rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("currency %s: invalid rate %q: %w", code, raw, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("currency %s: rate must be positive, got %s", code, rate)
		}
		if code == base && !rate.Equal(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("currency %s: base rate must be 1, got %s", code, rate)
		}
		c.rates[code] = rate
	}
	return c, nil
}

// Base returns the base currency code.
func (c *StaticConverter) Base() string {
	return c.base
}

// Convert returns amount expressed in to. Same-currency conversions return amount unchanged.
func (c *StaticConverter) Convert(_ context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return amount, nil
	}

	fromRate, ok := c.rates[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, from)
	}
	toRate, ok := c.rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, to)
	}

	return amount.Mul(fromRate).Div(toRate), nil
}
