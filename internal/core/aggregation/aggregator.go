package aggregation

import (
	"github.com/shopspring/decimal"
)

// Reducer folds freight charges into one running aggregate.
// To add an operator: implement Reducer and register it in Operators.
type Reducer interface {
	// Initial returns the aggregate after the first charge in a bucket.
	Initial(charge decimal.Decimal) decimal.Decimal

	// Apply folds another charge into the running aggregate.
	Apply(current, charge decimal.Decimal) decimal.Decimal
}

// Supported reducer names.
const (
	OpCount = "count"
	OpSum   = "sum"
	OpMin   = "min"
	OpMax   = "max"
)

// Operators is the registry of reducers applied to every bucket.
var Operators = map[string]Reducer{
	OpCount: countReducer{},
	OpSum:   sumReducer{},
	OpMin:   minReducer{},
	OpMax:   maxReducer{},
}

type countReducer struct{}

func (countReducer) Initial(_ decimal.Decimal) decimal.Decimal { return decimal.NewFromInt(1) }
func (countReducer) Apply(cur, _ decimal.Decimal) decimal.Decimal {
	return cur.Add(decimal.NewFromInt(1))
}

type sumReducer struct{}

func (sumReducer) Initial(v decimal.Decimal) decimal.Decimal      { return v }
func (sumReducer) Apply(cur, inc decimal.Decimal) decimal.Decimal { return cur.Add(inc) }

type minReducer struct{}

func (minReducer) Initial(v decimal.Decimal) decimal.Decimal { return v }
func (minReducer) Apply(cur, inc decimal.Decimal) decimal.Decimal {
	if inc.LessThan(cur) {
		return inc
	}
	return cur
}

type maxReducer struct{}

func (maxReducer) Initial(v decimal.Decimal) decimal.Decimal { return v }
func (maxReducer) Apply(cur, inc decimal.Decimal) decimal.Decimal {
	if inc.GreaterThan(cur) {
		return inc
	}
	return cur
}
