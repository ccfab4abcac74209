package filter

import (
	"math"
	"strconv"
	"strings"
)

// Bound is an optional price limit.
type Bound struct {
	Amount float64
	Set    bool
}

// Unset is the absent bound.
var Unset = Bound{}

// Price returns a set bound.
func Price(amount float64) Bound {
	return Bound{Amount: amount, Set: true}
}

// ParseBound coerces user input into a bound. Empty or unparsable input, NaN
// and infinities yield Unset rather than an error.
func ParseBound(text string) Bound {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Unset
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Unset
	}
	return Price(v)
}

// String renders the bound for input fields; Unset renders empty.
func (b Bound) String() string {
	if !b.Set {
		return ""
	}
	return strconv.FormatFloat(b.Amount, 'f', -1, 64)
}

func (b Bound) ptr() *float64 {
	if !b.Set {
		return nil
	}
	v := b.Amount
	return &v
}

// PriceUpdate carries raw input for either bound. A nil field leaves that
// bound untouched.
type PriceUpdate struct {
	Min *string
	Max *string
}

// Text is a helper for building a PriceUpdate field.
func Text(s string) *string {
	return &s
}
