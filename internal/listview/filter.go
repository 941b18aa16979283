package listview

import "strings"

// HighPriceThreshold separates high from low predicted prices, in EUR/kWh.
const HighPriceThreshold = 0.28

// Filter returns the items for which keep is true. The input is never modified.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep == nil || keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Contains matches items whose field contains term, ignoring case. The term is used
// as typed, surrounding spaces included. An empty term matches everything.
func Contains[T any](term string, field func(T) string) func(T) bool {
	term = strings.ToLower(term)
	return func(it T) bool {
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(field(it)), term)
	}
}

// PriceBand selects predictions by predicted price.
type PriceBand string

var (
	BandAll  PriceBand = "all"
	BandHigh PriceBand = "high"
	BandLow  PriceBand = "low"
)

// Match reports whether price falls in the band. Unknown bands match everything.
func (b PriceBand) Match(price float64) bool {
	switch b {
	case BandHigh:
		return price > HighPriceThreshold
	case BandLow:
		return price <= HighPriceThreshold
	default:
		return true
	}
}

// All combines predicates with logical AND.
func All[T any](preds ...func(T) bool) func(T) bool {
	return func(it T) bool {
		for _, p := range preds {
			if p != nil && !p(it) {
				return false
			}
		}
		return true
	}
}
