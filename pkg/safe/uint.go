// Package safe provides integer conversions that fail instead of wrapping.
package safe

import (
	"fmt"
	"math"
)

// Integer is any signed or unsigned integer type, including named ones.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func signed[T Integer]() bool {
	var zero T
	return ^zero < zero
}

// Uint64 converts v to uint64, rejecting negative values.
func Uint64[T Integer](v T) (uint64, error) {
	if signed[T]() && int64(v) < 0 {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}

// Uint converts v to uint, rejecting negative values and values above the platform maximum.
func Uint[T Integer](v T) (uint, error) {
	u, err := Uint64(v)
	if err != nil {
		return 0, fmt.Errorf("value %d out of uint range", v)
	}
	if u > math.MaxUint {
		return 0, fmt.Errorf("value %d out of uint range", v)
	}
	return uint(u), nil
}

// Int converts v to int, rejecting values outside the platform range.
func Int[T Integer](v T) (int, error) {
	if signed[T]() {
		s := int64(v)
		if s < math.MinInt || s > math.MaxInt {
			return 0, fmt.Errorf("value %d out of int range", v)
		}
		return int(s), nil
	}
	if uint64(v) > math.MaxInt {
		return 0, fmt.Errorf("value %d out of int range", v)
	}
	return int(v), nil
}
