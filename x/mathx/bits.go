package mathx

import "golang.org/x/exp/constraints"

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// Bit reports whether bit n of v is set.
func Bit[T constraints.Unsigned](v T, n uint) bool {
	return v&(1<<n) != 0
}

// SetBit returns v with bit n set to on.
func SetBit[T constraints.Unsigned](v T, n uint, on bool) T {
	if on {
		return v | 1<<n
	}
	return v &^ (1 << n)
}
