package algebra

import (
	"crypto/cipher"
	"fmt"
	"math/bits"
)

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns the number of halvings needed to bring a power of two down to
// one.
func Log2(n int) int {
	return bits.Len(uint(n)) - 1
}

// CheckPowerOfTwo returns ErrInvalidInputLength if n is not a power of two.
func CheckPowerOfTwo(n int) error {
	if !IsPowerOfTwo(n) {
		return fmt.Errorf("%w: %d is not a power of two", ErrInvalidInputLength, n)
	}
	return nil
}

// Fold returns left_i + x * right_i. It never modifies its inputs.
func Fold[T Element](m Module[T], left, right []T, x Scalar) ([]T, error) {
	if err := CheckLengths(len(left), len(right)); err != nil {
		return nil, err
	}
	out := make([]T, len(left))
	for i := range left {
		out[i] = m.Add(left[i], m.Scale(right[i], x))
	}
	return out, nil
}

// ScaleEach returns v_i * xs_i.
func ScaleEach[T Element](m Module[T], v []T, xs []Scalar) ([]T, error) {
	if err := CheckLengths(len(v), len(xs)); err != nil {
		return nil, err
	}
	out := make([]T, len(v))
	for i := range v {
		out[i] = m.Scale(v[i], xs[i])
	}
	return out, nil
}

// Powers returns [1, x, x^2, ..., x^(n-1)].
func Powers(g Group, x Scalar, n int) []Scalar {
	out := make([]Scalar, n)
	acc := g.Scalar().One()
	for i := 0; i < n; i++ {
		out[i] = acc.Clone()
		acc.Mul(acc, x)
	}
	return out
}

// PowersOf returns [base, x*base, x^2*base, ..., x^(n-1)*base].
func PowersOf(g Group, base Point, x Scalar, n int) []Point {
	out := make([]Point, n)
	for i, p := range Powers(g, x, n) {
		out[i] = g.Point().Mul(p, base)
	}
	return out
}

// Sum returns the sum of the given scalars.
func Sum(g Group, xs []Scalar) Scalar {
	acc := g.Scalar().Zero()
	for _, x := range xs {
		acc.Add(acc, x)
	}
	return acc
}

// RandomScalars samples n scalars from rand.
func RandomScalars(g Group, rand cipher.Stream, n int) []Scalar {
	out := make([]Scalar, n)
	for i := range out {
		out[i] = g.Scalar().Pick(rand)
	}
	return out
}

// RandomPoints samples n points from rand.
func RandomPoints(g Group, rand cipher.Stream, n int) []Point {
	out := make([]Point, n)
	for i := range out {
		out[i] = g.Point().Pick(rand)
	}
	return out
}
