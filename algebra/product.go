package algebra

import (
	"errors"
	"fmt"
)

// ErrInvalidInputLength is returned when two vectors that must have the same
// length do not, or when a length is not a power of two.
var ErrInvalidInputLength = errors.New("invalid input length")

// CheckLengths returns ErrInvalidInputLength when left and right differ.
func CheckLengths(left, right int) error {
	if left != right {
		return fmt.Errorf("%w: %d != %d", ErrInvalidInputLength, left, right)
	}
	return nil
}

// InnerProduct maps a pair of equal length vectors to a single output element
// and is bilinear: linear in each argument while the other is fixed.
type InnerProduct[L, R, O Element] interface {
	Product(left []L, right []R) (O, error)
	Left() Module[L]
	Right() Module[R]
	Output() Module[O]
}

// PairingProduct computes the sum of e(left_i, right_i) in GT for
// left in G1 and right in G2.
type PairingProduct struct {
	Suite Suite
}

func (p PairingProduct) Product(left, right []Point) (Point, error) {
	if err := CheckLengths(len(left), len(right)); err != nil {
		return nil, err
	}
	return Reduce[Point](p.Output(), len(left), func(i int) Point {
		return p.Suite.Pair(left[i], right[i])
	}), nil
}

func (p PairingProduct) Left() Module[Point] { return Points{p.Suite.G1()} }
func (p PairingProduct) Right() Module[Point] { return Points{p.Suite.G2()} }
func (p PairingProduct) Output() Module[Point] { return Points{p.Suite.GT()} }

// MultiExp computes the sum of right_i * left_i for left in a group and right
// in the scalar field.
type MultiExp struct {
	Group Group
}

func (p MultiExp) Product(left []Point, right []Scalar) (Point, error) {
	if err := CheckLengths(len(left), len(right)); err != nil {
		return nil, err
	}
	return Reduce[Point](p.Output(), len(left), func(i int) Point {
		return p.Group.Point().Mul(right[i], left[i])
	}), nil
}

func (p MultiExp) Left() Module[Point] { return Points{p.Group} }
func (p MultiExp) Right() Module[Scalar] { return Scalars{p.Group} }
func (p MultiExp) Output() Module[Point] { return Points{p.Group} }

// ScalarProduct is the usual dot product over the scalar field.
type ScalarProduct struct {
	Group Group
}

func (p ScalarProduct) Product(left, right []Scalar) (Scalar, error) {
	if err := CheckLengths(len(left), len(right)); err != nil {
		return nil, err
	}
	return Reduce[Scalar](p.Output(), len(left), func(i int) Scalar {
		return p.Group.Scalar().Mul(left[i], right[i])
	}), nil
}

func (p ScalarProduct) Left() Module[Scalar] { return Scalars{p.Group} }
func (p ScalarProduct) Right() Module[Scalar] { return Scalars{p.Group} }
func (p ScalarProduct) Output() Module[Scalar] { return Scalars{p.Group} }
