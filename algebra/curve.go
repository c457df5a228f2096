// Package algebra gathers the group and field capabilities consumed by the
// arguments, and the inner products they prove statements about.
package algebra

import (
	"errors"
	"fmt"

	"github.com/drand/kyber"
	bls "github.com/drand/kyber-bls12381"
	"github.com/drand/kyber/pairing"
	"github.com/drand/kyber/pairing/bn256"
)

// Scalar of the field of the curve
type Scalar = kyber.Scalar

// Point in one of the source groups or in the target group
type Point = kyber.Point

// Group has points on it and can create scalars from the scalar field
type Group = kyber.Group

// Suite exposes G1, G2, GT and the bilinear map e: G1 x G2 -> GT.
// As in kyber, the target group law is written additively: Add multiplies
// in GT and Mul exponentiates. Pair is called from several goroutines at
// once and must not share state between calls.
type Suite = pairing.Suite

// ErrInvalidSuite is returned for suites whose target group does not behave
// as a group.
var ErrInvalidSuite = errors.New("invalid pairing suite")

// Element is anything the arguments fold, commit to and absorb in a
// transcript: points of any group and scalars.
type Element interface {
	kyber.Marshaling
}

// Default returns the recommended pairing suite.
func Default() Suite {
	return BN256()
}

// BN256 returns the Barreto-Naehrig pairing suite.
func BN256() Suite {
	return bn256.NewSuite()
}

// BLS12381G1 returns the G1 group of BLS12-381. The target group of the
// kyber-bls12381 suite has no identity and no exponentiation, and its Pair
// reuses one engine across calls, so the curve only serves arguments that
// never pair: multiexponentiations and scalar products over G1.
func BLS12381G1() Group {
	return bls.NewBLS12381Suite().G1()
}

// CheckSuite checks the target group laws the arguments rely on: the
// identity is neutral, exponentiation agrees with the group law and the
// pairing of the generators is not trivial.
func CheckSuite(s Suite) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidSuite, r)
		}
	}()
	g, h := Generators(s)
	gt := Points{Group: s.GT()}
	e := s.Pair(g, h)
	two := s.G1().Scalar().SetInt64(2)
	switch {
	case !gt.Add(gt.Zero(), e).Equal(e):
		return fmt.Errorf("%w: identity of %s is not neutral", ErrInvalidSuite, s.GT())
	case !gt.Scale(e, two).Equal(gt.Add(e, e)):
		return fmt.Errorf("%w: exponentiation in %s disagrees with the group law", ErrInvalidSuite, s.GT())
	case e.Equal(gt.Zero()):
		return fmt.Errorf("%w: degenerate pairing", ErrInvalidSuite)
	}
	return nil
}

// Generators returns the base points of G1 and G2.
func Generators(s Suite) (g Point, h Point) {
	return s.G1().Point().Base(), s.G2().Point().Base()
}
