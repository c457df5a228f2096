// Package polycommit builds polynomial commitments with square root size
// openings on top of the structured inner product argument. A bivariate
// polynomial f(x, y) = sum x^i f_i(y) is committed by committing to every f_i
// with KZG and to the vector of those commitments with AFGHO. Opening at
// (x, y) proves the combination sum x^i com(f_i) with the structured argument
// and opens the combined polynomial at y with KZG. Univariate polynomials are
// committed through their bivariate form.
package polycommit

import (
	"errors"
	"fmt"

	"github.com/nirvantyagi/ripp/algebra"
	poly "github.com/nirvantyagi/ripp/polynomial"
	"github.com/nirvantyagi/ripp/tipa"
)

// ErrDegree is returned for polynomials larger than the parameters support.
var ErrDegree = errors.New("polynomial degree too large")

type Point = algebra.Point
type Scalar = algebra.Scalar

// KZG commits to polynomials of degree less than len(Powers) in G1.
type KZG struct {
	Group algebra.Group
	// g^(alpha^i)
	Powers []Point
}

func (k KZG) check(p poly.Poly) (poly.Poly, error) {
	p = p.Normalize()
	if len(p.Coeffs()) > len(k.Powers) {
		return p, fmt.Errorf("%w: degree %d, at most %d supported", ErrDegree, p.Degree(), len(k.Powers)-1)
	}
	return p, nil
}

// Commit returns g^p(alpha).
func (k KZG) Commit(p poly.Poly) (Point, error) {
	p, err := k.check(p)
	if err != nil {
		return nil, err
	}
	return p.Commit(k.Group, k.Powers)
}

// Open returns the commitment to (p(X) - p(z)) / (X - z).
func (k KZG) Open(p poly.Poly, z Scalar) (Point, error) {
	p, err := k.check(p)
	if err != nil {
		return nil, err
	}
	q, _ := p.DivideLinear(z)
	return q.Commit(k.Group, k.Powers)
}

// VerifyKZG checks e(com - eval*g, h) == e(proof, h^alpha - z*h).
func VerifyKZG(suite algebra.Suite, vk tipa.VerifierKey, com Point, z, eval Scalar, proof Point) bool {
	g1, g2 := suite.G1(), suite.G2()
	left := g1.Point().Sub(com, g1.Point().Mul(eval, vk.G))
	right := g2.Point().Sub(vk.HAlpha, g2.Point().Mul(z, vk.H))
	return suite.Pair(left, vk.H).Equal(suite.Pair(proof, right))
}
