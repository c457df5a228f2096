package poly

import (
	"crypto/cipher"
	"fmt"

	"github.com/nirvantyagi/ripp/algebra"
	"go.dedis.ch/kyber/v3/util/random"
)

// Group has points on it and can create scalar from the scalar fields
type Group = algebra.Group

// Scalar of the field of the curve
type Scalar = algebra.Scalar

// Point in the group (in our case it's elliptic curve so it's a point)
type Point = algebra.Point

// Poly is a dense polynomial, coefficients in ascending degree order.
type Poly struct {
	c []Scalar
	g Group
}

func emptyPoly(g Group, d int) Poly {
	o := make([]Scalar, d+1)
	for i := 0; i <= d; i++ {
		o[i] = g.Scalar().Zero()
	}
	return Poly{c: o, g: g}
}

func NewZeroPoly(g Group, degree ...int) Poly {
	if len(degree) > 0 {
		return emptyPoly(g, degree[0])
	}
	return Poly{c: []Scalar{}, g: g}
}

func NewPolyFrom(g Group, coeffs []Scalar) Poly {
	return Poly{c: coeffs, g: g}
}

func (p Poly) Set(pos int, coeff Scalar) {
	p.c[pos] = coeff
}

// Scale returns a*p
func (p Poly) Scale(a Scalar) Poly {
	out := make([]Scalar, len(p.c))
	for i := range p.c {
		out[i] = p.g.Scalar().Mul(p.c[i], a)
	}
	return Poly{c: out, g: p.g}
}

func (p Poly) Eval(i Scalar) Scalar {
	xi := i.Clone()
	v := p.g.Scalar().Zero()
	for j := len(p.c) - 1; j >= 0; j-- {
		v.Mul(v, xi)
		v.Add(v, p.c[j])
	}
	return v
}

// DivideLinear divides p by (X - z) with synthetic division and returns the
// quotient and the remainder, which is p(z).
func (p Poly) DivideLinear(z Scalar) (Poly, Scalar) {
	if len(p.c) == 0 {
		return NewZeroPoly(p.g), p.g.Scalar().Zero()
	}
	d := len(p.c) - 1
	q := make([]Scalar, d)
	acc := p.g.Scalar().Zero()
	for i := d; i >= 1; i-- {
		acc = p.g.Scalar().Add(p.c[i], p.g.Scalar().Mul(z, acc))
		q[i-1] = acc
	}
	rem := p.g.Scalar().Add(p.c[0], p.g.Scalar().Mul(z, acc))
	return Poly{c: q, g: p.g}, rem
}

func (p Poly) Add(p2 Poly) Poly {
	max := len(p.c)
	if max < len(p2.c) {
		max = len(p2.c)
	}

	output := make([]Scalar, max)
	for i := range p.c {
		output[i] = p.g.Scalar().Set(p.c[i])
	}
	for i := range p2.c {
		if output[i] == nil {
			output[i] = p.g.Scalar().Zero()
		}
		output[i] = output[i].Add(output[i], p2.c[i])
	}
	return Poly{c: output, g: p.g}
}

func (p Poly) Coeffs() []Scalar {
	return p.c
}

// Normalize remove all the 0 coefficients from the highest degree downwards
// until it encounters a non zero coefficients (i.e. len(p) will give the degree
// of the coefficient)
func (p Poly) Normalize() Poly {
	maxi := len(p.c)
	for i := len(p.c) - 1; i >= 0; i-- {
		if !p.c[i].Equal(p.g.Scalar().Zero()) {
			return NewPolyFrom(p.g, p.c[:maxi])
		}
		maxi--
	}
	return NewPolyFrom(p.g, p.c[:maxi])
}

func (p Poly) Degree() int {
	return len(p.c) - 1
}

// Commit evaluates the polynomial "in the exponent": given powers[i] = s^i*G
// for an unknown s, with G a point of group, it returns p(s)*G. powers can be
// longer than p but not shorter.
func (p Poly) Commit(group Group, powers []Point) (Point, error) {
	if len(powers) < len(p.c) {
		return nil, fmt.Errorf("%w: %d powers for a polynomial of degree %d", algebra.ErrInvalidInputLength, len(powers), p.Degree())
	}
	return algebra.MultiExp{Group: group}.Product(powers[:len(p.c)], p.c)
}

// RandomPoly samples a polynomial of degree d.
func RandomPoly(g Group, d int) Poly {
	return RandomPolyFrom(g, random.New(), d)
}

// RandomPolyFrom samples a polynomial of degree d from rand.
func RandomPolyFrom(g Group, rand cipher.Stream, d int) Poly {
	var poly = make([]Scalar, 0, d+1)
	for i := 0; i <= d; i++ {
		poly = append(poly, g.Scalar().Pick(rand))
	}
	return NewPolyFrom(g, poly)
}
