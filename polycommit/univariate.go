package polycommit

import (
	"crypto/cipher"
	"fmt"

	"github.com/nirvantyagi/ripp/algebra"
	poly "github.com/nirvantyagi/ripp/polynomial"
)

// bivariateLen returns the smallest power of two d with d*d > degree.
func bivariateLen(degree int) int {
	d := 1
	for d*d < degree+1 {
		d <<= 1
	}
	return d
}

// bivariateForm splits p into d chunks of d coefficients: p(z) = f(z^d, z)
// where Y[i] holds the coefficients i*d to (i+1)*d-1.
func bivariateForm(g algebra.Group, d int, p poly.Poly) (Bivariate, error) {
	coeffs := p.Normalize().Coeffs()
	if len(coeffs) > d*d {
		return Bivariate{}, fmt.Errorf("%w: degree %d, at most %d supported", ErrDegree, len(coeffs)-1, d*d-1)
	}
	f := Bivariate{Y: make([]poly.Poly, d)}
	for i := range f.Y {
		y := poly.NewZeroPoly(g, d-1)
		for j := 0; j < d && i*d+j < len(coeffs); j++ {
			y.Set(j, coeffs[i*d+j])
		}
		f.Y[i] = y
	}
	return f, nil
}

// SetupUnivariate returns parameters for univariate polynomials of degree up
// to degree.
func (s *Scheme) SetupUnivariate(rand cipher.Stream, degree int) (*Params, error) {
	d := bivariateLen(degree)
	return s.Setup(rand, d, d)
}

// CommitUnivariate commits to p through its bivariate form.
func (s *Scheme) CommitUnivariate(pp *Params, p poly.Poly) (*Commitment, error) {
	f, err := bivariateForm(s.suite.G1(), pp.XLen, p)
	if err != nil {
		return nil, err
	}
	return s.Commit(pp, f)
}

// OpenUnivariate proves the evaluation of the committed p at z.
func (s *Scheme) OpenUnivariate(pp *Params, p poly.Poly, com *Commitment, z Scalar) (*Opening, error) {
	f, err := bivariateForm(s.suite.G1(), pp.XLen, p)
	if err != nil {
		return nil, err
	}
	return s.Open(pp, f, com, s.outer(pp.XLen, z), z)
}

// VerifyUnivariate checks that the polynomial committed in com evaluates to
// eval at z.
func (s *Scheme) VerifyUnivariate(vk VerifierKey, com Point, z, eval Scalar, op *Opening) (bool, error) {
	return s.Verify(vk, com, s.outer(vk.XLen, z), z, eval, op)
}

// outer returns z^d.
func (s *Scheme) outer(d int, z Scalar) Scalar {
	x := s.suite.G1().Scalar().One()
	for i := 0; i < d; i++ {
		x.Mul(x, z)
	}
	return x
}
