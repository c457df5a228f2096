package polycommit

import (
	"crypto/cipher"
	"fmt"

	"github.com/nirvantyagi/ripp/algebra"
	"github.com/nirvantyagi/ripp/commitment"
	"github.com/nirvantyagi/ripp/gipa"
	"github.com/nirvantyagi/ripp/logger"
	poly "github.com/nirvantyagi/ripp/polynomial"
	"github.com/nirvantyagi/ripp/tipa"
)

// DefaultLabel separates the transcripts of the openings.
const DefaultLabel = "ripp/polycommit"

// Bivariate is f(x, y) = sum x^i Y[i](y).
type Bivariate struct {
	Y []poly.Poly
}

// Eval returns f(x, y).
func (b Bivariate) Eval(x, y Scalar) Scalar {
	acc := x.Clone().Zero()
	xi := x.Clone().One()
	for _, p := range b.Y {
		acc.Add(acc, x.Clone().Mul(xi, p.Eval(y)))
		xi.Mul(xi, x)
	}
	return acc
}

// Params are the public parameters for bivariate polynomials with up to XLen
// y-polynomials of up to YLen coefficients each.
type Params struct {
	SRS  *tipa.SRS
	XLen int
	YLen int
}

// VerifierKey is what verifying an opening needs.
type VerifierKey struct {
	IP   tipa.VerifierKey
	XLen int
}

// VerifierKey extracts the verifier key.
func (pp *Params) VerifierKey() VerifierKey {
	return VerifierKey{IP: pp.SRS.VerifierKey(), XLen: pp.XLen}
}

// Commitment to a bivariate polynomial. Com is the public commitment; the
// KZG commitments of the y-polynomials are kept by the prover to open.
type Commitment struct {
	Com  Point
	YCom []Point
}

// Opening proves the evaluation of a committed polynomial at a point.
type Opening struct {
	// commitment to sum x^i Y[i]
	YEvalCom Point
	IP       *tipa.Proof[Point, Scalar, Point]
	KZG      Point
}

// Scheme commits to polynomials over a pairing suite.
type Scheme struct {
	suite algebra.Suite
	mipp  *tipa.Structured[Point, Point]
}

// New returns the commitment scheme. Options configure the transcripts of the
// openings.
func New(suite algebra.Suite, opts ...gipa.Option) *Scheme {
	opts = append([]gipa.Option{gipa.WithLabel(DefaultLabel)}, opts...)
	return &Scheme{
		suite: suite,
		mipp: tipa.NewStructured[Point, Point](suite,
			commitment.AFGHOG1{Suite: suite},
			algebra.MultiExp{Group: suite.G1()},
			opts...),
	}
}

// Setup returns parameters for xLen y-polynomials of yLen coefficients. xLen
// must be a power of two and yLen at most 2*xLen-1.
func (s *Scheme) Setup(rand cipher.Stream, xLen, yLen int) (*Params, error) {
	srs, err := tipa.Setup(s.suite, rand, xLen)
	if err != nil {
		return nil, err
	}
	if yLen < 1 || yLen > len(srs.GAlpha) {
		return nil, fmt.Errorf("%w: %d y coefficients with %d x terms", tipa.ErrSRSTooShort, yLen, xLen)
	}
	return &Params{SRS: srs, XLen: xLen, YLen: yLen}, nil
}

func (s *Scheme) kzg(pp *Params) KZG {
	return KZG{Group: s.suite.G1(), Powers: pp.SRS.GAlpha[:pp.YLen]}
}

func (s *Scheme) key(pp *Params) (commitment.Key, error) {
	return s.mipp.Key(pp.SRS, pp.XLen)
}

// Commit commits to f. Missing y-polynomials are zero.
func (s *Scheme) Commit(pp *Params, f Bivariate) (*Commitment, error) {
	if len(f.Y) > pp.XLen {
		return nil, fmt.Errorf("%w: %d y-polynomials, at most %d supported", ErrDegree, len(f.Y), pp.XLen)
	}
	kzg := s.kzg(pp)
	ycom := make([]Point, pp.XLen)
	err := algebra.Execute(pp.XLen, func(start, end int) error {
		for i := start; i < end; i++ {
			if i >= len(f.Y) {
				ycom[i] = s.suite.G1().Point().Null()
				continue
			}
			c, err := kzg.Commit(f.Y[i])
			if err != nil {
				return fmt.Errorf("y-polynomial %d: %w", i, err)
			}
			ycom[i] = c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	key, err := s.key(pp)
	if err != nil {
		return nil, err
	}
	com, err := commitment.AFGHOG1{Suite: s.suite}.Commit(key.Left, ycom)
	if err != nil {
		return nil, err
	}
	return &Commitment{Com: com, YCom: ycom}, nil
}

// Open proves the evaluation of the committed f at (x, y).
func (s *Scheme) Open(pp *Params, f Bivariate, com *Commitment, x, y Scalar) (*Opening, error) {
	if len(f.Y) > pp.XLen || len(com.YCom) != pp.XLen {
		return nil, fmt.Errorf("%w: polynomial does not match the parameters", ErrDegree)
	}
	field := s.suite.G1()
	// sum x^i Y[i] as a polynomial in y
	yEval := poly.NewZeroPoly(field)
	xi := field.Scalar().One()
	for _, p := range f.Y {
		yEval = yEval.Add(p.Scale(xi))
		xi = field.Scalar().Mul(xi, x)
	}
	kzg := s.kzg(pp)
	yEvalCom, err := kzg.Commit(yEval)
	if err != nil {
		return nil, err
	}
	ip, err := s.mipp.ProveCommitted(pp.SRS, commitment.Commitment[Point]{Left: com.Com, Output: yEvalCom}, com.YCom, x)
	if err != nil {
		return nil, err
	}
	proof, err := kzg.Open(yEval, y)
	if err != nil {
		return nil, err
	}
	return &Opening{YEvalCom: yEvalCom, IP: ip, KZG: proof}, nil
}

// Verify checks that the polynomial committed in com evaluates to eval at
// (x, y).
func (s *Scheme) Verify(vk VerifierKey, com Point, x, y, eval Scalar, op *Opening) (bool, error) {
	if op == nil || op.YEvalCom == nil || op.KZG == nil {
		return false, fmt.Errorf("%w: incomplete opening", gipa.ErrProofFormat)
	}
	ok, err := s.mipp.Verify(vk.IP, vk.XLen, commitment.Commitment[Point]{Left: com, Output: op.YEvalCom}, x, op.IP)
	if err != nil || !ok {
		return false, err
	}
	if !VerifyKZG(s.suite, vk.IP, op.YEvalCom, y, eval, op.KZG) {
		log := logger.Logger()
		log.Debug().Msg("polycommit: kzg opening rejected")
		return false, nil
	}
	return true, nil
}
