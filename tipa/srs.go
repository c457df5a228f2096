package tipa

import (
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/drand/kyber/util/random"
	"github.com/nirvantyagi/ripp/algebra"
	"github.com/nirvantyagi/ripp/commitment"
)

// ErrSRSTooShort is returned when a statement is longer than the SRS supports.
var ErrSRSTooShort = errors.New("srs too short")

// SRS is the structured reference string: powers of two independent trapdoors
// alpha and beta, in G1 and G2 respectively, up to 2n-2. The commitment keys
// are the even powers; the odd ones are only needed to open folded keys.
type SRS struct {
	// g^(alpha^i) for i in [0, 2n-1)
	GAlpha []algebra.Point
	// h^(beta^i) for i in [0, 2n-1)
	HBeta []algebra.Point
	// g^beta
	GBeta algebra.Point
	// h^alpha
	HAlpha algebra.Point
}

// VerifierKey is the constant size part of the SRS the verifier needs.
type VerifierKey struct {
	G      algebra.Point
	H      algebra.Point
	GBeta  algebra.Point
	HAlpha algebra.Point
}

// Setup generates an SRS supporting statements of length up to n, which must
// be a power of two. The trapdoors are sampled from rand, or from a fresh
// random stream when rand is nil, and are discarded afterwards. Suites
// failing algebra.CheckSuite are rejected.
func Setup(suite algebra.Suite, rand cipher.Stream, n int) (*SRS, error) {
	if err := algebra.CheckPowerOfTwo(n); err != nil {
		return nil, err
	}
	if err := algebra.CheckSuite(suite); err != nil {
		return nil, err
	}
	if rand == nil {
		rand = random.New()
	}
	g1, g2 := suite.G1(), suite.G2()
	alpha := g1.Scalar().Pick(rand)
	beta := g1.Scalar().Pick(rand)
	g, h := algebra.Generators(suite)
	return &SRS{
		GAlpha: algebra.PowersOf(g1, g, alpha, 2*n-1),
		HBeta:  algebra.PowersOf(g2, h, beta, 2*n-1),
		GBeta:  g1.Point().Mul(beta, g),
		HAlpha: g2.Point().Mul(alpha, h),
	}, nil
}

// MaxLen returns the longest statement the SRS supports.
func (s *SRS) MaxLen() int {
	return (len(s.GAlpha) + 1) / 2
}

func (s *SRS) check(n int) error {
	if err := algebra.CheckPowerOfTwo(n); err != nil {
		return err
	}
	if n > s.MaxLen() {
		return fmt.Errorf("%w: statement of length %d, srs supports %d", ErrSRSTooShort, n, s.MaxLen())
	}
	return nil
}

// CommitmentKey returns the key for statements of length n: the even powers
// of beta in G2 commit to left messages and the even powers of alpha in G1
// to right messages.
func (s *SRS) CommitmentKey(n int) (commitment.Key, error) {
	if err := s.check(n); err != nil {
		return commitment.Key{}, err
	}
	k := commitment.Key{
		Left:  make([]algebra.Point, n),
		Right: make([]algebra.Point, n),
	}
	for i := 0; i < n; i++ {
		k.Left[i] = s.HBeta[2*i]
		k.Right[i] = s.GAlpha[2*i]
	}
	return k, nil
}

// VerifierKey extracts the verifier key.
func (s *SRS) VerifierKey() VerifierKey {
	return VerifierKey{
		G:      s.GAlpha[0],
		H:      s.HBeta[0],
		GBeta:  s.GBeta,
		HAlpha: s.HAlpha,
	}
}
