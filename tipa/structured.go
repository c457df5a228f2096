package tipa

import (
	"fmt"

	"github.com/nirvantyagi/ripp/algebra"
	"github.com/nirvantyagi/ripp/commitment"
	"github.com/nirvantyagi/ripp/gipa"
	"github.com/nirvantyagi/ripp/logger"
	poly "github.com/nirvantyagi/ripp/polynomial"
	"github.com/nirvantyagi/ripp/transcript"
)

// StructuredLabel separates the transcripts of the structured argument.
const StructuredLabel = "ripp/tipa-structured"

// Structured proves inner products between a committed left vector and the
// public vector [1, r, r^2, ...]. The right message is not committed to: the
// verifier recomputes its folded value from r and the challenges.
type Structured[L, O algebra.Element] struct {
	gipa  *gipa.Argument[L, algebra.Scalar, O]
	suite algebra.Suite
}

// NewStructured returns the structured argument for a left scheme taking G2
// keys and an inner product with scalars.
func NewStructured[L, O algebra.Element](suite algebra.Suite, left commitment.Scheme[L], product algebra.InnerProduct[L, algebra.Scalar, O], opts ...gipa.Option) *Structured[L, O] {
	opts = append([]gipa.Option{gipa.WithLabel(StructuredLabel)}, opts...)
	scheme := commitment.Extended[L, algebra.Scalar, O]{
		Left:    left,
		Product: product,
	}
	return &Structured[L, O]{
		gipa:  gipa.New(suite.G1(), scheme, opts...),
		suite: suite,
	}
}

// Scheme returns the commitment the argument is built on. Its Right scheme is
// nil.
func (s *Structured[L, O]) Scheme() commitment.Extended[L, algebra.Scalar, O] {
	return s.gipa.Scheme()
}

// Key returns the left only commitment key for length n.
func (s *Structured[L, O]) Key(srs *SRS, n int) (commitment.Key, error) {
	key, err := srs.CommitmentKey(n)
	if err != nil {
		return commitment.Key{}, err
	}
	return commitment.Key{Left: key.Left}, nil
}

// Commit returns the commitment to left together with <left, [r^i]>.
func (s *Structured[L, O]) Commit(srs *SRS, left []L, r algebra.Scalar) (commitment.Commitment[O], error) {
	key, err := s.Key(srs, len(left))
	if err != nil {
		return commitment.Commitment[O]{}, err
	}
	return s.Scheme().Commit(key, left, algebra.Powers(s.suite.G1(), r, len(left)))
}

// Prove returns a proof that the committed left vector has inner product
// com.Output with the powers of r.
func (s *Structured[L, O]) Prove(srs *SRS, left []L, r algebra.Scalar) (*Proof[L, algebra.Scalar, O], error) {
	com, err := s.Commit(srs, left, r)
	if err != nil {
		return nil, fmt.Errorf("tipa: commit: %w", err)
	}
	return s.ProveCommitted(srs, com, left, r)
}

// ProveCommitted is Prove for a caller already holding the commitment.
func (s *Structured[L, O]) ProveCommitted(srs *SRS, com commitment.Commitment[O], left []L, r algebra.Scalar) (*Proof[L, algebra.Scalar, O], error) {
	n := len(left)
	key, err := s.Key(srs, n)
	if err != nil {
		return nil, err
	}
	t, err := s.transcript(n, com, r)
	if err != nil {
		return nil, err
	}
	gp, xs, err := s.gipa.ProveTranscript(t, key, left, algebra.Powers(s.suite.G1(), r, n))
	if err != nil {
		return nil, err
	}
	z, err := evaluationPoint(t, gp.FinalKey)
	if err != nil {
		return nil, err
	}
	opening, err := openKeys(s.suite, srs, gp.FinalKey, xs, s.suite.G1().Scalar().One(), z)
	if err != nil {
		return nil, fmt.Errorf("tipa: key opening: %w", err)
	}
	log := logger.Logger()
	log.Debug().Int("n", n).Int("rounds", len(gp.Rounds)).Msg("tipa: structured proof generated")
	return &Proof[L, algebra.Scalar, O]{GIPA: gp, Opening: opening}, nil
}

func (s *Structured[L, O]) transcript(n int, com commitment.Commitment[O], r algebra.Scalar) (*transcript.Transcript, error) {
	t, err := s.gipa.Transcript(n, com)
	if err != nil {
		return nil, err
	}
	if err := t.Append("base", r); err != nil {
		return nil, err
	}
	return t, nil
}

// Verify checks that the committed left vector of length n has inner product
// com.Output with the powers of r.
func (s *Structured[L, O]) Verify(vk VerifierKey, n int, com commitment.Commitment[O], r algebra.Scalar, proof *Proof[L, algebra.Scalar, O]) (bool, error) {
	if err := algebra.CheckPowerOfTwo(n); err != nil {
		return false, err
	}
	if err := proof.checkShape(s.gipa, n, false); err != nil {
		return false, err
	}
	if com.Left == nil || com.Right != nil {
		return false, fmt.Errorf("%w: structured commitment must only have a left side", gipa.ErrProofFormat)
	}
	t, err := s.transcript(n, com, r)
	if err != nil {
		return false, err
	}
	folded, xs, err := s.gipa.Replay(t, com, proof.GIPA)
	if err != nil {
		return false, err
	}
	final := proof.GIPA.FinalKey
	z, err := evaluationPoint(t, final)
	if err != nil {
		return false, err
	}

	field := s.suite.G1()
	log := logger.Logger()
	xsInv := inverses(field, xs)
	if !verifyLeftKey(s.suite, vk, final.Left[0], xsInv, field.Scalar().One(), z, proof.Opening.Left) {
		log.Debug().Msg("tipa: left key opening rejected")
		return false, nil
	}
	// the powers of r fold like a key: b' = b_lo + x^-1 b_hi
	finalRight := poly.ProductForm(field, xsInv, r)
	base, err := s.Scheme().Commit(final, []L{proof.GIPA.FinalLeft}, []algebra.Scalar{finalRight})
	if err != nil {
		return false, err
	}
	if !s.Scheme().Equal(base, folded) {
		log.Debug().Msg("tipa: base relation does not hold")
		return false, nil
	}
	return true, nil
}
