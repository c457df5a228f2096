// Package tipa implements the inner pairing product argument with a trusted
// setup. It runs GIPA down to length one with keys taken from an SRS, then
// proves the final keys are well formed with KZG style openings. The verifier
// only needs a constant size key and does a logarithmic amount of work.
package tipa

import (
	"fmt"

	"github.com/nirvantyagi/ripp/algebra"
	"github.com/nirvantyagi/ripp/commitment"
	"github.com/nirvantyagi/ripp/gipa"
	"github.com/nirvantyagi/ripp/logger"
	"github.com/nirvantyagi/ripp/transcript"
)

// DefaultLabel separates the transcripts of this argument from others.
const DefaultLabel = "ripp/tipa"

// Proof is the GIPA proof, whose final key is opened by KeyOpening.
type Proof[L, R, O algebra.Element] struct {
	GIPA    *gipa.Proof[L, R, O]
	Opening KeyOpening
}

func (p *Proof[L, R, O]) checkShape(arg *gipa.Argument[L, R, O], n int, withRight bool) error {
	if p == nil {
		return fmt.Errorf("%w: nil proof", gipa.ErrProofFormat)
	}
	if err := arg.CheckShape(n, p.GIPA); err != nil {
		return err
	}
	if err := checkFinalKey(p.GIPA.FinalKey, withRight); err != nil {
		return fmt.Errorf("%w: %v", gipa.ErrProofFormat, err)
	}
	if p.Opening.Left == nil || withRight != (p.Opening.Right != nil) {
		return fmt.Errorf("%w: missing key opening", gipa.ErrProofFormat)
	}
	return nil
}

// Argument proves inner product statements whose keys come from an SRS.
type Argument[L, R, O algebra.Element] struct {
	gipa  *gipa.Argument[L, R, O]
	suite algebra.Suite
}

// New returns the argument for the given commitment. The left scheme must
// take G2 keys and the right scheme G1 keys, as laid out by the SRS.
func New[L, R, O algebra.Element](suite algebra.Suite, scheme commitment.Extended[L, R, O], opts ...gipa.Option) *Argument[L, R, O] {
	opts = append([]gipa.Option{gipa.WithLabel(DefaultLabel)}, opts...)
	return &Argument[L, R, O]{
		gipa:  gipa.New(suite.G1(), scheme, opts...),
		suite: suite,
	}
}

// Scheme returns the commitment the argument is built on.
func (a *Argument[L, R, O]) Scheme() commitment.Extended[L, R, O] {
	return a.gipa.Scheme()
}

// ShiftedKey returns the commitment key for length n whose i-th left entry is
// multiplied by r^-i. Committing to left_i * r^i under it gives the same left
// commitment as committing to left_i under the unshifted key.
func ShiftedKey(srs *SRS, field algebra.Group, n int, r algebra.Scalar) (commitment.Key, error) {
	key, err := srs.CommitmentKey(n)
	if err != nil {
		return commitment.Key{}, err
	}
	rInv := field.Scalar().Inv(r)
	return key.ShiftLeft(algebra.Powers(field, rInv, n))
}

// Prove returns a proof for (left, right, <left, right>) committed under the
// SRS key of length len(left).
func (a *Argument[L, R, O]) Prove(srs *SRS, left []L, right []R) (*Proof[L, R, O], error) {
	return a.ProveWithShift(srs, left, right, a.suite.G1().Scalar().One())
}

// ProveWithShift is Prove with the left key shifted by r, see ShiftedKey.
func (a *Argument[L, R, O]) ProveWithShift(srs *SRS, left []L, right []R, r algebra.Scalar) (*Proof[L, R, O], error) {
	key, err := ShiftedKey(srs, a.suite.G1(), len(left), r)
	if err != nil {
		return nil, err
	}
	com, err := a.Scheme().Commit(key, left, right)
	if err != nil {
		return nil, fmt.Errorf("tipa: commit: %w", err)
	}
	return a.prove(srs, key, com, left, right, r)
}

// ProveCommitted is ProveWithShift for a caller that already holds the
// commitment to the statement under the shifted key.
func (a *Argument[L, R, O]) ProveCommitted(srs *SRS, com commitment.Commitment[O], left []L, right []R, r algebra.Scalar) (*Proof[L, R, O], error) {
	key, err := ShiftedKey(srs, a.suite.G1(), len(left), r)
	if err != nil {
		return nil, err
	}
	return a.prove(srs, key, com, left, right, r)
}

func (a *Argument[L, R, O]) prove(srs *SRS, key commitment.Key, com commitment.Commitment[O], left []L, right []R, r algebra.Scalar) (*Proof[L, R, O], error) {
	n := len(left)
	t, err := a.transcript(n, com, r)
	if err != nil {
		return nil, err
	}
	gp, xs, err := a.gipa.ProveTranscript(t, key, left, right)
	if err != nil {
		return nil, err
	}
	z, err := evaluationPoint(t, gp.FinalKey)
	if err != nil {
		return nil, err
	}
	rInv := a.suite.G1().Scalar().Inv(r)
	opening, err := openKeys(a.suite, srs, gp.FinalKey, xs, rInv, z)
	if err != nil {
		return nil, fmt.Errorf("tipa: key opening: %w", err)
	}
	log := logger.Logger()
	log.Debug().Int("n", n).Int("rounds", len(gp.Rounds)).Msg("tipa: proof generated")
	return &Proof[L, R, O]{GIPA: gp, Opening: opening}, nil
}

func (a *Argument[L, R, O]) transcript(n int, com commitment.Commitment[O], r algebra.Scalar) (*transcript.Transcript, error) {
	t, err := a.gipa.Transcript(n, com)
	if err != nil {
		return nil, err
	}
	if err := t.Append("shift", r); err != nil {
		return nil, err
	}
	return t, nil
}

// Verify checks a proof for a statement of length n against the commitment,
// whose Output is the claimed inner product.
func (a *Argument[L, R, O]) Verify(vk VerifierKey, n int, com commitment.Commitment[O], proof *Proof[L, R, O]) (bool, error) {
	return a.VerifyWithShift(vk, n, com, proof, a.suite.G1().Scalar().One())
}

// VerifyWithShift is Verify for a proof produced by ProveWithShift.
func (a *Argument[L, R, O]) VerifyWithShift(vk VerifierKey, n int, com commitment.Commitment[O], proof *Proof[L, R, O], r algebra.Scalar) (bool, error) {
	if err := algebra.CheckPowerOfTwo(n); err != nil {
		return false, err
	}
	if err := proof.checkShape(a.gipa, n, true); err != nil {
		return false, err
	}
	if com.Left == nil || com.Right == nil {
		return false, fmt.Errorf("%w: incomplete commitment", gipa.ErrProofFormat)
	}
	t, err := a.transcript(n, com, r)
	if err != nil {
		return false, err
	}
	folded, xs, err := a.gipa.Replay(t, com, proof.GIPA)
	if err != nil {
		return false, err
	}
	final := proof.GIPA.FinalKey
	z, err := evaluationPoint(t, final)
	if err != nil {
		return false, err
	}

	field := a.suite.G1()
	log := logger.Logger()
	rInv := field.Scalar().Inv(r)
	if !verifyLeftKey(a.suite, vk, final.Left[0], inverses(field, xs), rInv, z, proof.Opening.Left) {
		log.Debug().Msg("tipa: left key opening rejected")
		return false, nil
	}
	if !verifyRightKey(a.suite, vk, final.Right[0], xs, z, proof.Opening.Right) {
		log.Debug().Msg("tipa: right key opening rejected")
		return false, nil
	}
	base, err := a.Scheme().Commit(final, []L{proof.GIPA.FinalLeft}, []R{proof.GIPA.FinalRight})
	if err != nil {
		return false, err
	}
	if !a.Scheme().Equal(base, folded) {
		log.Debug().Msg("tipa: base relation does not hold")
		return false, nil
	}
	return true, nil
}
