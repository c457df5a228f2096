// Package gipa implements the generalized inner product argument: a prover
// convinces a verifier that it knows two vectors opening a commitment whose
// output component is their inner product, with a proof logarithmic in the
// vector length. The argument is transparent, keys are public points.
package gipa

import (
	"fmt"

	"github.com/nirvantyagi/ripp/algebra"
	"github.com/nirvantyagi/ripp/commitment"
	"github.com/nirvantyagi/ripp/logger"
	"github.com/nirvantyagi/ripp/transcript"
	"golang.org/x/sync/errgroup"
)

// DefaultLabel separates the transcripts of this argument from others.
const DefaultLabel = "ripp/gipa"

// Option configures an Argument.
type Option func(*config)

type config struct {
	label string
}

// WithLabel sets the transcript domain label.
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
	}
}

// Argument proves and verifies inner product statements for a given
// doubly homomorphic commitment.
type Argument[L, R, O algebra.Element] struct {
	scheme commitment.Extended[L, R, O]
	field  algebra.Group
	label  string
}

// New returns the argument for the given commitment. Challenges are drawn
// from the scalar field of the given group.
func New[L, R, O algebra.Element](field algebra.Group, scheme commitment.Extended[L, R, O], opts ...Option) *Argument[L, R, O] {
	c := config{label: DefaultLabel}
	for _, opt := range opts {
		opt(&c)
	}
	return &Argument[L, R, O]{
		scheme: scheme,
		field:  field,
		label:  c.label,
	}
}

// Scheme returns the commitment the argument is built on.
func (a *Argument[L, R, O]) Scheme() commitment.Extended[L, R, O] {
	return a.scheme
}

// Transcript starts a transcript bound to the statement: the label, the length
// and the commitment.
func (a *Argument[L, R, O]) Transcript(n int, com commitment.Commitment[O]) (*transcript.Transcript, error) {
	t := transcript.New(a.field, a.label)
	t.AppendInt("n", n)
	if err := com.AppendTo(t, "com"); err != nil {
		return nil, err
	}
	return t, nil
}

// Prove returns a proof that left and right open the commitment of (left,
// right, <left, right>) under key. The length must be a power of two.
func (a *Argument[L, R, O]) Prove(key commitment.Key, left []L, right []R) (*Proof[L, R, O], error) {
	com, err := a.scheme.Commit(key, left, right)
	if err != nil {
		return nil, fmt.Errorf("gipa: commit: %w", err)
	}
	t, err := a.Transcript(len(left), com)
	if err != nil {
		return nil, err
	}
	proof, _, err := a.ProveTranscript(t, key, left, right)
	return proof, err
}

// ProveTranscript runs the folding rounds, drawing challenges from t, and
// returns the proof together with the challenges. It does not absorb the
// statement: t must already be bound to it.
func (a *Argument[L, R, O]) ProveTranscript(t *transcript.Transcript, key commitment.Key, left []L, right []R) (*Proof[L, R, O], []algebra.Scalar, error) {
	n := len(left)
	if err := algebra.CheckPowerOfTwo(n); err != nil {
		return nil, nil, err
	}
	if err := algebra.CheckLengths(n, len(right)); err != nil {
		return nil, nil, err
	}
	if err := key.Check(n); err != nil {
		return nil, nil, err
	}

	log := logger.Logger()
	lm, rm := a.scheme.Product.Left(), a.scheme.Product.Right()
	rounds := make([]CrossTerm[O], 0, algebra.Log2(n))
	challenges := make([]algebra.Scalar, 0, algebra.Log2(n))
	msgLeft, msgRight, k := left, right, key
	for len(msgLeft) > 1 {
		m := len(msgLeft) / 2
		lo, hi, err := k.Split()
		if err != nil {
			return nil, nil, err
		}
		leftLo, leftHi := msgLeft[:m], msgLeft[m:]
		rightLo, rightHi := msgRight[:m], msgRight[m:]

		var ct CrossTerm[O]
		var g errgroup.Group
		g.Go(func() (err error) {
			ct.L, err = a.scheme.Commit(commitment.Key{Left: lo.Left, Right: hi.Right}, leftHi, rightLo)
			return
		})
		g.Go(func() (err error) {
			ct.R, err = a.scheme.Commit(commitment.Key{Left: hi.Left, Right: lo.Right}, leftLo, rightHi)
			return
		})
		if err := g.Wait(); err != nil {
			return nil, nil, fmt.Errorf("gipa: cross terms: %w", err)
		}

		x, err := roundChallenge(t, ct)
		if err != nil {
			return nil, nil, err
		}
		xInv := a.field.Scalar().Inv(x)
		if msgLeft, err = algebra.Fold(lm, leftLo, leftHi, x); err != nil {
			return nil, nil, err
		}
		if msgRight, err = algebra.Fold(rm, rightLo, rightHi, xInv); err != nil {
			return nil, nil, err
		}
		if k, err = commitment.FoldKey(lo, hi, x); err != nil {
			return nil, nil, err
		}
		rounds = append(rounds, ct)
		challenges = append(challenges, x)
		log.Debug().Int("round", len(rounds)).Int("size", m).Msg("gipa: folded")
	}
	return &Proof[L, R, O]{
		Rounds:     rounds,
		FinalLeft:  msgLeft[0],
		FinalRight: msgRight[0],
		FinalKey:   k,
	}, challenges, nil
}

func roundChallenge[O algebra.Element](t *transcript.Transcript, ct CrossTerm[O]) (algebra.Scalar, error) {
	if err := ct.L.AppendTo(t, "L"); err != nil {
		return nil, err
	}
	if err := ct.R.AppendTo(t, "R"); err != nil {
		return nil, err
	}
	return t.Challenge("x"), nil
}

// Replay derives the challenges of every round from t and folds the
// commitment accordingly. It returns the commitment the final messages must
// open under the final key.
func (a *Argument[L, R, O]) Replay(t *transcript.Transcript, com commitment.Commitment[O], proof *Proof[L, R, O]) (commitment.Commitment[O], []algebra.Scalar, error) {
	challenges := make([]algebra.Scalar, 0, len(proof.Rounds))
	for _, ct := range proof.Rounds {
		x, err := roundChallenge(t, ct)
		if err != nil {
			return commitment.Commitment[O]{}, nil, err
		}
		com = a.scheme.Combine(com, ct.L, ct.R, x)
		challenges = append(challenges, x)
	}
	return com, challenges, nil
}

// CheckShape returns ErrProofFormat unless the proof has one round per
// halving of n and all its elements.
func (a *Argument[L, R, O]) CheckShape(n int, proof *Proof[L, R, O]) error {
	return proof.checkShape(algebra.Log2(n), a.scheme.Right != nil)
}

// Verify checks the proof against the commitment, whose Output is the claimed
// inner product. It returns false without error when the proof is well formed
// but does not verify.
func (a *Argument[L, R, O]) Verify(key commitment.Key, com commitment.Commitment[O], proof *Proof[L, R, O]) (bool, error) {
	n := key.Len()
	if err := algebra.CheckPowerOfTwo(n); err != nil {
		return false, err
	}
	if err := key.Check(n); err != nil {
		return false, err
	}
	if err := a.CheckShape(n, proof); err != nil {
		return false, err
	}
	if err := checkCommitment(com, a.scheme.Right != nil); err != nil {
		return false, fmt.Errorf("%w: commitment: %v", ErrProofFormat, err)
	}

	t, err := a.Transcript(n, com)
	if err != nil {
		return false, err
	}
	folded, challenges, err := a.Replay(t, com, proof)
	if err != nil {
		return false, err
	}
	k := key
	for _, x := range challenges {
		lo, hi, err := k.Split()
		if err != nil {
			return false, err
		}
		if k, err = commitment.FoldKey(lo, hi, x); err != nil {
			return false, err
		}
	}
	final, err := a.scheme.Commit(k, []L{proof.FinalLeft}, []R{proof.FinalRight})
	if err != nil {
		return false, err
	}
	if !a.scheme.Equal(final, folded) {
		log := logger.Logger()
		log.Debug().Int("n", n).Msg("gipa: base relation does not hold")
		return false, nil
	}
	return true, nil
}
