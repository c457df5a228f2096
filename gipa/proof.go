package gipa

import (
	"errors"
	"fmt"

	"github.com/nirvantyagi/ripp/algebra"
	"github.com/nirvantyagi/ripp/commitment"
)

// ErrProofFormat is returned when a proof does not have the shape expected for
// the statement it is verified against.
var ErrProofFormat = errors.New("malformed proof")

// CrossTerm holds the two commitments sent by the prover in one round. L
// commits to the right half of the left message against the left half of the
// right message, R to the opposite halves.
type CrossTerm[O algebra.Element] struct {
	L commitment.Commitment[O]
	R commitment.Commitment[O]
}

// Proof is a GIPA proof: one cross term per halving round, the length one
// messages reached at the end and the key folded alongside them.
type Proof[L, R, O algebra.Element] struct {
	Rounds     []CrossTerm[O]
	FinalLeft  L
	FinalRight R
	FinalKey   commitment.Key
}

func isNil[T any](v T) bool {
	return any(v) == nil
}

func checkCommitment[O algebra.Element](c commitment.Commitment[O], withRight bool) error {
	if c.Left == nil || isNil(c.Output) {
		return errors.New("missing component")
	}
	if withRight != (c.Right != nil) {
		return errors.New("unexpected right component")
	}
	return nil
}

// checkShape verifies the proof has the right number of rounds and no missing
// element.
func (p *Proof[L, R, O]) checkShape(rounds int, withRight bool) error {
	if p == nil {
		return fmt.Errorf("%w: nil proof", ErrProofFormat)
	}
	if len(p.Rounds) != rounds {
		return fmt.Errorf("%w: %d rounds, expected %d", ErrProofFormat, len(p.Rounds), rounds)
	}
	for i, ct := range p.Rounds {
		if err := checkCommitment(ct.L, withRight); err != nil {
			return fmt.Errorf("%w: round %d L: %v", ErrProofFormat, i, err)
		}
		if err := checkCommitment(ct.R, withRight); err != nil {
			return fmt.Errorf("%w: round %d R: %v", ErrProofFormat, i, err)
		}
	}
	if isNil(p.FinalLeft) || isNil(p.FinalRight) {
		return fmt.Errorf("%w: missing final message", ErrProofFormat)
	}
	return nil
}
