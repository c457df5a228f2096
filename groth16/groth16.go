// Package groth16 holds the shape of Groth16 proofs and verifying keys, the
// single proof pairing check, and a trusted setup able to produce valid proofs
// from its toxic waste. Proofs are what the aggregation package batches.
package groth16

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/nirvantyagi/ripp/algebra"
)

// ErrPublicInputs is returned when the number of public inputs does not match
// the verifying key.
var ErrPublicInputs = errors.New("wrong number of public inputs")

type G1 = algebra.Point
type G2 = algebra.Point
type Element = algebra.Scalar

// VerifyingKey of a circuit. IC[0] is the constant term and IC[j+1] the term
// of the j-th public input.
type VerifyingKey struct {
	Alpha G1
	Beta  G2
	Gamma G2
	Delta G2
	IC    []G1
}

// Proof is a Groth16 proof.
type Proof struct {
	A G1
	B G2
	C G1
}

// Serialize returns the concatenated encodings of A, B and C.
func (p Proof) Serialize() ([]byte, error) {
	var b bytes.Buffer
	for _, pt := range []algebra.Point{p.A, p.B, p.C} {
		if pt == nil {
			return nil, errors.New("groth16: incomplete proof")
		}
		if _, err := pt.MarshalTo(&b); err != nil {
			return nil, err
		}
	}
	return b.Bytes(), nil
}

// PublicInputs returns IC[0] + sum x_j * IC[j+1].
func (vk *VerifyingKey) PublicInputs(suite algebra.Suite, public []Element) (G1, error) {
	if len(public)+1 != len(vk.IC) {
		return nil, fmt.Errorf("%w: got %d, key expects %d", ErrPublicInputs, len(public), len(vk.IC)-1)
	}
	acc, err := algebra.MultiExp{Group: suite.G1()}.Product(vk.IC[1:], public)
	if err != nil {
		return nil, err
	}
	return acc.Add(acc, vk.IC[0]), nil
}

// Verify checks e(A, B) == e(alpha, beta) * e(IC(x), gamma) * e(C, delta).
func Verify(suite algebra.Suite, vk *VerifyingKey, proof Proof, public []Element) (bool, error) {
	ic, err := vk.PublicInputs(suite, public)
	if err != nil {
		return false, err
	}
	ip := algebra.PairingProduct{Suite: suite}
	lhs := suite.Pair(proof.A, proof.B)
	rhs, err := ip.Product([]G1{vk.Alpha, ic, proof.C}, []G2{vk.Beta, vk.Gamma, vk.Delta})
	if err != nil {
		return false, err
	}
	return lhs.Equal(rhs), nil
}
