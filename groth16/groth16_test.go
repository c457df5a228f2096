package groth16

import (
	"testing"

	"github.com/drand/kyber/util/random"
	"github.com/nirvantyagi/ripp/algebra"
	"github.com/stretchr/testify/require"
)

var suite = algebra.Default()

func TestGroth16(t *testing.T) {
	ts := NewTrustedSetup(suite, nil, 3)
	require.Len(t, ts.VK.IC, 4)
	public := algebra.RandomScalars(suite.G1(), random.New(), 3)
	proof, err := ts.Prove(nil, public)
	require.NoError(t, err)

	ok, err := Verify(suite, &ts.VK, proof, public)
	require.NoError(t, err)
	require.True(t, ok)

	// other public inputs
	other := append([]Element{}, public...)
	other[1] = suite.G1().Scalar().Add(other[1], suite.G1().Scalar().One())
	ok, err = Verify(suite, &ts.VK, proof, other)
	require.NoError(t, err)
	require.False(t, ok)

	// tampered proof
	bad := proof
	bad.C = suite.G1().Point().Add(bad.C, suite.G1().Point().Base())
	ok, err = Verify(suite, &ts.VK, bad, public)
	require.NoError(t, err)
	require.False(t, ok)

	// proof of another setup
	ts2 := NewTrustedSetup(suite, nil, 3)
	foreign, err := ts2.Prove(nil, public)
	require.NoError(t, err)
	ok, err = Verify(suite, &ts.VK, foreign, public)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGroth16PublicInputs(t *testing.T) {
	ts := NewTrustedSetup(suite, nil, 2)
	_, err := ts.Prove(nil, algebra.RandomScalars(suite.G1(), random.New(), 1))
	require.ErrorIs(t, err, ErrPublicInputs)

	proof, err := ts.Prove(nil, algebra.RandomScalars(suite.G1(), random.New(), 2))
	require.NoError(t, err)
	_, err = Verify(suite, &ts.VK, proof, nil)
	require.ErrorIs(t, err, ErrPublicInputs)
}

func TestProofSerialize(t *testing.T) {
	ts := NewTrustedSetup(suite, nil, 0)
	proof, err := ts.Prove(nil, nil)
	require.NoError(t, err)
	ok, err := Verify(suite, &ts.VK, proof, nil)
	require.NoError(t, err)
	require.True(t, ok)

	b, err := proof.Serialize()
	require.NoError(t, err)
	require.Len(t, b, 2*suite.G1().PointLen()+suite.G2().PointLen())

	_, err = Proof{A: proof.A}.Serialize()
	require.Error(t, err)
}
