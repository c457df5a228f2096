package groth16

import (
	"crypto/cipher"
	"fmt"

	"github.com/drand/kyber/util/random"
	"github.com/nirvantyagi/ripp/algebra"
)

type groth16ToxicWaste struct {
	Alpha Element
	Beta  Element
	Gamma Element
	Delta Element
	// exponents of the IC terms
	IC []Element
}

// TrustedSetup is a setup that kept its toxic waste. Knowing the trapdoors it
// can produce valid proofs for any public input without a witness, which is
// what a circuit independent test or benchmark of the aggregation needs.
type TrustedSetup struct {
	tw    groth16ToxicWaste
	suite algebra.Suite
	VK    VerifyingKey
}

// NewTrustedSetup samples a verifying key for circuits with nbPublic public
// inputs. A nil rand samples from a fresh random stream.
func NewTrustedSetup(suite algebra.Suite, rand cipher.Stream, nbPublic int) *TrustedSetup {
	if rand == nil {
		rand = random.New()
	}
	g1, g2 := suite.G1(), suite.G2()
	var tw groth16ToxicWaste
	var tr = TrustedSetup{suite: suite}

	tw.Alpha = g1.Scalar().Pick(rand)
	tr.VK.Alpha = g1.Point().Mul(tw.Alpha, nil)

	tw.Beta = g1.Scalar().Pick(rand)
	tr.VK.Beta = g2.Point().Mul(tw.Beta, nil)

	tw.Gamma = g1.Scalar().Pick(rand)
	tr.VK.Gamma = g2.Point().Mul(tw.Gamma, nil)

	tw.Delta = g1.Scalar().Pick(rand)
	tr.VK.Delta = g2.Point().Mul(tw.Delta, nil)

	tw.IC = algebra.RandomScalars(g1, rand, nbPublic+1)
	tr.VK.IC = make([]G1, nbPublic+1)
	for i, ic := range tw.IC {
		tr.VK.IC[i] = g1.Point().Mul(ic, nil)
	}
	tr.tw = tw
	return &tr
}

// Prove returns a valid proof for the given public inputs: A and B are
// random and C is solved for from the verification equation
// ab = alpha*beta + gamma*ic(x) + delta*c.
func (ts *TrustedSetup) Prove(rand cipher.Stream, public []Element) (Proof, error) {
	if len(public)+1 != len(ts.tw.IC) {
		return Proof{}, fmt.Errorf("%w: got %d, key expects %d", ErrPublicInputs, len(public), len(ts.tw.IC)-1)
	}
	if rand == nil {
		rand = random.New()
	}
	g1, g2 := ts.suite.G1(), ts.suite.G2()
	a := g1.Scalar().Pick(rand)
	b := g1.Scalar().Pick(rand)

	// ic(x) = ic_0 + sum x_j * ic_j+1
	ic := ts.tw.IC[0].Clone()
	for j, x := range public {
		ic.Add(ic, g1.Scalar().Mul(x, ts.tw.IC[j+1]))
	}
	c := g1.Scalar().Mul(a, b)
	c.Sub(c, g1.Scalar().Mul(ts.tw.Alpha, ts.tw.Beta))
	c.Sub(c, g1.Scalar().Mul(ts.tw.Gamma, ic))
	c.Div(c, ts.tw.Delta)

	return Proof{
		A: g1.Point().Mul(a, nil),
		B: g2.Point().Mul(b, nil),
		C: g1.Point().Mul(c, nil),
	}, nil
}
