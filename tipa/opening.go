package tipa

import (
	"errors"

	"github.com/nirvantyagi/ripp/algebra"
	"github.com/nirvantyagi/ripp/commitment"
	poly "github.com/nirvantyagi/ripp/polynomial"
	"github.com/nirvantyagi/ripp/transcript"
	"golang.org/x/sync/errgroup"
)

// KeyOpening proves the final keys of a folding are the evaluations at the
// trapdoors of the polynomials the challenges define. Right is nil when the
// statement has no right key.
type KeyOpening struct {
	// in G2, opens the left key against powers of beta
	Left algebra.Point
	// in G1, opens the right key against powers of alpha
	Right algebra.Point
}

func inverses(field algebra.Group, xs []algebra.Scalar) []algebra.Scalar {
	out := make([]algebra.Scalar, len(xs))
	for i, x := range xs {
		out[i] = field.Scalar().Inv(x)
	}
	return out
}

// evaluationPoint absorbs the final key and derives the point the key
// polynomials are opened at.
func evaluationPoint(t *transcript.Transcript, final commitment.Key) (algebra.Scalar, error) {
	if err := t.Append("final-left-key", final.Left[0]); err != nil {
		return nil, err
	}
	if final.HasRight() {
		if err := t.Append("final-right-key", final.Right[0]); err != nil {
			return nil, err
		}
	}
	return t.Challenge("z"), nil
}

// openFoldedKey returns q(s)*G where q = (f - f(z)) / (X - z), f being the
// folded key polynomial and powers the s^i*G.
func openFoldedKey(field, group algebra.Group, powers []algebra.Point, ys []algebra.Scalar, shift, z algebra.Scalar) (algebra.Point, error) {
	f := poly.FoldedKeyPoly(field, ys, shift)
	q, _ := f.DivideLinear(z)
	return q.Commit(group, powers)
}

// openKeys computes the openings of the final left key, folded with the
// inverted challenges and shifted by leftShift, and of the final right key if
// any, folded with the challenges.
func openKeys(suite algebra.Suite, srs *SRS, final commitment.Key, xs []algebra.Scalar, leftShift, z algebra.Scalar) (KeyOpening, error) {
	field := suite.G1()
	var op KeyOpening
	var g errgroup.Group
	g.Go(func() (err error) {
		op.Left, err = openFoldedKey(field, suite.G2(), srs.HBeta, inverses(field, xs), leftShift, z)
		return
	})
	if final.HasRight() {
		g.Go(func() (err error) {
			op.Right, err = openFoldedKey(field, suite.G1(), srs.GAlpha, xs, field.Scalar().One(), z)
			return
		})
	}
	return op, g.Wait()
}

// verifyLeftKey checks e(g, key - f(z)*h) == e(g^beta - z*g, opening).
func verifyLeftKey(suite algebra.Suite, vk VerifierKey, key algebra.Point, ys []algebra.Scalar, shift, z algebra.Scalar, opening algebra.Point) bool {
	g1, g2 := suite.G1(), suite.G2()
	v := poly.EvalFoldedKeyPoly(g1, ys, shift, z)
	diff := g2.Point().Sub(key, g2.Point().Mul(v, vk.H))
	lhs := suite.Pair(vk.G, diff)
	gz := g1.Point().Sub(vk.GBeta, g1.Point().Mul(z, vk.G))
	rhs := suite.Pair(gz, opening)
	return lhs.Equal(rhs)
}

// verifyRightKey checks e(key - f(z)*g, h) == e(opening, h^alpha - z*h).
func verifyRightKey(suite algebra.Suite, vk VerifierKey, key algebra.Point, ys []algebra.Scalar, z algebra.Scalar, opening algebra.Point) bool {
	g1, g2 := suite.G1(), suite.G2()
	v := poly.EvalFoldedKeyPoly(g1, ys, g1.Scalar().One(), z)
	diff := g1.Point().Sub(key, g1.Point().Mul(v, vk.G))
	lhs := suite.Pair(diff, vk.H)
	hz := g2.Point().Sub(vk.HAlpha, g2.Point().Mul(z, vk.H))
	rhs := suite.Pair(opening, hz)
	return lhs.Equal(rhs)
}

func checkFinalKey(final commitment.Key, withRight bool) error {
	if len(final.Left) != 1 || final.Left[0] == nil {
		return errors.New("final left key must have length one")
	}
	if withRight != final.HasRight() {
		return errors.New("unexpected right key")
	}
	if withRight && (len(final.Right) != 1 || final.Right[0] == nil) {
		return errors.New("final right key must have length one")
	}
	return nil
}
