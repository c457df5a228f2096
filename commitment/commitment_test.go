package commitment

import (
	"testing"

	"github.com/drand/kyber/util/random"
	"github.com/nirvantyagi/ripp/algebra"
	"github.com/stretchr/testify/require"
)

var suite = algebra.Default()

func pairingScheme() Extended[Point, Point, Point] {
	return Extended[Point, Point, Point]{
		Left:    AFGHOG1{suite},
		Right:   AFGHOG2{suite},
		Product: algebra.PairingProduct{Suite: suite},
	}
}

func multiExpScheme() Extended[Point, Scalar, Point] {
	return Extended[Point, Scalar, Point]{
		Left:    AFGHOG1{suite},
		Right:   Pedersen{suite.G1()},
		Product: algebra.MultiExp{Group: suite.G1()},
	}
}

func scalarScheme() Extended[Scalar, Scalar, Scalar] {
	return Extended[Scalar, Scalar, Scalar]{
		Left:    Pedersen{suite.G2()},
		Right:   Pedersen{suite.G1()},
		Product: algebra.ScalarProduct{Group: suite.G1()},
	}
}

func TestSchemesHomomorphic(t *testing.T) {
	n := 4
	g1, g2, gt := suite.G1(), suite.G2(), suite.GT()

	t.Run("afgho-g1", func(t *testing.T) {
		key := algebra.RandomPoints(g2, random.New(), n)
		a := algebra.RandomPoints(g1, random.New(), n)
		b := algebra.RandomPoints(g1, random.New(), n)
		checkHomomorphic[Point](t, AFGHOG1{suite}, algebra.Points{Group: g1}, algebra.Points{Group: gt}, key, a, b)
	})
	t.Run("afgho-g2", func(t *testing.T) {
		key := algebra.RandomPoints(g1, random.New(), n)
		a := algebra.RandomPoints(g2, random.New(), n)
		b := algebra.RandomPoints(g2, random.New(), n)
		checkHomomorphic[Point](t, AFGHOG2{suite}, algebra.Points{Group: g2}, algebra.Points{Group: gt}, key, a, b)
	})
	t.Run("pedersen", func(t *testing.T) {
		key := algebra.RandomPoints(g1, random.New(), n)
		a := algebra.RandomScalars(g1, random.New(), n)
		b := algebra.RandomScalars(g1, random.New(), n)
		checkHomomorphic[Scalar](t, Pedersen{g1}, algebra.Scalars{Group: g1}, algebra.Points{Group: g1}, key, a, b)
	})
}

func checkHomomorphic[M algebra.Element](t *testing.T, s Scheme[M], msgs algebra.Module[M], out algebra.Module[Point], key []Point, a, b []M) {
	sum := make([]M, len(a))
	for i := range a {
		sum[i] = msgs.Add(a[i], b[i])
	}
	ca, err := s.Commit(key, a)
	require.NoError(t, err)
	cb, err := s.Commit(key, b)
	require.NoError(t, err)
	cs, err := s.Commit(key, sum)
	require.NoError(t, err)
	require.True(t, out.Equal(cs, out.Add(ca, cb)))

	_, err = s.Commit(key[1:], a)
	require.ErrorIs(t, err, algebra.ErrInvalidInputLength)
}

func TestKeySplit(t *testing.T) {
	key := Setup(random.New(), suite.G2(), suite.G1(), 8)
	lo, hi, err := key.Split()
	require.NoError(t, err)
	require.Equal(t, 4, lo.Len())
	require.Equal(t, 4, hi.Len())
	require.True(t, lo.Left[0].Equal(key.Left[0]))
	require.True(t, hi.Right[0].Equal(key.Right[4]))

	odd := Setup(random.New(), suite.G2(), suite.G1(), 3)
	_, _, err = odd.Split()
	require.ErrorIs(t, err, algebra.ErrInvalidInputLength)

	noRight := Setup(random.New(), suite.G2(), nil, 2)
	lo, hi, err = noRight.Split()
	require.NoError(t, err)
	require.False(t, lo.HasRight())
	require.False(t, hi.HasRight())
}

func TestDeterministicKey(t *testing.T) {
	k1 := DeterministicKey(suite.G2(), suite.G1(), "test", 4)
	k2 := DeterministicKey(suite.G2(), suite.G1(), "test", 4)
	k3 := DeterministicKey(suite.G2(), suite.G1(), "other", 4)
	for i := 0; i < 4; i++ {
		require.True(t, k1.Left[i].Equal(k2.Left[i]))
		require.True(t, k1.Right[i].Equal(k2.Right[i]))
		require.False(t, k1.Left[i].Equal(k3.Left[i]))
	}
	require.False(t, k1.Left[0].Equal(k1.Left[1]))
}

// splitFold checks that committing to folded messages under the folded key
// gives the combination of the commitment with the two cross terms.
func splitFold[L, R, O algebra.Element](t *testing.T, field algebra.Group, e Extended[L, R, O], key Key, a []L, b []R) {
	n := len(a)
	x := field.Scalar().Pick(random.New())
	xInv := field.Scalar().Inv(x)

	com, err := e.Commit(key, a, b)
	require.NoError(t, err)

	lo, hi, err := key.Split()
	require.NoError(t, err)
	aL, aR := a[:n/2], a[n/2:]
	bL, bR := b[:n/2], b[n/2:]
	l, err := e.Commit(Key{Left: lo.Left, Right: hi.Right}, aR, bL)
	require.NoError(t, err)
	r, err := e.Commit(Key{Left: hi.Left, Right: lo.Right}, aL, bR)
	require.NoError(t, err)

	foldedKey, err := FoldKey(lo, hi, x)
	require.NoError(t, err)
	fa, err := algebra.Fold(e.Product.Left(), aL, aR, x)
	require.NoError(t, err)
	fb, err := algebra.Fold(e.Product.Right(), bL, bR, xInv)
	require.NoError(t, err)

	folded, err := e.Commit(foldedKey, fa, fb)
	require.NoError(t, err)
	require.True(t, e.Equal(folded, e.Combine(com, l, r, x)))
	// inputs untouched
	again, err := e.Commit(key, a, b)
	require.NoError(t, err)
	require.True(t, e.Equal(com, again))
}

func TestSplitFoldIdentity(t *testing.T) {
	n := 8
	g1, g2 := suite.G1(), suite.G2()
	key := Setup(random.New(), g2, g1, n)
	t.Run("pairing", func(t *testing.T) {
		splitFold(t, g1, pairingScheme(), key, algebra.RandomPoints(g1, random.New(), n), algebra.RandomPoints(g2, random.New(), n))
	})
	t.Run("multiexp", func(t *testing.T) {
		splitFold(t, g1, multiExpScheme(), key, algebra.RandomPoints(g1, random.New(), n), algebra.RandomScalars(g1, random.New(), n))
	})
	t.Run("scalar", func(t *testing.T) {
		splitFold(t, g1, scalarScheme(), key, algebra.RandomScalars(g1, random.New(), n), algebra.RandomScalars(g1, random.New(), n))
	})
	t.Run("no right key", func(t *testing.T) {
		e := multiExpScheme()
		e.Right = nil
		splitFold(t, g1, e, Setup(random.New(), g2, nil, n), algebra.RandomPoints(g1, random.New(), n), algebra.RandomScalars(g1, random.New(), n))
	})
	// pairing free schemes run on any group
	for _, g := range []algebra.Group{g1, g2, algebra.BLS12381G1()} {
		t.Run("single-group-"+g.String(), func(t *testing.T) {
			e := Extended[Scalar, Scalar, Scalar]{
				Left:    Pedersen{g},
				Right:   Pedersen{g},
				Product: algebra.ScalarProduct{Group: g},
			}
			key := DeterministicKey(g, g, "split fold", n)
			splitFold(t, g, e, key, algebra.RandomScalars(g, random.New(), n), algebra.RandomScalars(g, random.New(), n))
		})
	}
}

func TestExtendedAdd(t *testing.T) {
	n := 4
	g1, g2 := suite.G1(), suite.G2()
	e := multiExpScheme()
	key := Setup(random.New(), g2, g1, n)
	a := algebra.RandomPoints(g1, random.New(), n)
	b := algebra.RandomScalars(g1, random.New(), n)
	b2 := algebra.RandomScalars(g1, random.New(), n)
	c1, err := e.Commit(key, a, b)
	require.NoError(t, err)
	c2, err := e.Commit(key, a, b2)
	require.NoError(t, err)
	sum := make([]Scalar, n)
	for i := range sum {
		sum[i] = g1.Scalar().Add(b[i], b2[i])
	}
	c3, err := e.Commit(key, a, sum)
	require.NoError(t, err)
	// left message is shared so only the right and the output add up
	added := e.Add(c1, c2)
	require.True(t, added.Right.Equal(c3.Right))
	require.True(t, added.Output.Equal(c3.Output))
	require.False(t, e.Equal(c1, c2))
}

func TestExtendedCommitShapes(t *testing.T) {
	g1, g2 := suite.G1(), suite.G2()
	e := pairingScheme()
	key := Setup(random.New(), g2, g1, 4)
	_, err := e.Commit(key, algebra.RandomPoints(g1, random.New(), 4), algebra.RandomPoints(g2, random.New(), 3))
	require.ErrorIs(t, err, algebra.ErrInvalidInputLength)
	_, err = e.Commit(key, algebra.RandomPoints(g1, random.New(), 2), algebra.RandomPoints(g2, random.New(), 2))
	require.ErrorIs(t, err, algebra.ErrInvalidInputLength)
	_, err = e.Commit(Setup(random.New(), g2, nil, 4), algebra.RandomPoints(g1, random.New(), 4), algebra.RandomPoints(g2, random.New(), 4))
	require.ErrorIs(t, err, algebra.ErrInvalidInputLength)
}
