package transcript

import (
	"testing"

	bls "github.com/drand/kyber-bls12381"
	"github.com/stretchr/testify/require"
)

var suite = bls.NewBLS12381Suite()

func TestChallengeDeterministic(t *testing.T) {
	g := suite.G1()
	p := g.Point().Base()
	run := func(label string) []string {
		tr := New(g, label)
		tr.AppendInt("n", 8)
		require.NoError(t, tr.Append("point", p, g.Scalar().SetInt64(42)))
		c1 := tr.Challenge("c")
		c2 := tr.Challenge("c")
		return []string{c1.String(), c2.String()}
	}
	first := run("test")
	require.Equal(t, first, run("test"))
	// successive challenges differ
	require.NotEqual(t, first[0], first[1])
	// domain separation
	require.NotEqual(t, first, run("other"))
}

func TestChallengeDependsOnMessages(t *testing.T) {
	g := suite.G1()
	a := New(g, "test")
	b := New(g, "test")
	a.AppendBytes("m", []byte{1, 2})
	b.AppendBytes("m", []byte{1, 3})
	require.False(t, a.Challenge("c").Equal(b.Challenge("c")))

	// message boundaries matter
	c := New(g, "test")
	d := New(g, "test")
	c.AppendBytes("m", []byte{1})
	c.AppendBytes("m", []byte{2})
	d.AppendBytes("m", []byte{1, 2})
	require.False(t, c.Challenge("c").Equal(d.Challenge("c")))
}

func TestChallengeNonZero(t *testing.T) {
	g := suite.G1()
	tr := New(g, "test")
	for i := 0; i < 32; i++ {
		require.False(t, tr.Challenge("c").Equal(g.Scalar().Zero()))
	}
}

func TestAppendNil(t *testing.T) {
	g := suite.G1()
	a := New(g, "test")
	require.NoError(t, a.Append("p", nil))
	b := New(g, "test")
	b.AppendBytes("p", nil)
	require.True(t, a.Challenge("c").Equal(b.Challenge("c")))
}

func TestHashToScalar(t *testing.T) {
	g := suite.G1()
	x := HashToScalar(g, "seed", []byte("hello"))
	y := HashToScalar(g, "seed", []byte("hello"))
	z := HashToScalar(g, "seed", []byte("world"))
	require.True(t, x.Equal(y))
	require.False(t, x.Equal(z))
}
