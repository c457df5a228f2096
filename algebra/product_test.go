package algebra

import (
	"fmt"
	"sync"
	"testing"

	bls "github.com/drand/kyber-bls12381"
	"github.com/drand/kyber/util/random"
	"github.com/stretchr/testify/require"
)

var suite = Default()

// groups the pairing free arguments run over
var groups = []Group{BN256().G1(), BN256().G2(), BLS12381G1()}

func TestTargetGroupLaws(t *testing.T) {
	gt := Points{Group: suite.GT()}
	g, h := Generators(suite)
	e := suite.Pair(g, h)
	require.True(t, gt.Add(gt.Zero(), e).Equal(e))
	require.True(t, gt.Scale(e, suite.G1().Scalar().SetInt64(2)).Equal(gt.Add(e, e)))
	require.False(t, e.Equal(gt.Zero()))

	// e(g, h)^x * e(g, h)^-x = 1
	x := suite.G1().Scalar().Pick(random.New())
	inv := gt.Scale(e, suite.G1().Scalar().Neg(x))
	require.True(t, gt.Add(gt.Scale(e, x), inv).Equal(gt.Zero()))

	ip := PairingProduct{suite}
	out, err := ip.Product([]Point{g, g}, []Point{h, h})
	require.NoError(t, err)
	require.True(t, out.Equal(gt.Add(e, e)))
	require.False(t, out.Equal(gt.Zero()))
}

func TestCheckSuite(t *testing.T) {
	require.NoError(t, CheckSuite(BN256()))
	require.ErrorIs(t, CheckSuite(bls.NewBLS12381Suite()), ErrInvalidSuite)
}

func TestPairingProductConcurrent(t *testing.T) {
	n := 64
	ip := PairingProduct{suite}
	a := RandomPoints(suite.G1(), random.New(), n)
	b := RandomPoints(suite.G2(), random.New(), n)
	exp := suite.GT().Point().Null()
	for i := range a {
		exp.Add(exp, suite.Pair(a[i], b[i]))
	}

	var wg sync.WaitGroup
	results := make([]Point, 4)
	for j := range results {
		wg.Add(1)
		go func(j int) {
			defer wg.Done()
			results[j], _ = ip.Product(a, b)
		}(j)
	}
	wg.Wait()
	for _, r := range results {
		require.True(t, exp.Equal(r))
	}
}

func TestPairingProductBilinear(t *testing.T) {
	n := 5
	ip := PairingProduct{suite}
	a := RandomPoints(suite.G1(), random.New(), n)
	b := RandomPoints(suite.G2(), random.New(), n)
	b2 := RandomPoints(suite.G2(), random.New(), n)

	sum := make([]Point, n)
	for i := range sum {
		sum[i] = suite.G2().Point().Add(b[i], b2[i])
	}
	left, err := ip.Product(a, b)
	require.NoError(t, err)
	right, err := ip.Product(a, b2)
	require.NoError(t, err)
	both, err := ip.Product(a, sum)
	require.NoError(t, err)
	require.True(t, both.Equal(ip.Output().Add(left, right)))

	// e(x*a, b) = e(a, b)^x
	x := suite.G1().Scalar().Pick(random.New())
	scaled, err := ScaleEach(ip.Left(), a, []Scalar{x, x, x, x, x})
	require.NoError(t, err)
	got, err := ip.Product(scaled, b)
	require.NoError(t, err)
	require.True(t, got.Equal(ip.Output().Scale(left, x)))
}

func TestPairingProductEmpty(t *testing.T) {
	ip := PairingProduct{suite}
	out, err := ip.Product(nil, nil)
	require.NoError(t, err)
	require.True(t, out.Equal(suite.GT().Point().Null()))
}

func TestProductLengthMismatch(t *testing.T) {
	g1 := suite.G1()
	_, err := PairingProduct{suite}.Product(RandomPoints(g1, random.New(), 2), RandomPoints(suite.G2(), random.New(), 3))
	require.ErrorIs(t, err, ErrInvalidInputLength)

	_, err = MultiExp{g1}.Product(RandomPoints(g1, random.New(), 2), RandomScalars(g1, random.New(), 1))
	require.ErrorIs(t, err, ErrInvalidInputLength)

	_, err = ScalarProduct{g1}.Product(RandomScalars(g1, random.New(), 4), nil)
	require.ErrorIs(t, err, ErrInvalidInputLength)
}

func TestMultiExp(t *testing.T) {
	for _, g := range groups {
		t.Run(g.String(), func(t *testing.T) {
			n := 37
			points := RandomPoints(g, random.New(), n)
			scalars := RandomScalars(g, random.New(), n)
			exp := g.Point().Null()
			for i := range points {
				exp.Add(exp, g.Point().Mul(scalars[i], points[i]))
			}
			got, err := MultiExp{g}.Product(points, scalars)
			require.NoError(t, err)
			require.True(t, exp.Equal(got))
		})
	}
}

func TestScalarProduct(t *testing.T) {
	for i, g := range groups {
		t.Run(fmt.Sprintf("%d-%s", i, g), func(t *testing.T) {
			a := []Scalar{g.Scalar().SetInt64(1), g.Scalar().SetInt64(2), g.Scalar().SetInt64(3)}
			b := []Scalar{g.Scalar().SetInt64(4), g.Scalar().SetInt64(5), g.Scalar().SetInt64(6)}
			got, err := ScalarProduct{g}.Product(a, b)
			require.NoError(t, err)
			require.True(t, got.Equal(g.Scalar().SetInt64(32)))
		})
	}
}

func TestFoldAndPowers(t *testing.T) {
	g := suite.G1()
	m := Scalars{g}
	x := g.Scalar().SetInt64(3)
	left := []Scalar{g.Scalar().SetInt64(1), g.Scalar().SetInt64(2)}
	right := []Scalar{g.Scalar().SetInt64(10), g.Scalar().SetInt64(20)}
	folded, err := Fold[Scalar](m, left, right, x)
	require.NoError(t, err)
	require.True(t, folded[0].Equal(g.Scalar().SetInt64(31)))
	require.True(t, folded[1].Equal(g.Scalar().SetInt64(62)))
	// inputs are untouched
	require.True(t, left[0].Equal(g.Scalar().SetInt64(1)))

	_, err = Fold[Scalar](m, left, right[:1], x)
	require.ErrorIs(t, err, ErrInvalidInputLength)

	p := Powers(g, x, 4)
	require.Len(t, p, 4)
	require.True(t, p[0].Equal(g.Scalar().One()))
	require.True(t, p[3].Equal(g.Scalar().SetInt64(27)))
	require.True(t, Sum(g, p).Equal(g.Scalar().SetInt64(40)))

	base := g.Point().Base()
	pp := PowersOf(g, base, x, 3)
	require.True(t, pp[2].Equal(g.Point().Mul(g.Scalar().SetInt64(9), nil)))
}

func TestPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 64, 1024} {
		require.True(t, IsPowerOfTwo(n))
		require.NoError(t, CheckPowerOfTwo(n))
	}
	for _, n := range []int{0, 3, 6, 100, -4} {
		require.False(t, IsPowerOfTwo(n))
		require.ErrorIs(t, CheckPowerOfTwo(n), ErrInvalidInputLength)
	}
	require.Equal(t, 0, Log2(1))
	require.Equal(t, 6, Log2(64))
}

func TestExecuteCoversRange(t *testing.T) {
	n := 1000
	seen := make([]int, n)
	require.NoError(t, Execute(n, func(start, end int) error {
		for i := start; i < end; i++ {
			seen[i]++
		}
		return nil
	}))
	for i := range seen {
		require.Equal(t, 1, seen[i])
	}
}
