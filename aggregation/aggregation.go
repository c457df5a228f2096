// Package aggregation batches n Groth16 proofs for the same verifying key into
// one proof of logarithmic size. The aggregate proof commits to the A, B and C
// elements of all proofs, and shows with two inner pairing product arguments
// that a random linear combination of the n verification equations holds.
package aggregation

import (
	"errors"
	"fmt"
	"time"

	"github.com/nirvantyagi/ripp/algebra"
	"github.com/nirvantyagi/ripp/commitment"
	"github.com/nirvantyagi/ripp/gipa"
	"github.com/nirvantyagi/ripp/groth16"
	"github.com/nirvantyagi/ripp/logger"
	"github.com/nirvantyagi/ripp/tipa"
	"github.com/nirvantyagi/ripp/transcript"
	"golang.org/x/sync/errgroup"
)

// ErrBatchSize is returned for batches that are not a power of two of at
// least two proofs.
var ErrBatchSize = errors.New("invalid batch size")

// DefaultLabel separates the transcripts of the aggregation from others.
const DefaultLabel = "ripp/aggregation"

type Point = algebra.Point
type Scalar = algebra.Scalar

// Proof is an aggregate proof.
type Proof struct {
	// root of the Merkle tree of the aggregated proofs
	Seed []byte
	// commitments in GT to the A, B and C of all proofs
	ComA Point
	ComB Point
	ComC Point
	// sum of e(A_i, B_i)^(r^i)
	ProductAB Point
	// sum of r^i * C_i
	AggregateC Point
	// ProductAB is the inner product of (A_i * r^i) and B
	TIPP *tipa.Proof[Point, Point, Point]
	// AggregateC is the inner product of C and the powers of r
	MIPP *tipa.Proof[Point, Scalar, Point]
}

// Option configures the aggregator and the verifier.
type Option func(*config)

type config struct {
	label string
}

// WithLabel sets the domain label of the aggregation transcripts. Aggregator
// and verifier must agree on it.
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
	}
}

type arguments struct {
	suite algebra.Suite
	label string
	tipp  *tipa.Argument[Point, Point, Point]
	mipp  *tipa.Structured[Point, Point]
}

func newArguments(suite algebra.Suite, opts []Option) arguments {
	c := config{label: DefaultLabel}
	for _, opt := range opts {
		opt(&c)
	}
	tipp := tipa.New(suite, commitment.Extended[Point, Point, Point]{
		Left:    commitment.AFGHOG1{Suite: suite},
		Right:   commitment.AFGHOG2{Suite: suite},
		Product: algebra.PairingProduct{Suite: suite},
	}, gipa.WithLabel(c.label+"/tipp"))
	mipp := tipa.NewStructured[Point, Point](suite,
		commitment.AFGHOG1{Suite: suite},
		algebra.MultiExp{Group: suite.G1()},
		gipa.WithLabel(c.label+"/mipp"))
	return arguments{suite: suite, label: c.label, tipp: tipp, mipp: mipp}
}

// challenge derives the random linear combination coefficient. It must be
// derived before any combination is computed. r is bound to the proofs by the
// commitments to A, B and C. The seed is chosen by the aggregator and the
// verifier cannot recompute it from the public inputs; it is absorbed only so
// that a proof is tied to the batch CheckSeed and VerifyInclusion refer to.
func (a arguments) challenge(seed []byte, comA, comB, comC Point) (Scalar, error) {
	t := transcript.New(a.suite.G1(), a.label)
	t.AppendBytes("seed", seed)
	if err := t.Append("commitments", comA, comB, comC); err != nil {
		return nil, err
	}
	return t.Challenge("r"), nil
}

func checkBatchSize(n int) error {
	if n < 2 || !algebra.IsPowerOfTwo(n) {
		return fmt.Errorf("%w: %d proofs", ErrBatchSize, n)
	}
	return nil
}

// Aggregator produces aggregate proofs with an SRS.
type Aggregator struct {
	arguments
	srs *tipa.SRS
}

// NewAggregator returns an aggregator for batches of up to srs.MaxLen()
// proofs.
func NewAggregator(suite algebra.Suite, srs *tipa.SRS, opts ...Option) *Aggregator {
	return &Aggregator{
		arguments: newArguments(suite, opts),
		srs:       srs,
	}
}

// Aggregate returns the aggregate proof of the batch. The number of proofs
// must be a power of two, at least two, and at most what the SRS supports.
func (ag *Aggregator) Aggregate(proofs []groth16.Proof) (*Proof, error) {
	start := time.Now()
	n := len(proofs)
	if err := checkBatchSize(n); err != nil {
		return nil, err
	}
	key, err := ag.srs.CommitmentKey(n)
	if err != nil {
		return nil, err
	}
	as := make([]Point, n)
	bs := make([]Point, n)
	cs := make([]Point, n)
	for i, p := range proofs {
		if p.A == nil || p.B == nil || p.C == nil {
			return nil, fmt.Errorf("%w: incomplete proof %d", algebra.ErrInvalidInputLength, i)
		}
		as[i], bs[i], cs[i] = p.A, p.B, p.C
	}

	agg := new(Proof)
	var g errgroup.Group
	g.Go(func() (err error) {
		agg.Seed, err = Seed(proofs)
		return
	})
	g.Go(func() (err error) {
		agg.ComA, err = commitment.AFGHOG1{Suite: ag.suite}.Commit(key.Left, as)
		return
	})
	g.Go(func() (err error) {
		agg.ComB, err = commitment.AFGHOG2{Suite: ag.suite}.Commit(key.Right, bs)
		return
	})
	g.Go(func() (err error) {
		agg.ComC, err = commitment.AFGHOG1{Suite: ag.suite}.Commit(key.Left, cs)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregation: commitments: %w", err)
	}

	r, err := ag.challenge(agg.Seed, agg.ComA, agg.ComB, agg.ComC)
	if err != nil {
		return nil, err
	}
	field := ag.suite.G1()
	rs := algebra.Powers(field, r, n)
	ars, err := algebra.ScaleEach[Point](algebra.Points{Group: field}, as, rs)
	if err != nil {
		return nil, err
	}

	g = errgroup.Group{}
	g.Go(func() (err error) {
		agg.ProductAB, err = algebra.PairingProduct{Suite: ag.suite}.Product(ars, bs)
		if err != nil {
			return
		}
		com := commitment.Commitment[Point]{Left: agg.ComA, Right: agg.ComB, Output: agg.ProductAB}
		agg.TIPP, err = ag.tipp.ProveCommitted(ag.srs, com, ars, bs, r)
		return
	})
	g.Go(func() (err error) {
		agg.AggregateC, err = algebra.MultiExp{Group: field}.Product(cs, rs)
		if err != nil {
			return
		}
		com := commitment.Commitment[Point]{Left: agg.ComC, Output: agg.AggregateC}
		agg.MIPP, err = ag.mipp.ProveCommitted(ag.srs, com, cs, r)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregation: inner products: %w", err)
	}

	log := logger.Logger()
	log.Debug().Int("proofs", n).Dur("took", time.Since(start)).Msg("aggregation: batch aggregated")
	return agg, nil
}

// Verifier checks aggregate proofs with the verifier key of the SRS.
type Verifier struct {
	arguments
	vk tipa.VerifierKey
}

// NewVerifier returns a verifier using the given SRS verifier key.
func NewVerifier(suite algebra.Suite, vk tipa.VerifierKey, opts ...Option) *Verifier {
	return &Verifier{
		arguments: newArguments(suite, opts),
		vk:        vk,
	}
}

func (p *Proof) checkShape() error {
	if p == nil {
		return fmt.Errorf("%w: nil aggregate proof", gipa.ErrProofFormat)
	}
	for _, pt := range []Point{p.ComA, p.ComB, p.ComC, p.ProductAB, p.AggregateC} {
		if pt == nil {
			return fmt.Errorf("%w: missing aggregate component", gipa.ErrProofFormat)
		}
	}
	if p.TIPP == nil || p.MIPP == nil {
		return fmt.Errorf("%w: missing sub-proof", gipa.ErrProofFormat)
	}
	return nil
}

// Verify checks the aggregate proof of the batch of proofs whose public
// inputs are given, in order, for the Groth16 verifying key gvk.
func (v *Verifier) Verify(gvk *groth16.VerifyingKey, public [][]Scalar, agg *Proof) (bool, error) {
	start := time.Now()
	n := len(public)
	if err := checkBatchSize(n); err != nil {
		return false, err
	}
	if err := agg.checkShape(); err != nil {
		return false, err
	}
	nbPublic := len(gvk.IC) - 1
	for i, x := range public {
		if len(x) != nbPublic {
			return false, fmt.Errorf("%w: proof %d has %d inputs, key expects %d", groth16.ErrPublicInputs, i, len(x), nbPublic)
		}
	}

	r, err := v.challenge(agg.Seed, agg.ComA, agg.ComB, agg.ComC)
	if err != nil {
		return false, err
	}

	var tippOK, mippOK bool
	var g errgroup.Group
	g.Go(func() (err error) {
		com := commitment.Commitment[Point]{Left: agg.ComA, Right: agg.ComB, Output: agg.ProductAB}
		tippOK, err = v.tipp.VerifyWithShift(v.vk, n, com, agg.TIPP, r)
		return
	})
	g.Go(func() (err error) {
		com := commitment.Commitment[Point]{Left: agg.ComC, Output: agg.AggregateC}
		mippOK, err = v.mipp.Verify(v.vk, n, com, r, agg.MIPP)
		return
	})
	var equationOK bool
	g.Go(func() (err error) {
		equationOK, err = v.checkEquation(gvk, public, r, agg)
		return
	})
	if err := g.Wait(); err != nil {
		return false, fmt.Errorf("aggregation: verify: %w", err)
	}

	log := logger.Logger()
	log.Debug().Int("proofs", n).Bool("tipp", tippOK).Bool("mipp", mippOK).Bool("equation", equationOK).
		Dur("took", time.Since(start)).Msg("aggregation: batch verified")
	return tippOK && mippOK && equationOK, nil
}

// checkEquation checks the random linear combination of the Groth16
// verification equations:
// ProductAB == e(alpha, beta)^sum(r^i) * e(IC(r), gamma) * e(AggregateC, delta)
// where IC(r) = sum r^i * IC(x_i).
func (v *Verifier) checkEquation(gvk *groth16.VerifyingKey, public [][]Scalar, r Scalar, agg *Proof) (bool, error) {
	field := v.suite.G1()
	rs := algebra.Powers(field, r, len(public))
	coeffs := make([]Scalar, len(gvk.IC))
	coeffs[0] = algebra.Sum(field, rs)
	for j := 1; j < len(coeffs); j++ {
		coeffs[j] = field.Scalar().Zero()
	}
	for i, x := range public {
		for j, xj := range x {
			coeffs[j+1].Add(coeffs[j+1], field.Scalar().Mul(rs[i], xj))
		}
	}
	ic, err := algebra.MultiExp{Group: field}.Product(gvk.IC, coeffs)
	if err != nil {
		return false, err
	}
	alpha := field.Point().Mul(coeffs[0], gvk.Alpha)
	rhs, err := algebra.PairingProduct{Suite: v.suite}.Product(
		[]Point{alpha, ic, agg.AggregateC},
		[]Point{gvk.Beta, gvk.Gamma, gvk.Delta})
	if err != nil {
		return false, err
	}
	return agg.ProductAB.Equal(rhs), nil
}
