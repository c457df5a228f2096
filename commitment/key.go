// Package commitment implements doubly homomorphic commitments: commitment
// keys and messages both live in groups, and the commitment is homomorphic in
// each of them. This is what lets the folding argument shrink a statement by
// half while keeping it checkable against a combination of commitments.
package commitment

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	"github.com/drand/kyber/xof/blake2xb"
	"github.com/nirvantyagi/ripp/algebra"
	"golang.org/x/crypto/blake2b"
)

type Point = algebra.Point
type Scalar = algebra.Scalar

// Key is a commitment key for a pair of message vectors. Left commits to the
// left messages and Right to the right messages. Right is nil when the right
// message is public and therefore not committed to.
type Key struct {
	Left  []Point
	Right []Point
}

// Setup samples a fresh key of length n. Left keys are points of left, right
// keys points of right. A nil right group yields a key without right side.
func Setup(rand cipher.Stream, left, right algebra.Group, n int) Key {
	k := Key{Left: algebra.RandomPoints(left, rand, n)}
	if right != nil {
		k.Right = algebra.RandomPoints(right, rand, n)
	}
	return k
}

// DeterministicKey derives a key nobody knows a discrete log relation in,
// from a public label. This is the key used by the transparent argument.
func DeterministicKey(left, right algebra.Group, label string, n int) Key {
	k := Key{Left: Generators(left, label+"/left", n)}
	if right != nil {
		k.Right = Generators(right, label+"/right", n)
	}
	return k
}

// Generators returns n points of g derived from an oracle seeded with the
// label.
func Generators(g algebra.Group, label string, n int) []Point {
	gs := make([]Point, n)
	for i := 0; i < n; i++ {
		gs[i] = g.Point().Pick(oracle(g, label, n, i))
	}
	return gs
}

// returns an oracle for deriving the pos-th generator
func oracle(g algebra.Group, label string, l, pos int) cipher.Stream {
	h, _ := blake2b.New256(nil)
	h.Write([]byte("dh-commit"))
	h.Write([]byte(label))
	h.Write([]byte(g.String()))
	binary.Write(h, binary.LittleEndian, uint64(l))
	binary.Write(h, binary.LittleEndian, uint64(pos))
	return blake2xb.New(h.Sum(nil))
}

// Len returns the number of messages the key commits to.
func (k Key) Len() int {
	return len(k.Left)
}

// HasRight reports whether the key commits to right messages.
func (k Key) HasRight() bool {
	return k.Right != nil
}

// Check verifies the key commits to vectors of length n.
func (k Key) Check(n int) error {
	if err := algebra.CheckLengths(len(k.Left), n); err != nil {
		return fmt.Errorf("left key: %w", err)
	}
	if k.Right != nil {
		if err := algebra.CheckLengths(len(k.Right), n); err != nil {
			return fmt.Errorf("right key: %w", err)
		}
	}
	return nil
}

// Split halves the key at its midpoint. The length must be even.
func (k Key) Split() (Key, Key, error) {
	n := k.Len()
	if n%2 != 0 {
		return Key{}, Key{}, fmt.Errorf("%w: cannot split key of length %d", algebra.ErrInvalidInputLength, n)
	}
	if err := k.Check(n); err != nil {
		return Key{}, Key{}, err
	}
	lo := Key{Left: k.Left[:n/2]}
	hi := Key{Left: k.Left[n/2:]}
	if k.Right != nil {
		lo.Right = k.Right[:n/2]
		hi.Right = k.Right[n/2:]
	}
	return lo, hi, nil
}

// FoldKey combines two halves of a key with a challenge x: the left side
// becomes lo + x^-1 * hi and the right side lo + x * hi. These are the
// exponents that keep the commitment to the folded messages consistent with
// the folded commitment.
func FoldKey(lo, hi Key, x Scalar) (Key, error) {
	if err := lo.Check(lo.Len()); err != nil {
		return Key{}, err
	}
	if err := hi.Check(lo.Len()); err != nil {
		return Key{}, err
	}
	if lo.HasRight() != hi.HasRight() {
		return Key{}, fmt.Errorf("%w: folding keys with and without right side", algebra.ErrInvalidInputLength)
	}
	xInv := x.Clone().Inv(x)
	out := Key{Left: foldPoints(lo.Left, hi.Left, xInv)}
	if lo.Right != nil {
		out.Right = foldPoints(lo.Right, hi.Right, x)
	}
	return out, nil
}

func foldPoints(lo, hi []Point, x Scalar) []Point {
	out := make([]Point, len(lo))
	for i := range lo {
		p := hi[i].Clone().Mul(x, hi[i])
		out[i] = p.Add(p, lo[i])
	}
	return out
}

// ShiftLeft returns the key whose i-th left entry is multiplied by xs_i.
func (k Key) ShiftLeft(xs []Scalar) (Key, error) {
	if err := algebra.CheckLengths(k.Len(), len(xs)); err != nil {
		return Key{}, err
	}
	out := Key{Left: make([]Point, k.Len()), Right: k.Right}
	for i, p := range k.Left {
		out.Left[i] = p.Clone().Mul(xs[i], p)
	}
	return out, nil
}
