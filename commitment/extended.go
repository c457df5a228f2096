package commitment

import (
	"fmt"

	"github.com/nirvantyagi/ripp/algebra"
	"github.com/nirvantyagi/ripp/transcript"
	"golang.org/x/sync/errgroup"
)

// Commitment binds a left message, a right message and their inner product.
// Output is the inner product value itself: the identity commitment. Right is
// nil when the right message is public.
type Commitment[O algebra.Element] struct {
	Left   Point
	Right  Point
	Output O
}

// AppendTo absorbs the commitment in a transcript.
func (c Commitment[O]) AppendTo(t *transcript.Transcript, label string) error {
	return t.Append(label, c.Left, c.Right, c.Output)
}

// Extended pairs a commitment scheme for each side with the inner product
// relating the two messages.
type Extended[L, R, O algebra.Element] struct {
	Left    Scheme[L]
	Right   Scheme[R]
	Product algebra.InnerProduct[L, R, O]
}

// Commit computes the commitment to (a, b, <a, b>). The three components are
// computed concurrently.
func (e Extended[L, R, O]) Commit(key Key, a []L, b []R) (Commitment[O], error) {
	var c Commitment[O]
	if err := algebra.CheckLengths(len(a), len(b)); err != nil {
		return c, err
	}
	if err := key.Check(len(a)); err != nil {
		return c, err
	}
	if e.Right != nil && !key.HasRight() {
		return c, fmt.Errorf("%w: key has no right side", algebra.ErrInvalidInputLength)
	}

	var g errgroup.Group
	g.Go(func() (err error) {
		c.Left, err = e.Left.Commit(key.Left, a)
		return
	})
	if e.Right != nil {
		g.Go(func() (err error) {
			c.Right, err = e.Right.Commit(key.Right, b)
			return
		})
	}
	g.Go(func() (err error) {
		c.Output, err = e.Product.Product(a, b)
		return
	})
	if err := g.Wait(); err != nil {
		return Commitment[O]{}, err
	}
	return c, nil
}

// Add is the homomorphic sum of two commitments.
func (e Extended[L, R, O]) Add(a, b Commitment[O]) Commitment[O] {
	out := Commitment[O]{
		Left:   addPoints(a.Left, b.Left),
		Output: e.Product.Output().Add(a.Output, b.Output),
	}
	if a.Right != nil && b.Right != nil {
		out.Right = addPoints(a.Right, b.Right)
	}
	return out
}

// Combine returns x * l + com + x^-1 * r: the commitment to the messages
// folded with challenge x, given the commitment to the unfolded messages and
// the two cross terms.
func (e Extended[L, R, O]) Combine(com, l, r Commitment[O], x Scalar) Commitment[O] {
	xInv := x.Clone().Inv(x)
	out := Commitment[O]{
		Left: combinePoints(com.Left, l.Left, r.Left, x, xInv),
	}
	if com.Right != nil {
		out.Right = combinePoints(com.Right, l.Right, r.Right, x, xInv)
	}
	m := e.Product.Output()
	out.Output = m.Add(m.Add(m.Scale(l.Output, x), com.Output), m.Scale(r.Output, xInv))
	return out
}

// Equal reports whether both commitments are identical, component by
// component.
func (e Extended[L, R, O]) Equal(a, b Commitment[O]) bool {
	if !a.Left.Equal(b.Left) {
		return false
	}
	if (a.Right == nil) != (b.Right == nil) {
		return false
	}
	if a.Right != nil && !a.Right.Equal(b.Right) {
		return false
	}
	return e.Product.Output().Equal(a.Output, b.Output)
}

func addPoints(a, b Point) Point {
	out := a.Clone()
	return out.Add(out, b)
}

func combinePoints(com, l, r Point, x, xInv Scalar) Point {
	out := l.Clone().Mul(x, l)
	out.Add(out, com)
	tmp := r.Clone().Mul(xInv, r)
	return out.Add(out, tmp)
}
