package algebra

// Module abstracts the operations the folding argument needs on the elements
// it manipulates: an abelian group law and a scalar action. All operations
// return freshly allocated values and never modify their inputs.
type Module[T Element] interface {
	Zero() T
	Add(a, b T) T
	Scale(a T, x Scalar) T
	Equal(a, b T) bool
}

// Points is the module of the points of a group, G1, G2 or GT.
type Points struct {
	Group Group
}

func (m Points) Zero() Point {
	return m.Group.Point().Null()
}

func (m Points) Add(a, b Point) Point {
	return m.Group.Point().Add(a, b)
}

func (m Points) Scale(a Point, x Scalar) Point {
	return m.Group.Point().Mul(x, a)
}

func (m Points) Equal(a, b Point) bool {
	return a.Equal(b)
}

// Scalars is the scalar field seen as a module over itself.
type Scalars struct {
	Group Group
}

func (m Scalars) Zero() Scalar {
	return m.Group.Scalar().Zero()
}

func (m Scalars) Add(a, b Scalar) Scalar {
	return m.Group.Scalar().Add(a, b)
}

func (m Scalars) Scale(a Scalar, x Scalar) Scalar {
	return m.Group.Scalar().Mul(a, x)
}

func (m Scalars) Equal(a, b Scalar) bool {
	return a.Equal(b)
}
