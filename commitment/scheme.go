package commitment

import (
	"github.com/nirvantyagi/ripp/algebra"
)

// Scheme commits to a vector of messages under a vector of key points. It is
// homomorphic in the messages and in the key.
type Scheme[M algebra.Element] interface {
	Commit(key []Point, msg []M) (Point, error)
}

// AFGHOG1 commits to G1 messages under G2 keys: sum of e(m_i, k_i) in GT.
type AFGHOG1 struct {
	Suite algebra.Suite
}

func (s AFGHOG1) Commit(key []Point, msg []Point) (Point, error) {
	return algebra.PairingProduct{Suite: s.Suite}.Product(msg, key)
}

// AFGHOG2 commits to G2 messages under G1 keys: sum of e(k_i, m_i) in GT.
type AFGHOG2 struct {
	Suite algebra.Suite
}

func (s AFGHOG2) Commit(key []Point, msg []Point) (Point, error) {
	return algebra.PairingProduct{Suite: s.Suite}.Product(key, msg)
}

// Pedersen commits to scalars: sum of m_i * k_i in the key group. It is not
// hiding, no blinding factor is added.
type Pedersen struct {
	Group algebra.Group
}

func (s Pedersen) Commit(key []Point, msg []Scalar) (Point, error) {
	return algebra.MultiExp{Group: s.Group}.Product(key, msg)
}
