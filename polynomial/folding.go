package poly

// A commitment key whose i-th entry is s^i*G, folded round after round with
// key' = lo + y_j*hi, ends up as f(s)*G where f is the product form below.
// Round j halves a vector of length 2^(k-j+1), so its challenge multiplies the
// X^(2^(k-j)) term. Challenges are given in round order.

// ProductForm evaluates prod_{t<k} (1 + ys[k-1-t] * x^(2^t)) in O(k).
func ProductForm(g Group, ys []Scalar, x Scalar) Scalar {
	k := len(ys)
	acc := g.Scalar().One()
	p := x.Clone()
	one := g.Scalar().One()
	for t := 0; t < k; t++ {
		term := g.Scalar().Mul(ys[k-1-t], p)
		term.Add(term, one)
		acc.Mul(acc, term)
		p = g.Scalar().Mul(p, p)
	}
	return acc
}

// FoldedKeyPoly returns the coefficients of the product form in the variable
// Y = shift*X^2, expanded in X. Only even degrees are non zero since the keys
// committing to messages are the even powers of the setup trapdoor.
func FoldedKeyPoly(g Group, ys []Scalar, shift Scalar) Poly {
	k := len(ys)
	n := 1 << k
	inY := make([]Scalar, n)
	inY[0] = g.Scalar().One()
	pow := shift.Clone()
	for t := 0; t < k; t++ {
		step := 1 << t
		for j := 0; j < step; j++ {
			c := g.Scalar().Mul(inY[j], ys[k-1-t])
			inY[step+j] = c.Mul(c, pow)
		}
		pow = g.Scalar().Mul(pow, pow)
	}
	inX := make([]Scalar, 2*n-1)
	for i := range inX {
		if i%2 == 0 {
			inX[i] = inY[i/2]
		} else {
			inX[i] = g.Scalar().Zero()
		}
	}
	return NewPolyFrom(g, inX)
}

// EvalFoldedKeyPoly evaluates FoldedKeyPoly at z without expanding it.
func EvalFoldedKeyPoly(g Group, ys []Scalar, shift, z Scalar) Scalar {
	y := g.Scalar().Mul(z, z)
	y.Mul(y, shift)
	return ProductForm(g, ys, y)
}
