// Package transcript implements the Fiat-Shamir heuristic used by every
// argument of this module: prover and verifier absorb the same public
// messages in the same order and derive the same challenges from them.
package transcript

import (
	"encoding"
	"encoding/binary"
	"fmt"

	"github.com/drand/kyber"
	"github.com/drand/kyber/xof/blake2xb"
	"golang.org/x/crypto/blake2b"
)

// Transcript is a running hash state. The zero value is not usable, use New.
type Transcript struct {
	group kyber.Group
	state [blake2b.Size256]byte
}

// New returns a transcript bound to the given domain label. Challenges are
// scalars of g's field.
func New(g kyber.Group, label string) *Transcript {
	t := &Transcript{group: g}
	t.absorb("domain", []byte(label))
	return t
}

func (t *Transcript) absorb(label string, data []byte) {
	h, _ := blake2b.New256(nil)
	h.Write(t.state[:])
	writeBytes(h, []byte(label))
	writeBytes(h, data)
	copy(t.state[:], h.Sum(nil))
}

type writer interface {
	Write([]byte) (int, error)
}

// length prefix so that distinct sequences of messages never collide
func writeBytes(w writer, b []byte) {
	var l [8]byte
	binary.LittleEndian.PutUint64(l[:], uint64(len(b)))
	w.Write(l[:])
	w.Write(b)
}

// AppendBytes absorbs raw bytes.
func (t *Transcript) AppendBytes(label string, data []byte) {
	t.absorb(label, data)
}

// AppendInt absorbs an integer such as a vector length.
func (t *Transcript) AppendInt(label string, v int) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	t.absorb(label, b[:])
}

// Append absorbs the canonical encoding of every value, in order. Nil values
// are absorbed as empty messages.
func (t *Transcript) Append(label string, values ...encoding.BinaryMarshaler) error {
	for _, v := range values {
		if v == nil {
			t.absorb(label, nil)
			continue
		}
		buff, err := v.MarshalBinary()
		if err != nil {
			return fmt.Errorf("transcript: encoding %s: %w", label, err)
		}
		t.absorb(label, buff)
	}
	return nil
}

// Challenge derives a non-zero scalar from everything absorbed so far and
// absorbs it back so that the next challenge depends on this one.
func (t *Transcript) Challenge(label string) kyber.Scalar {
	zero := t.group.Scalar().Zero()
	for counter := 0; ; counter++ {
		h, _ := blake2b.New256(nil)
		h.Write(t.state[:])
		writeBytes(h, []byte(label))
		var c [8]byte
		binary.LittleEndian.PutUint64(c[:], uint64(counter))
		h.Write(c[:])
		digest := h.Sum(nil)
		x := t.group.Scalar().Pick(blake2xb.New(digest))
		if x.Equal(zero) {
			continue
		}
		t.absorb(label, digest)
		return x
	}
}

// HashToScalar maps arbitrary data to a scalar of g's field.
func HashToScalar(g kyber.Group, label string, data ...[]byte) kyber.Scalar {
	t := New(g, label)
	for _, d := range data {
		t.AppendBytes("data", d)
	}
	return t.Challenge("scalar")
}
