package aggregation

import (
	"bytes"
	"fmt"

	"github.com/nirvantyagi/ripp/groth16"
	mt "github.com/txaty/go-merkletree"
	"golang.org/x/crypto/sha3"
)

// KeccakHashFunc is the hash of the batch tree.
func KeccakHashFunc(data []byte) ([]byte, error) {
	keccakFunc := sha3.NewLegacyKeccak256()
	keccakFunc.Write(data)
	return keccakFunc.Sum(nil), nil
}

func treeConfig() *mt.Config {
	return &mt.Config{
		HashFunc: KeccakHashFunc,
		Mode:     mt.ModeProofGenAndTreeBuild,
	}
}

// batchTree builds the Merkle tree whose leaves are the encoded proofs, in
// order.
func batchTree(proofs []groth16.Proof) (*mt.MerkleTree, error) {
	blocks := make([]mt.DataBlock, len(proofs))
	for i := range blocks {
		blocks[i] = proofs[i]
	}
	tree, err := mt.New(treeConfig(), blocks)
	if err != nil {
		return nil, fmt.Errorf("aggregation: merkle tree: %w", err)
	}
	return tree, nil
}

// Seed returns the root of the batch tree, which seeds the aggregation
// challenge and identifies the batch.
func Seed(proofs []groth16.Proof) ([]byte, error) {
	if err := checkBatchSize(len(proofs)); err != nil {
		return nil, err
	}
	tree, err := batchTree(proofs)
	if err != nil {
		return nil, err
	}
	return tree.Root, nil
}

// CheckSeed reports whether the aggregate proof was built from this batch.
func CheckSeed(proofs []groth16.Proof, agg *Proof) (bool, error) {
	seed, err := Seed(proofs)
	if err != nil {
		return false, err
	}
	return bytes.Equal(seed, agg.Seed), nil
}

// Inclusion returns a Merkle proof that the i-th proof belongs to the batch.
func Inclusion(proofs []groth16.Proof, i int) (*mt.Proof, error) {
	if i < 0 || i >= len(proofs) {
		return nil, fmt.Errorf("%w: index %d out of %d proofs", ErrBatchSize, i, len(proofs))
	}
	if err := checkBatchSize(len(proofs)); err != nil {
		return nil, err
	}
	tree, err := batchTree(proofs)
	if err != nil {
		return nil, err
	}
	return tree.Proofs[i], nil
}

// VerifyInclusion checks that proof is part of the batch identified by seed.
func VerifyInclusion(seed []byte, proof groth16.Proof, inclusion *mt.Proof) (bool, error) {
	if inclusion == nil {
		return false, fmt.Errorf("%w: nil inclusion proof", ErrBatchSize)
	}
	ok, err := mt.Verify(proof, inclusion, seed, treeConfig())
	if err != nil {
		return false, fmt.Errorf("aggregation: inclusion: %w", err)
	}
	return ok, nil
}
