package merkle

import (
	"testing"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/stretchr/testify/assert"
)

func leaves(n int) []hash.Hash {
	ls := make([]hash.Hash, n)
	for i := range ls {
		ls[i] = hash.HashH([]byte{byte(i)})
	}
	return ls
}

func TestMerkleRootSmall(t *testing.T) {
	assert.Equal(t, hash.ZeroHash, MerkleRoot(nil))

	ls := leaves(3)
	assert.Equal(t, ls[0], MerkleRoot(ls[:1]))
	assert.Equal(t, hash.HashMerge(&ls[0], &ls[1]), MerkleRoot(ls[:2]))

	// nodes: [root, n1, l0, l1, l2], n1 = merge(l1, l2)
	n1 := hash.HashMerge(&ls[1], &ls[2])
	assert.Equal(t, hash.HashMerge(&n1, &ls[0]), MerkleRoot(ls))
}

func TestMerkleRootOrderMatters(t *testing.T) {
	ls := leaves(4)
	swapped := []hash.Hash{ls[1], ls[0], ls[2], ls[3]}
	assert.NotEqual(t, MerkleRoot(ls), MerkleRoot(swapped))
}

func TestProof(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 13} {
		ls := leaves(n)
		root := MerkleRoot(ls)
		for i := 0; i < n; i++ {
			path, ok := Proof(ls, i)
			assert.True(t, ok)
			assert.True(t, VerifyProof(root, ls[i], i, n, path), "n=%d i=%d", n, i)
			if n > 1 {
				assert.False(t, VerifyProof(root, ls[(i+1)%n], i, n, path))
			}
		}
	}
	_, ok := Proof(leaves(2), 2)
	assert.False(t, ok)
}
