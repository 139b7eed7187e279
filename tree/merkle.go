package tree

import (
	"errors"
	"math/bits"

	"github.com/0xPolygon/rollupchain/tree/types"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

var (
	// PaddingHash fills the leaf level up to the next power of two
	PaddingHash = common.Hash{}

	ErrEmptyInput      = errors.New("empty input")
	ErrIndexOutOfRange = errors.New("index out of range")

	zeroHashes = generateZeroHashes(types.MaxHeight)
)

// LeafHash is the value an element takes at the leaf level of a batch tree.
// Elements are hashed before being paired so every node is 32 bytes long: the root of
// a single element batch is Hash(Hash(element) ‖ PaddingHash), not Hash(element ‖ PaddingHash).
func LeafHash(element []byte) common.Hash {
	var hash common.Hash
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(element)
	copy(hash[:], hasher.Sum(nil))
	return hash
}

func hashPair(left, right common.Hash) common.Hash {
	var hash common.Hash
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(left[:])
	hasher.Write(right[:])
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// generateZeroHashes returns the root of a fully padded subtree for every height,
// zeroHashes[0] being the padding leaf itself
func generateZeroHashes(height uint8) []common.Hash {
	var zeroHashes = []common.Hash{
		PaddingHash,
	}
	for i := 1; i <= int(height); i++ {
		zeroHashes = append(zeroHashes, hashPair(zeroHashes[i-1], zeroHashes[i-1]))
	}
	return zeroHashes
}

// Height returns the number of levels above the leaves of a tree holding numElements,
// which is also the length of its proofs. A batch always has at least one level:
// a single element is paired with the padding leaf.
func Height(numElements uint64) uint8 {
	if numElements <= 2 { //nolint:mnd
		return 1
	}
	return uint8(bits.Len64(numElements - 1))
}

// buildLevels hashes the elements into a tree padded up to the next power of two.
// levels[0] are the leaf hashes (without padding) and the last level holds only the root.
// Missing right children are the root of an all-padding subtree of the same height,
// which is equivalent to padding the leaf level.
func buildLevels(elements [][]byte) ([][]common.Hash, error) {
	if len(elements) == 0 {
		return nil, ErrEmptyInput
	}
	height := Height(uint64(len(elements)))
	current := make([]common.Hash, len(elements))
	for i, e := range elements {
		current[i] = LeafHash(e)
	}
	levels := make([][]common.Hash, 0, height+1)
	levels = append(levels, current)
	for h := uint8(0); h < height; h++ {
		next := make([]common.Hash, 0, (len(current)+1)/2) //nolint:mnd
		for i := 0; i < len(current); i += 2 {
			right := zeroHashes[h]
			if i+1 < len(current) {
				right = current[i+1]
			}
			next = append(next, hashPair(current[i], right))
		}
		levels = append(levels, next)
		current = next
	}
	return levels, nil
}

// BuildRoot returns the Merkle root of the ordered elements
func BuildRoot(elements [][]byte) (common.Hash, error) {
	levels, err := buildLevels(elements)
	if err != nil {
		return common.Hash{}, err
	}
	return levels[len(levels)-1][0], nil
}

// GenerateProof returns the siblings needed to prove that elements[index] belongs to BuildRoot(elements)
func GenerateProof(elements [][]byte, index uint64) (types.Proof, error) {
	if len(elements) == 0 {
		return nil, ErrEmptyInput
	}
	if index >= uint64(len(elements)) {
		return nil, ErrIndexOutOfRange
	}
	levels, err := buildLevels(elements)
	if err != nil {
		return nil, err
	}
	height := len(levels) - 1
	proof := make(types.Proof, height)
	for h := 0; h < height; h++ {
		siblingIndex := (index >> h) ^ 1
		if siblingIndex < uint64(len(levels[h])) {
			proof[h] = levels[h][siblingIndex]
		} else {
			proof[h] = zeroHashes[h]
		}
	}
	return proof, nil
}

// Verify recomputes the root from the element and its siblings and compares it against root.
// Bit h of indexInBatch tells whether the node at level h is a right child.
// It never fails: any malformed input is just a mismatch.
func Verify(root common.Hash, element []byte, indexInBatch uint64, siblings []common.Hash) bool {
	height := len(siblings)
	if height == 0 || height > int(types.MaxHeight) {
		return false
	}
	if height < int(types.MaxHeight) && indexInBatch>>uint(height) != 0 {
		return false
	}
	return computeRoot(LeafHash(element), indexInBatch, siblings) == root
}

func computeRoot(leaf common.Hash, index uint64, siblings []common.Hash) common.Hash {
	current := leaf
	for h, sibling := range siblings {
		if index&(1<<uint(h)) > 0 {
			current = hashPair(sibling, current)
		} else {
			current = hashPair(current, sibling)
		}
	}
	return current
}
