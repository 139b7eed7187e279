package types

import "github.com/ethereum/go-ethereum/common"

const (
	// MaxHeight is the deepest tree a proof is accepted for: 2^64 leaves
	MaxHeight uint8 = 64
)

// Proof is the list of siblings from the leaf level (index 0) up to the level right below the root
type Proof []common.Hash

type TreeNode struct {
	Hash  common.Hash `meddler:"hash,hash"`
	Left  common.Hash `meddler:"left,hash"`
	Right common.Hash `meddler:"right,hash"`
}
