package tree

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/0xPolygon/rollupchain/db"
	"github.com/0xPolygon/rollupchain/tree/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store persists the internal nodes of batch trees so proofs can be served
// later from nothing but a batch root. Nodes are content addressed, so
// identical subtrees of different batches share rows.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) *Store {
	return &Store{db: database}
}

// StoreTree builds the tree of elements, stores every non padding node and returns the root
func (s *Store) StoreTree(tx db.Querier, elements [][]byte) (common.Hash, error) {
	levels, err := buildLevels(elements)
	if err != nil {
		return common.Hash{}, err
	}
	nodes := []types.TreeNode{}
	for h := 1; h < len(levels); h++ {
		children := levels[h-1]
		for i, hash := range levels[h] {
			right := zeroHashes[h-1]
			if 2*i+1 < len(children) {
				right = children[2*i+1]
			}
			nodes = append(nodes, types.TreeNode{
				Hash:  hash,
				Left:  children[2*i],
				Right: right,
			})
		}
	}
	if err := s.storeNodes(tx, nodes); err != nil {
		return common.Hash{}, err
	}
	return levels[len(levels)-1][0], nil
}

func (s *Store) storeNodes(tx db.Querier, nodes []types.TreeNode) error {
	for i := range nodes {
		if err := meddler.Insert(tx, "rht", &nodes[i]); err != nil {
			if db.IsUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("failed to store node %s: %w", nodes[i].Hash.Hex(), err)
		}
	}
	return nil
}

func (s *Store) getRHTNode(tx db.Querier, nodeHash common.Hash) (*types.TreeNode, error) {
	node := &types.TreeNode{}
	err := meddler.QueryRow(tx, node, `SELECT * FROM rht WHERE hash = $1;`, nodeHash.Hex())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return node, ErrNotFound
		}
		return node, err
	}
	return node, nil
}

// walk goes down from root to the leaf at index collecting the siblings on the way
func (s *Store) walk(tx db.Querier, root common.Hash, index uint64, height uint8) (types.Proof, common.Hash, error) {
	if height == 0 || height > types.MaxHeight {
		return nil, common.Hash{}, fmt.Errorf("invalid height %d", height)
	}
	if height < types.MaxHeight && index>>height != 0 {
		return nil, common.Hash{}, ErrIndexOutOfRange
	}
	siblings := make(types.Proof, height)
	currentNodeHash := root
	// It starts in height-1 because 0 is the level of the leafs
	for h := int(height) - 1; h >= 0; h-- {
		currentNode, err := s.getRHTNode(tx, currentNodeHash)
		if err != nil {
			return nil, common.Hash{}, fmt.Errorf(
				"height: %d, currentNode: %s, error: %w",
				h, currentNodeHash.Hex(), err,
			)
		}
		if index&(1<<uint(h)) > 0 {
			siblings[h] = currentNode.Left
			currentNodeHash = currentNode.Right
		} else {
			siblings[h] = currentNode.Right
			currentNodeHash = currentNode.Left
		}
	}
	return siblings, currentNodeHash, nil
}

// GetProof returns the merkle proof for a given index of the tree with the given root and height
func (s *Store) GetProof(ctx context.Context, root common.Hash, index uint64, height uint8) (types.Proof, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck
	siblings, _, err := s.walk(tx, root, index, height)
	return siblings, err
}

// GetLeaf returns the leaf hash stored at index of the tree with the given root and height
func (s *Store) GetLeaf(ctx context.Context, root common.Hash, index uint64, height uint8) (common.Hash, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Hash{}, err
	}
	defer tx.Rollback() //nolint:errcheck
	_, leaf, err := s.walk(tx, root, index, height)
	return leaf, err
}
