package batchchain

import (
	"fmt"

	"github.com/0xPolygon/rollupchain/tree"
	"github.com/ethereum/go-ethereum/common"
)

// headerLog is the append only list of header hashes shared by both chains.
// Invariant: cumulativeNumElements is the sum of NumElementsInBatch over all
// appended headers, and each header's CumulativePrevElements is the value
// cumulativeNumElements had right before it was appended.
type headerLog struct {
	batches               []common.Hash
	cumulativeNumElements uint64
	lastAcceptedTimestamp uint64
}

func (l *headerLog) nextHeader(
	timestamp uint64, isExternalOrigin bool, root common.Hash, numElements uint64,
) BatchHeader {
	return BatchHeader{
		Timestamp:              timestamp,
		IsExternalOrigin:       isExternalOrigin,
		ElementsMerkleRoot:     root,
		NumElementsInBatch:     numElements,
		CumulativePrevElements: l.cumulativeNumElements,
	}
}

func (l *headerLog) nextIndex() uint64 {
	return uint64(len(l.batches))
}

func (l *headerLog) append(h BatchHeader) (common.Hash, uint64) {
	hash := h.Hash()
	l.batches = append(l.batches, hash)
	l.cumulativeNumElements += h.NumElementsInBatch
	l.lastAcceptedTimestamp = h.Timestamp
	return hash, uint64(len(l.batches) - 1)
}

func (l *headerLog) batch(index uint64) (common.Hash, error) {
	if index >= uint64(len(l.batches)) {
		return common.Hash{}, fmt.Errorf("%w: index %d, length %d", ErrBatchNotFound, index, len(l.batches))
	}
	return l.batches[index], nil
}

// verifyElement is a pure predicate, any inconsistency just returns false
func (l *headerLog) verifyElement(element []byte, position uint64, proof ElementInclusionProof) bool {
	header := proof.BatchHeader
	if proof.IndexInBatch >= header.NumElementsInBatch {
		return false
	}
	if position != proof.IndexInBatch+header.CumulativePrevElements {
		return false
	}
	if len(proof.Siblings) != int(tree.Height(header.NumElementsInBatch)) {
		return false
	}
	if !tree.Verify(header.ElementsMerkleRoot, element, proof.IndexInBatch, proof.Siblings) {
		return false
	}
	stored, err := l.batch(proof.BatchIndex)
	if err != nil {
		return false
	}
	return header.Hash() == stored
}

// restore rebuilds the log from full headers, checking the log invariants on the way
func (l *headerLog) restore(headers []BatchHeader) error {
	if len(l.batches) > 0 {
		return ErrAlreadyInitialized
	}
	restored := headerLog{}
	for i, h := range headers {
		if h.NumElementsInBatch == 0 {
			return fmt.Errorf("%w: batch %d has no elements", ErrInvalidHistory, i)
		}
		if h.CumulativePrevElements != restored.cumulativeNumElements {
			return fmt.Errorf("%w: batch %d has cumulativePrevElements %d, expected %d",
				ErrInvalidHistory, i, h.CumulativePrevElements, restored.cumulativeNumElements)
		}
		if h.Timestamp < restored.lastAcceptedTimestamp {
			return fmt.Errorf("%w: batch %d has timestamp %d before %d",
				ErrInvalidHistory, i, h.Timestamp, restored.lastAcceptedTimestamp)
		}
		restored.append(h)
	}
	*l = restored
	return nil
}
