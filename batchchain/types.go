package batchchain

import (
	"fmt"

	cdkcommon "github.com/0xPolygon/rollupchain/common"
	"github.com/0xPolygon/rollupchain/pendingqueue"
	"github.com/ethereum/go-ethereum/common"
	"github.com/iden3/go-iden3-crypto/keccak256"
)

const (
	// TransactionChainName identifies the canonical transaction chain
	TransactionChainName = "transactions"
	// StateChainName identifies the state commitment chain
	StateChainName = "state"
)

// BatchHeader summarizes a batch. Only its hash is kept by the chain.
type BatchHeader struct {
	Timestamp              uint64      `json:"timestamp"`
	IsExternalOrigin       bool        `json:"isExternalOrigin"`
	ElementsMerkleRoot     common.Hash `json:"elementsMerkleRoot"`
	NumElementsInBatch     uint64      `json:"numElementsInBatch"`
	CumulativePrevElements uint64      `json:"cumulativePrevElements"`
}

// Hash returns keccak256 of the packed header: every integer as a 32 bytes word and the origin flag as one byte
func (h BatchHeader) Hash() common.Hash {
	return common.BytesToHash(keccak256.Hash(
		cdkcommon.Uint64ToUint256Bytes(h.Timestamp),
		[]byte{cdkcommon.BoolToByte(h.IsExternalOrigin)},
		h.ElementsMerkleRoot[:],
		cdkcommon.Uint64ToUint256Bytes(h.NumElementsInBatch),
		cdkcommon.Uint64ToUint256Bytes(h.CumulativePrevElements),
	))
}

func (h BatchHeader) String() string {
	return fmt.Sprintf(
		"timestamp: %d, external: %t, root: %s, elements: %d, cumulativePrev: %d",
		h.Timestamp, h.IsExternalOrigin, h.ElementsMerkleRoot.Hex(), h.NumElementsInBatch, h.CumulativePrevElements,
	)
}

// ElementInclusionProof claims that an element sits at IndexInBatch of the batch BatchIndex,
// whose full header is BatchHeader
type ElementInclusionProof struct {
	BatchIndex   uint64        `json:"batchIndex"`
	IndexInBatch uint64        `json:"indexInBatch"`
	Siblings     []common.Hash `json:"siblings"`
	BatchHeader  BatchHeader   `json:"batchHeader"`
}

// AppendedBatch is everything known about a batch at the moment it's appended,
// including what the chain itself doesn't keep
type AppendedBatch struct {
	Chain      string
	BatchIndex uint64
	Header     BatchHeader
	HeaderHash common.Hash
	Elements   [][]byte
	Caller     common.Address
	// QueueIndex is the index of the queue entry consumed by the batch, nil if it didn't come from the queue
	QueueIndex *uint64
}

// QueuedEntry is an entry pushed to the pending queue
type QueuedEntry struct {
	QueueIndex uint64
	Entry      pendingqueue.Entry
	Caller     common.Address
}
