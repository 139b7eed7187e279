package types

import (
	"github.com/0xPolygon/rollupchain/batchchain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AppendedBatch is the result of an append
type AppendedBatch struct {
	Chain      string                 `json:"chain"`
	BatchIndex uint64                 `json:"batchIndex"`
	Header     batchchain.BatchHeader `json:"header"`
	HeaderHash common.Hash            `json:"headerHash"`
	QueueIndex *uint64                `json:"queueIndex,omitempty"`
}

func NewAppendedBatch(b batchchain.AppendedBatch) AppendedBatch {
	return AppendedBatch{
		Chain:      b.Chain,
		BatchIndex: b.BatchIndex,
		Header:     b.Header,
		HeaderHash: b.HeaderHash,
		QueueIndex: b.QueueIndex,
	}
}

type QueuedEntry struct {
	QueueIndex uint64        `json:"queueIndex"`
	Element    hexutil.Bytes `json:"element"`
	Timestamp  uint64        `json:"timestamp"`
}

type QueueInfo struct {
	Front  uint64 `json:"front"`
	Back   uint64 `json:"back"`
	Length uint64 `json:"length"`
	// FrontTimestamp is the timestamp of the oldest pending entry, nil if the queue is empty
	FrontTimestamp *uint64 `json:"frontTimestamp,omitempty"`
}

// Batch is an archived batch: its full header and how it got appended
type Batch struct {
	BatchIndex uint64                 `json:"batchIndex"`
	Header     batchchain.BatchHeader `json:"header"`
	HeaderHash common.Hash            `json:"headerHash"`
	Caller     common.Address         `json:"caller"`
	QueueIndex *uint64                `json:"queueIndex,omitempty"`
}

type ElementProof struct {
	Element  hexutil.Bytes                    `json:"element"`
	Position uint64                           `json:"position"`
	Proof    batchchain.ElementInclusionProof `json:"proof"`
}

type SubmittedTransaction struct {
	Pending int `json:"pending"`
}
