package archive

import (
	"github.com/0xPolygon/rollupchain/batchchain"
	"github.com/0xPolygon/rollupchain/pendingqueue"
	"github.com/ethereum/go-ethereum/common"
)

// Batch is the full header of an appended batch plus how it got there
type Batch struct {
	Chain                  string         `meddler:"chain"`
	BatchIndex             uint64         `meddler:"batch_index"`
	Timestamp              uint64         `meddler:"timestamp"`
	IsExternalOrigin       bool           `meddler:"is_external_origin"`
	ElementsMerkleRoot     common.Hash    `meddler:"elements_merkle_root,hash"`
	NumElementsInBatch     uint64         `meddler:"num_elements"`
	CumulativePrevElements uint64         `meddler:"cumulative_prev_elements"`
	HeaderHash             common.Hash    `meddler:"header_hash,hash"`
	Caller                 common.Address `meddler:"caller,address"`
	QueueIndex             *uint64        `meddler:"queue_index"`
}

func (b *Batch) Header() batchchain.BatchHeader {
	return batchchain.BatchHeader{
		Timestamp:              b.Timestamp,
		IsExternalOrigin:       b.IsExternalOrigin,
		ElementsMerkleRoot:     b.ElementsMerkleRoot,
		NumElementsInBatch:     b.NumElementsInBatch,
		CumulativePrevElements: b.CumulativePrevElements,
	}
}

// Element is a raw element of a batch, Position being its absolute position in the chain
type Element struct {
	Chain        string `meddler:"chain"`
	Position     uint64 `meddler:"position"`
	BatchIndex   uint64 `meddler:"batch_index"`
	IndexInBatch uint64 `meddler:"index_in_batch"`
	Data         []byte `meddler:"data"`
}

// QueueEntry is an element that went through the pending queue.
// BatchIndex is nil while it's still pending.
type QueueEntry struct {
	QueueIndex uint64         `meddler:"queue_index"`
	Element    []byte         `meddler:"element"`
	Timestamp  uint64         `meddler:"timestamp"`
	Caller     common.Address `meddler:"caller,address"`
	BatchIndex *uint64        `meddler:"batch_index"`
}

func (q *QueueEntry) Entry() pendingqueue.Entry {
	return pendingqueue.Entry{
		Element:   q.Element,
		Timestamp: q.Timestamp,
	}
}
