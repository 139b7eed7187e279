package rpc

import (
	"context"

	"github.com/0xPolygon/rollupchain/archive"
	"github.com/0xPolygon/rollupchain/batchchain"
	"github.com/0xPolygon/rollupchain/pendingqueue"
	"github.com/ethereum/go-ethereum/common"
)

// ChainReader is what both chains answer
type ChainReader interface {
	VerifyElement(element []byte, position uint64, proof batchchain.ElementInclusionProof) bool
	GetBatchesLength() uint64
	Batch(index uint64) (common.Hash, error)
	CumulativeNumElements() uint64
	LastAcceptedTimestamp() uint64
}

type TransactionChainer interface {
	ChainReader
	Enqueue(ctx context.Context, caller common.Address, element []byte) (batchchain.QueuedEntry, error)
	AppendFromQueue(ctx context.Context, caller common.Address) (batchchain.AppendedBatch, error)
	AppendBatch(
		ctx context.Context, caller common.Address, elements [][]byte, timestamp uint64,
	) (batchchain.AppendedBatch, error)
	Queue() pendingqueue.Reader
}

type StateChainer interface {
	ChainReader
	AppendStateBatch(ctx context.Context, caller common.Address, elements [][]byte) (batchchain.AppendedBatch, error)
}

type Archiver interface {
	GetBatch(ctx context.Context, chain string, index uint64) (*archive.Batch, error)
	GetElementProof(
		ctx context.Context, chain string, position uint64,
	) (batchchain.ElementInclusionProof, []byte, error)
}

type TransactionSubmitter interface {
	SubmitTransaction(tx []byte) (int, error)
}
