package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/0xPolygon/rollupchain/batchchain"
	"github.com/0xPolygon/rollupchain/db"
	"github.com/0xPolygon/rollupchain/log"
	"github.com/0xPolygon/rollupchain/pendingqueue"
	"github.com/0xPolygon/rollupchain/rpc/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	// CHAIN is the namespace of the chain service
	CHAIN     = "chain"
	meterName = "github.com/0xPolygon/rollupchain/rpc"
)

var (
	ErrSubmitterDisabled = errors.New("this node doesn't run a submitter")
)

// ChainEndpoints contains implementations for the "chain" RPC endpoints.
// The caller of the mutating endpoints is taken from the request params as is: the node
// doesn't authenticate it, so the server must only be reachable through an authenticating
// proxy (it listens on 127.0.0.1 by default).
type ChainEndpoints struct {
	logger       *log.Logger
	meter        metric.Meter
	readTimeout  time.Duration
	writeTimeout time.Duration
	txChain      TransactionChainer
	stateChain   StateChainer
	archive      Archiver
	submitter    TransactionSubmitter
}

// NewChainEndpoints returns ChainEndpoints. submitter can be nil.
func NewChainEndpoints(
	logger *log.Logger,
	writeTimeout time.Duration,
	readTimeout time.Duration,
	txChain TransactionChainer,
	stateChain StateChainer,
	archive Archiver,
	submitter TransactionSubmitter,
) *ChainEndpoints {
	return &ChainEndpoints{
		logger:       logger,
		meter:        otel.Meter(meterName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
		txChain:      txChain,
		stateChain:   stateChain,
		archive:      archive,
		submitter:    submitter,
	}
}

func (c *ChainEndpoints) count(ctx context.Context, name string) {
	counter, err := c.meter.Int64Counter(name)
	if err != nil {
		c.logger.Warnf("failed to create %s counter: %s", name, err)
		return
	}
	counter.Add(ctx, 1)
}

// Enqueue adds an element to the pending queue, only the queue producer can call it
func (c *ChainEndpoints) Enqueue(caller common.Address, element hexutil.Bytes) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout)
	defer cancel()
	c.count(ctx, "enqueue")

	queued, err := c.txChain.Enqueue(ctx, caller, element)
	if err != nil {
		return nil, toRPCError("failed to enqueue element", err)
	}
	return types.QueuedEntry{
		QueueIndex: queued.QueueIndex,
		Element:    queued.Entry.Element,
		Timestamp:  queued.Entry.Timestamp,
	}, nil
}

// AppendFromQueue appends the oldest pending queue entry
func (c *ChainEndpoints) AppendFromQueue(caller common.Address) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout)
	defer cancel()
	c.count(ctx, "append_from_queue")

	batch, err := c.txChain.AppendFromQueue(ctx, caller)
	if err != nil {
		return nil, toRPCError("failed to append from queue", err)
	}
	return types.NewAppendedBatch(batch), nil
}

// AppendBatch appends a batch of transactions
func (c *ChainEndpoints) AppendBatch(
	caller common.Address, elements []hexutil.Bytes, timestamp uint64,
) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout)
	defer cancel()
	c.count(ctx, "append_batch")

	batch, err := c.txChain.AppendBatch(ctx, caller, toByteSlices(elements), timestamp)
	if err != nil {
		return nil, toRPCError("failed to append batch", err)
	}
	return types.NewAppendedBatch(batch), nil
}

// AppendStateBatch appends a batch of state commitments
func (c *ChainEndpoints) AppendStateBatch(caller common.Address, elements []hexutil.Bytes) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout)
	defer cancel()
	c.count(ctx, "append_state_batch")

	batch, err := c.stateChain.AppendStateBatch(ctx, caller, toByteSlices(elements))
	if err != nil {
		return nil, toRPCError("failed to append state batch", err)
	}
	return types.NewAppendedBatch(batch), nil
}

// SubmitTransaction hands a transaction to the submitter of this node
func (c *ChainEndpoints) SubmitTransaction(tx hexutil.Bytes) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout)
	defer cancel()
	c.count(ctx, "submit_transaction")

	if c.submitter == nil {
		return nil, rpc.NewRPCError(rpc.DefaultErrorCode, ErrSubmitterDisabled.Error())
	}
	pending, err := c.submitter.SubmitTransaction(tx)
	if err != nil {
		return nil, toRPCError("failed to submit transaction", err)
	}
	return types.SubmittedTransaction{Pending: pending}, nil
}

// GetBatchesLength returns the number of batches of chain ("transactions" or "state")
func (c *ChainEndpoints) GetBatchesLength(chain string) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.readTimeout)
	defer cancel()
	c.count(ctx, "get_batches_length")

	reader, rerr := c.chainReader(chain)
	if rerr != nil {
		return nil, rerr
	}
	return reader.GetBatchesLength(), nil
}

// GetBatch returns the full header of a batch, checked against the header hash kept by the chain
func (c *ChainEndpoints) GetBatch(chain string, index uint64) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.readTimeout)
	defer cancel()
	c.count(ctx, "get_batch")

	reader, rerr := c.chainReader(chain)
	if rerr != nil {
		return nil, rerr
	}
	headerHash, err := reader.Batch(index)
	if err != nil {
		return nil, toRPCError("failed to get batch", err)
	}
	batch, err := c.archive.GetBatch(ctx, chain, index)
	if err != nil {
		return nil, toRPCError("failed to get archived batch", err)
	}
	if batch.HeaderHash != headerHash {
		c.logger.Errorf("archived %s batch %d has header hash %s but the chain has %s",
			chain, index, batch.HeaderHash.Hex(), headerHash.Hex())
		return nil, rpc.NewRPCError(rpc.DefaultErrorCode, "archive is inconsistent with the chain")
	}
	return types.Batch{
		BatchIndex: batch.BatchIndex,
		Header:     batch.Header(),
		HeaderHash: batch.HeaderHash,
		Caller:     batch.Caller,
		QueueIndex: batch.QueueIndex,
	}, nil
}

func (c *ChainEndpoints) GetCumulativeNumElements(chain string) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.readTimeout)
	defer cancel()
	c.count(ctx, "get_cumulative_num_elements")

	reader, rerr := c.chainReader(chain)
	if rerr != nil {
		return nil, rerr
	}
	return reader.CumulativeNumElements(), nil
}

func (c *ChainEndpoints) GetLastAcceptedTimestamp(chain string) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.readTimeout)
	defer cancel()
	c.count(ctx, "get_last_accepted_timestamp")

	reader, rerr := c.chainReader(chain)
	if rerr != nil {
		return nil, rerr
	}
	return reader.LastAcceptedTimestamp(), nil
}

// GetQueueInfo returns the state of the pending queue
func (c *ChainEndpoints) GetQueueInfo() (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.readTimeout)
	defer cancel()
	c.count(ctx, "get_queue_info")

	queue := c.txChain.Queue()
	info := types.QueueInfo{
		Front:  queue.Front(),
		Back:   queue.Back(),
		Length: queue.Len(),
	}
	timestamp, err := queue.PeekTimestamp()
	switch {
	case errors.Is(err, pendingqueue.ErrEmptyQueue):
	case err != nil:
		return nil, toRPCError("failed to get queue info", err)
	default:
		info.FrontTimestamp = &timestamp
	}
	return info, nil
}

// VerifyElement checks that element sits at position of chain
func (c *ChainEndpoints) VerifyElement(
	chain string, element hexutil.Bytes, position uint64, proof batchchain.ElementInclusionProof,
) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.readTimeout)
	defer cancel()
	c.count(ctx, "verify_element")

	reader, rerr := c.chainReader(chain)
	if rerr != nil {
		return nil, rerr
	}
	return reader.VerifyElement(element, position, proof), nil
}

// GetElementProof returns the element at position of chain and the proof VerifyElement accepts for it
func (c *ChainEndpoints) GetElementProof(chain string, position uint64) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.readTimeout)
	defer cancel()
	c.count(ctx, "get_element_proof")

	if _, rerr := c.chainReader(chain); rerr != nil {
		return nil, rerr
	}
	proof, element, err := c.archive.GetElementProof(ctx, chain, position)
	if err != nil {
		return nil, toRPCError(fmt.Sprintf("failed to get proof for position %d", position), err)
	}
	return types.ElementProof{
		Element:  element,
		Position: position,
		Proof:    proof,
	}, nil
}

func (c *ChainEndpoints) chainReader(chain string) (ChainReader, rpc.Error) {
	switch chain {
	case batchchain.TransactionChainName:
		return c.txChain, nil
	case batchchain.StateChainName:
		return c.stateChain, nil
	default:
		return nil, rpc.NewRPCError(rpc.InvalidParamsErrorCode, fmt.Sprintf(
			"unknown chain %q, use %q or %q", chain, batchchain.TransactionChainName, batchchain.StateChainName,
		))
	}
}

func toRPCError(msg string, err error) rpc.Error {
	if errors.Is(err, db.ErrNotFound) || errors.Is(err, batchchain.ErrBatchNotFound) {
		return rpc.NewRPCError(rpc.NotFoundErrorCode, fmt.Sprintf("%s: %s", msg, err))
	}
	return rpc.NewRPCError(rpc.DefaultErrorCode, fmt.Sprintf("%s: %s", msg, err))
}

func toByteSlices(elements []hexutil.Bytes) [][]byte {
	res := make([][]byte, len(elements))
	for i, e := range elements {
		res[i] = e
	}
	return res
}
