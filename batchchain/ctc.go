package batchchain

import (
	"context"
	"fmt"
	"sync"

	cdkcommon "github.com/0xPolygon/rollupchain/common"
	"github.com/0xPolygon/rollupchain/log"
	"github.com/0xPolygon/rollupchain/pendingqueue"
	"github.com/0xPolygon/rollupchain/tree"
	"github.com/ethereum/go-ethereum/common"
)

// CanonicalTransactionChain is the append only log of transaction batches. Batches come either
// from the pending queue, one element each, or in bulk from an authorized submitter.
// All the mutating operations are serialized and are all or nothing: a failed call leaves
// neither the chain, the queue nor the journal modified.
type CanonicalTransactionChain struct {
	mu                   sync.RWMutex
	logger               *log.Logger
	forceInclusionPeriod uint64
	auth                 Authorizer
	clock                cdkcommon.Clock
	queue                *pendingqueue.Queue
	journal              Journal
	headers              headerLog
}

// NewCanonicalTransactionChain creates an empty chain. If auth is nil it's built from the config.
// journal can be nil if nothing needs to be persisted.
func NewCanonicalTransactionChain(
	logger *log.Logger,
	cfg Config,
	auth Authorizer,
	clock cdkcommon.Clock,
	journal Journal,
) *CanonicalTransactionChain {
	if auth == nil {
		auth = cfg.authorizer()
	}
	if journal == nil {
		journal = nopJournal{}
	}
	return &CanonicalTransactionChain{
		logger:               logger,
		forceInclusionPeriod: cfg.forceInclusionPeriodSeconds(),
		auth:                 auth,
		clock:                clock,
		queue:                pendingqueue.New(cfg.QueueProducer, clock),
		journal:              journal,
	}
}

// Enqueue adds an L1 originated element to the pending queue. Only the queue producer can call it.
func (c *CanonicalTransactionChain) Enqueue(
	ctx context.Context, caller common.Address, element []byte,
) (QueuedEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, index, err := c.queue.NextEntry(caller, element)
	if err != nil {
		return QueuedEntry{}, err
	}
	// an entry appended from the queue becomes the last accepted timestamp, so it can't be older
	entry.Timestamp = max(entry.Timestamp, c.headers.lastAcceptedTimestamp)
	queued := QueuedEntry{
		QueueIndex: index,
		Entry:      entry,
		Caller:     caller,
	}
	if err := c.journal.RecordEnqueue(ctx, queued); err != nil {
		return QueuedEntry{}, fmt.Errorf("error recording queue entry %d: %w", index, err)
	}
	c.queue.Push(entry)
	c.logger.Debugf("queue entry %d enqueued with timestamp %d", index, entry.Timestamp)
	return queued, nil
}

// AppendFromQueue appends the oldest pending queue entry as a batch of one element.
// While the entry is younger than the force inclusion period only a submitter can do it,
// afterwards anybody can.
func (c *CanonicalTransactionChain) AppendFromQueue(ctx context.Context, caller common.Address) (AppendedBatch, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, err := c.queue.Peek()
	if err != nil {
		return AppendedBatch{}, err
	}
	now := c.clock.Now()
	if c.withinForceInclusionPeriod(entry.Timestamp, now) && !c.auth.IsAuthorizedSubmitter(caller) {
		return AppendedBatch{}, fmt.Errorf(
			"%w: %s is not a submitter and queue entry %d can't be forced until %d",
			ErrUnauthorized, caller.Hex(), c.queue.Front(), entry.Timestamp+c.forceInclusionPeriod+1,
		)
	}
	elements := [][]byte{entry.Element}
	root, err := tree.BuildRoot(elements)
	if err != nil {
		return AppendedBatch{}, err
	}
	queueIndex := c.queue.Front()
	header := c.headers.nextHeader(entry.Timestamp, true, root, 1)
	batch := AppendedBatch{
		Chain:      TransactionChainName,
		BatchIndex: c.headers.nextIndex(),
		Header:     header,
		HeaderHash: header.Hash(),
		Elements:   elements,
		Caller:     caller,
		QueueIndex: &queueIndex,
	}
	if err := c.journal.RecordBatch(ctx, batch); err != nil {
		return AppendedBatch{}, fmt.Errorf("error recording batch %d: %w", batch.BatchIndex, err)
	}
	c.headers.append(header)
	if err := c.queue.Dequeue(); err != nil {
		// the entry has just been peeked under the same lock
		c.logger.Errorf("queue entry %d vanished while appending it: %v", queueIndex, err)
	}
	c.logger.Infof("queue entry %d appended as batch %d by %s", queueIndex, batch.BatchIndex, caller.Hex())
	return batch, nil
}

func (c *CanonicalTransactionChain) withinForceInclusionPeriod(timestamp, now uint64) bool {
	return now < timestamp || now-timestamp <= c.forceInclusionPeriod
}

// AppendBatch appends a batch of elements submitted by an authorized submitter
func (c *CanonicalTransactionChain) AppendBatch(
	ctx context.Context, caller common.Address, elements [][]byte, timestamp uint64,
) (AppendedBatch, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.auth.IsAuthorizedSubmitter(caller) {
		return AppendedBatch{}, fmt.Errorf("%w: %s is not a submitter", ErrUnauthorized, caller.Hex())
	}
	if len(elements) == 0 {
		return AppendedBatch{}, ErrEmptyBatch
	}
	now := c.clock.Now()
	if timestamp > now {
		return AppendedBatch{}, fmt.Errorf("%w: %d > %d", ErrFutureTimestamp, timestamp, now)
	}
	if now-timestamp >= c.forceInclusionPeriod {
		return AppendedBatch{}, fmt.Errorf("%w: %d is %d seconds old, the limit is %d",
			ErrStaleTimestamp, timestamp, now-timestamp, c.forceInclusionPeriod)
	}
	if !c.queue.IsEmpty() {
		queueTimestamp, err := c.queue.PeekTimestamp()
		if err != nil {
			return AppendedBatch{}, err
		}
		if timestamp > queueTimestamp {
			return AppendedBatch{}, fmt.Errorf("%w: %d > %d (queue entry %d)",
				ErrQueueOrderingViolation, timestamp, queueTimestamp, c.queue.Front())
		}
	}
	if timestamp < c.headers.lastAcceptedTimestamp {
		return AppendedBatch{}, fmt.Errorf("%w: %d < %d",
			ErrTimestampRegression, timestamp, c.headers.lastAcceptedTimestamp)
	}

	copied := make([][]byte, len(elements))
	for i, e := range elements {
		copied[i] = make([]byte, len(e))
		copy(copied[i], e)
	}
	root, err := tree.BuildRoot(copied)
	if err != nil {
		return AppendedBatch{}, err
	}
	header := c.headers.nextHeader(timestamp, false, root, uint64(len(copied)))
	batch := AppendedBatch{
		Chain:      TransactionChainName,
		BatchIndex: c.headers.nextIndex(),
		Header:     header,
		HeaderHash: header.Hash(),
		Elements:   copied,
		Caller:     caller,
	}
	if err := c.journal.RecordBatch(ctx, batch); err != nil {
		return AppendedBatch{}, fmt.Errorf("error recording batch %d: %w", batch.BatchIndex, err)
	}
	c.headers.append(header)
	c.logger.Infof("batch %d with %d elements appended by %s", batch.BatchIndex, len(copied), caller.Hex())
	return batch, nil
}

// VerifyElement returns true only if element is at the absolute position of the chain according to proof.
// The position must match the claimed header, the element must belong to the claimed root
// and the claimed header must be the one stored at proof.BatchIndex.
func (c *CanonicalTransactionChain) VerifyElement(element []byte, position uint64, proof ElementInclusionProof) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.verifyElement(element, position, proof)
}

func (c *CanonicalTransactionChain) GetBatchesLength() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.nextIndex()
}

// Batch returns the header hash of the batch at index
func (c *CanonicalTransactionChain) Batch(index uint64) (common.Hash, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.batch(index)
}

func (c *CanonicalTransactionChain) CumulativeNumElements() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.cumulativeNumElements
}

func (c *CanonicalTransactionChain) LastAcceptedTimestamp() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.lastAcceptedTimestamp
}

// ForceInclusionPeriod in seconds
func (c *CanonicalTransactionChain) ForceInclusionPeriod() uint64 {
	return c.forceInclusionPeriod
}

// Queue gives read only access to the pending queue
func (c *CanonicalTransactionChain) Queue() pendingqueue.Reader {
	return queueReader{c: c}
}

// Restore loads the history of a chain: the headers of its batches in order, and the entries
// still pending in its queue, the first of them having index queueFront.
// It can only be called before any other mutating operation.
func (c *CanonicalTransactionChain) Restore(
	headers []BatchHeader, queueFront uint64, pending []pendingqueue.Entry,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.headers.nextIndex() > 0 || c.queue.Back() > 0 {
		return ErrAlreadyInitialized
	}
	queue := pendingqueue.New(c.queue.Producer(), c.clock)
	if err := queue.Restore(queueFront, pending); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHistory, err)
	}
	var queued uint64
	for _, h := range headers {
		if h.IsExternalOrigin {
			queued++
		}
	}
	if queued != queueFront {
		return fmt.Errorf("%w: %d batches come from the queue but its front is %d",
			ErrInvalidHistory, queued, queueFront)
	}
	if err := c.headers.restore(headers); err != nil {
		return err
	}
	c.queue = queue
	c.logger.Infof("transaction chain restored with %d batches, %d elements and %d pending queue entries",
		len(headers), c.headers.cumulativeNumElements, len(pending))
	return nil
}

// queueReader reads the queue of a chain under its lock
type queueReader struct {
	c *CanonicalTransactionChain
}

func (r queueReader) Peek() (pendingqueue.Entry, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	e, err := r.c.queue.Peek()
	if err != nil {
		return pendingqueue.Entry{}, err
	}
	element := make([]byte, len(e.Element))
	copy(element, e.Element)
	return pendingqueue.Entry{Element: element, Timestamp: e.Timestamp}, nil
}

func (r queueReader) PeekTimestamp() (uint64, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	return r.c.queue.PeekTimestamp()
}

func (r queueReader) IsEmpty() bool {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	return r.c.queue.IsEmpty()
}

func (r queueReader) Len() uint64 {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	return r.c.queue.Len()
}

func (r queueReader) Front() uint64 {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	return r.c.queue.Front()
}

func (r queueReader) Back() uint64 {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	return r.c.queue.Back()
}
