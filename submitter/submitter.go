package submitter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/0xPolygon/rollupchain/batchchain"
	cdkcommon "github.com/0xPolygon/rollupchain/common"
	"github.com/0xPolygon/rollupchain/log"
	"github.com/0xPolygon/rollupchain/pendingqueue"
	rcsync "github.com/0xPolygon/rollupchain/sync"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrEmptyTransaction = errors.New("empty transaction")
	ErrTooManyPending   = errors.New("too many pending transactions")
)

const (
	defaultMaxBatchSize = 100
	// maxPendingBatches bounds the buffer of transactions waiting to be submitted
	maxPendingBatches = 1000
)

// TransactionChain is the part of the transaction chain the submitter drives
type TransactionChain interface {
	AppendFromQueue(ctx context.Context, caller common.Address) (batchchain.AppendedBatch, error)
	AppendBatch(
		ctx context.Context, caller common.Address, elements [][]byte, timestamp uint64,
	) (batchchain.AppendedBatch, error)
	Queue() pendingqueue.Reader
	LastAcceptedTimestamp() uint64
}

// Submitter plays the sequencer: it collects L2 transactions and periodically appends them to
// the transaction chain, after including every entry pending in the queue
type Submitter struct {
	logger *log.Logger
	cfg    Config
	chain  TransactionChain
	clock  cdkcommon.Clock
	rh     *rcsync.RetryHandler

	mu      sync.Mutex
	pending [][]byte
}

func New(logger *log.Logger, cfg Config, chain TransactionChain, clock cdkcommon.Clock) *Submitter {
	if cfg.MaxBatchSize == 0 {
		cfg.MaxBatchSize = defaultMaxBatchSize
	}
	return &Submitter{
		logger: logger,
		cfg:    cfg,
		chain:  chain,
		clock:  clock,
		rh: &rcsync.RetryHandler{
			RetryAfterErrorPeriod:      cfg.RetryAfterErrorPeriod.Duration,
			MaxRetryAttemptsAfterError: cfg.MaxRetryAttemptsAfterError,
		},
	}
}

// SubmitTransaction buffers a transaction until the next round. It returns the number of buffered transactions.
func (s *Submitter) SubmitTransaction(tx []byte) (int, error) {
	if len(tx) == 0 {
		return 0, ErrEmptyTransaction
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if uint64(len(s.pending)) >= s.cfg.MaxBatchSize*maxPendingBatches {
		return len(s.pending), ErrTooManyPending
	}
	copied := make([]byte, len(tx))
	copy(copied, tx)
	s.pending = append(s.pending, copied)
	return len(s.pending), nil
}

func (s *Submitter) PendingTransactions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Start runs a round every Interval until ctx is done or the rounds fail too many times in a row
func (s *Submitter) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval.Duration)
	defer ticker.Stop()
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if err := s.Submit(ctx); err != nil {
			attempts++
			s.logger.Errorf("error submitting batches: %v", err)
			if err := s.rh.Handle(ctx, "Submit", attempts); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			continue
		}
		attempts = 0
	}
}

// Submit runs a round: it appends every pending queue entry and then the buffered
// transactions in batches of at most MaxBatchSize
func (s *Submitter) Submit(ctx context.Context) error {
	for !s.chain.Queue().IsEmpty() {
		batch, err := s.chain.AppendFromQueue(ctx, s.cfg.Address)
		if err != nil {
			return fmt.Errorf("error appending from queue: %w", err)
		}
		s.logger.Debugf("queue entry %d included in batch %d", *batch.QueueIndex, batch.BatchIndex)
	}

	txs := s.takePending()
	for len(txs) > 0 {
		size := min(uint64(len(txs)), s.cfg.MaxBatchSize)
		timestamp, err := s.nextTimestamp()
		if err != nil {
			s.restorePending(txs)
			return err
		}
		batch, err := s.chain.AppendBatch(ctx, s.cfg.Address, txs[:size], timestamp)
		if err != nil {
			s.restorePending(txs)
			return fmt.Errorf("error appending batch of %d transactions: %w", size, err)
		}
		s.logger.Infof("submitted batch %d with %d transactions", batch.BatchIndex, size)
		txs = txs[size:]
	}
	return nil
}

// nextTimestamp is the current time unless a queue entry arrived in the meantime,
// a batch can't be dated after the oldest pending entry
func (s *Submitter) nextTimestamp() (uint64, error) {
	timestamp := s.clock.Now()
	queueTimestamp, err := s.chain.Queue().PeekTimestamp()
	switch {
	case errors.Is(err, pendingqueue.ErrEmptyQueue):
	case err != nil:
		return 0, err
	case queueTimestamp < timestamp:
		timestamp = queueTimestamp
	}
	if last := s.chain.LastAcceptedTimestamp(); timestamp < last {
		return 0, fmt.Errorf("clock is at %d, behind the last accepted timestamp %d", timestamp, last)
	}
	return timestamp, nil
}

func (s *Submitter) takePending() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs := s.pending
	s.pending = nil
	return txs
}

// restorePending puts back unsent transactions ahead of the ones received meanwhile
func (s *Submitter) restorePending(txs [][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(txs, s.pending...)
}
