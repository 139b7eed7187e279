package batchchain

import (
	"context"
	"fmt"
	"sync"

	cdkcommon "github.com/0xPolygon/rollupchain/common"
	"github.com/0xPolygon/rollupchain/log"
	"github.com/0xPolygon/rollupchain/tree"
	"github.com/ethereum/go-ethereum/common"
)

// TransactionChain is the chain a state commitment chain attests to
type TransactionChain interface {
	CumulativeNumElements() uint64
}

var _ TransactionChain = (*CanonicalTransactionChain)(nil)

// StateCommitmentChain is the append only log of state roots. Anybody can append to it, as long as
// it never holds more elements than its transaction chain.
type StateCommitmentChain struct {
	mu      sync.RWMutex
	logger  *log.Logger
	clock   cdkcommon.Clock
	txChain TransactionChain
	journal Journal
	headers headerLog
}

func NewStateCommitmentChain(
	logger *log.Logger,
	txChain TransactionChain,
	clock cdkcommon.Clock,
	journal Journal,
) *StateCommitmentChain {
	if journal == nil {
		journal = nopJournal{}
	}
	return &StateCommitmentChain{
		logger:  logger,
		clock:   clock,
		txChain: txChain,
		journal: journal,
	}
}

// AppendStateBatch appends a batch of state commitments. The batch is stamped with the current
// time, or the last accepted timestamp if the clock is behind it.
func (s *StateCommitmentChain) AppendStateBatch(
	ctx context.Context, caller common.Address, elements [][]byte,
) (AppendedBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(elements) == 0 {
		return AppendedBatch{}, ErrEmptyBatch
	}
	available := s.txChain.CumulativeNumElements()
	if s.headers.cumulativeNumElements+uint64(len(elements)) > available {
		return AppendedBatch{}, fmt.Errorf("%w: %d state elements + %d new > %d transactions",
			ErrInsufficientTransactions, s.headers.cumulativeNumElements, len(elements), available)
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
	timestamp := s.clock.Now()
	if timestamp < s.headers.lastAcceptedTimestamp {
		timestamp = s.headers.lastAcceptedTimestamp
	}
	header := s.headers.nextHeader(timestamp, false, root, uint64(len(copied)))
	batch := AppendedBatch{
		Chain:      StateChainName,
		BatchIndex: s.headers.nextIndex(),
		Header:     header,
		HeaderHash: header.Hash(),
		Elements:   copied,
		Caller:     caller,
	}
	if err := s.journal.RecordBatch(ctx, batch); err != nil {
		return AppendedBatch{}, fmt.Errorf("error recording state batch %d: %w", batch.BatchIndex, err)
	}
	s.headers.append(header)
	s.logger.Infof("state batch %d with %d elements appended by %s", batch.BatchIndex, len(copied), caller.Hex())
	return batch, nil
}

// VerifyElement returns true only if element is at the absolute position of the chain according to proof
func (s *StateCommitmentChain) VerifyElement(element []byte, position uint64, proof ElementInclusionProof) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headers.verifyElement(element, position, proof)
}

func (s *StateCommitmentChain) GetBatchesLength() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headers.nextIndex()
}

// Batch returns the header hash of the batch at index
func (s *StateCommitmentChain) Batch(index uint64) (common.Hash, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headers.batch(index)
}

func (s *StateCommitmentChain) CumulativeNumElements() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headers.cumulativeNumElements
}

func (s *StateCommitmentChain) LastAcceptedTimestamp() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headers.lastAcceptedTimestamp
}

// Restore loads the headers of the chain in order. The transaction chain must be restored first.
func (s *StateCommitmentChain) Restore(headers []BatchHeader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total uint64
	for _, h := range headers {
		total += h.NumElementsInBatch
	}
	if available := s.txChain.CumulativeNumElements(); total > available {
		return fmt.Errorf("%w: %d state elements but only %d transactions", ErrInvalidHistory, total, available)
	}
	if err := s.headers.restore(headers); err != nil {
		return err
	}
	s.logger.Infof("state chain restored with %d batches and %d elements", len(headers), total)
	return nil
}
