package batchchain

import (
	"errors"

	"github.com/0xPolygon/rollupchain/pendingqueue"
)

var (
	// ErrUnauthorized the caller lacks the role required by the operation
	ErrUnauthorized = pendingqueue.ErrUnauthorized
	// ErrEmptyQueue there is no pending entry to append
	ErrEmptyQueue = pendingqueue.ErrEmptyQueue
	// ErrEmptyBatch a batch needs at least one element
	ErrEmptyBatch = errors.New("batch has no elements")
	// ErrFutureTimestamp the batch timestamp is after the current time
	ErrFutureTimestamp = errors.New("timestamp is in the future")
	// ErrStaleTimestamp the batch timestamp is older than the force inclusion period
	ErrStaleTimestamp = errors.New("timestamp is too old")
	// ErrTimestampRegression the batch timestamp is before the last accepted one
	ErrTimestampRegression = errors.New("timestamp is before the last accepted timestamp")
	// ErrQueueOrderingViolation the batch timestamp is after the oldest pending queue entry
	ErrQueueOrderingViolation = errors.New("timestamp is after the oldest pending queue entry")
	// ErrInsufficientTransactions the state batch would outrun the transaction chain
	ErrInsufficientTransactions = errors.New("not enough transactions to commit state for")
	// ErrBatchNotFound there is no batch with the requested index
	ErrBatchNotFound = errors.New("batch not found")
	// ErrAlreadyInitialized restore was called on a chain that already has history
	ErrAlreadyInitialized = errors.New("chain already has batches")
	// ErrInvalidHistory the headers to restore break the chain invariants
	ErrInvalidHistory = errors.New("invalid history")
)
