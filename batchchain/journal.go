package batchchain

import "context"

// Journal durably records every change before the chain applies it in memory.
// If recording fails the change is discarded, so the journal never falls behind
// nor gets ahead of the chain.
type Journal interface {
	RecordEnqueue(ctx context.Context, entry QueuedEntry) error
	RecordBatch(ctx context.Context, batch AppendedBatch) error
}

type nopJournal struct{}

func (nopJournal) RecordEnqueue(context.Context, QueuedEntry) error { return nil }

func (nopJournal) RecordBatch(context.Context, AppendedBatch) error { return nil }
