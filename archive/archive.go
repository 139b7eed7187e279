package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/0xPolygon/rollupchain/archive/migrations"
	"github.com/0xPolygon/rollupchain/batchchain"
	"github.com/0xPolygon/rollupchain/db"
	"github.com/0xPolygon/rollupchain/log"
	"github.com/0xPolygon/rollupchain/pendingqueue"
	"github.com/0xPolygon/rollupchain/tree"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/russross/meddler"
)

const errWhileRollbackFormat = "error while rolling back tx: %w"

var (
	ErrRootMismatch = errors.New("stored tree root doesn't match the batch header")
)

var _ batchchain.Journal = (*Archive)(nil)

// Archive keeps everything the chains only know by hash: full headers, raw elements,
// the nodes of every batch tree and the queue entries. It is the journal of the chains
// and the source of the proofs that VerifyElement checks.
type Archive struct {
	logger *log.Logger
	db     *sql.DB
	tree   *tree.Store
	// proofs never change once their batch is committed, so they can be cached forever
	proofs *lru.Cache[proofKey, cachedProof]
}

type proofKey struct {
	chain    string
	position uint64
}

type cachedProof struct {
	proof   batchchain.ElementInclusionProof
	element []byte
}

// New runs the migrations of the archive on cfg.DBPath and opens it
func New(logger *log.Logger, cfg Config) (*Archive, error) {
	if err := migrations.RunMigrations(cfg.DBPath); err != nil {
		return nil, err
	}
	database, err := db.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a := &Archive{
		logger: logger,
		db:     database,
		tree:   tree.NewStore(database),
	}
	if cfg.ProofCacheSize > 0 {
		a.proofs, err = lru.New[proofKey, cachedProof](cfg.ProofCacheSize)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create proof cache: %w", err)
		}
	}
	return a, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// RecordEnqueue stores a new pending queue entry
func (a *Archive) RecordEnqueue(ctx context.Context, entry batchchain.QueuedEntry) error {
	row := &QueueEntry{
		QueueIndex: entry.QueueIndex,
		Element:    entry.Entry.Element,
		Timestamp:  entry.Entry.Timestamp,
		Caller:     entry.Caller,
	}
	if err := meddler.Insert(a.db, "queue_entry", row); err != nil {
		return fmt.Errorf("error inserting queue entry %d: %w", entry.QueueIndex, err)
	}
	a.logger.Debugf("archived queue entry %d", entry.QueueIndex)
	return nil
}

// RecordBatch stores the header, the elements and the tree of a batch in a single tx.
// If the batch consumed a queue entry, the entry is marked as included.
func (a *Archive) RecordBatch(ctx context.Context, batch batchchain.AppendedBatch) error {
	tx, err := db.NewTx(ctx, a.db)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if errRllbck := tx.Rollback(); errRllbck != nil {
				a.logger.Errorf(errWhileRollbackFormat, errRllbck)
			}
		}
	}()

	header := batch.Header
	row := &Batch{
		Chain:                  batch.Chain,
		BatchIndex:             batch.BatchIndex,
		Timestamp:              header.Timestamp,
		IsExternalOrigin:       header.IsExternalOrigin,
		ElementsMerkleRoot:     header.ElementsMerkleRoot,
		NumElementsInBatch:     header.NumElementsInBatch,
		CumulativePrevElements: header.CumulativePrevElements,
		HeaderHash:             batch.HeaderHash,
		Caller:                 batch.Caller,
		QueueIndex:             batch.QueueIndex,
	}
	if err = meddler.Insert(tx, "batch", row); err != nil {
		return fmt.Errorf("error inserting %s batch %d: %w", batch.Chain, batch.BatchIndex, err)
	}
	for i, data := range batch.Elements {
		element := &Element{
			Chain:        batch.Chain,
			Position:     header.CumulativePrevElements + uint64(i),
			BatchIndex:   batch.BatchIndex,
			IndexInBatch: uint64(i),
			Data:         data,
		}
		if err = meddler.Insert(tx, "element", element); err != nil {
			return fmt.Errorf("error inserting element %d of %s batch %d: %w",
				i, batch.Chain, batch.BatchIndex, err)
		}
	}
	root, err := a.tree.StoreTree(tx, batch.Elements)
	if err != nil {
		return err
	}
	if root != header.ElementsMerkleRoot {
		err = fmt.Errorf("%w: %s != %s", ErrRootMismatch, root.Hex(), header.ElementsMerkleRoot.Hex())
		return err
	}
	if batch.QueueIndex != nil {
		var res sql.Result
		res, err = tx.Exec(`UPDATE queue_entry SET batch_index = $1 WHERE queue_index = $2 AND batch_index IS NULL;`,
			batch.BatchIndex, *batch.QueueIndex)
		if err != nil {
			return fmt.Errorf("error updating queue entry %d: %w", *batch.QueueIndex, err)
		}
		var affected int64
		if affected, err = res.RowsAffected(); err != nil {
			return err
		}
		if affected != 1 {
			err = fmt.Errorf("queue entry %d is not pending: %w", *batch.QueueIndex, db.ErrNotFound)
			return err
		}
	}
	tx.AddCommitCallback(func() {
		a.logger.Debugf("archived %s batch %d with %d elements, header hash %s",
			batch.Chain, batch.BatchIndex, len(batch.Elements), batch.HeaderHash.Hex())
	})
	tx.AddRollbackCallback(func() {
		a.logger.Warnf("discarded %s batch %d", batch.Chain, batch.BatchIndex)
	})
	err = tx.Commit()
	return err
}

// GetBatch returns the full header of a batch
func (a *Archive) GetBatch(ctx context.Context, chain string, index uint64) (*Batch, error) {
	return getBatch(a.db, chain, index)
}

func getBatch(tx db.Querier, chain string, index uint64) (*Batch, error) {
	batch := &Batch{}
	err := meddler.QueryRow(tx, batch, `SELECT * FROM batch WHERE chain = $1 AND batch_index = $2;`, chain, index)
	return batch, db.ReturnErrNotFound(err)
}

// GetElement returns the element at an absolute position of a chain
func (a *Archive) GetElement(ctx context.Context, chain string, position uint64) (*Element, error) {
	return getElement(a.db, chain, position)
}

func getElement(tx db.Querier, chain string, position uint64) (*Element, error) {
	element := &Element{}
	err := meddler.QueryRow(tx, element, `SELECT * FROM element WHERE chain = $1 AND position = $2;`, chain, position)
	return element, db.ReturnErrNotFound(err)
}

// GetElementProof builds the inclusion proof of the element at an absolute position of a chain
func (a *Archive) GetElementProof(
	ctx context.Context, chain string, position uint64,
) (batchchain.ElementInclusionProof, []byte, error) {
	key := proofKey{chain: chain, position: position}
	if a.proofs != nil {
		if cached, ok := a.proofs.Get(key); ok {
			return cached.proof, cached.element, nil
		}
	}
	proof, element, err := a.buildElementProof(ctx, chain, position)
	if err != nil {
		return batchchain.ElementInclusionProof{}, nil, err
	}
	if a.proofs != nil {
		a.proofs.Add(key, cachedProof{proof: proof, element: element})
	}
	return proof, element, nil
}

func (a *Archive) buildElementProof(
	ctx context.Context, chain string, position uint64,
) (batchchain.ElementInclusionProof, []byte, error) {
	element, err := getElement(a.db, chain, position)
	if err != nil {
		return batchchain.ElementInclusionProof{}, nil, err
	}
	batch, err := getBatch(a.db, chain, element.BatchIndex)
	if err != nil {
		return batchchain.ElementInclusionProof{}, nil, err
	}
	siblings, err := a.tree.GetProof(
		ctx, batch.ElementsMerkleRoot, element.IndexInBatch, tree.Height(batch.NumElementsInBatch),
	)
	if err != nil {
		return batchchain.ElementInclusionProof{}, nil, err
	}
	return batchchain.ElementInclusionProof{
		BatchIndex:   batch.BatchIndex,
		IndexInBatch: element.IndexInBatch,
		Siblings:     siblings,
		BatchHeader:  batch.Header(),
	}, element.Data, nil
}

// GetHeaders returns the headers of every batch of a chain in order
func (a *Archive) GetHeaders(ctx context.Context, chain string) ([]batchchain.BatchHeader, error) {
	var batchPtrs []*Batch
	if err := meddler.QueryAll(a.db, &batchPtrs,
		`SELECT * FROM batch WHERE chain = $1 ORDER BY batch_index ASC;`, chain); err != nil {
		return nil, err
	}
	batches, ok := db.SlicePtrsToSlice(batchPtrs).([]Batch)
	if !ok {
		return nil, fmt.Errorf("unexpected type converting %s batches", chain)
	}
	headers := make([]batchchain.BatchHeader, 0, len(batches))
	for i, b := range batches {
		if b.BatchIndex != uint64(i) {
			return nil, fmt.Errorf("%s batch %d is missing from the archive", chain, i)
		}
		headers = append(headers, b.Header())
	}
	return headers, nil
}

// GetPendingQueue returns the index of the first pending queue entry and the pending entries in order.
// If nothing is pending the front is the index the next entry will get.
func (a *Archive) GetPendingQueue(ctx context.Context) (uint64, []pendingqueue.Entry, error) {
	var rows []*QueueEntry
	if err := meddler.QueryAll(a.db, &rows,
		`SELECT * FROM queue_entry WHERE batch_index IS NULL ORDER BY queue_index ASC;`); err != nil {
		return 0, nil, err
	}
	if len(rows) > 0 {
		entries := make([]pendingqueue.Entry, 0, len(rows))
		for i, r := range rows {
			if r.QueueIndex != rows[0].QueueIndex+uint64(i) {
				return 0, nil, fmt.Errorf("queue entry %d is missing from the archive", rows[0].QueueIndex+uint64(i))
			}
			entries = append(entries, r.Entry())
		}
		return rows[0].QueueIndex, entries, nil
	}
	var count uint64
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM queue_entry;`).Scan(&count); err != nil {
		return 0, nil, err
	}
	return count, nil, nil
}

// GetQueueEntry returns a queue entry, pending or not
func (a *Archive) GetQueueEntry(ctx context.Context, queueIndex uint64) (*QueueEntry, error) {
	entry := &QueueEntry{}
	err := meddler.QueryRow(a.db, entry, `SELECT * FROM queue_entry WHERE queue_index = $1;`, queueIndex)
	return entry, db.ReturnErrNotFound(err)
}

// RestoreChains loads the archived history into freshly created chains
func (a *Archive) RestoreChains(
	ctx context.Context,
	ctc *batchchain.CanonicalTransactionChain,
	scc *batchchain.StateCommitmentChain,
) error {
	txHeaders, err := a.GetHeaders(ctx, batchchain.TransactionChainName)
	if err != nil {
		return err
	}
	front, pending, err := a.GetPendingQueue(ctx)
	if err != nil {
		return err
	}
	if err := ctc.Restore(txHeaders, front, pending); err != nil {
		return fmt.Errorf("error restoring the transaction chain: %w", err)
	}
	stateHeaders, err := a.GetHeaders(ctx, batchchain.StateChainName)
	if err != nil {
		return err
	}
	if err := scc.Restore(stateHeaders); err != nil {
		return fmt.Errorf("error restoring the state chain: %w", err)
	}
	a.logger.Infof("restored %d transaction batches, %d state batches and %d pending queue entries",
		len(txHeaders), len(stateHeaders), len(pending))
	return nil
}
