package archive

import (
	"context"
	"path"
	"testing"
	"time"

	"github.com/0xPolygon/rollupchain/batchchain"
	cdkcommon "github.com/0xPolygon/rollupchain/common"
	"github.com/0xPolygon/rollupchain/config/types"
	"github.com/0xPolygon/rollupchain/db"
	"github.com/0xPolygon/rollupchain/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	submitter = common.HexToAddress("0x1111111111111111111111111111111111111111")
	producer  = common.HexToAddress("0x2222222222222222222222222222222222222222")
	prover    = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func chainConfig() batchchain.Config {
	return batchchain.Config{
		ForceInclusionPeriod: types.NewDuration(10 * time.Minute),
		Submitters:           []common.Address{submitter},
		QueueProducer:        producer,
	}
}

func newChains(
	a *Archive, clock cdkcommon.Clock,
) (*batchchain.CanonicalTransactionChain, *batchchain.StateCommitmentChain) {
	logger := log.GetDefaultLogger()
	ctc := batchchain.NewCanonicalTransactionChain(logger, chainConfig(), nil, clock, a)
	scc := batchchain.NewStateCommitmentChain(logger, ctc, clock, a)
	return ctc, scc
}

func newTestArchive(t *testing.T) (*Archive, string) {
	t.Helper()
	dbPath := path.Join(t.TempDir(), "archive.sqlite")
	a, err := New(log.GetDefaultLogger(), Config{DBPath: dbPath, ProofCacheSize: 16})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, dbPath
}

func TestArchiveProofs(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestArchive(t)
	clock := cdkcommon.NewManualClock(1_700_000_000)
	ctc, scc := newChains(a, clock)

	_, err := ctc.Enqueue(ctx, producer, []byte("deposit"))
	require.NoError(t, err)
	_, err = ctc.AppendFromQueue(ctx, submitter)
	require.NoError(t, err)
	clock.Advance(12)
	txs := [][]byte{[]byte("tx0"), []byte("tx1"), []byte("tx2"), []byte("tx3"), []byte("tx4")}
	_, err = ctc.AppendBatch(ctx, submitter, txs, clock.Now())
	require.NoError(t, err)
	states := [][]byte{[]byte("state0"), []byte("state1"), []byte("state2")}
	_, err = scc.AppendStateBatch(ctx, prover, states)
	require.NoError(t, err)

	expectedTxs := append([][]byte{[]byte("deposit")}, txs...)
	for position, expected := range expectedTxs {
		proof, element, err := a.GetElementProof(ctx, batchchain.TransactionChainName, uint64(position))
		require.NoError(t, err)
		require.Equal(t, expected, element)
		require.True(t, ctc.VerifyElement(element, uint64(position), proof), "position %d", position)
	}
	for position, expected := range states {
		proof, element, err := a.GetElementProof(ctx, batchchain.StateChainName, uint64(position))
		require.NoError(t, err)
		require.Equal(t, expected, element)
		require.True(t, scc.VerifyElement(element, uint64(position), proof), "position %d", position)
	}

	_, _, err = a.GetElementProof(ctx, batchchain.TransactionChainName, uint64(len(expectedTxs)))
	require.ErrorIs(t, err, db.ErrNotFound)
	require.Equal(t, len(expectedTxs)+len(states), a.proofs.Len())
	missing := proofKey{chain: batchchain.TransactionChainName, position: uint64(len(expectedTxs))}
	require.False(t, a.proofs.Contains(missing))
	cached, ok := a.proofs.Get(proofKey{chain: batchchain.TransactionChainName, position: 2})
	require.True(t, ok)
	require.Equal(t, []byte("tx1"), cached.element)
	require.True(t, ctc.VerifyElement(cached.element, 2, cached.proof))

	batch, err := a.GetBatch(ctx, batchchain.TransactionChainName, 0)
	require.NoError(t, err)
	require.True(t, batch.IsExternalOrigin)
	require.NotNil(t, batch.QueueIndex)
	require.Equal(t, uint64(0), *batch.QueueIndex)
	h0, err := ctc.Batch(0)
	require.NoError(t, err)
	require.Equal(t, h0, batch.HeaderHash)
	require.Equal(t, h0, batch.Header().Hash())

	batch, err = a.GetBatch(ctx, batchchain.TransactionChainName, 1)
	require.NoError(t, err)
	require.Nil(t, batch.QueueIndex)
	require.Equal(t, submitter, batch.Caller)
	require.Equal(t, uint64(1), batch.CumulativePrevElements)

	_, err = a.GetBatch(ctx, batchchain.StateChainName, 1)
	require.ErrorIs(t, err, db.ErrNotFound)

	element, err := a.GetElement(ctx, batchchain.TransactionChainName, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(1), element.BatchIndex)
	require.Equal(t, uint64(2), element.IndexInBatch)
	require.Equal(t, []byte("tx2"), element.Data)

	entry, err := a.GetQueueEntry(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, entry.BatchIndex)
	require.Equal(t, uint64(0), *entry.BatchIndex)
}

func TestArchiveRestore(t *testing.T) {
	ctx := context.Background()
	a, dbPath := newTestArchive(t)
	clock := cdkcommon.NewManualClock(1_700_000_000)
	ctc, scc := newChains(a, clock)

	front, pending, err := a.GetPendingQueue(ctx)
	require.NoError(t, err)
	require.Zero(t, front)
	require.Empty(t, pending)

	for i := byte(0); i < 3; i++ {
		_, err = ctc.Enqueue(ctx, producer, []byte{i})
		require.NoError(t, err)
		clock.Advance(1)
	}
	_, err = ctc.AppendFromQueue(ctx, submitter)
	require.NoError(t, err)
	_, err = ctc.AppendBatch(ctx, submitter, [][]byte{{0xa}, {0xb}}, clock.Now()-2)
	require.NoError(t, err)
	_, err = scc.AppendStateBatch(ctx, prover, [][]byte{{0xc}, {0xd}})
	require.NoError(t, err)

	front, pending, err = a.GetPendingQueue(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), front)
	require.Len(t, pending, 2)
	require.Equal(t, []byte{1}, pending[0].Element)

	require.NoError(t, a.Close())
	reopened, err := New(log.GetDefaultLogger(), Config{DBPath: dbPath, ProofCacheSize: 16})
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	restoredCTC, restoredSCC := newChains(reopened, clock)
	require.NoError(t, reopened.RestoreChains(ctx, restoredCTC, restoredSCC))

	require.Equal(t, ctc.GetBatchesLength(), restoredCTC.GetBatchesLength())
	require.Equal(t, ctc.CumulativeNumElements(), restoredCTC.CumulativeNumElements())
	require.Equal(t, ctc.LastAcceptedTimestamp(), restoredCTC.LastAcceptedTimestamp())
	require.Equal(t, scc.GetBatchesLength(), restoredSCC.GetBatchesLength())
	require.Equal(t, scc.CumulativeNumElements(), restoredSCC.CumulativeNumElements())
	for i := uint64(0); i < ctc.GetBatchesLength(); i++ {
		expected, err := ctc.Batch(i)
		require.NoError(t, err)
		actual, err := restoredCTC.Batch(i)
		require.NoError(t, err)
		require.Equal(t, expected, actual)
	}

	require.Equal(t, uint64(2), restoredCTC.Queue().Len())
	batch, err := restoredCTC.AppendFromQueue(ctx, submitter)
	require.NoError(t, err)
	require.Equal(t, [][]byte{{1}}, batch.Elements)
	require.Equal(t, uint64(1), *batch.QueueIndex)

	// the restored chain keeps journaling where the old one left
	proof, element, err := reopened.GetElementProof(ctx, batchchain.TransactionChainName, 3)
	require.NoError(t, err)
	require.True(t, restoredCTC.VerifyElement(element, 3, proof))
	_, err = restoredCTC.Enqueue(ctx, producer, []byte{3})
	require.NoError(t, err)
	entry, err := reopened.GetQueueEntry(ctx, 3)
	require.NoError(t, err)
	require.Nil(t, entry.BatchIndex)
}

func TestRecordBatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestArchive(t)

	header := batchchain.BatchHeader{
		Timestamp:          1,
		ElementsMerkleRoot: common.HexToHash("0xbad"),
		NumElementsInBatch: 1,
	}
	err := a.RecordBatch(ctx, batchchain.AppendedBatch{
		Chain:      batchchain.TransactionChainName,
		Header:     header,
		HeaderHash: header.Hash(),
		Elements:   [][]byte{{1}},
	})
	require.ErrorIs(t, err, ErrRootMismatch)
	_, err = a.GetBatch(ctx, batchchain.TransactionChainName, 0)
	require.ErrorIs(t, err, db.ErrNotFound)
	_, err = a.GetElement(ctx, batchchain.TransactionChainName, 0)
	require.ErrorIs(t, err, db.ErrNotFound)

	queueIndex := uint64(7)
	clock := cdkcommon.NewManualClock(100)
	ctc, _ := newChains(a, clock)
	_, err = ctc.Enqueue(ctx, producer, []byte{1})
	require.NoError(t, err)
	root, err := a.tree.StoreTree(a.db, [][]byte{{1}})
	require.NoError(t, err)
	header.ElementsMerkleRoot = root
	err = a.RecordBatch(ctx, batchchain.AppendedBatch{
		Chain:      batchchain.TransactionChainName,
		Header:     header,
		HeaderHash: header.Hash(),
		Elements:   [][]byte{{1}},
		QueueIndex: &queueIndex,
	})
	require.ErrorIs(t, err, db.ErrNotFound)
	_, err = a.GetBatch(ctx, batchchain.TransactionChainName, 0)
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestDuplicatedBatchIsRejected(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestArchive(t)
	clock := cdkcommon.NewManualClock(100)
	ctc, _ := newChains(a, clock)
	batch, err := ctc.AppendBatch(ctx, submitter, [][]byte{{1}}, clock.Now())
	require.NoError(t, err)

	require.Error(t, a.RecordBatch(ctx, batch))
	element, err := a.GetElement(ctx, batchchain.TransactionChainName, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, element.Data)
}
