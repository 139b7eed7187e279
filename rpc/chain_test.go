package rpc

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/0xPolygon/rollupchain/archive"
	"github.com/0xPolygon/rollupchain/batchchain"
	cdkcommon "github.com/0xPolygon/rollupchain/common"
	"github.com/0xPolygon/rollupchain/db"
	"github.com/0xPolygon/rollupchain/log"
	"github.com/0xPolygon/rollupchain/pendingqueue"
	"github.com/0xPolygon/rollupchain/rpc/mocks"
	"github.com/0xPolygon/rollupchain/rpc/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testCaller = common.HexToAddress("0x1111111111111111111111111111111111111111")
	fooErr     = errors.New("foo")
)

type chainWithMocks struct {
	chain      *ChainEndpoints
	txChain    *mocks.TransactionChainerMock
	stateChain *mocks.StateChainerMock
	archive    *mocks.ArchiverMock
	submitter  *mocks.TransactionSubmitterMock
}

func newChainWithMocks(t *testing.T) chainWithMocks {
	t.Helper()
	c := chainWithMocks{
		txChain:    mocks.NewTransactionChainerMock(t),
		stateChain: mocks.NewStateChainerMock(t),
		archive:    mocks.NewArchiverMock(t),
		submitter:  mocks.NewTransactionSubmitterMock(t),
	}
	c.chain = NewChainEndpoints(
		log.GetDefaultLogger(), time.Second, time.Second, c.txChain, c.stateChain, c.archive, c.submitter,
	)
	return c
}

func testAppendedBatch(chain string) batchchain.AppendedBatch {
	header := batchchain.BatchHeader{
		Timestamp:              100,
		ElementsMerkleRoot:     common.HexToHash("0xaa"),
		NumElementsInBatch:     2,
		CumulativePrevElements: 3,
	}
	return batchchain.AppendedBatch{
		Chain:      chain,
		BatchIndex: 1,
		Header:     header,
		HeaderHash: header.Hash(),
		Elements:   [][]byte{{0x12, 0x34}, {0x56, 0x78}},
		Caller:     testCaller,
	}
}

func TestEnqueue(t *testing.T) {
	c := newChainWithMocks(t)
	element := hexutil.Bytes{0xab, 0xcd}
	c.txChain.On("Enqueue", mock.Anything, testCaller, []byte(element)).
		Return(batchchain.QueuedEntry{
			QueueIndex: 4,
			Entry:      pendingqueue.Entry{Element: element, Timestamp: 100},
			Caller:     testCaller,
		}, nil).Once()

	res, rerr := c.chain.Enqueue(testCaller, element)
	require.Nil(t, rerr)
	require.Equal(t, types.QueuedEntry{QueueIndex: 4, Element: element, Timestamp: 100}, res)

	c.txChain.On("Enqueue", mock.Anything, testCaller, []byte(element)).
		Return(batchchain.QueuedEntry{}, batchchain.ErrUnauthorized).Once()
	_, rerr = c.chain.Enqueue(testCaller, element)
	require.NotNil(t, rerr)
	require.Equal(t, rpc.DefaultErrorCode, rerr.ErrorCode())
	require.Contains(t, rerr.Error(), batchchain.ErrUnauthorized.Error())
}

func TestAppendBatch(t *testing.T) {
	c := newChainWithMocks(t)
	batch := testAppendedBatch(batchchain.TransactionChainName)
	elements := []hexutil.Bytes{{0x12, 0x34}, {0x56, 0x78}}
	c.txChain.On("AppendBatch", mock.Anything, testCaller, batch.Elements, uint64(100)).
		Return(batch, nil).Once()

	res, rerr := c.chain.AppendBatch(testCaller, elements, 100)
	require.Nil(t, rerr)
	require.Equal(t, types.NewAppendedBatch(batch), res)

	c.txChain.On("AppendBatch", mock.Anything, testCaller, batch.Elements, uint64(99)).
		Return(batchchain.AppendedBatch{}, batchchain.ErrTimestampRegression).Once()
	_, rerr = c.chain.AppendBatch(testCaller, elements, 99)
	require.NotNil(t, rerr)
	require.Contains(t, rerr.Error(), batchchain.ErrTimestampRegression.Error())
}

func TestAppendFromQueue(t *testing.T) {
	c := newChainWithMocks(t)
	batch := testAppendedBatch(batchchain.TransactionChainName)
	queueIndex := uint64(7)
	batch.QueueIndex = &queueIndex
	batch.Header.IsExternalOrigin = true
	c.txChain.On("AppendFromQueue", mock.Anything, testCaller).Return(batch, nil).Once()

	res, rerr := c.chain.AppendFromQueue(testCaller)
	require.Nil(t, rerr)
	appended, ok := res.(types.AppendedBatch)
	require.True(t, ok)
	require.Equal(t, &queueIndex, appended.QueueIndex)
	require.True(t, appended.Header.IsExternalOrigin)

	c.txChain.On("AppendFromQueue", mock.Anything, testCaller).
		Return(batchchain.AppendedBatch{}, batchchain.ErrEmptyQueue).Once()
	_, rerr = c.chain.AppendFromQueue(testCaller)
	require.NotNil(t, rerr)
}

func TestAppendStateBatch(t *testing.T) {
	c := newChainWithMocks(t)
	batch := testAppendedBatch(batchchain.StateChainName)
	c.stateChain.On("AppendStateBatch", mock.Anything, testCaller, batch.Elements).Return(batch, nil).Once()

	res, rerr := c.chain.AppendStateBatch(testCaller, []hexutil.Bytes{{0x12, 0x34}, {0x56, 0x78}})
	require.Nil(t, rerr)
	require.Equal(t, types.NewAppendedBatch(batch), res)
}

func TestSubmitTransaction(t *testing.T) {
	c := newChainWithMocks(t)
	c.submitter.On("SubmitTransaction", []byte{0x01}).Return(3, nil).Once()
	res, rerr := c.chain.SubmitTransaction(hexutil.Bytes{0x01})
	require.Nil(t, rerr)
	require.Equal(t, types.SubmittedTransaction{Pending: 3}, res)

	c.chain.submitter = nil
	_, rerr = c.chain.SubmitTransaction(hexutil.Bytes{0x01})
	require.NotNil(t, rerr)
	require.Equal(t, ErrSubmitterDisabled.Error(), rerr.Error())
}

func TestChainSelection(t *testing.T) {
	c := newChainWithMocks(t)
	c.txChain.On("GetBatchesLength").Return(uint64(5)).Once()
	c.stateChain.On("GetBatchesLength").Return(uint64(2)).Once()
	c.txChain.On("CumulativeNumElements").Return(uint64(50)).Once()
	c.stateChain.On("LastAcceptedTimestamp").Return(uint64(1234)).Once()

	res, rerr := c.chain.GetBatchesLength(batchchain.TransactionChainName)
	require.Nil(t, rerr)
	require.Equal(t, uint64(5), res)
	res, rerr = c.chain.GetBatchesLength(batchchain.StateChainName)
	require.Nil(t, rerr)
	require.Equal(t, uint64(2), res)
	res, rerr = c.chain.GetCumulativeNumElements(batchchain.TransactionChainName)
	require.Nil(t, rerr)
	require.Equal(t, uint64(50), res)
	res, rerr = c.chain.GetLastAcceptedTimestamp(batchchain.StateChainName)
	require.Nil(t, rerr)
	require.Equal(t, uint64(1234), res)

	_, rerr = c.chain.GetBatchesLength("receipts")
	require.NotNil(t, rerr)
	require.Equal(t, rpc.InvalidParamsErrorCode, rerr.ErrorCode())
	_, rerr = c.chain.GetElementProof("receipts", 0)
	require.NotNil(t, rerr)
	require.Equal(t, rpc.InvalidParamsErrorCode, rerr.ErrorCode())
}

func TestGetBatch(t *testing.T) {
	c := newChainWithMocks(t)
	batch := testAppendedBatch(batchchain.TransactionChainName)
	archived := &archive.Batch{
		Chain:                  batch.Chain,
		BatchIndex:             batch.BatchIndex,
		Timestamp:              batch.Header.Timestamp,
		ElementsMerkleRoot:     batch.Header.ElementsMerkleRoot,
		NumElementsInBatch:     batch.Header.NumElementsInBatch,
		CumulativePrevElements: batch.Header.CumulativePrevElements,
		HeaderHash:             batch.HeaderHash,
		Caller:                 testCaller,
	}

	t.Run("found", func(t *testing.T) {
		c.txChain.On("Batch", uint64(1)).Return(batch.HeaderHash, nil).Once()
		c.archive.On("GetBatch", mock.Anything, batchchain.TransactionChainName, uint64(1)).
			Return(archived, nil).Once()
		res, rerr := c.chain.GetBatch(batchchain.TransactionChainName, 1)
		require.Nil(t, rerr)
		require.Equal(t, types.Batch{
			BatchIndex: 1,
			Header:     batch.Header,
			HeaderHash: batch.HeaderHash,
			Caller:     testCaller,
		}, res)
	})

	t.Run("not in the chain", func(t *testing.T) {
		c.txChain.On("Batch", uint64(9)).
			Return(common.Hash{}, fmt.Errorf("%w: index 9", batchchain.ErrBatchNotFound)).Once()
		_, rerr := c.chain.GetBatch(batchchain.TransactionChainName, 9)
		require.NotNil(t, rerr)
		require.Equal(t, rpc.NotFoundErrorCode, rerr.ErrorCode())
	})

	t.Run("not archived", func(t *testing.T) {
		c.txChain.On("Batch", uint64(1)).Return(batch.HeaderHash, nil).Once()
		c.archive.On("GetBatch", mock.Anything, batchchain.TransactionChainName, uint64(1)).
			Return(nil, db.ErrNotFound).Once()
		_, rerr := c.chain.GetBatch(batchchain.TransactionChainName, 1)
		require.NotNil(t, rerr)
		require.Equal(t, rpc.NotFoundErrorCode, rerr.ErrorCode())
	})

	t.Run("archive out of sync", func(t *testing.T) {
		c.txChain.On("Batch", uint64(1)).Return(common.HexToHash("0xbad"), nil).Once()
		c.archive.On("GetBatch", mock.Anything, batchchain.TransactionChainName, uint64(1)).
			Return(archived, nil).Once()
		_, rerr := c.chain.GetBatch(batchchain.TransactionChainName, 1)
		require.NotNil(t, rerr)
		require.Equal(t, rpc.DefaultErrorCode, rerr.ErrorCode())
	})
}

func TestGetQueueInfo(t *testing.T) {
	c := newChainWithMocks(t)
	clock := cdkcommon.NewManualClock(1000)
	queue := pendingqueue.New(testCaller, clock)
	c.txChain.On("Queue").Return(queue)

	res, rerr := c.chain.GetQueueInfo()
	require.Nil(t, rerr)
	require.Equal(t, types.QueueInfo{}, res)

	_, _, err := queue.Enqueue(testCaller, []byte{0x01})
	require.NoError(t, err)
	clock.Advance(5)
	_, _, err = queue.Enqueue(testCaller, []byte{0x02})
	require.NoError(t, err)
	require.NoError(t, queue.Dequeue())

	res, rerr = c.chain.GetQueueInfo()
	require.Nil(t, rerr)
	frontTimestamp := uint64(1005)
	require.Equal(t, types.QueueInfo{Front: 1, Back: 2, Length: 1, FrontTimestamp: &frontTimestamp}, res)
}

func TestVerifyElementAndProof(t *testing.T) {
	c := newChainWithMocks(t)
	batch := testAppendedBatch(batchchain.StateChainName)
	proof := batchchain.ElementInclusionProof{
		BatchIndex:   batch.BatchIndex,
		IndexInBatch: 1,
		Siblings:     []common.Hash{common.HexToHash("0x01")},
		BatchHeader:  batch.Header,
	}
	c.archive.On("GetElementProof", mock.Anything, batchchain.StateChainName, uint64(4)).
		Return(proof, []byte{0x56, 0x78}, nil).Once()
	c.stateChain.On("VerifyElement", []byte{0x56, 0x78}, uint64(4), proof).Return(true).Once()

	res, rerr := c.chain.GetElementProof(batchchain.StateChainName, 4)
	require.Nil(t, rerr)
	elementProof, ok := res.(types.ElementProof)
	require.True(t, ok)
	require.Equal(t, hexutil.Bytes{0x56, 0x78}, elementProof.Element)

	res, rerr = c.chain.VerifyElement(
		batchchain.StateChainName, elementProof.Element, elementProof.Position, elementProof.Proof,
	)
	require.Nil(t, rerr)
	require.Equal(t, true, res)

	c.archive.On("GetElementProof", mock.Anything, batchchain.StateChainName, uint64(40)).
		Return(batchchain.ElementInclusionProof{}, nil, fooErr).Once()
	_, rerr = c.chain.GetElementProof(batchchain.StateChainName, 40)
	require.NotNil(t, rerr)
	require.Equal(t, rpc.DefaultErrorCode, rerr.ErrorCode())
}
