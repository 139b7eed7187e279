package client

import (
	"encoding/json"
	"testing"

	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/0xPolygon/rollupchain/batchchain"
	"github.com/0xPolygon/rollupchain/rpc/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

func mockCall(t *testing.T, expectedMethod string, result interface{}) *[]interface{} {
	t.Helper()
	resultJSON, err := json.Marshal(result)
	require.NoError(t, err)
	var gotParams []interface{}
	previous := jSONRPCCall
	t.Cleanup(func() { jSONRPCCall = previous })
	jSONRPCCall = func(_, method string, params ...interface{}) (rpc.Response, error) {
		require.Equal(t, expectedMethod, method)
		gotParams = params
		return rpc.Response{Result: resultJSON}, nil
	}
	return &gotParams
}

func TestAppendBatch(t *testing.T) {
	sut := NewClient("url")
	caller := common.HexToAddress("0x01")
	expected := types.AppendedBatch{
		Chain:      batchchain.TransactionChainName,
		BatchIndex: 3,
		Header: batchchain.BatchHeader{
			Timestamp:          1000,
			NumElementsInBatch: 2,
		},
		HeaderHash: common.HexToHash("0x1234"),
	}
	params := mockCall(t, "chain_appendBatch", expected)

	batch, err := sut.AppendBatch(caller, [][]byte{{0x12, 0x34}, {0x56, 0x78}}, 1000)
	require.NoError(t, err)
	require.Equal(t, expected, *batch)
	require.Equal(t, []interface{}{
		caller, []hexutil.Bytes{{0x12, 0x34}, {0x56, 0x78}}, uint64(1000),
	}, *params)
}

func TestGetQueueInfo(t *testing.T) {
	sut := NewClient("url")
	frontTimestamp := uint64(55)
	expected := types.QueueInfo{Front: 1, Back: 3, Length: 2, FrontTimestamp: &frontTimestamp}
	mockCall(t, "chain_getQueueInfo", expected)

	info, err := sut.GetQueueInfo()
	require.NoError(t, err)
	require.Equal(t, expected, *info)
}

func TestVerifyElement(t *testing.T) {
	sut := NewClient("url")
	mockCall(t, "chain_verifyElement", true)

	ok, err := sut.VerifyElement(batchchain.StateChainName, []byte{0x01}, 0, batchchain.ElementInclusionProof{})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestErrorResponse(t *testing.T) {
	sut := NewClient("url")
	previous := jSONRPCCall
	t.Cleanup(func() { jSONRPCCall = previous })
	jSONRPCCall = func(_, _ string, _ ...interface{}) (rpc.Response, error) {
		return rpc.Response{
			Error: &rpc.ErrorObject{Code: rpc.NotFoundErrorCode, Message: "batch not found"},
		}, nil
	}

	_, err := sut.GetBatch(batchchain.TransactionChainName, 10)
	require.ErrorContains(t, err, "chain_getBatch")
	require.ErrorContains(t, err, "batch not found")
}
