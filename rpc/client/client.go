package client

import (
	"encoding/json"
	"fmt"

	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/0xPolygon/rollupchain/batchchain"
	"github.com/0xPolygon/rollupchain/rpc/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var jSONRPCCall = rpc.JSONRPCCall

type ChainClientInterface interface {
	Enqueue(caller common.Address, element []byte) (*types.QueuedEntry, error)
	AppendFromQueue(caller common.Address) (*types.AppendedBatch, error)
	AppendBatch(caller common.Address, elements [][]byte, timestamp uint64) (*types.AppendedBatch, error)
	AppendStateBatch(caller common.Address, elements [][]byte) (*types.AppendedBatch, error)
	SubmitTransaction(tx []byte) (int, error)
	GetBatchesLength(chain string) (uint64, error)
	GetBatch(chain string, index uint64) (*types.Batch, error)
	GetCumulativeNumElements(chain string) (uint64, error)
	GetLastAcceptedTimestamp(chain string) (uint64, error)
	GetQueueInfo() (*types.QueueInfo, error)
	VerifyElement(chain string, element []byte, position uint64, proof batchchain.ElementInclusionProof) (bool, error)
	GetElementProof(chain string, position uint64) (*types.ElementProof, error)
}

var _ ChainClientInterface = (*Client)(nil)

// Client wraps all the available endpoints of the chain service
type Client struct {
	url string
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
	}
}

// call sends the request and decodes the result into result
func (c *Client) call(result interface{}, method string, params ...interface{}) error {
	response, err := jSONRPCCall(c.url, method, params...)
	if err != nil {
		return err
	}

	// Check if the response is an error
	if response.Error != nil {
		return fmt.Errorf("error in the response calling %s: %v", method, response.Error)
	}
	return json.Unmarshal(response.Result, result)
}

func (c *Client) Enqueue(caller common.Address, element []byte) (*types.QueuedEntry, error) {
	res := types.QueuedEntry{}
	if err := c.call(&res, "chain_enqueue", caller, hexutil.Bytes(element)); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) AppendFromQueue(caller common.Address) (*types.AppendedBatch, error) {
	res := types.AppendedBatch{}
	if err := c.call(&res, "chain_appendFromQueue", caller); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) AppendBatch(caller common.Address, elements [][]byte, timestamp uint64) (*types.AppendedBatch, error) {
	res := types.AppendedBatch{}
	if err := c.call(&res, "chain_appendBatch", caller, toHexElements(elements), timestamp); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) AppendStateBatch(caller common.Address, elements [][]byte) (*types.AppendedBatch, error) {
	res := types.AppendedBatch{}
	if err := c.call(&res, "chain_appendStateBatch", caller, toHexElements(elements)); err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitTransaction returns how many transactions are waiting in the submitter after adding tx
func (c *Client) SubmitTransaction(tx []byte) (int, error) {
	res := types.SubmittedTransaction{}
	if err := c.call(&res, "chain_submitTransaction", hexutil.Bytes(tx)); err != nil {
		return 0, err
	}
	return res.Pending, nil
}

func (c *Client) GetBatchesLength(chain string) (uint64, error) {
	var res uint64
	err := c.call(&res, "chain_getBatchesLength", chain)
	return res, err
}

func (c *Client) GetBatch(chain string, index uint64) (*types.Batch, error) {
	res := types.Batch{}
	if err := c.call(&res, "chain_getBatch", chain, index); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetCumulativeNumElements(chain string) (uint64, error) {
	var res uint64
	err := c.call(&res, "chain_getCumulativeNumElements", chain)
	return res, err
}

func (c *Client) GetLastAcceptedTimestamp(chain string) (uint64, error) {
	var res uint64
	err := c.call(&res, "chain_getLastAcceptedTimestamp", chain)
	return res, err
}

func (c *Client) GetQueueInfo() (*types.QueueInfo, error) {
	res := types.QueueInfo{}
	if err := c.call(&res, "chain_getQueueInfo"); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) VerifyElement(
	chain string, element []byte, position uint64, proof batchchain.ElementInclusionProof,
) (bool, error) {
	var res bool
	err := c.call(&res, "chain_verifyElement", chain, hexutil.Bytes(element), position, proof)
	return res, err
}

func (c *Client) GetElementProof(chain string, position uint64) (*types.ElementProof, error) {
	res := types.ElementProof{}
	if err := c.call(&res, "chain_getElementProof", chain, position); err != nil {
		return nil, err
	}
	return &res, nil
}

func toHexElements(elements [][]byte) []hexutil.Bytes {
	res := make([]hexutil.Bytes, len(elements))
	for i, e := range elements {
		res[i] = e
	}
	return res
}
