package requests

import "github.com/ethereum/go-ethereum/common"

type AddExecutionRequest struct {
	Data AddExecution `json:"data"`
}

type AddExecution struct {
	Key
	Attributes AddExecutionAttributes `json:"attributes"`
}

type AddExecutionAttributes struct {
	Kind        string `json:"kind"`
	OrderID     int64  `json:"order_id"`
	ChainID     int64  `json:"chain_id"`
	MessageHash string `json:"message_hash"`
}

func NewAddExecution(kind string, orderID, chainID int64, hash common.Hash) AddExecutionRequest {
	return AddExecutionRequest{
		Data: AddExecution{
			Key: Key{Type: ExecutionType},
			Attributes: AddExecutionAttributes{
				Kind:        kind,
				OrderID:     orderID,
				ChainID:     chainID,
				MessageHash: hash.String(),
			},
		},
	}
}
