package requests

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type TransferRequest struct {
	Data Transfer `json:"data"`
}

type Transfer struct {
	Key
	Attributes TransferAttributes `json:"attributes"`
}

type TransferAttributes struct {
	Kind    string `json:"kind"`
	Account string `json:"account"`
	Token   string `json:"token"`
	Amount  string `json:"amount"`
}

func NewTransfer(kind string, account, token common.Address, amount *big.Int) TransferRequest {
	return TransferRequest{
		Data: Transfer{
			Key: Key{Type: TransferType},
			Attributes: TransferAttributes{
				Kind:    kind,
				Account: account.String(),
				Token:   token.String(),
				Amount:  amount.String(),
			},
		},
	}
}
