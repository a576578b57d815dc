package requests

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type BridgeSendRequest struct {
	Data BridgeSend `json:"data"`
}

type BridgeSend struct {
	Key
	Attributes BridgeSendAttributes `json:"attributes"`
}

type BridgeSendAttributes struct {
	SrcChain    int64  `json:"src_chain"`
	TargetChain int64  `json:"target_chain"`
	Token       string `json:"token"`
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"`
}

type BridgeResponse struct {
	Data BridgeResult `json:"data"`
}

type BridgeResult struct {
	Key
	Attributes BridgeResultAttributes `json:"attributes"`
}

type BridgeResultAttributes struct {
	MessageHash string `json:"message_hash"`
}

func NewBridgeSend(token, recipient common.Address, amount *big.Int, targetChain, srcChain int64) BridgeSendRequest {
	return BridgeSendRequest{
		Data: BridgeSend{
			Key: Key{Type: BridgeType},
			Attributes: BridgeSendAttributes{
				SrcChain:    srcChain,
				TargetChain: targetChain,
				Token:       token.String(),
				Recipient:   recipient.String(),
				Amount:      amount.String(),
			},
		},
	}
}
