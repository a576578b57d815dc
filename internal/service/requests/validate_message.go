package requests

import "github.com/ethereum/go-ethereum/common"

type ValidateMessageRequest struct {
	Data ValidateMessage `json:"data"`
}

type ValidateMessage struct {
	Key
	Attributes ValidateMessageAttributes `json:"attributes"`
}

type ValidateMessageAttributes struct {
	SrcChain    int64  `json:"src_chain"`
	Nonce       uint64 `json:"nonce"`
	MessageHash string `json:"message_hash"`
}

type MessageResponse struct {
	Data MessageResult `json:"data"`
}

type MessageResult struct {
	Key
	Attributes MessageResultAttributes `json:"attributes"`
}

type MessageResultAttributes struct {
	Attested bool `json:"attested"`
}

func NewValidateMessage(srcChain int64, nonce uint64, hash common.Hash) ValidateMessageRequest {
	return ValidateMessageRequest{
		Data: ValidateMessage{
			Key: Key{Type: MessageType},
			Attributes: ValidateMessageAttributes{
				SrcChain:    srcChain,
				Nonce:       nonce,
				MessageHash: hash.String(),
			},
		},
	}
}
