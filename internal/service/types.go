package service

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type orderRequestedEvent struct {
	Owner        common.Address
	TokenIn      common.Address
	TokenOut     common.Address
	AmountIn     *big.Int
	MinAmountOut *big.Int
	Expiry       *big.Int
	TargetChains []*big.Int
}

type orderCancelRequestedEvent struct {
	OrderId *big.Int
	Owner   common.Address
}

type priceUpdatedEvent struct {
	TokenIn  common.Address
	TokenOut common.Address
	Price    *big.Int
}

type messageDeliveredEvent struct {
	SrcChainId  *big.Int
	Nonce       *big.Int
	OrderId     *big.Int
	MessageHash [32]byte
}
