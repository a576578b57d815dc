package requests

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type ExecuteSwapRequest struct {
	Data ExecuteSwap `json:"data"`
}

type ExecuteSwap struct {
	Key
	Attributes ExecuteSwapAttributes `json:"attributes"`
}

type ExecuteSwapAttributes struct {
	ChainID      int64  `json:"chain_id"`
	TokenIn      string `json:"token_in"`
	TokenOut     string `json:"token_out"`
	AmountIn     string `json:"amount_in"`
	MinAmountOut string `json:"min_amount_out"`
}

type SwapResponse struct {
	Data SwapResult `json:"data"`
}

type SwapResult struct {
	Key
	Attributes SwapResultAttributes `json:"attributes"`
}

type SwapResultAttributes struct {
	AmountOut string `json:"amount_out"`
}

func NewExecuteSwap(tokenIn, tokenOut common.Address, amountIn, minAmountOut *big.Int, chainID int64) ExecuteSwapRequest {
	return ExecuteSwapRequest{
		Data: ExecuteSwap{
			Key: Key{Type: SwapType},
			Attributes: ExecuteSwapAttributes{
				ChainID:      chainID,
				TokenIn:      tokenIn.String(),
				TokenOut:     tokenOut.String(),
				AmountIn:     amountIn.String(),
				MinAmountOut: minAmountOut.String(),
			},
		},
	}
}
