package requests

import "github.com/Swapica/order-coordinator-svc/internal/data"

type AddOrderRequest struct {
	Data AddOrder `json:"data"`
}

type AddOrder struct {
	Key
	Attributes AddOrderAttributes `json:"attributes"`
}

type AddOrderAttributes struct {
	OrderID      int64   `json:"order_id"`
	SrcChain     int64   `json:"src_chain"`
	Owner        string  `json:"owner"`
	TokenIn      string  `json:"token_in"`
	TokenOut     string  `json:"token_out"`
	AmountIn     string  `json:"amount_in"`
	MinAmountOut string  `json:"min_amount_out"`
	Expiry       int64   `json:"expiry"`
	TargetChains []int64 `json:"target_chains"`
	Status       uint8   `json:"status"`
}

func NewAddOrder(o data.Order, chainID int64) AddOrderRequest {
	return AddOrderRequest{
		Data: AddOrder{
			Key: Key{Type: OrderType},
			Attributes: AddOrderAttributes{
				OrderID:      o.ID,
				SrcChain:     chainID,
				Owner:        o.Owner.String(),
				TokenIn:      o.TokenIn.String(),
				TokenOut:     o.TokenOut.String(),
				AmountIn:     o.AmountIn.String(),
				MinAmountOut: o.MinAmountOut.String(),
				Expiry:       o.Expiry.UTC().Unix(),
				TargetChains: o.TargetChains,
				Status:       uint8(o.Status),
			},
		},
	}
}
