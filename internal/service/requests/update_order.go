package requests

import (
	"strconv"

	"github.com/Swapica/order-coordinator-svc/internal/data"
)

type UpdateOrderRequest struct {
	Data UpdateOrder `json:"data"`
}

type UpdateOrder struct {
	Key
	Attributes UpdateOrderAttributes `json:"attributes"`
}

type UpdateOrderAttributes struct {
	Status       uint8 `json:"status"`
	PendingChain int64 `json:"pending_chain"`
}

func NewUpdateOrder(o data.Order) UpdateOrderRequest {
	return UpdateOrderRequest{
		Data: UpdateOrder{
			Key: Key{
				ID:   strconv.FormatInt(o.ID, 10),
				Type: OrderType,
			},
			Attributes: UpdateOrderAttributes{
				Status:       uint8(o.Status),
				PendingChain: o.PendingChain,
			},
		},
	}
}
