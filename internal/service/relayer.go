package service

import (
	"context"
	"math/big"
	"net/url"

	"github.com/Swapica/order-coordinator-svc/internal/core"
	"github.com/Swapica/order-coordinator-svc/internal/service/requests"
	"github.com/ethereum/go-ethereum/common"
	jsonapi "gitlab.com/distributed_lab/json-api-connector"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// relayer delegates the out-of-scope mechanics to the relayer service: swap
// execution, bridge transfers, custody moves and message attestation.
type relayer struct {
	log       *logan.Entry
	connector *jsonapi.Connector
	chainID   int64
}

func newRelayer(log *logan.Entry, connector *jsonapi.Connector, chainID int64) *relayer {
	return &relayer{log: log, connector: connector, chainID: chainID}
}

func (r *relayer) Execute(ctx context.Context, tokenIn, tokenOut common.Address, amountIn, minAmountOut *big.Int) (*big.Int, error) {
	body := requests.NewExecuteSwap(tokenIn, tokenOut, amountIn, minAmountOut, r.chainID)
	u, _ := url.Parse("/swaps")

	var resp requests.SwapResponse
	if err := r.connector.PostJSON(u, body, ctx, &resp); err != nil {
		r.log.WithError(err).Error("relayer rejected swap")
		return nil, core.ErrSwapFailed
	}

	out, ok := new(big.Int).SetString(resp.Data.Attributes.AmountOut, 10)
	if !ok {
		return nil, errors.Errorf("invalid amount_out %q in relayer response", resp.Data.Attributes.AmountOut)
	}
	return out, nil
}

func (r *relayer) Send(ctx context.Context, token, recipient common.Address, amount *big.Int, targetChain int64) (common.Hash, error) {
	body := requests.NewBridgeSend(token, recipient, amount, targetChain, r.chainID)
	u, _ := url.Parse("/bridge_transfers")

	var resp requests.BridgeResponse
	if err := r.connector.PostJSON(u, body, ctx, &resp); err != nil {
		r.log.WithError(err).Error("relayer rejected bridge transfer")
		return common.Hash{}, core.ErrBridgeFailed
	}
	return common.HexToHash(resp.Data.Attributes.MessageHash), nil
}

func (r *relayer) Deposit(ctx context.Context, from, token common.Address, amount *big.Int) error {
	err := r.transfer(ctx, requests.TransferDeposit, from, token, amount)
	return errors.Wrap(err, "failed to deposit funds via relayer")
}

func (r *relayer) Payout(ctx context.Context, to, token common.Address, amount *big.Int) error {
	err := r.transfer(ctx, requests.TransferPayout, to, token, amount)
	return errors.Wrap(err, "failed to pay out funds via relayer")
}

func (r *relayer) transfer(ctx context.Context, kind string, account, token common.Address, amount *big.Int) error {
	body := requests.NewTransfer(kind, account, token, amount)
	u, _ := url.Parse("/transfers")
	return r.connector.PostJSON(u, body, ctx, nil)
}

func (r *relayer) Validate(ctx context.Context, id core.MessageID, hash common.Hash) error {
	body := requests.NewValidateMessage(id.ChainID, id.Nonce, hash)
	u, _ := url.Parse("/validated_messages")

	var resp requests.MessageResponse
	if err := r.connector.PostJSON(u, body, ctx, &resp); err != nil {
		return errors.Wrap(err, "failed to request message attestation")
	}
	if !resp.Data.Attributes.Attested {
		return core.ErrInvalidMessage
	}
	return nil
}
