package service

import (
	"context"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const erc165ABI = `[{"constant":true,"inputs":[{"name":"interfaceId","type":"bytes4"}],"name":"supportsInterface","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"}]`

// crossChainTransferInterfaceID is the ERC-165 identifier of the cross-chain
// mint/burn token extension.
var crossChainTransferInterfaceID = [4]byte{0x8e, 0x2f, 0x5c, 0xd1}

// capabilityProbe asks a token contract whether it advertises the standard
// cross-chain transfer capability.
type capabilityProbe struct {
	eth            *ethclient.Client
	erc165         abi.ABI
	requestTimeout time.Duration
}

func newCapabilityProbe(eth *ethclient.Client, requestTimeout time.Duration) *capabilityProbe {
	parsed, err := abi.JSON(strings.NewReader(erc165ABI))
	if err != nil {
		panic(errors.Wrap(err, "failed to parse ERC-165 ABI"))
	}
	return &capabilityProbe{eth: eth, erc165: parsed, requestTimeout: requestTimeout}
}

func (p *capabilityProbe) SupportsCrossChainTransfer(ctx context.Context, token common.Address) (bool, error) {
	child, cancel := context.WithTimeout(ctx, p.requestTimeout)
	defer cancel()

	code, err := p.eth.CodeAt(child, token, nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to get token code")
	}
	if len(code) == 0 {
		return false, nil
	}

	input, err := p.erc165.Pack("supportsInterface", crossChainTransferInterfaceID)
	if err != nil {
		return false, errors.Wrap(err, "failed to pack supportsInterface call")
	}

	out, err := p.eth.CallContract(child, ethereum.CallMsg{To: &token, Data: input}, nil)
	if err != nil {
		// tokens without ERC-165 revert on the probe
		return false, nil
	}

	res, err := p.erc165.Unpack("supportsInterface", out)
	if err != nil || len(res) == 0 {
		return false, nil
	}
	supported, _ := res[0].(bool)
	return supported, nil
}
