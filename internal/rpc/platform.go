package rpc

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// DefaultPlatformURL is the public P-chain endpoint
const DefaultPlatformURL = "https://api.avax.network/ext/bc/P"

// Platform exposes the P-chain methods used by the explorer
type Platform struct {
	caller   Caller
	endpoint string
}

// NewPlatform binds a caller to a P-chain endpoint
func NewPlatform(caller Caller, endpoint string) *Platform {
	if endpoint == "" {
		endpoint = DefaultPlatformURL
	}
	return &Platform{caller: caller, endpoint: endpoint}
}

// Endpoint returns the P-chain URL this client targets
func (p *Platform) Endpoint() string {
	return p.endpoint
}

// GetBlockchains lists every blockchain known to the P-chain
func (p *Platform) GetBlockchains(ctx context.Context) ([]types.Blockchain, error) {
	var result struct {
		Blockchains []types.Blockchain `json:"blockchains"`
	}
	if err := p.caller.Call(ctx, p.endpoint, "platform.getBlockchains", map[string]any{}, &result); err != nil {
		return nil, err
	}
	return result.Blockchains, nil
}

// GetCurrentValidators lists the current validators of a subnet.
// An empty subnetID selects the primary network.
func (p *Platform) GetCurrentValidators(ctx context.Context, subnetID string) ([]types.PlatformValidator, error) {
	params := map[string]any{}
	if subnetID != "" {
		params["subnetID"] = subnetID
	}

	var result struct {
		Validators []types.PlatformValidator `json:"validators"`
	}
	if err := p.caller.Call(ctx, p.endpoint, "platform.getCurrentValidators", params, &result); err != nil {
		return nil, err
	}
	return result.Validators, nil
}

// GetHeight returns the current P-chain height
func (p *Platform) GetHeight(ctx context.Context) (uint64, error) {
	var result struct {
		Height string `json:"height"`
	}
	if err := p.caller.Call(ctx, p.endpoint, "platform.getHeight", map[string]any{}, &result); err != nil {
		return 0, err
	}
	height, err := strconv.ParseUint(result.Height, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid platform height %q: %w", result.Height, err)
	}
	return height, nil
}

// Ping checks that the P-chain endpoint answers
func (p *Platform) Ping(ctx context.Context) error {
	_, err := p.GetHeight(ctx)
	return err
}

// EVM queries EVM-compatible chain endpoints
type EVM struct {
	caller Caller
}

// NewEVM creates an EVM query helper
func NewEVM(caller Caller) *EVM {
	return &EVM{caller: caller}
}

// BlockNumber returns the latest block height served at endpoint
func (e *EVM) BlockNumber(ctx context.Context, endpoint string) (uint64, error) {
	var quantity string
	if err := e.caller.Call(ctx, endpoint, "eth_blockNumber", []any{}, &quantity); err != nil {
		return 0, err
	}
	height, err := hexutil.DecodeUint64(quantity)
	if err != nil {
		return 0, fmt.Errorf("invalid block number %q: %w", quantity, err)
	}
	return height, nil
}
