package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// ErrUnreachable simulates a transport failure against the platform chain
var ErrUnreachable = errors.New("dial tcp: connection refused")

// FakePlatform is an in-memory platform chain API for registry and staking tests
type FakePlatform struct {
	mu sync.Mutex

	Chains     []types.Blockchain
	Validators map[string][]types.PlatformValidator

	// ListErr fails GetBlockchains when set
	ListErr error
	// ValidatorErrs fails GetCurrentValidators for the given subnet IDs
	ValidatorErrs map[string]error
	// HeightErr fails GetHeight when set
	HeightErr error

	ValidatorCalls int
}

// GetBlockchains returns the configured chain list
func (f *FakePlatform) GetBlockchains(ctx context.Context) ([]types.Blockchain, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Chains, nil
}

// GetCurrentValidators returns the configured validators for subnetID
func (f *FakePlatform) GetCurrentValidators(ctx context.Context, subnetID string) ([]types.PlatformValidator, error) {
	f.mu.Lock()
	f.ValidatorCalls++
	f.mu.Unlock()

	if err, ok := f.ValidatorErrs[subnetID]; ok {
		return nil, err
	}
	return f.Validators[subnetID], nil
}

// GetHeight reports a fixed platform height
func (f *FakePlatform) GetHeight(ctx context.Context) (uint64, error) {
	if f.HeightErr != nil {
		return 0, f.HeightErr
	}
	return 1000, nil
}

// BlockchainFixture creates a raw chain entry
func BlockchainFixture(id, name, subnetID string) types.Blockchain {
	return types.Blockchain{
		ID:       id,
		Name:     name,
		SubnetID: subnetID,
		VMID:     "srEXiWaHuhNyGwPUi444Tu47ZEDwxTWrbQiuD7FmgSAQ6X7Dy",
	}
}

// PlatformValidatorFixture creates a raw validator entry with weight in nAVAX
func PlatformValidatorFixture(nodeID, weight, uptime string, connected bool) types.PlatformValidator {
	return types.PlatformValidator{
		NodeID:          nodeID,
		StartTime:       "1704067200",
		EndTime:         "1735689600",
		Weight:          weight,
		Uptime:          uptime,
		Connected:       &connected,
		DelegationFee:   "2.0000",
		DelegatorCount:  "12",
		DelegatorWeight: "150000000000000",
	}
}
