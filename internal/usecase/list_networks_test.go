package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stakewise/proxy-deployer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNetworks struct {
	networks map[string]*config.Network
	names    []string
}

func (s *stubNetworks) Names() []string {
	return s.names
}

func (s *stubNetworks) Resolve(name string) (*config.Network, error) {
	if n, ok := s.networks[name]; ok {
		return n, nil
	}
	return nil, errors.New("rpc unreachable")
}

func TestListNetworks(t *testing.T) {
	cfg := &config.RuntimeConfig{
		DeployerConfig: &config.DeployerConfig{
			Networks: map[string]config.NetworkInputs{
				"mainnet": {Deposits: "0xd1", Settings: "0x51", Operators: "0x01", VRC: "0x0c"},
				"sepolia": {Deposits: "0xd1", VRC: "0x0c"},
			},
		},
	}
	resolver := &stubNetworks{
		names: []string{"broken", "mainnet", "sepolia"},
		networks: map[string]*config.Network{
			"mainnet": {Name: "mainnet", ChainID: 1},
			"sepolia": {Name: "sepolia", ChainID: 11155111},
		},
	}

	result, err := usecase.NewListNetworks(cfg, resolver).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Networks, 3)

	broken := result.Networks[0]
	assert.EqualError(t, broken.Error, "rpc unreachable")
	assert.Equal(t, []string{"deposits", "settings", "operators", "vrc"}, broken.Missing)
	assert.False(t, broken.Ready())

	mainnet := result.Networks[1]
	assert.Equal(t, uint64(1), mainnet.ChainID)
	assert.Empty(t, mainnet.Missing)
	assert.True(t, mainnet.Ready())

	sepolia := result.Networks[2]
	assert.Equal(t, []string{"settings", "operators"}, sepolia.Missing)
	assert.False(t, sepolia.Ready())
}
