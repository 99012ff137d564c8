package adapters

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stakewise/proxy-deployer/internal/adapters/senders"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideDialerWithoutSender(t *testing.T) {
	cfg := &config.RuntimeConfig{
		NonInteractive: true,
		DeployerConfig: &config.DeployerConfig{},
	}
	dial := ProvideDialer(cfg, senders.NewResolver(cfg, nil), slog.New(slog.NewTextHandler(io.Discard, nil)))

	backend, err := dial(context.Background(), &config.Network{Name: "local", RPCURL: "http://127.0.0.1:1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSenderNotFound)
	assert.Nil(t, backend)
}

func TestProvideNetworkResolver(t *testing.T) {
	cfg := &config.RuntimeConfig{
		ProjectRoot: t.TempDir(),
		FoundryConfig: &config.FoundryConfig{
			RpcEndpoints: map[string]string{"sepolia": "https://rpc", "mainnet": "https://eth"},
		},
	}
	assert.Equal(t, []string{"mainnet", "sepolia"}, ProvideNetworkResolver(cfg).Names())
}
