package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkResolver(t *testing.T) {
	foundry := &config.FoundryConfig{
		RpcEndpoints: map[string]string{
			"mainnet": "https://eth.example",
			"local":   "http://127.0.0.1:8545",
		},
	}

	t.Run("fetches and caches chain id", func(t *testing.T) {
		dir := t.TempDir()
		calls := 0
		r := NewNetworkResolver(dir, foundry).WithFetcher(func(ctx context.Context, rpcURL string) (uint64, error) {
			calls++
			assert.Equal(t, "https://eth.example", rpcURL)
			return 1, nil
		})

		network, err := r.Resolve("mainnet")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), network.ChainID)
		assert.Equal(t, "https://etherscan.io", network.ExplorerURL)

		_, err = r.Resolve("mainnet")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)

		_, err = os.Stat(filepath.Join(dir, "cache", "chainIds.json"))
		require.NoError(t, err)

		// a fresh resolver reads the persisted cache
		r2 := NewNetworkResolver(dir, foundry).WithFetcher(func(ctx context.Context, rpcURL string) (uint64, error) {
			return 0, errors.New("should not be called")
		})
		network, err = r2.Resolve("mainnet")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), network.ChainID)
	})

	t.Run("unknown network", func(t *testing.T) {
		r := NewNetworkResolver(t.TempDir(), foundry)
		_, err := r.Resolve("sepolia")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found in foundry.toml")
	})

	t.Run("fetch failure surfaces", func(t *testing.T) {
		r := NewNetworkResolver(t.TempDir(), foundry).WithFetcher(func(ctx context.Context, rpcURL string) (uint64, error) {
			return 0, errors.New("connection refused")
		})
		_, err := r.Resolve("local")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("names are sorted", func(t *testing.T) {
		r := NewNetworkResolver(t.TempDir(), foundry)
		assert.Equal(t, []string{"local", "mainnet"}, r.Names())
	})

	t.Run("corrupt cache is ignored", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "cache"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cache", "chainIds.json"), []byte("{"), 0644))

		r := NewNetworkResolver(dir, foundry).WithFetcher(func(ctx context.Context, rpcURL string) (uint64, error) {
			return 31337, nil
		})
		network, err := r.Resolve("local")
		require.NoError(t, err)
		assert.True(t, network.IsLocal())
	})
}
