package adapters

import (
	"context"
	"log/slog"

	"github.com/google/wire"
	"github.com/stakewise/proxy-deployer/internal/adapters/artifacts"
	"github.com/stakewise/proxy-deployer/internal/adapters/blockchain"
	"github.com/stakewise/proxy-deployer/internal/adapters/createx"
	"github.com/stakewise/proxy-deployer/internal/adapters/fs"
	"github.com/stakewise/proxy-deployer/internal/adapters/interactive"
	"github.com/stakewise/proxy-deployer/internal/adapters/senders"
	internalconfig "github.com/stakewise/proxy-deployer/internal/config"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// ProvideNetworkResolver provides the foundry.toml network resolver
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *internalconfig.NetworkResolver {
	return internalconfig.NewNetworkResolver(cfg.ProjectRoot, cfg.FoundryConfig)
}

// ProvideDialer connects createx to the chain with the namespace sender key
func ProvideDialer(cfg *config.RuntimeConfig, keys *senders.Resolver, log *slog.Logger) createx.Dialer {
	return func(ctx context.Context, network *config.Network) (createx.Backend, error) {
		key, err := keys.PrivateKey(ctx)
		if err != nil {
			return nil, err
		}
		client, err := blockchain.Dial(ctx, network, key, blockchain.Options{
			Confirmations: cfg.Confirmations,
			Logger:        log,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewRegistryStore,
	wire.Bind(new(usecase.DeploymentRegistry), new(*fs.RegistryStore)),

	fs.NewLocalConfigStore,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStore)),

	artifacts.NewRegistry,
	wire.Bind(new(createx.ArtifactResolver), new(*artifacts.Registry)),
)

// ChainSet provides CreateX proxy creation over a signing RPC client
var ChainSet = wire.NewSet(
	ProvideDialer,
	createx.NewService,
	wire.Bind(new(usecase.ProxyCreationService), new(*createx.Service)),
	wire.Bind(new(usecase.AddressPredictor), new(*createx.Service)),
)

// SendersSet provides the namespace sender
var SendersSet = wire.NewSet(
	senders.NewResolver,
	wire.Bind(new(usecase.SenderResolver), new(*senders.Resolver)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelector,
	wire.Bind(new(senders.Selector), new(*interactive.Selector)),

	interactive.NewConfirmer,
	wire.Bind(new(usecase.BroadcastConfirmer), new(*interactive.Confirmer)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ChainSet,
	SendersSet,
	InteractiveSet,
	ConfigSet,
)
