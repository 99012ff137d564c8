package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// DeployStackParams contains parameters for the full rollout
type DeployStackParams struct {
	Addresses    AddressOverrides
	Salts        map[domain.ProxyKind]SaltSpec
	SkipExisting bool
}

// StackResult is the outcome of a full rollout
type StackResult struct {
	Network            *config.Network
	Namespace          string
	Pools              *domain.DeployedProxy
	Privates           *domain.DeployedProxy
	ValidatorsRegistry *domain.DeployedProxy
	// Reused lists kinds taken from the registry instead of being deployed
	Reused []domain.ProxyKind
}

// Proxies returns the stack in deployment order
func (r *StackResult) Proxies() []*domain.DeployedProxy {
	return lo.Filter([]*domain.DeployedProxy{r.Pools, r.Privates, r.ValidatorsRegistry}, func(p *domain.DeployedProxy, _ int) bool {
		return p != nil
	})
}

// DeployStack deploys Pools, Privates and ValidatorsRegistry in dependency order.
//
// Pools and Privates are initialized with the ValidatorsRegistry address
// before it exists, so that address is predicted from its salt and checked
// once the registry lands. A configured registry address must match that
// prediction, and a recorded registry is only reused together with the Pools
// and Privates it was initialized with.
type DeployStack struct {
	config    *config.RuntimeConfig
	deployer  *DeployProxy
	salts     *SaltResolver
	predictor AddressPredictor
	registry  DeploymentRegistry
	confirmer BroadcastConfirmer
	senders   SenderResolver
	sink      ProgressSink
	log       *slog.Logger
}

// NewDeployStack creates a new DeployStack use case
func NewDeployStack(
	cfg *config.RuntimeConfig,
	deployer *DeployProxy,
	salts *SaltResolver,
	predictor AddressPredictor,
	registry DeploymentRegistry,
	confirmer BroadcastConfirmer,
	senders SenderResolver,
	sink ProgressSink,
	log *slog.Logger,
) *DeployStack {
	return &DeployStack{
		config:    cfg,
		deployer:  deployer,
		salts:     salts,
		predictor: predictor,
		registry:  registry,
		confirmer: confirmer,
		senders:   senders,
		sink:      sink,
		log:       log,
	}
}

// Run executes the rollout. It returns nil, nil when the operator declines.
func (uc *DeployStack) Run(ctx context.Context, params DeployStackParams) (*StackResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}

	in, err := ResolveStackInputs(uc.config, params.Addresses)
	if err != nil {
		return nil, err
	}

	kinds := domain.AllProxyKinds()
	salts := make(map[domain.ProxyKind]domain.Salt, len(kinds))
	predicted := make(map[domain.ProxyKind]common.Address, len(kinds))
	for _, kind := range kinds {
		salt, err := uc.salts.Resolve(ctx, kind, params.Salts[kind])
		if err != nil {
			return nil, err
		}
		addr, err := uc.predictor.PredictAddress(ctx, salt, network)
		if err != nil {
			return nil, err
		}
		salts[kind] = salt
		predicted[kind] = addr
	}

	existing := map[domain.ProxyKind]*domain.DeployedProxy{}
	if params.SkipExisting {
		for _, kind := range kinds {
			recorded, err := uc.registry.GetProxy(ctx, network.ChainID, uc.config.Namespace, kind)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			existing[kind] = recorded
		}
	}

	expectedRegistry, err := stackRegistry(in, existing, predicted[domain.ProxyKindValidatorsRegistry])
	if err != nil {
		return nil, err
	}

	collector := in.Collector(expectedRegistry)
	if err := collector.Validate(); err != nil {
		return nil, err
	}

	pending := lo.Filter(kinds, func(kind domain.ProxyKind, _ int) bool {
		_, ok := existing[kind]
		return !ok
	})
	steps := lo.Map(pending, func(kind domain.ProxyKind, _ int) PlannedProxy {
		return PlannedProxy{Kind: kind, Salt: salts[kind], Predicted: predicted[kind]}
	})
	if len(steps) > 0 {
		ok, err := confirmPlan(ctx, uc.config, uc.confirmer, uc.senders, steps)
		if err != nil || !ok {
			return nil, err
		}
	}

	result := &StackResult{Network: network, Namespace: uc.config.Namespace}
	total := len(kinds)

	deploy := func(step int, kind domain.ProxyKind, args domain.InitializerArgs) (*domain.DeployedProxy, error) {
		if recorded, ok := existing[kind]; ok {
			uc.log.Info("reusing recorded proxy", "alias", kind.Alias(), "address", recorded.Address.Hex())
			uc.sink.Info(fmt.Sprintf("%s already deployed at %s", kind.LogicalName(), recorded.Address.Hex()))
			result.Reused = append(result.Reused, kind)
			return recorded, nil
		}

		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   string(kind),
			Current: step,
			Total:   total,
			Message: fmt.Sprintf("Deploying %s", kind.LogicalName()),
			Spinner: true,
		})

		deployed, err := uc.deployer.Deploy(ctx, args, salts[kind])
		if err != nil {
			uc.sink.Error(fmt.Sprintf("%s deployment failed", kind.LogicalName()))
			return nil, err
		}
		if err := uc.registry.SaveProxy(ctx, deployed); err != nil {
			return nil, fmt.Errorf("proxy deployed but failed to record it: %w", err)
		}
		return deployed, nil
	}

	if result.Pools, err = deploy(1, domain.ProxyKindPools, domain.PoolsArgs{CollectorArgs: collector}); err != nil {
		return result, err
	}
	if result.Privates, err = deploy(2, domain.ProxyKindPrivates, domain.PrivatesArgs{CollectorArgs: collector}); err != nil {
		return result, err
	}

	registryArgs := domain.ValidatorsRegistryArgs{
		Pools:    result.Pools.Address,
		Privates: result.Privates.Address,
		Settings: in.Settings,
	}
	if result.ValidatorsRegistry, err = deploy(3, domain.ProxyKindValidatorsRegistry, registryArgs); err != nil {
		return result, err
	}

	if got := result.ValidatorsRegistry.Address; got != expectedRegistry {
		return result, fmt.Errorf("%w: validators registry expected at %s, got %s",
			domain.ErrPredictionMismatch, expectedRegistry.Hex(), got.Hex())
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete", Current: total, Total: total, Message: "Stack deployed"})
	return result, nil
}

// stackRegistry returns the ValidatorsRegistry address Pools and Privates are
// initialized with. It fails before anything is broadcast when the recorded or
// configured proxies cannot form a single stack.
func stackRegistry(in domain.StackInputs, existing map[domain.ProxyKind]*domain.DeployedProxy, predicted common.Address) (common.Address, error) {
	recorded, reused := existing[domain.ProxyKindValidatorsRegistry]
	if !reused {
		if in.ValidatorsRegistry != (common.Address{}) && in.ValidatorsRegistry != predicted {
			return common.Address{}, fmt.Errorf("%w: validators registry configured at %s but its salt deploys it at %s",
				domain.ErrPredictionMismatch, in.ValidatorsRegistry.Hex(), predicted.Hex())
		}
		for _, kind := range []domain.ProxyKind{domain.ProxyKindPools, domain.ProxyKindPrivates} {
			if proxy, ok := existing[kind]; ok && !initializedWithRegistry(proxy, predicted) {
				return common.Address{}, fmt.Errorf("%w: recorded %s at %s was not initialized with validators registry %s",
					domain.ErrInconsistentStack, kind.LogicalName(), proxy.Address.Hex(), predicted.Hex())
			}
		}
		return predicted, nil
	}

	// the recorded registry is bound to the Pools and Privates it was initialized with
	for _, kind := range []domain.ProxyKind{domain.ProxyKindPools, domain.ProxyKindPrivates} {
		if _, ok := existing[kind]; !ok {
			return common.Address{}, fmt.Errorf("%w: validators registry recorded at %s but %s is not, redeploy the stack with new salts",
				domain.ErrInconsistentStack, recorded.Address.Hex(), kind.LogicalName())
		}
	}
	return recorded.Address, nil
}

// initializedWithRegistry reports whether a recorded collector proxy points at
// registry. Records without init args are trusted.
func initializedWithRegistry(proxy *domain.DeployedProxy, registry common.Address) bool {
	if len(proxy.InitArgs) != 5 {
		return true
	}
	return strings.EqualFold(proxy.InitArgs[4], registry.Hex())
}
