package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// DeploySingleParams contains parameters for deploying one proxy
type DeploySingleParams struct {
	Kind      domain.ProxyKind
	Addresses AddressOverrides
	Salt      SaltSpec
	// RegistrySalt resolves the ValidatorsRegistry address when it has to be predicted
	RegistrySalt SaltSpec
}

// DeploySingle deploys one proxy kind with inputs taken from flags, config
// and the local registry
type DeploySingle struct {
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

// NewDeploySingle creates a new DeploySingle use case
func NewDeploySingle(
	cfg *config.RuntimeConfig,
	deployer *DeployProxy,
	salts *SaltResolver,
	predictor AddressPredictor,
	registry DeploymentRegistry,
	confirmer BroadcastConfirmer,
	senders SenderResolver,
	sink ProgressSink,
	log *slog.Logger,
) *DeploySingle {
	return &DeploySingle{
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

// Run executes the deployment. It returns nil, nil when the operator declines.
func (uc *DeploySingle) Run(ctx context.Context, params DeploySingleParams) (*domain.DeployedProxy, error) {
	if uc.config.Network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}

	in, err := ResolveStackInputs(uc.config, params.Addresses)
	if err != nil {
		return nil, err
	}

	salt, err := uc.salts.Resolve(ctx, params.Kind, params.Salt)
	if err != nil {
		return nil, err
	}

	args, err := uc.buildArgs(ctx, params, in)
	if err != nil {
		return nil, err
	}
	if err := args.Validate(); err != nil {
		return nil, err
	}

	predicted, err := uc.predictor.PredictAddress(ctx, salt, uc.config.Network)
	if err != nil {
		return nil, err
	}

	ok, err := confirmPlan(ctx, uc.config, uc.confirmer, uc.senders, []PlannedProxy{
		{Kind: params.Kind, Salt: salt, Predicted: predicted},
	})
	if err != nil || !ok {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(params.Kind),
		Current: 1,
		Total:   1,
		Message: fmt.Sprintf("Deploying %s", params.Kind.LogicalName()),
		Spinner: true,
	})

	deployed, err := uc.deployer.Deploy(ctx, args, salt)
	if err != nil {
		uc.sink.Error(fmt.Sprintf("%s deployment failed", params.Kind.LogicalName()))
		return nil, err
	}

	if err := uc.registry.SaveProxy(ctx, deployed); err != nil {
		return deployed, fmt.Errorf("proxy deployed but failed to record it: %w", err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete", Current: 1, Total: 1, Message: "Proxy deployed"})
	return deployed, nil
}

func (uc *DeploySingle) buildArgs(ctx context.Context, params DeploySingleParams, in domain.StackInputs) (domain.InitializerArgs, error) {
	switch params.Kind {
	case domain.ProxyKindPools, domain.ProxyKindPrivates:
		registry := in.ValidatorsRegistry
		if registry == (common.Address{}) {
			predicted, err := uc.predictRegistry(ctx, params.RegistrySalt)
			if err != nil {
				return nil, err
			}
			uc.log.Info("using predicted validators registry address", "address", predicted.Hex())
			registry = predicted
		}
		if params.Kind == domain.ProxyKindPools {
			return domain.PoolsArgs{CollectorArgs: in.Collector(registry)}, nil
		}
		return domain.PrivatesArgs{CollectorArgs: in.Collector(registry)}, nil

	case domain.ProxyKindValidatorsRegistry:
		pools, err := uc.dependency(ctx, domain.ProxyKindPools, params.Addresses.Pools)
		if err != nil {
			return nil, err
		}
		privates, err := uc.dependency(ctx, domain.ProxyKindPrivates, params.Addresses.Privates)
		if err != nil {
			return nil, err
		}
		return domain.ValidatorsRegistryArgs{Pools: pools, Privates: privates, Settings: in.Settings}, nil
	}
	return nil, fmt.Errorf("unknown proxy kind %q", params.Kind)
}

func (uc *DeploySingle) predictRegistry(ctx context.Context, spec SaltSpec) (common.Address, error) {
	salt, err := uc.salts.Resolve(ctx, domain.ProxyKindValidatorsRegistry, spec)
	if err != nil {
		return common.Address{}, err
	}
	return uc.predictor.PredictAddress(ctx, salt, uc.config.Network)
}

// dependency resolves a proxy address from a flag or the registry
func (uc *DeploySingle) dependency(ctx context.Context, kind domain.ProxyKind, override string) (common.Address, error) {
	addr, err := ParseOptionalAddress(string(kind), override)
	if err != nil || addr != (common.Address{}) {
		return addr, err
	}

	recorded, err := uc.registry.GetProxy(ctx, uc.config.Network.ChainID, uc.config.Namespace, kind)
	if errors.Is(err, domain.ErrNotFound) {
		return common.Address{}, fmt.Errorf("%w: %s is not deployed on %s, pass --%s", domain.ErrInvalidAddress, kind.LogicalName(), uc.config.Network.Name, kind)
	}
	if err != nil {
		return common.Address{}, err
	}
	return recorded.Address, nil
}

// confirmPlan asks for confirmation unless the run is non-interactive or pre-approved
func confirmPlan(ctx context.Context, cfg *config.RuntimeConfig, confirmer BroadcastConfirmer, senders SenderResolver, steps []PlannedProxy) (bool, error) {
	if cfg.AssumeYes || cfg.NonInteractive {
		return true, nil
	}
	sender, err := senders.SenderAddress(ctx)
	if err != nil {
		return false, err
	}
	return confirmer.ConfirmBroadcast(ctx, BroadcastPlan{
		Network: cfg.Network,
		Sender:  sender,
		Steps:   steps,
	})
}
