package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// PredictAddressesParams contains parameters for address prediction
type PredictAddressesParams struct {
	Kinds []domain.ProxyKind // empty means all kinds
	Salts map[domain.ProxyKind]SaltSpec
}

// Prediction is the salt-derived address of one proxy
type Prediction struct {
	Kind     domain.ProxyKind
	Salt     domain.Salt
	Address  common.Address
	Recorded *domain.DeployedProxy // nil when not in the registry
}

// PredictAddresses computes proxy addresses without broadcasting
type PredictAddresses struct {
	config    *config.RuntimeConfig
	salts     *SaltResolver
	predictor AddressPredictor
	registry  DeploymentRegistry
}

// NewPredictAddresses creates a new PredictAddresses use case
func NewPredictAddresses(cfg *config.RuntimeConfig, salts *SaltResolver, predictor AddressPredictor, registry DeploymentRegistry) *PredictAddresses {
	return &PredictAddresses{
		config:    cfg,
		salts:     salts,
		predictor: predictor,
		registry:  registry,
	}
}

// Run executes the prediction
func (uc *PredictAddresses) Run(ctx context.Context, params PredictAddressesParams) ([]Prediction, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}

	kinds := params.Kinds
	if len(kinds) == 0 {
		kinds = domain.AllProxyKinds()
	}

	predictions := make([]Prediction, 0, len(kinds))
	for _, kind := range kinds {
		salt, err := uc.salts.Resolve(ctx, kind, params.Salts[kind])
		if err != nil {
			return nil, err
		}
		addr, err := uc.predictor.PredictAddress(ctx, salt, network)
		if err != nil {
			return nil, err
		}

		p := Prediction{Kind: kind, Salt: salt, Address: addr}
		recorded, err := uc.registry.GetProxy(ctx, network.ChainID, uc.config.Namespace, kind)
		switch {
		case err == nil:
			p.Recorded = recorded
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
		predictions = append(predictions, p)
	}
	return predictions, nil
}
