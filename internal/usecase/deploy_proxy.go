package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// DeployProxy creates one proxy through the injected creation service and
// reports its address
type DeployProxy struct {
	config   *config.RuntimeConfig
	creator  ProxyCreationService
	reporter DeploymentReporter
	log      *slog.Logger
	now      func() time.Time
}

// NewDeployProxy creates a new DeployProxy use case
func NewDeployProxy(
	cfg *config.RuntimeConfig,
	creator ProxyCreationService,
	reporter DeploymentReporter,
	log *slog.Logger,
) *DeployProxy {
	return &DeployProxy{
		config:   cfg,
		creator:  creator,
		reporter: reporter,
		log:      log,
		now:      time.Now,
	}
}

// Run deploys the proxy described by req. Errors from the creation service
// are returned as is and nothing is reported.
func (uc *DeployProxy) Run(ctx context.Context, req domain.ProxyDeploymentRequest) (*domain.DeployedProxy, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	uc.log.Debug("creating proxy",
		"alias", req.Alias,
		"initializer", req.Initializer,
		"salt", req.Salt.Hex(),
		"network", req.Network.Name,
	)

	receipt, err := uc.creator.Create(ctx, req.Alias, req.Initializer, req.Args, req.Salt, req.Network)
	if err != nil {
		return nil, err
	}

	uc.reporter.ReportDeployed(ctx, req.Kind.LogicalName(), receipt.Address)
	uc.log.Info("proxy deployed", "alias", req.Alias, "address", receipt.Address.Hex(), "tx", receipt.TxHash.Hex())

	chainID := receipt.ChainID
	if chainID == 0 {
		chainID = req.Network.ChainID
	}

	return &domain.DeployedProxy{
		Kind:           req.Kind,
		Alias:          req.Alias,
		Address:        receipt.Address,
		Implementation: receipt.Implementation,
		Salt:           req.Salt,
		ChainID:        chainID,
		Namespace:      uc.config.Namespace,
		TxHash:         receipt.TxHash,
		InitArgs:       lo.Map(req.Args, func(arg any, _ int) string { return formatArg(arg) }),
		CreatedAt:      uc.now().UTC(),
	}, nil
}

// Deploy builds a request from typed initializer args on the active network
func (uc *DeployProxy) Deploy(ctx context.Context, args domain.InitializerArgs, salt domain.Salt) (*domain.DeployedProxy, error) {
	req, err := domain.NewProxyDeploymentRequest(args, salt, uc.config.Network)
	if err != nil {
		return nil, err
	}
	return uc.Run(ctx, req)
}

// DeployPools deploys the Pools proxy
func (uc *DeployProxy) DeployPools(ctx context.Context, args domain.CollectorArgs, salt domain.Salt) (*domain.DeployedProxy, error) {
	return uc.Deploy(ctx, domain.PoolsArgs{CollectorArgs: args}, salt)
}

// DeployPrivates deploys the Privates proxy
func (uc *DeployProxy) DeployPrivates(ctx context.Context, args domain.CollectorArgs, salt domain.Salt) (*domain.DeployedProxy, error) {
	return uc.Deploy(ctx, domain.PrivatesArgs{CollectorArgs: args}, salt)
}

// DeployValidatorsRegistry deploys the ValidatorsRegistry proxy
func (uc *DeployProxy) DeployValidatorsRegistry(ctx context.Context, args domain.ValidatorsRegistryArgs, salt domain.Salt) (*domain.DeployedProxy, error) {
	return uc.Deploy(ctx, args, salt)
}

func formatArg(arg any) string {
	switch v := arg.(type) {
	case common.Address:
		return v.Hex()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
