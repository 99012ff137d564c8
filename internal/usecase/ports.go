package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// ProxyCreationService creates an initialized upgradeable proxy for a compiled
// contract alias. Implementations return *domain.DeploymentError on failure.
type ProxyCreationService interface {
	Create(ctx context.Context, alias, initializer string, args []any, salt domain.Salt, network *config.Network) (*domain.CreationReceipt, error)
}

// AddressPredictor computes where a proxy will land without broadcasting
type AddressPredictor interface {
	PredictAddress(ctx context.Context, salt domain.Salt, network *config.Network) (common.Address, error)
}

// DeploymentReporter records a deployed proxy for the operator
type DeploymentReporter interface {
	ReportDeployed(ctx context.Context, logicalName string, address common.Address)
}

// DeploymentRegistry persists deployed proxies
type DeploymentRegistry interface {
	SaveProxy(ctx context.Context, proxy *domain.DeployedProxy) error
	GetProxy(ctx context.Context, chainID uint64, namespace string, kind domain.ProxyKind) (*domain.DeployedProxy, error)
	ListProxies(ctx context.Context, filter domain.ProxyFilter) ([]*domain.DeployedProxy, error)
}

// SenderResolver resolves the account that signs for the active namespace
type SenderResolver interface {
	SenderAddress(ctx context.Context) (common.Address, error)
}

// NetworkResolver maps foundry.toml network names to networks
type NetworkResolver interface {
	Names() []string
	Resolve(name string) (*config.Network, error)
}

// LocalConfigStore persists local defaults for namespace and network
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, local *config.LocalConfig) error
	Path() string
}

// BroadcastConfirmer asks the operator before transactions are sent
type BroadcastConfirmer interface {
	ConfirmBroadcast(ctx context.Context, plan BroadcastPlan) (bool, error)
}

// BroadcastPlan summarizes the proxies about to be deployed
type BroadcastPlan struct {
	Network *config.Network
	Sender  common.Address
	Steps   []PlannedProxy
}

// PlannedProxy is one proxy of a broadcast plan
type PlannedProxy struct {
	Kind      domain.ProxyKind
	Salt      domain.Salt
	Predicted common.Address
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
