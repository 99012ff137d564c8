package usecase

import (
	"context"
	"sort"

	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// namespace and chain come from RuntimeConfig
	Kind domain.ProxyKind
	// AllNamespaces lists every namespace instead of the active one
	AllNamespaces bool
}

// ListDeployments is the use case for listing recorded proxies
type ListDeployments struct {
	config   *config.RuntimeConfig
	registry DeploymentRegistry
	sink     ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, registry DeploymentRegistry, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config:   cfg,
		registry: registry,
		sink:     sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) ([]*domain.DeployedProxy, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments from registry",
		Spinner: true,
	})

	filter := domain.ProxyFilter{Kind: params.Kind}
	if !params.AllNamespaces {
		filter.Namespace = uc.config.Namespace
	}
	if uc.config.Network != nil {
		filter.ChainID = uc.config.Network.ChainID
	}

	proxies, err := uc.registry.ListProxies(ctx, filter)
	if err != nil {
		return nil, err
	}

	sortProxies(proxies)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(proxies),
		Total:   len(proxies),
		Message: "Deployments loaded",
	})

	return proxies, nil
}

// sortProxies orders by chain, namespace, then deployment order
func sortProxies(proxies []*domain.DeployedProxy) {
	rank := map[domain.ProxyKind]int{}
	for i, kind := range domain.AllProxyKinds() {
		rank[kind] = i
	}
	sort.SliceStable(proxies, func(i, j int) bool {
		a, b := proxies[i], proxies[j]
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		return rank[a.Kind] < rank[b.Kind]
	})
}
