package usecase

import (
	"context"

	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	ChainID uint64
	Error   error
	// Missing names the deployer.toml inputs not configured for this network
	Missing []string
}

// Ready reports whether the stack can be deployed without address flags
func (s NetworkStatus) Ready() bool {
	return s.Error == nil && len(s.Missing) == 0
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	names := uc.resolver.Names()

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		status := NetworkStatus{
			Name:    name,
			Missing: uc.missingInputs(name),
		}

		info, err := uc.resolver.Resolve(name)
		if err != nil {
			status.Error = err
		} else {
			status.ChainID = info.ChainID
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}

func (uc *ListNetworks) missingInputs(name string) []string {
	var in config.NetworkInputs
	if uc.config.DeployerConfig != nil {
		in = uc.config.DeployerConfig.Networks[name]
	}

	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"deposits", in.Deposits},
		{"settings", in.Settings},
		{"operators", in.Operators},
		{"vrc", in.VRC},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}
