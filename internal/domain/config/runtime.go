package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Namespace string   // Selects the sender and salt entropy prefix
	Network   *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	AssumeYes      bool // Skip broadcast confirmation
	Timeout        time.Duration
	Confirmations  uint64

	// Resolved configurations
	FoundryConfig  *FoundryConfig
	DeployerConfig *DeployerConfig
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// IsLocal reports whether the network points at a development node
func (n *Network) IsLocal() bool {
	if n == nil {
		return false
	}
	switch n.ChainID {
	case 31337, 1337:
		return true
	}
	return false
}

// Inputs returns the configured dependency addresses for the active network
func (c *RuntimeConfig) Inputs() NetworkInputs {
	if c.DeployerConfig == nil || c.Network == nil {
		return NetworkInputs{}
	}
	return c.DeployerConfig.Networks[c.Network.Name]
}
