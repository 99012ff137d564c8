package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// DeployerFileName is the project level deployer configuration file
const DeployerFileName = "deployer.toml"

// loadDeployerConfig loads deployer.toml. A missing file yields an empty config.
func loadDeployerConfig(projectRoot string) (*config.DeployerConfig, error) {
	cfg := &config.DeployerConfig{}
	path := filepath.Join(projectRoot, DeployerFileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		normalizeDeployerConfig(cfg)
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DeployerFileName, err)
	}

	normalizeDeployerConfig(cfg)

	// Expand environment variables in account and network fields
	for name, acct := range cfg.Accounts {
		acct.PrivateKey = os.ExpandEnv(acct.PrivateKey)
		acct.Address = os.ExpandEnv(acct.Address)
		cfg.Accounts[name] = acct
	}
	for name, in := range cfg.Networks {
		in.Deposits = os.ExpandEnv(in.Deposits)
		in.Settings = os.ExpandEnv(in.Settings)
		in.Operators = os.ExpandEnv(in.Operators)
		in.VRC = os.ExpandEnv(in.VRC)
		in.ValidatorsRegistry = os.ExpandEnv(in.ValidatorsRegistry)
		cfg.Networks[name] = in
	}
	cfg.Proxy.CreateX = os.ExpandEnv(cfg.Proxy.CreateX)

	return cfg, nil
}

func normalizeDeployerConfig(cfg *config.DeployerConfig) {
	if cfg.Accounts == nil {
		cfg.Accounts = make(map[string]config.AccountConfig)
	}
	if cfg.Namespace == nil {
		cfg.Namespace = make(map[string]config.NamespaceConfig)
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkInputs)
	}
}
