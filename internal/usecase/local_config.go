package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	store LocalConfigStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(store LocalConfigStore) *ShowConfig {
	return &ShowConfig{store: store}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Config:     local,
		ConfigPath: uc.store.Path(),
		Exists:     uc.store.Exists(),
	}, nil
}

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// ConfigChange describes an updated config key
type ConfigChange struct {
	Key        config.ConfigKey
	OldValue   string
	NewValue   string
	ConfigPath string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	store    LocalConfigStore
	networks NetworkResolver
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigStore, networks NetworkResolver) *SetConfig {
	return &SetConfig{store: store, networks: networks}
}

// Run sets a key. Networks must exist in foundry.toml [rpc_endpoints].
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*ConfigChange, error) {
	key, err := config.ParseConfigKey(params.Key)
	if err != nil {
		return nil, err
	}

	value := strings.TrimSpace(params.Value)
	if value == "" {
		return nil, fmt.Errorf("value for %s cannot be empty, use 'config remove %s' instead", key, key)
	}
	if key == config.ConfigKeyNetwork {
		names := uc.networks.Names()
		if !lo.Contains(names, value) {
			return nil, fmt.Errorf("network '%s' not found in foundry.toml [rpc_endpoints] (available: %s)", value, strings.Join(names, ", "))
		}
	}

	return updateLocalConfig(ctx, uc.store, key, value)
}

// RemoveConfig is a use case for removing configuration values
type RemoveConfig struct {
	store LocalConfigStore
}

// NewRemoveConfig creates a new RemoveConfig use case
func NewRemoveConfig(store LocalConfigStore) *RemoveConfig {
	return &RemoveConfig{store: store}
}

// Run resets key to its default. Removing namespace reverts it to "default".
func (uc *RemoveConfig) Run(ctx context.Context, key string) (*ConfigChange, error) {
	if !uc.store.Exists() {
		return nil, fmt.Errorf("no config file found at %s", uc.store.Path())
	}

	parsed, err := config.ParseConfigKey(key)
	if err != nil {
		return nil, err
	}

	return updateLocalConfig(ctx, uc.store, parsed, "")
}

func updateLocalConfig(ctx context.Context, store LocalConfigStore, key config.ConfigKey, value string) (*ConfigChange, error) {
	local, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	change := &ConfigChange{
		Key:        key,
		OldValue:   local.Get(key),
		ConfigPath: store.Path(),
	}
	local.Set(key, value)
	change.NewValue = local.Get(key)

	if err := store.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return change, nil
}
