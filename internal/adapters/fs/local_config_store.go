package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// LocalConfigFile is read by viper as the lowest priority override layer
const LocalConfigFile = "config.local.json"

// LocalConfigStore keeps local defaults in .deployer/config.local.json
type LocalConfigStore struct {
	path string
}

// NewLocalConfigStore creates a local config store rooted at the runtime data dir
func NewLocalConfigStore(cfg *config.RuntimeConfig) *LocalConfigStore {
	return &LocalConfigStore{path: filepath.Join(cfg.DataDir, LocalConfigFile)}
}

// Exists checks if the config file exists
func (s *LocalConfigStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the configuration. A missing file yields the defaults.
func (s *LocalConfigStore) Load(ctx context.Context) (*config.LocalConfig, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return config.DefaultLocalConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	local := config.DefaultLocalConfig()
	if err := json.Unmarshal(data, local); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if local.Namespace == "" {
		local.Namespace = config.DefaultNamespace
	}
	return local, nil
}

// Save writes the configuration
func (s *LocalConfigStore) Save(ctx context.Context, local *config.LocalConfig) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(local, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the path to the config file
func (s *LocalConfigStore) Path() string {
	return s.path
}

var _ usecase.LocalConfigStore = (*LocalConfigStore)(nil)
