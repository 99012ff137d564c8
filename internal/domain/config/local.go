package config

import (
	"fmt"
	"strings"
)

// LocalConfig holds per-checkout defaults stored in .deployer/config.local.json
type LocalConfig struct {
	Namespace string `json:"namespace"`
	Network   string `json:"network,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNamespace ConfigKey = "namespace"
	ConfigKeyNetwork   ConfigKey = "network"
)

// DefaultNamespace is used when no namespace is configured
const DefaultNamespace = "default"

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{Namespace: DefaultNamespace}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{ConfigKeyNamespace, ConfigKeyNetwork}
}

// ParseConfigKey normalizes a key such as "NS" to namespace
func ParseConfigKey(key string) (ConfigKey, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "namespace", "ns":
		return ConfigKeyNamespace, nil
	case "network", "net":
		return ConfigKeyNetwork, nil
	}
	return "", fmt.Errorf("unknown config key: %s (available: namespace (ns), network (net))", key)
}

// Get returns the value stored under key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNamespace:
		return c.Namespace
	case ConfigKeyNetwork:
		return c.Network
	}
	return ""
}

// Set stores value under key. An empty value resets the key to its default.
func (c *LocalConfig) Set(key ConfigKey, value string) {
	switch key {
	case ConfigKeyNamespace:
		if value == "" {
			value = DefaultNamespace
		}
		c.Namespace = value
	case ConfigKeyNetwork:
		c.Network = value
	}
}
