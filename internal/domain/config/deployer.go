package config

// SenderType names how an account signs transactions
type SenderType string

var (
	SenderTypePrivateKey SenderType = "private_key"
)

// AccountConfig represents a named signing entity in [accounts.*] sections
type AccountConfig struct {
	Type       SenderType `toml:"type"`
	Address    string     `toml:"address,omitempty"`
	PrivateKey string     `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
}

// NamespaceConfig represents a [namespace.*] section in deployer.toml
type NamespaceConfig struct {
	Profile string `toml:"profile,omitempty"`
	Sender  string `toml:"sender,omitempty"`
}

// ProxyConfig represents the [proxy] section: how proxies are created
type ProxyConfig struct {
	Artifact string `toml:"artifact,omitempty"` // ERC1967 proxy artifact name
	CreateX  string `toml:"createx,omitempty"`  // CreateX factory address
}

// SaltsConfig holds per-proxy salts. Values are either 32 byte hex salts or
// free-form entropy strings.
type SaltsConfig struct {
	Pools              string `toml:"pools,omitempty" json:"pools,omitempty"`
	Privates           string `toml:"privates,omitempty" json:"privates,omitempty"`
	ValidatorsRegistry string `toml:"validators_registry,omitempty" json:"validatorsRegistry,omitempty"`
}

// NetworkInputs are the already deployed dependencies on one network
type NetworkInputs struct {
	Deposits           string      `toml:"deposits,omitempty" json:"deposits,omitempty"`
	Settings           string      `toml:"settings,omitempty" json:"settings,omitempty"`
	Operators          string      `toml:"operators,omitempty" json:"operators,omitempty"`
	VRC                string      `toml:"vrc,omitempty" json:"vrc,omitempty"`
	ValidatorsRegistry string      `toml:"validators_registry,omitempty" json:"validatorsRegistry,omitempty"`
	Salts              SaltsConfig `toml:"salts" json:"salts"`
}

// DeployerConfig represents deployer.toml
type DeployerConfig struct {
	Accounts  map[string]AccountConfig   `toml:"accounts"`
	Namespace map[string]NamespaceConfig `toml:"namespace"`
	Networks  map[string]NetworkInputs   `toml:"networks"`
	Proxy     ProxyConfig                `toml:"proxy"`
}

// DefaultCreateXAddress is the canonical CreateX deployment shared by all EVM chains
const DefaultCreateXAddress = "0xba5Ed099633D3B313e4D5F7bdc1305d3c28ba5Ed"

// DefaultProxyArtifact is the OpenZeppelin ERC1967 proxy artifact name
const DefaultProxyArtifact = "ERC1967Proxy"

// ProxyArtifact returns the configured proxy artifact name
func (c *DeployerConfig) ProxyArtifact() string {
	if c == nil || c.Proxy.Artifact == "" {
		return DefaultProxyArtifact
	}
	return c.Proxy.Artifact
}

// CreateXAddress returns the configured CreateX factory address
func (c *DeployerConfig) CreateXAddress() string {
	if c == nil || c.Proxy.CreateX == "" {
		return DefaultCreateXAddress
	}
	return c.Proxy.CreateX
}
