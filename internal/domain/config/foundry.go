package config

// FoundryConfig represents the parts of foundry.toml this tool reads
type FoundryConfig struct {
	Profile      map[string]ProfileConfig `toml:"profile"`
	RpcEndpoints map[string]string        `toml:"rpc_endpoints"`
}

// ProfileConfig represents a profile's foundry configuration
type ProfileConfig struct {
	SrcPath string `toml:"src,omitempty"`
	OutPath string `toml:"out,omitempty"`
}

// ArtifactsDir returns the compiled artifacts directory for profile, relative to the project root
func (c *FoundryConfig) ArtifactsDir(profile string) string {
	if c != nil {
		if p, ok := c.Profile[profile]; ok && p.OutPath != "" {
			return p.OutPath
		}
		if p, ok := c.Profile["default"]; ok && p.OutPath != "" {
			return p.OutPath
		}
	}
	return "out"
}
