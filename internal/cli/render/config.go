package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{out: out}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return relPath
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintf(r.out, "❌ No %s file found\n", getRelativePath(result.ConfigPath))
		fmt.Fprintf(r.out, "⚠️  Without config, commands use the 'default' namespace and need --network\n")
		return nil
	}

	fmt.Fprintln(r.out, "📋 Current config:")
	fmt.Fprintf(r.out, "Namespace: %s\n", result.Config.Namespace)

	network := result.Config.Network
	if network == "" {
		network = "(not set)"
	}
	fmt.Fprintf(r.out, "Network:   %s\n", network)

	fmt.Fprintf(r.out, "\n📁 config file: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(change *usecase.ConfigChange) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", change.Key, change.NewValue)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(change.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(change *usecase.ConfigChange) error {
	if change.NewValue != "" {
		fmt.Fprintf(r.out, "✅ Reset %s to: %s\n", change.Key, change.NewValue)
	} else {
		fmt.Fprintf(r.out, "✅ Removed %s from config\n", change.Key)
	}
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(change.ConfigPath))
	return nil
}
