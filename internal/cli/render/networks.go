package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList prints every foundry.toml network with its deployer.toml readiness
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in foundry.toml [rpc_endpoints]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	faint := color.New(color.Faint)
	for _, network := range result.Networks {
		switch {
		case network.Error != nil:
			fmt.Fprintf(r.out, "  ❌ %s - Error: %v\n", network.Name, network.Error)
		case network.Ready():
			fmt.Fprintf(r.out, "  ✅ %s - Chain ID: %d\n", network.Name, network.ChainID)
		default:
			fmt.Fprintf(r.out, "  ⚠️  %s - Chain ID: %d %s\n", network.Name, network.ChainID,
				faint.Sprintf("(missing %s)", strings.Join(network.Missing, ", ")))
		}
	}

	return nil
}
