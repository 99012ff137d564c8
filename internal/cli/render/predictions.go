package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// PredictionsRenderer renders predicted proxy addresses
type PredictionsRenderer struct {
	out io.Writer
}

// NewPredictionsRenderer creates a new predictions renderer
func NewPredictionsRenderer(out io.Writer) *PredictionsRenderer {
	return &PredictionsRenderer{out: out}
}

// Render prints a table of kind, salt and address with the registry status
func (r *PredictionsRenderer) Render(network *config.Network, predictions []usecase.Prediction) error {
	if network != nil {
		fmt.Fprintf(r.out, "%s %s (chain %d)\n\n", color.New(color.Bold).Sprint("Network:"), network.Name, network.ChainID)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"Contract", "Address", "Salt", "Status"})

	for _, p := range predictions {
		t.AppendRow(table.Row{
			proxyNameStyle.Sprint(p.Kind.LogicalName()),
			p.Address.Hex(),
			timestampStyle.Sprint(p.Salt.Hex()),
			predictionStatus(p),
		})
	}

	t.Render()
	return nil
}

func predictionStatus(p usecase.Prediction) string {
	switch {
	case p.Recorded == nil:
		return color.New(color.FgYellow).Sprint("not deployed")
	case p.Recorded.Address == p.Address:
		return color.New(color.FgGreen).Sprint("deployed")
	default:
		return color.New(color.FgRed).Sprintf("recorded at %s", p.Recorded.Address.Hex())
	}
}
