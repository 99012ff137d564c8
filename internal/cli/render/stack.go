package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// StackReport is the exported summary of a stack rollout
type StackReport struct {
	Network   string                  `json:"network" yaml:"network"`
	ChainID   uint64                  `json:"chainId" yaml:"chainId"`
	Namespace string                  `json:"namespace" yaml:"namespace"`
	Proxies   map[string]string       `json:"proxies" yaml:"proxies"`
	Reused    []string                `json:"reused,omitempty" yaml:"reused,omitempty"`
	Details   []*domain.DeployedProxy `json:"details" yaml:"details"`
}

// NewStackReport builds the exported report for result
func NewStackReport(result *usecase.StackResult) *StackReport {
	report := &StackReport{
		Namespace: result.Namespace,
		Proxies:   make(map[string]string),
		Reused:    lo.Map(result.Reused, func(k domain.ProxyKind, _ int) string { return k.String() }),
		Details:   result.Proxies(),
	}
	if result.Network != nil {
		report.Network = result.Network.Name
		report.ChainID = result.Network.ChainID
	}
	for _, p := range report.Details {
		report.Proxies[p.Kind.String()] = p.Address.Hex()
	}
	return report
}

// WriteReport writes report to path as JSON or YAML depending on its extension
func WriteReport(path string, report *StackReport) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(report, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(report)
	default:
		return fmt.Errorf("unsupported report format %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// StackRenderer prints the outcome of a stack rollout
type StackRenderer struct {
	out io.Writer
}

// NewStackRenderer creates a new stack renderer
func NewStackRenderer(out io.Writer) *StackRenderer {
	return &StackRenderer{out: out}
}

// Render prints a short summary below the per-proxy report lines
func (r *StackRenderer) Render(result *usecase.StackResult) error {
	if result == nil {
		fmt.Fprintln(r.out, FormatWarning("Deployment cancelled"))
		return nil
	}

	title := cases.Title(language.English)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s stack ready on %s", title.String(result.Namespace), networkName(result))))

	for _, p := range result.Proxies() {
		note := ""
		if lo.Contains(result.Reused, p.Kind) {
			note = color.New(color.Faint).Sprint(" (reused)")
		}
		fmt.Fprintf(r.out, "  %-20s %s%s\n", p.Kind.LogicalName(), p.Address.Hex(), note)
	}
	return nil
}

func networkName(result *usecase.StackResult) string {
	if result.Network == nil {
		return "unknown network"
	}
	return result.Network.Name
}
