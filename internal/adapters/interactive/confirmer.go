package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// Confirmer shows the broadcast plan and asks before sending transactions
type Confirmer struct {
	config  *config.RuntimeConfig
	out     io.Writer
	confirm func(label string) (bool, error)
}

// NewConfirmer creates a promptui backed confirmer
func NewConfirmer(cfg *config.RuntimeConfig) *Confirmer {
	return &Confirmer{config: cfg, out: os.Stderr, confirm: promptConfirm}
}

// ConfirmBroadcast prints plan and returns the operator's answer
func (c *Confirmer) ConfirmBroadcast(ctx context.Context, plan usecase.BroadcastPlan) (bool, error) {
	if c.config.AssumeYes {
		return true, nil
	}
	if c.config.NonInteractive {
		return false, fmt.Errorf("broadcast needs confirmation: pass --yes in non-interactive mode")
	}

	c.printPlan(plan)

	label := fmt.Sprintf("Broadcast %d proxy deployment(s)", len(plan.Steps))
	if plan.Network != nil {
		label += " to " + plan.Network.Name
	}
	return c.confirm(label)
}

func (c *Confirmer) printPlan(plan usecase.BroadcastPlan) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintln(c.out)
	if plan.Network != nil {
		fmt.Fprintf(c.out, "%s %s (chain %d)\n", bold.Sprint("Network:"), plan.Network.Name, plan.Network.ChainID)
	}
	fmt.Fprintf(c.out, "%s %s\n", bold.Sprint("Sender: "), plan.Sender.Hex())
	for _, step := range plan.Steps {
		fmt.Fprintf(c.out, "  %s %s %s\n",
			color.New(color.FgCyan).Sprintf("%-20s", step.Kind.LogicalName()),
			step.Predicted.Hex(),
			faint.Sprintf("salt %s", step.Salt.Hex()),
		)
	}
	fmt.Fprintln(c.out)
}

func promptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var _ usecase.BroadcastConfirmer = (*Confirmer)(nil)
