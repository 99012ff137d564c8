package interactive

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/stakewise/proxy-deployer/internal/adapters/senders"
	"github.com/stakewise/proxy-deployer/internal/domain/config"
)

// Selector handles interactive selection
type Selector struct {
	config *config.RuntimeConfig
}

// NewSelector creates a new selector
func NewSelector(cfg *config.RuntimeConfig) *Selector {
	return &Selector{config: cfg}
}

// Select asks the operator to pick one of options and returns its index
func (s *Selector) Select(label string, options []string) (int, error) {
	if s.config.NonInteractive {
		return 0, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	switch len(options) {
	case 0:
		return 0, fmt.Errorf("no options provided for selection")
	case 1:
		return 0, nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     label,
		Items:     options,
		Templates: templates,
		Size:      10,
		Searcher:  fuzzySearcher(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}
	return index, nil
}

// fuzzySearcher creates a fuzzy search function for promptui
func fuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ senders.Selector = (*Selector)(nil)
