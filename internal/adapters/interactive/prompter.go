package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// Prompter asks the operator through promptui
type Prompter struct {
	nonInteractive bool
}

// NewPrompter creates a Prompter
func NewPrompter(cfg *config.RuntimeConfig) *Prompter {
	return &Prompter{nonInteractive: cfg.NonInteractive}
}

// Confirm asks a yes/no question. Non-interactive runs always answer yes.
func (p *Prompter) Confirm(_ context.Context, label string) (bool, error) {
	if p.nonInteractive {
		return true, nil
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// SelectChain lets the operator pick one of the supported chains
func (p *Prompter) SelectChain(_ context.Context, chains []config.Chain) (config.Chain, error) {
	if p.nonInteractive {
		return config.Chain{}, fmt.Errorf("no chain given: use --chain in non-interactive mode")
	}
	if len(chains) == 0 {
		return config.Chain{}, fmt.Errorf("no chains to select from")
	}

	options := make([]string, len(chains))
	for i, chain := range chains {
		options[i] = fmt.Sprintf("%s (%s, %d)", chain.DisplayName, chain.Name, chain.ID)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     "Select chain",
		Items:     options,
		Templates: templates,
		Size:      10,
		Searcher:  fuzzySearcher(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return config.Chain{}, fmt.Errorf("selection cancelled: %w", err)
	}
	return chains[index], nil
}

// fuzzySearcher matches by substring first and falls back to a fuzzy match
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

// Ensure Prompter implements the prompt ports
var (
	_ usecase.Confirmer     = (*Prompter)(nil)
	_ usecase.ChainSelector = (*Prompter)(nil)
)
