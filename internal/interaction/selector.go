// Where: internal/interaction/selector.go
// What: Interactive selection helpers using the huh library.
// Why: Keyboard-based selection when a command is run without arguments.
package interaction

import (
	"github.com/charmbracelet/huh"
)

// HuhPrompter implements the Prompter interface using the huh TUI library.
type HuhPrompter struct{}

func (p HuhPrompter) Select(title string, options []string) (string, error) {
	selectOptions := make([]SelectOption, len(options))
	for i, opt := range options {
		selectOptions[i] = SelectOption{Label: opt, Value: opt}
	}
	return p.SelectValue(title, selectOptions)
}

func (p HuhPrompter) SelectValue(title string, options []SelectOption) (string, error) {
	if len(options) == 0 {
		return "", nil
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value)
	}

	var selected string
	err := huh.NewSelect[string]().
		Title(title).
		Options(huhOptions...).
		Value(&selected).
		Run()
	if err != nil {
		return "", err
	}
	return selected, nil
}
