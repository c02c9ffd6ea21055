package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptOptional prompts for a free text field that may stay empty.
// An empty answer returns nil so the caller can tell "not given" apart.
func PromptOptional(message string) (*string, error) {
	var text string

	err := huh.NewInput().
		Title(message).
		Description("Leave empty to skip").
		Value(&text).
		Run()
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	return &text, nil
}

// PromptAmount prompts for an amount with custom validation
func PromptAmount(message string, helpText string, validator func(string) error) (string, error) {
	var amount string

	input := huh.NewInput().
		Title(message).
		Description(helpText).
		Value(&amount)

	if validator != nil {
		input.Validate(validator)
	}

	err := input.Run()
	return amount, err
}

// PromptConfirm prompts for yes/no confirmation
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	confirm := defaultValue

	err := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()

	return confirm, err
}

// PromptDate prompts for a date in YYYY-MM-DD format
func PromptDate(message string, defaultDate string, helpText string) (string, error) {
	var date string

	err := huh.NewInput().
		Title(message).
		Description(helpText).
		Placeholder(defaultDate).
		Value(&date).
		Run()

	if err != nil {
		return "", err
	}

	// If user pressed enter without typing, use the placeholder/default
	if date == "" {
		return defaultDate, nil
	}
	return date, nil
}

// PromptInput prompts for a generic text input with optional default and validator
func PromptInput(message string, defaultValue string, validator func(string) error) (string, error) {
	var inputVal string

	input := huh.NewInput().
		Title(message).
		Value(&inputVal)

	if defaultValue != "" {
		input.Placeholder(defaultValue)
	}

	if validator != nil {
		input.Validate(validator)
	}

	err := input.Run()
	if err != nil {
		return "", err
	}

	if inputVal == "" && defaultValue != "" {
		return defaultValue, nil
	}

	return inputVal, nil
}

// Option is a select entry whose label differs from its value.
type Option struct {
	Label string
	Value string
}

// PromptSelect prompts for a selection from a list of options
func PromptSelect(message string, options []string, defaultOption string) (string, error) {
	opts := make([]Option, 0, len(options))
	for _, o := range options {
		opts = append(opts, Option{Label: o, Value: o})
	}
	return PromptSelectOption(message, opts, defaultOption)
}

// PromptSelectOption is PromptSelect over labelled values.
func PromptSelectOption(message string, options []Option, defaultValue string) (string, error) {
	selected := defaultValue

	var opts []huh.Option[string]
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}

	err := huh.NewSelect[string]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Height(10).
		Run()
	return selected, err
}
