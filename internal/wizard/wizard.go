package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// Run executes the interactive wizard and returns the user's answers.
func Run(detection DetectionResult) (*WizardAnswers, error) {
	answers := &WizardAnswers{
		Output:      "inventory.yml",
		LogLevel:    "warn",
		Concurrency: 1,
	}

	var hints []string
	if len(detection.Inputs) > 0 {
		hints = append(hints, fmt.Sprintf("Host exports found: %s", strings.Join(detection.Inputs, ", ")))
	}
	if detection.Credentials != "" {
		hints = append(hints, fmt.Sprintf("CMDB credentials found: %s", detection.Credentials))
	}

	desc := "Path to a CSV (with a Name column) or JSON host export."
	if len(hints) > 0 {
		desc += "\n\nAuto-detected:\n  " + strings.Join(hints, "\n  ")
	}

	// Step 1: Input and service
	var inputField huh.Field
	if len(detection.Inputs) > 1 {
		answers.Input = detection.Inputs[0]
		opts := make([]huh.Option[string], 0, len(detection.Inputs))
		for _, in := range detection.Inputs {
			opts = append(opts, huh.NewOption(in, in))
		}
		inputField = huh.NewSelect[string]().
			Title("Host export").
			Description(desc).
			Options(opts...).
			Value(&answers.Input)
	} else {
		if len(detection.Inputs) == 1 {
			answers.Input = detection.Inputs[0]
		}
		inputField = huh.NewInput().
			Title("Host export").
			Description(desc).
			Value(&answers.Input).
			Validate(required("input"))
	}

	var groups []*huh.Group
	groups = append(groups, huh.NewGroup(
		inputField,
		huh.NewInput().
			Title("Service name").
			Description("Top-level group; its uppercase form becomes the service_name variable").
			Value(&answers.Service).
			Validate(required("service name")),
		huh.NewInput().
			Title("Output inventory path").
			Value(&answers.Output),
	))

	// Step 2: Optional CMDB lookup
	answers.EnableLookup = detection.Credentials != ""
	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Title("Configure CMDB lookups by MAC address?").
			Value(&answers.EnableLookup),
	))

	if err := huh.NewForm(groups...).Run(); err != nil {
		return nil, err
	}

	if answers.EnableLookup {
		answers.Credentials = detection.Credentials
		concurrency := strconv.Itoa(answers.Concurrency)
		if err := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Credentials file").
				Description("Three lines: endpoint, username, password").
				Placeholder("credentials.txt").
				Value(&answers.Credentials),
			huh.NewInput().
				Title("Concurrent lookups").
				Value(&concurrency).
				Validate(positiveInt),
		)).Run(); err != nil {
			return nil, err
		}
		answers.Concurrency, _ = strconv.Atoi(concurrency)
	}

	return answers, nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("enter a whole number of at least 1")
	}
	return nil
}
