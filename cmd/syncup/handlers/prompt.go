package handlers

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// stdinIsTTY reports whether interactive prompts are possible.
// Variable so tests can force non-interactive behavior.
var stdinIsTTY = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptProjectID interactively asks for the project ID.
func promptProjectID() (string, error) {
	var projectID string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project ID").
				Description("The cloud project that will own all resources").
				Value(&projectID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("project ID must not be empty")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("project prompt failed: %w", err)
	}
	return strings.TrimSpace(projectID), nil
}

// confirm asks a yes/no question before mutating resources. In
// non-interactive environments the operator must pass --yes instead.
func confirm(title string) (bool, error) {
	if !stdinIsTTY() {
		return false, fmt.Errorf("confirmation required; re-run with --yes in non-interactive environments")
	}

	var approved bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&approved),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return approved, nil
}

// resolveProjectID fills an empty project ID from an interactive prompt
// when possible.
func resolveProjectID(projectID string) (string, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID != "" {
		return projectID, nil
	}
	if !stdinIsTTY() {
		return "", fmt.Errorf("project ID must not be empty (use --project)")
	}
	return promptProjectID()
}
