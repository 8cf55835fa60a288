package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/artisanexperiences/fieldcheck/internal/rules"
)

var fieldNamePattern = rules.Params{"pattern": `^[A-Za-z_][A-Za-z0-9_.-]*$`}

// PromptFieldNames asks for a comma separated list of field names.
func PromptFieldNames() ([]string, error) {
	var raw string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Fields to validate").
				Description("Comma separated, e.g. login, password, email").
				Placeholder("login, password").
				Value(&raw).
				Validate(validateFieldNames),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return nil, NormalizeAbort(err)
	}

	return SplitFieldNames(raw), nil
}

// SplitFieldNames splits a comma separated list, dropping blanks.
func SplitFieldNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func validateFieldNames(raw string) error {
	names := SplitFieldNames(raw)
	if len(names) == 0 {
		return errors.New("enter at least one field name")
	}
	check, _ := rules.Default().Lookup(rules.Regex)
	for _, name := range names {
		if !check(name, name, fieldNamePattern) {
			return fmt.Errorf("%q is not a valid field name", name)
		}
	}
	return nil
}

// ConfirmOverwrite asks before replacing an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite existing configuration?").
				Description(path).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return false, NormalizeAbort(err)
	}

	return confirmed, nil
}
