package tasks

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// Add form values.
var (
	TempTitle string
	TempText  string
)

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// CreateForm builds the add task form.
func CreateForm() *huh.Form {
	TempTitle = ""
	TempText = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task Title").
				Placeholder("Buy milk").
				Validate(required("title")).
				Value(&TempTitle),
			huh.NewText().
				Title("Task Description").
				Placeholder("2% milk, 1 gallon").
				Lines(4).
				Validate(required("description")).
				Value(&TempText),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}
