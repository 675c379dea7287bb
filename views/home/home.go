package home

import (
	"strings"

	"domestic-wallet/config"
	"domestic-wallet/styles"

	"github.com/charmbracelet/huh"
)

// NewForm creates the main menu bound to selection
func NewForm(selection *config.Page, connected bool) *huh.Form {
	*selection = config.PageHome

	settingsLabel := "Settings"
	if !connected {
		settingsLabel = "Settings (connect wallet)"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[config.Page]().
				Options(
					huh.NewOption(settingsLabel, config.PageSettings),
					huh.NewOption("Accounts", config.PageAccounts),
					huh.NewOption("RPC Endpoints", config.PageEndpoints),
				).
				Title("Main Menu").
				Description("Select a view to navigate to").
				Value(selection),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// Render renders the home view
func Render(form *huh.Form) string {
	if form != nil {
		return form.View()
	}
	return "Loading menu..."
}

// Nav returns the navigation bar for home view
func Nav(width int, connected bool) string {
	keys := []string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " go",
	}
	if connected {
		keys = append(keys, styles.Key("d")+" disconnect")
	} else {
		keys = append(keys, styles.Key("c")+" connect")
	}
	keys = append(keys,
		styles.Key("l")+" log",
		styles.Key("q")+" quit",
	)

	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}
