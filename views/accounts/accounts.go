package accounts

import (
	"errors"
	"fmt"
	"strings"

	"domestic-wallet/config"
	"domestic-wallet/helpers"
	"domestic-wallet/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the accounts view
func Nav(width int, adding bool) string {
	var left string
	if adding {
		left = strings.Join([]string{
			styles.Key("Tab") + " next field",
			styles.Key("Enter") + " next/save",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " move",
			styles.Key("Enter") + " activate",
			styles.Key("a") + " add",
			styles.Key("d") + " delete",
			styles.Key("r") + " revoke access",
			styles.Key("l") + " log",
			styles.Key("Esc") + " back",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// RenderList renders the account list. connected is the address the wallet is
// connected with, if any.
func RenderList(wallets []config.WalletEntry, selectedIdx int, connected string) string {
	if len(wallets) == 0 {
		return styles.Muted("No accounts added yet. Press 'a' to add one.")
	}

	var listItems []string
	for i, wallet := range wallets {
		var itemStyle lipgloss.Style
		var marker string
		var fullAddr, shortAddr string

		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			itemStyle = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
			fullAddr = lipgloss.NewStyle().Foreground(styles.CText).Render(wallet.Address)
			shortAddr = helpers.ShortenAddr(wallet.Address)
		} else {
			marker = "  "
			itemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e1a2aa"))
			fullAddr = helpers.FadeString(wallet.Address, "#7D5AFC", "#FF87D7")
			shortAddr = helpers.FadeString(helpers.ShortenAddr(wallet.Address), "#F25D94", "#EDFF82")
		}

		if wallet.Name != "" {
			shortAddr = wallet.Name + " - " + shortAddr
		}
		if wallet.Active {
			shortAddr = "✓ " + shortAddr
		}
		line := marker + itemStyle.Render(shortAddr)
		if connected != "" && strings.EqualFold(connected, wallet.Address) {
			line += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render("● connected")
		}
		listItems = append(listItems, line+"\n  "+fullAddr)
	}

	return strings.Join(listItems, "\n\n")
}

// Render renders the full accounts view
func Render(wallets []config.WalletEntry, selectedIdx int, connected string, authorized bool) string {
	header := styles.TitleStyle.Render("Accounts")
	subtitle := styles.Muted("Accounts the wallet provider can authorize")

	access := styles.Muted("Access: not authorized, connect from Settings")
	if authorized {
		access = lipgloss.NewStyle().Foreground(styles.CAccent).Render("Access: authorized")
	}

	statusBar := styles.Muted(fmt.Sprintf("%d accounts", len(wallets)))

	return header + "\n" + subtitle + "\n" + access + "\n\n" + RenderList(wallets, selectedIdx, connected) + "\n\n" + statusBar
}

// NewForm builds the add-account form bound to addr and name.
// exists reports whether an address is already in the list.
func NewForm(addr, name *string, exists func(string) bool) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Address").
				Description("Paste a public address (Ctrl+v to paste)").
				Placeholder("0x…").
				CharLimit(42).
				Value(addr).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if !helpers.IsValidEthAddress(s) {
						return errors.New("invalid ethereum address")
					}
					if exists != nil && exists(s) {
						return errors.New("account already added")
					}
					return nil
				}),
			huh.NewInput().
				Title("Nickname").
				Placeholder("Optional nickname").
				CharLimit(50).
				Value(name),
		).Title("Add Account"),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}
