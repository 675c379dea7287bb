package status

import (
	"fmt"
	"strings"

	"domestic-wallet/config"
	"domestic-wallet/helpers"
	"domestic-wallet/styles"
	"domestic-wallet/wallet"

	"github.com/charmbracelet/lipgloss"
)

// Badge renders the one-line connection indicator used in the header
func Badge(s wallet.ConnectionState) string {
	switch s.Status() {
	case wallet.StatusConnecting:
		return lipgloss.NewStyle().Foreground(styles.CWarn).Bold(true).Render("○ Connecting...")
	case wallet.StatusConnected:
		return lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render("● ") +
			helpers.FadeString(helpers.ShortenAddr(s.Address), "#F25D94", "#EDFF82") +
			styles.Muted(" on "+helpers.ChainName(s.ChainID))
	default:
		return lipgloss.NewStyle().Foreground(styles.CDanger).Bold(true).Render("○ Not connected")
	}
}

// Render renders the connection details panel
func Render(s wallet.ConnectionState, wallets []config.WalletEntry, spinnerView string) string {
	h := styles.TitleStyle.Render("Wallet")

	if s.Address == "" {
		if s.IsConnecting {
			return h + "\n\n" + spinnerView + " waiting for the wallet provider…"
		}
		return h + "\n\n" + styles.Muted("No wallet connected.") + "\n" +
			styles.Muted("Open ") + styles.Key("Settings") + styles.Muted(" and press ") + styles.Key("Enter") + styles.Muted(" to connect.")
	}

	var nickname string
	for _, w := range wallets {
		if strings.EqualFold(w.Address, s.Address) {
			nickname = w.Name
			break
		}
	}

	// OSC 8 hyperlink to Etherscan
	etherscanURL := fmt.Sprintf("https://etherscan.io/address/%s", s.Address)
	addrStyle := lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true)
	sub := fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", etherscanURL, addrStyle.Render(s.Address))

	if nickname != "" {
		sub = lipgloss.NewStyle().Foreground(styles.CAccent2).Italic(true).Render("\""+nickname+"\"") + "  " + sub
	}

	ethLine := fmt.Sprintf("%s  %s",
		lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("ETH"),
		lipgloss.NewStyle().Foreground(styles.CText).Render(s.Balance),
	)
	chainLine := fmt.Sprintf("%s  %s",
		styles.Muted("Network"),
		lipgloss.NewStyle().Foreground(styles.CText).Render(fmt.Sprintf("%s (%s)", helpers.ChainName(s.ChainID), s.ChainID)),
	)

	lines := []string{h, sub, "", ethLine, chainLine}
	if s.IsConnecting {
		lines = append(lines, "", spinnerView+" switching account…")
	}
	return strings.Join(lines, "\n")
}
