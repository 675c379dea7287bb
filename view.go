package main

import (
	"strings"

	"domestic-wallet/config"
	"domestic-wallet/helpers"
	"domestic-wallet/styles"
	"domestic-wallet/views/accounts"
	"domestic-wallet/views/endpoints"
	"domestic-wallet/views/home"
	logview "domestic-wallet/views/log"
	"domestic-wallet/views/settings"
	"domestic-wallet/views/status"
	"domestic-wallet/views/toast"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m *model) renderDeleteDialog() string {
	msg := helpers.FadeString("Are you sure you want to delete "+m.dialog.label+"?", "#F25D94", "#EDFF82")
	question := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).Render(msg)

	// Apply active style to the selected button
	var okButton, cancelButton string
	if m.dialog.yes {
		okButton = activeButtonStyle.Render("Yes")
		cancelButton = buttonStyle.Render("No")
	} else {
		okButton = buttonStyle.MarginRight(2).Render("Yes")
		cancelButton = activeButtonStyle.MarginRight(0).Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, okButton, cancelButton)
	ui := lipgloss.JoinVertical(lipgloss.Center, question, buttons)

	// Center the dialog on screen
	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		dialogBoxStyle().Render(ui),
	)
}

func (m *model) globalHeader() string {
	availableWidth := helpers.Max(0, m.w-8) // Account for panel padding

	walletDisplay := status.Badge(m.conn)
	rpcDisplay := m.rpcBadge()

	titleText := lipgloss.NewStyle().
		Foreground(styles.CAccent).
		Bold(true).
		Render(helpers.FadeString("domestic wallet", "#7EE787", "#82CFFD"))

	walletWidth := lipgloss.Width(walletDisplay)
	rpcWidth := lipgloss.Width(rpcDisplay)
	titleWidth := lipgloss.Width(titleText)

	totalOtherWidth := walletWidth + rpcWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = walletDisplay + "\n" + titleText + "\n" + rpcDisplay
	} else {
		// Three-column layout: Wallet | Title (centered) | RPC
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		leftSpacer := strings.Repeat(" ", helpers.Max(1, leftPadding))
		rightSpacer := strings.Repeat(" ", helpers.Max(1, rightPadding))

		headerLine = walletDisplay + leftSpacer + titleText + rightSpacer + rpcDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(styles.CBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// rpcBadge shows the endpoint the provider is attached to
func (m *model) rpcBadge() string {
	statusIcon := "○"
	statusColor := styles.CDanger
	var statusText string

	switch {
	case m.prov == nil:
		statusText = "No RPC"
	case m.switching:
		statusColor = styles.CWarn
		statusText = "Connecting..."
	case m.endpointErr != "" || m.prov.URL() == "":
		statusText = "Connection Failed"
	default:
		statusIcon = "●"
		statusColor = styles.CAccent
		statusText = "Connected"
		for _, r := range m.cfg.RPCURLs {
			if r.URL == m.prov.URL() {
				statusText = r.Name
				break
			}
		}
	}

	return lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)
}

func (m *model) View() string {
	if m.dialog != nil {
		return m.renderDeleteDialog()
	}

	panel := styles.PanelStyle.Width(helpers.Max(0, m.w-2))
	headerPanel := panel.Render(m.globalHeader())

	var pageContent string
	var nav string

	switch m.activePage {
	case config.PageSettings:
		pageContent = panel.Render(m.settings.View(m.conn, m.spin.View()))
		nav = settings.Nav(m.w, m.conn.Connected(), m.settings.Editing())

	case config.PageAccounts:
		authorized := m.prov != nil && m.prov.Authorized()
		content := accounts.Render(m.cfg.Wallets, m.selectedWallet, m.conn.Address, authorized)
		if m.addForm != nil {
			content += "\n\n" + styles.PanelStyle.
				BorderForeground(styles.CAccent2).
				Render(m.addForm.View())
		}
		pageContent = panel.Render(content)
		nav = accounts.Nav(m.w, m.addForm != nil)

	case config.PageEndpoints:
		st := endpoints.Status{
			Switching:  m.switching,
			ChainID:    m.conn.ChainID,
			LastErrMsg: m.endpointErr,
		}
		if m.prov != nil {
			st.URL = m.prov.URL()
		}
		content := endpoints.Render(m.cfg.RPCURLs, m.selectedRPCIdx, st)
		if m.rpcForm != nil {
			content += "\n\n" + styles.PanelStyle.
				BorderForeground(styles.CAccent2).
				Render(m.rpcForm.View())
		}
		pageContent = panel.Render(content)
		nav = endpoints.Nav(m.w, m.endpointMode)

	default:
		menu := home.Render(m.homeForm)
		wallet := status.Render(m.conn, m.cfg.Wallets, m.spin.View())
		var content string
		if lipgloss.Width(menu)+lipgloss.Width(wallet)+6 > helpers.Max(0, m.w-8) {
			content = menu + "\n\n" + wallet
		} else {
			content = lipgloss.JoinHorizontal(lipgloss.Top, menu, "      ", wallet)
		}
		pageContent = panel.Render(content)
		nav = home.Nav(m.w, m.conn.Connected())
	}

	sections := []string{headerPanel}
	if t := toast.Render(&m.toasts, m.w); t != "" {
		sections = append(sections, t)
	}
	sections = append(sections, pageContent, nav)

	if m.logEnabled {
		sections = append(sections,
			logview.Render(m.w, m.logViewport),
			m.help.View(m.keys),
		)
	}

	return styles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
