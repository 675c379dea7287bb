// Package settings is the settings page: a wallet gate followed by account,
// appearance and security tabs whose values live only for the session.
package settings

import (
	"strings"
	"time"

	"domestic-wallet/helpers"
	"domestic-wallet/styles"
	"domestic-wallet/wallet"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tab is one of the settings sections
type Tab int

const (
	TabAccount Tab = iota
	TabAppearance
	TabSecurity
)

var tabNames = [...]string{"Account", "Appearance", "Security"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

func (t Tab) next() Tab { return (t + 1) % Tab(len(tabNames)) }
func (t Tab) prev() Tab { return (t + Tab(len(tabNames)) - 1) % Tab(len(tabNames)) }

// Messages the page sends to its parent
type (
	// ConnectRequestMsg asks the parent to connect the wallet
	ConnectRequestMsg struct{}
	// DisconnectRequestMsg asks the parent to disconnect the wallet
	DisconnectRequestMsg struct{}
	// CopyRequestMsg asks the parent to put Address on the clipboard
	CopyRequestMsg struct{ Address string }
	// SavedMsg reports that preferences were saved. Nothing is persisted.
	SavedMsg struct{ State FormState }
)

// CopiedMsg is sent back by the parent once a CopyRequestMsg was handled
type CopiedMsg struct{ Err error }

type clearCopiedMsg struct{}

// Model is the settings page
type Model struct {
	State FormState

	tab    Tab
	form   *huh.Form
	draft  *FormState
	copied string
	device Device
}

// New returns the page with default preferences
func New() Model {
	return Model{
		State:  DefaultFormState(),
		device: CurrentDevice(),
	}
}

// Tab returns the selected tab
func (m Model) Tab() Tab { return m.tab }

// Editing reports whether a tab form is open
func (m Model) Editing() bool { return m.form != nil }

// Update handles a message given the current wallet connection
func (m Model) Update(msg tea.Msg, conn wallet.ConnectionState) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CopiedMsg:
		if msg.Err != nil {
			m.copied = "Copy failed"
		} else {
			m.copied = "Copied!"
		}
		return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return clearCopiedMsg{} })
	case clearCopiedMsg:
		m.copied = ""
		return m, nil
	}

	if conn.Address == "" {
		m.discard()
		return m.updateGate(msg, conn)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k.String() {
	case "tab", "right":
		m.tab = m.tab.next()
	case "shift+tab", "left":
		m.tab = m.tab.prev()
	case "1", "2", "3":
		m.tab = Tab(k.String()[0] - '1')
	case "enter", "e":
		d := m.State
		m.draft = &d
		m.form = newForm(m.tab, m.draft)
	case "c":
		return m, emit(CopyRequestMsg{Address: conn.Address})
	case "d":
		return m, emit(DisconnectRequestMsg{})
	case "s":
		return m, emit(SavedMsg{State: m.State})
	}
	return m, nil
}

func (m Model) updateGate(msg tea.Msg, conn wallet.ConnectionState) (Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || conn.IsConnecting {
		return m, nil
	}
	switch k.String() {
	case "enter", "c":
		return m, emit(ConnectRequestMsg{})
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.discard()
		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.form = form
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.commit()
	case huh.StateAborted:
		m.discard()
		return m, nil
	}
	return m, cmd
}

// commit copies the draft into State and closes the form
func (m Model) commit() (Model, tea.Cmd) {
	if m.draft != nil {
		m.State = *m.draft
	}
	m.form, m.draft = nil, nil
	return m, emit(SavedMsg{State: m.State})
}

// discard closes the form without keeping the draft
func (m *Model) discard() {
	m.form, m.draft = nil, nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Nav returns the navigation bar for the settings view
func Nav(width int, connected, editing bool) string {
	var keys []string
	switch {
	case !connected:
		keys = []string{
			styles.Key("Enter") + " connect wallet",
			styles.Key("l") + " log",
			styles.Key("Esc") + " back",
		}
	case editing:
		keys = []string{
			styles.Key("Tab") + " next field",
			styles.Key("Enter") + " next/save",
			styles.Key("Esc") + " discard",
		}
	default:
		keys = []string{
			styles.Key("←/→") + " tab",
			styles.Key("Enter") + " edit",
			styles.Key("s") + " save",
			styles.Key("c") + " copy address",
			styles.Key("d") + " disconnect",
			styles.Key("l") + " log",
			styles.Key("Esc") + " back",
		}
	}
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// View renders the page
func (m Model) View(conn wallet.ConnectionState, spinnerView string) string {
	if conn.Address == "" {
		return renderGate(conn.IsConnecting, spinnerView)
	}

	h := styles.TitleStyle.Render("Settings")
	sub := styles.Muted("Customize your experience and manage your account")

	body := ""
	if m.form != nil {
		body = m.form.View()
	} else {
		switch m.tab {
		case TabAppearance:
			body = m.renderAppearance()
		case TabSecurity:
			body = m.renderSecurity(conn)
		default:
			body = m.renderAccount(conn)
		}
	}

	return strings.Join([]string{h, sub, "", m.renderTabs(), "", body}, "\n")
}

func renderGate(connecting bool, spinnerView string) string {
	title := styles.TitleStyle.Render("Connect Your Wallet")
	sub := styles.Muted("Please connect your wallet to access settings")

	var action string
	if connecting {
		action = spinnerView + " Connecting…"
	} else {
		action = button("Connect Wallet", true) + "  " + styles.Muted("press ") + styles.Key("Enter")
	}
	return lipgloss.JoinVertical(lipgloss.Center, title, "", sub, "", action)
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		style := lipgloss.NewStyle().Padding(0, 2).Foreground(styles.CMuted)
		if Tab(i) == m.tab {
			style = style.Foreground(styles.CAccent2).Bold(true).Underline(true)
		}
		tabs = append(tabs, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderAccount(conn wallet.ConnectionState) string {
	addr := helpers.FadeString(conn.Address, "#7D5AFC", "#FF87D7")
	if m.copied != "" {
		addr += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render(m.copied)
	}

	lines := []string{
		section("Account Information"),
		row("Wallet Address", addr),
		row("Balance", conn.Balance+" ETH"),
		row("Network", helpers.ChainName(conn.ChainID)),
		row("Display Name", orNotSet(m.State.DisplayName)),
		row("Email Address", orNotSet(m.State.Email)),
		"",
		section("Notification Preferences"),
		row("Email Notifications", onOff(m.State.EmailNotifications)),
		row("Push Notifications", onOff(m.State.PushNotifications)),
		"",
		button("Disconnect Wallet", false) + "  " + button("Save Changes", true),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderAppearance() string {
	card := func(label, theme string) string {
		style := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.CMuted).
			Padding(0, 3)
		if m.State.Theme == theme {
			style = style.BorderForeground(styles.CAccent2).Foreground(styles.CAccent2).Bold(true)
		}
		return style.Render(label)
	}

	lines := []string{
		section("Appearance Settings"),
		styles.Muted("Customize how the application looks"),
		"",
		"Theme",
		lipgloss.JoinHorizontal(lipgloss.Top, card("Dark", styles.ThemeDark), " ", card("Light", styles.ThemeLight)),
		"",
		row("Language", LanguageName(m.State.Language)),
		"",
		button("Save Preferences", true),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSecurity(conn wallet.ConnectionState) string {
	lines := []string{
		section("Security Settings"),
		row("Two-Factor Authentication", onOff(m.State.TwoFactor)),
		styles.Muted("Add an extra layer of security to your account"),
	}

	if m.State.TwoFactor {
		code := styles.Muted("Enter 6-digit code")
		if m.State.VerificationCode != "" {
			code = m.State.VerificationCode
		}
		panel := strings.Join([]string{
			styles.Muted("Scan the QR code with an authenticator app like Google Authenticator or Authy."),
			"",
			TwoFactorQR(conn.Address),
			"",
			row("Verification Code", code),
			lipgloss.NewStyle().Foreground(styles.CWarn).Render("Verify and Enable is not available yet"),
		}, "\n")
		lines = append(lines, lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.CBorder).
			Padding(0, 1).
			Render(panel))
	}

	dev := m.device
	badge := ""
	if dev.Current {
		badge = "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render("Active")
	}
	lines = append(lines,
		"",
		section("Connected Devices"),
		lipgloss.NewStyle().Foreground(styles.CText).Render(dev.Name)+" "+styles.Muted("("+dev.Platform+")")+badge,
		styles.Muted("Last active: "+dev.LastActive),
		"",
		row("Recovery Email", orNotSet(m.State.RecoveryEmail)),
		styles.Muted("This email will be used for account recovery and security alerts"),
		"",
		button("Save Security Settings", true),
	)
	return strings.Join(lines, "\n")
}

func section(s string) string {
	return lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render(s)
}

func row(label, value string) string {
	return lipgloss.NewStyle().Foreground(styles.CMuted).Width(28).Render(label) + value
}

func onOff(b bool) string {
	if b {
		return lipgloss.NewStyle().Foreground(styles.CAccent).Render("On")
	}
	return styles.Muted("Off")
}

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return styles.Muted("not set")
	}
	return lipgloss.NewStyle().Foreground(styles.CText).Render(s)
}

func button(label string, primary bool) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFF7DB")).
		Background(lipgloss.Color("#888B7E")).
		Padding(0, 3)
	if primary {
		style = style.Background(lipgloss.Color("#F25D94"))
	}
	return style.Render(label)
}
