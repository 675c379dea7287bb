package main

import (
	"fmt"
	"strings"
	"time"

	"domestic-wallet/config"
	"domestic-wallet/helpers"
	"domestic-wallet/notify"
	"domestic-wallet/styles"
	"domestic-wallet/views/accounts"
	"domestic-wallet/views/endpoints"
	"domestic-wallet/views/home"
	logview "domestic-wallet/views/log"
	"domestic-wallet/views/settings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempRPCFormName string
	tempRPCFormURL  string
	tempAccountAddr string
	tempAccountName string
)

// savedNote is shown when preferences are saved; nothing is persisted
var savedNote = notify.Notification{
	Title:       "Settings saved",
	Description: "Your preferences have been updated",
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case eventMsg:
		_, cmd := m.Update(msg.msg)
		return m, tea.Batch(cmd, listen(m.events))

	case stateMsg:
		wasConnected := m.conn.Connected()
		// the manager is authoritative; msg.state may already be stale
		m.conn = m.mgr.State()
		if wasConnected != m.conn.Connected() && m.activePage == config.PageHome {
			m.homeForm = home.NewForm(&m.homeChoice, m.conn.Connected())
		}
		return m, nil

	case notificationMsg:
		m.toasts.Push(msg.n, time.Now())
		return m, expireToasts()

	case toastExpireMsg:
		m.toasts.Expire(time.Now())
		return m, nil

	case reloadMsg:
		// start over as if freshly launched: page-local state goes, the wallet is re-checked
		m.addLog("warning", "Network changed, reloading")
		m.settings = settings.New()
		m.applyTheme(m.settings.State.Theme)
		m.toasts.Clear()
		return m, reloadWallet(m.ctx, m.mgr)

	case authorizedMsg:
		m.cfg.Authorized = msg.ok
		m.saveConfig()
		if msg.ok {
			m.addLog("success", "Wallet access authorized")
		} else {
			m.addLog("info", "Wallet access revoked")
		}
		return m, nil

	case providerAttachedMsg:
		m.addLog("debug", "Wallet provider attached")
		return m, nil

	case endpointSwitchedMsg:
		m.switching = false
		if msg.err != nil {
			m.endpointErr = msg.err.Error()
			m.addLog("error", fmt.Sprintf("RPC connection failed: `%s`", msg.err.Error()))
			return m, nil
		}
		m.endpointErr = ""
		m.addLog("success", fmt.Sprintf("RPC connected to `%s`", msg.url))
		if msg.fresh {
			return m, reconcileWallet(m.ctx, m.mgr)
		}
		return m, nil

	case settings.ConnectRequestMsg:
		m.addLog("info", "Connecting wallet")
		return m, connectWallet(m.ctx, m.mgr)

	case settings.DisconnectRequestMsg:
		return m, disconnectWallet(m.mgr)

	case settings.CopyRequestMsg:
		m.addLog("info", fmt.Sprintf("Copied address `%s` to clipboard", helpers.ShortenAddr(msg.Address)))
		return m, copyToClipboard(msg.Address)

	case settings.SavedMsg:
		m.applyTheme(msg.State.Theme)
		m.toasts.Push(savedNote, time.Now())
		m.addLog("success", "Settings saved")
		return m, expireToasts()

	case logRefreshMsg:
		m.updateLogViewport()
		return m, refreshLog()

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.logViewport.Width = helpers.Max(0, msg.Width-6)
		m.logViewport.Height = logview.Height(msg.Height)
		m.logSeen = -1
		m.updateLogViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if !m.logEnabled {
			return m, nil
		}
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateForms(msg)
}

// updateForms routes internal form messages (cursor blinks, field changes) to the open forms
func (m *model) updateForms(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.settings, cmd = m.settings.Update(msg, m.conn)
	cmds = append(cmds, cmd)

	switch m.activePage {
	case config.PageHome:
		cmds = append(cmds, m.stepHomeForm(msg))
	case config.PageAccounts:
		cmds = append(cmds, m.stepAddForm(msg))
	case config.PageEndpoints:
		cmds = append(cmds, m.stepRPCForm(msg))
	}
	return tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialog != nil {
		return m, m.updateDialog(msg)
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// global keys
	if !m.textInputActive() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.ToggleLog):
			m.toggleLog()
			return m, nil

		case key.Matches(msg, m.keys.ScrollLog):
			if m.logEnabled {
				var cmd tea.Cmd
				m.logViewport, cmd = m.logViewport.Update(msg)
				return m, cmd
			}
			return m, nil

		case key.Matches(msg, m.keys.Home) && m.activePage != config.PageHome:
			m.goHome()
			return m, nil
		}
	}

	// page-specific behavior
	switch m.activePage {

	case config.PageSettings:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg, m.conn)
		return m, cmd

	case config.PageAccounts:
		return m, m.updateAccounts(msg)

	case config.PageEndpoints:
		return m, m.updateEndpoints(msg)

	default:
		switch msg.String() {
		case "c":
			if !m.conn.Connected() {
				m.addLog("info", "Connecting wallet")
				return m, connectWallet(m.ctx, m.mgr)
			}
			return m, nil
		case "d":
			if m.conn.Connected() {
				return m, disconnectWallet(m.mgr)
			}
			return m, nil
		}
		return m, m.stepHomeForm(msg)
	}
}

// -------------------- HOME --------------------

func (m *model) stepHomeForm(msg tea.Msg) tea.Cmd {
	if m.homeForm == nil {
		return nil
	}
	form, cmd := m.homeForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.homeForm = f
		if f.State == huh.StateCompleted {
			m.activePage = m.homeChoice
			m.homeForm = home.NewForm(&m.homeChoice, m.conn.Connected())
			m.addLog("debug", "Opened "+m.activePage.String())
			return nil
		}
	}
	return cmd
}

func (m *model) goHome() {
	m.activePage = config.PageHome
	m.endpointMode = endpoints.ModeList
	m.homeForm = home.NewForm(&m.homeChoice, m.conn.Connected())
}

// -------------------- ACCOUNTS --------------------

func (m *model) updateAccounts(msg tea.KeyMsg) tea.Cmd {
	if m.addForm != nil {
		if msg.String() == "esc" {
			m.addForm = nil
			return nil
		}
		return m.stepAddForm(msg)
	}

	switch msg.String() {
	case "up", "k":
		if m.selectedWallet > 0 {
			m.selectedWallet--
		}
	case "down", "j":
		if m.selectedWallet < len(m.cfg.Wallets)-1 {
			m.selectedWallet++
		}
	case "enter", " ":
		if m.selectedWallet < len(m.cfg.Wallets) {
			m.cfg.SetActiveWallet(m.selectedWallet)
			m.saveConfig()
			m.addLog("success", fmt.Sprintf("Activated account: %s", helpers.ShortenAddr(m.cfg.Wallets[m.selectedWallet].Address)))
			return syncAccounts(m.prov, m.cfg.Wallets)
		}
	case "a", "A":
		tempAccountAddr, tempAccountName = "", ""
		m.addForm = accounts.NewForm(&tempAccountAddr, &tempAccountName, m.cfg.HasWallet)
	case "d", "delete", "backspace":
		if m.selectedWallet < len(m.cfg.Wallets) {
			m.dialog = &deleteDialog{
				page:  config.PageAccounts,
				idx:   m.selectedWallet,
				label: "the account " + helpers.ShortenAddr(m.cfg.Wallets[m.selectedWallet].Address),
			}
		}
	case "r", "R":
		if m.prov == nil {
			m.addLog("warning", "No wallet provider to revoke")
			return nil
		}
		return revokeAccess(m.prov)
	}
	return nil
}

func (m *model) stepAddForm(msg tea.Msg) tea.Cmd {
	if m.addForm == nil {
		return nil
	}
	form, cmd := m.addForm.Update(msg)
	f, ok := form.(*huh.Form)
	if !ok {
		return cmd
	}
	m.addForm = f

	switch f.State {
	case huh.StateCompleted:
		m.addForm = nil
		addr := common.HexToAddress(strings.TrimSpace(tempAccountAddr)).Hex()
		m.cfg.Wallets = append(m.cfg.Wallets, config.WalletEntry{
			Address: addr,
			Name:    strings.TrimSpace(tempAccountName),
			Active:  len(m.cfg.Wallets) == 0,
		})
		m.selectedWallet = len(m.cfg.Wallets) - 1
		m.saveConfig()
		m.addLog("success", fmt.Sprintf("Added account: %s", helpers.ShortenAddr(addr)))
		return syncAccounts(m.prov, m.cfg.Wallets)
	case huh.StateAborted:
		m.addForm = nil
		return nil
	}
	return cmd
}

// -------------------- ENDPOINTS --------------------

func (m *model) updateEndpoints(msg tea.KeyMsg) tea.Cmd {
	if m.rpcForm != nil {
		if msg.String() == "esc" {
			m.rpcForm = nil
			m.endpointMode = endpoints.ModeList
			return nil
		}
		return m.stepRPCForm(msg)
	}

	switch msg.String() {
	case "up", "k":
		if m.selectedRPCIdx > 0 {
			m.selectedRPCIdx--
		}
	case "down", "j":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs)-1 {
			m.selectedRPCIdx++
		}
	case "enter", " ":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs) {
			return m.activateEndpoint(m.selectedRPCIdx)
		}
	case "a", "A":
		tempRPCFormName, tempRPCFormURL = "", ""
		m.endpointMode = endpoints.ModeAdd
		m.rpcForm = endpoints.NewForm("Add RPC Endpoint", &tempRPCFormName, &tempRPCFormURL)
	case "e", "E":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs) {
			r := m.cfg.RPCURLs[m.selectedRPCIdx]
			tempRPCFormName, tempRPCFormURL = r.Name, r.URL
			m.endpointMode = endpoints.ModeEdit
			m.rpcForm = endpoints.NewForm("Edit RPC Endpoint", &tempRPCFormName, &tempRPCFormURL)
		}
	case "d", "delete", "backspace":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs) {
			m.dialog = &deleteDialog{
				page:  config.PageEndpoints,
				idx:   m.selectedRPCIdx,
				label: "the RPC endpoint " + m.cfg.RPCURLs[m.selectedRPCIdx].Name,
			}
		}
	}
	return nil
}

func (m *model) stepRPCForm(msg tea.Msg) tea.Cmd {
	if m.rpcForm == nil {
		return nil
	}
	form, cmd := m.rpcForm.Update(msg)
	f, ok := form.(*huh.Form)
	if !ok {
		return cmd
	}
	m.rpcForm = f

	switch f.State {
	case huh.StateCompleted:
		m.rpcForm = nil
		mode := m.endpointMode
		m.endpointMode = endpoints.ModeList
		name, url := strings.TrimSpace(tempRPCFormName), strings.TrimSpace(tempRPCFormURL)

		if mode == endpoints.ModeEdit && m.selectedRPCIdx < len(m.cfg.RPCURLs) {
			r := &m.cfg.RPCURLs[m.selectedRPCIdx]
			changed := r.URL != url
			r.Name, r.URL = name, url
			m.saveConfig()
			m.addLog("success", fmt.Sprintf("Updated RPC endpoint: `%s`", name))
			if changed && r.Active {
				return m.activateEndpoint(m.selectedRPCIdx)
			}
			return nil
		}

		m.cfg.RPCURLs = append(m.cfg.RPCURLs, config.RPCUrl{Name: name, URL: url})
		m.selectedRPCIdx = len(m.cfg.RPCURLs) - 1
		m.addLog("success", fmt.Sprintf("Added RPC endpoint: `%s` (%s)", name, url))
		if len(m.cfg.RPCURLs) == 1 {
			return m.activateEndpoint(0)
		}
		m.saveConfig()
		return nil

	case huh.StateAborted:
		m.rpcForm = nil
		m.endpointMode = endpoints.ModeList
		return nil
	}
	return cmd
}

// activateEndpoint makes the endpoint at idx active and attaches it to the provider,
// creating the provider when this is the first endpoint
func (m *model) activateEndpoint(idx int) tea.Cmd {
	m.cfg.SetActiveRPC(idx)
	m.saveConfig()

	url := m.cfg.RPCURLs[idx].URL
	m.switching = true
	m.endpointErr = ""
	m.addLog("info", fmt.Sprintf("Connecting to RPC `%s`", url))

	if m.prov == nil {
		m.prov = m.newProvider()
		return tea.Sequence(
			attachProvider(m.ctx, m.mgr, m.prov),
			switchEndpoint(m.ctx, m.prov, url, true),
		)
	}
	return switchEndpoint(m.ctx, m.prov, url, false)
}

// -------------------- DELETE DIALOG --------------------

func (m *model) updateDialog(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "right", "tab", "h":
		m.dialog.yes = !m.dialog.yes
	case "y", "Y":
		return m.confirmDelete()
	case "n", "N", "esc":
		m.dialog = nil
	case "enter":
		if m.dialog.yes {
			return m.confirmDelete()
		}
		m.dialog = nil
	}
	return nil
}

func (m *model) confirmDelete() tea.Cmd {
	d := m.dialog
	m.dialog = nil

	switch d.page {
	case config.PageAccounts:
		if d.idx >= len(m.cfg.Wallets) {
			return nil
		}
		removed := m.cfg.Wallets[d.idx]
		m.cfg.Wallets = append(m.cfg.Wallets[:d.idx], m.cfg.Wallets[d.idx+1:]...)
		if removed.Active && len(m.cfg.Wallets) > 0 {
			m.cfg.SetActiveWallet(0)
		}
		m.selectedWallet = helpers.Max(0, helpers.Min(m.selectedWallet, len(m.cfg.Wallets)-1))
		m.saveConfig()
		m.addLog("success", fmt.Sprintf("Deleted account: %s", helpers.ShortenAddr(removed.Address)))
		return syncAccounts(m.prov, m.cfg.Wallets)

	case config.PageEndpoints:
		if d.idx >= len(m.cfg.RPCURLs) {
			return nil
		}
		removed := m.cfg.RPCURLs[d.idx]
		m.cfg.RPCURLs = append(m.cfg.RPCURLs[:d.idx], m.cfg.RPCURLs[d.idx+1:]...)
		m.selectedRPCIdx = helpers.Max(0, helpers.Min(m.selectedRPCIdx, len(m.cfg.RPCURLs)-1))
		m.addLog("success", fmt.Sprintf("Deleted RPC endpoint: `%s`", removed.Name))

		if len(m.cfg.RPCURLs) == 0 {
			m.saveConfig()
			p := m.prov
			m.prov = nil
			if m.stopPoll != nil {
				m.stopPoll()
				m.stopPoll = nil
			}
			m.switching = false
			m.addLog("warning", "No RPC endpoint left, wallet provider detached")
			return detachProvider(m.ctx, m.mgr, p)
		}
		if removed.Active {
			return m.activateEndpoint(0)
		}
		m.saveConfig()
	}
	return nil
}

// -------------------- MISC --------------------

func (m *model) toggleLog() {
	m.logEnabled = !m.logEnabled
	m.cfg.Logger = m.logEnabled
	m.saveConfig()
	if m.logEnabled {
		m.logSeen = -1
		m.addLog("info", "Logger enabled")
	}
}

// applyTheme switches the palette and restyles components that captured colors
func (m *model) applyTheme(theme string) {
	if theme == styles.Current() {
		return
	}
	styles.Use(theme)
	applyLogStyles(m.logger)
	m.spin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	m.logViewport.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)
	m.addLog("debug", "Theme set to "+theme)
}
