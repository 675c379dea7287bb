package main

import (
	"context"
	"strings"
	"time"

	"domestic-wallet/config"
	"domestic-wallet/rpc"
	"domestic-wallet/views/settings"
	"domestic-wallet/views/toast"
	"domestic-wallet/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// listen waits for the next message from the wallet side
func listen(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg{msg: msg}
	}
}

// connectWallet runs the prompting connect flow; the outcome arrives as notifications
func connectWallet(ctx context.Context, mgr *wallet.Manager) tea.Cmd {
	return func() tea.Msg {
		_ = mgr.Connect(ctx)
		return nil
	}
}

// disconnectWallet clears the connection
func disconnectWallet(mgr *wallet.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Disconnect()
		return nil
	}
}

// reconcileWallet restores an already authorized session without prompting
func reconcileWallet(ctx context.Context, mgr *wallet.Manager) tea.Cmd {
	return func() tea.Msg {
		_ = mgr.Reconcile(ctx)
		return nil
	}
}

// reloadWallet drops the connection and checks the provider again
func reloadWallet(ctx context.Context, mgr *wallet.Manager) tea.Cmd {
	return func() tea.Msg {
		_ = mgr.Reload(ctx)
		return nil
	}
}

// attachProvider hands p to the manager and subscribes to its events
func attachProvider(ctx context.Context, mgr *wallet.Manager, p *rpc.Provider) tea.Cmd {
	return func() tea.Msg {
		mgr.Attach(p)
		// Watch replaces whatever Attach carried over
		_ = mgr.Watch(ctx)
		return providerAttachedMsg{prov: p}
	}
}

// detachProvider removes the provider from the manager and closes it
func detachProvider(ctx context.Context, mgr *wallet.Manager, p *rpc.Provider) tea.Cmd {
	return func() tea.Msg {
		mgr.Close()
		mgr.Attach(nil)
		_ = mgr.Reload(ctx)
		if p != nil {
			p.Close()
		}
		return nil
	}
}

// switchEndpoint dials url and attaches it to the provider
func switchEndpoint(ctx context.Context, p *rpc.Provider, url string, fresh bool) tea.Cmd {
	return func() tea.Msg {
		err := p.SwitchEndpoint(ctx, url)
		return endpointSwitchedMsg{url: url, fresh: fresh, err: err}
	}
}

// syncAccounts pushes the configured account list to the provider
func syncAccounts(p *rpc.Provider, wallets []config.WalletEntry) tea.Cmd {
	if p == nil {
		return nil
	}
	addrs, active := accountAddrs(wallets)
	return func() tea.Msg {
		p.SetAccounts(addrs, active)
		return nil
	}
}

// revokeAccess withdraws the provider authorization
func revokeAccess(p *rpc.Provider) tea.Cmd {
	return func() tea.Msg {
		p.Revoke()
		return nil
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return settings.CopiedMsg{Err: clipboard.WriteAll(text)}
	}
}

// expireToasts fires once the newest toast should be gone
func expireToasts() tea.Cmd {
	return tea.Tick(toast.Lifetime, func(time.Time) tea.Msg {
		return toastExpireMsg{}
	})
}

// refreshLog polls the log buffer for lines written by background goroutines
func refreshLog() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return logRefreshMsg{}
	})
}

// accountAddrs converts config entries to addresses and picks the active one
func accountAddrs(wallets []config.WalletEntry) ([]common.Address, common.Address) {
	addrs := make([]common.Address, 0, len(wallets))
	var active common.Address
	for i, w := range wallets {
		a := common.HexToAddress(w.Address)
		addrs = append(addrs, a)
		if w.Active || (i == 0 && active == (common.Address{})) {
			active = a
		}
	}
	return addrs, active
}

// send delivers msg to the UI unless the program is shutting down
func (m *model) send(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.done:
	}
}

// addLog writes a message to the log panel
func (m *model) addLog(logType, message string) {
	if m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logEnabled || m.logBuf == nil {
		return
	}
	n := m.logBuf.Len()
	if n == m.logSeen {
		return
	}
	m.logSeen = n
	m.logViewport.SetContent(strings.TrimRight(m.logBuf.String(), "\n"))
	m.logViewport.GotoBottom()
}

// saveConfig writes the config to disk, logging failures
func (m *model) saveConfig() {
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.addLog("error", "Failed to save config: "+err.Error())
	}
}

// textInputActive returns true if a form that takes typed text is open
func (m *model) textInputActive() bool {
	switch m.activePage {
	case config.PageSettings:
		return m.settings.Editing()
	case config.PageAccounts:
		return m.addForm != nil
	case config.PageEndpoints:
		return m.rpcForm != nil
	}
	return false
}
