package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"domestic-wallet/config"
	"domestic-wallet/notify"
	"domestic-wallet/styles"
	"domestic-wallet/views/settings"
	"domestic-wallet/views/toast"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addrA = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"
	addrB = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"
)

// newTestModel builds a model without an RPC endpoint, saving to a temp config
func newTestModel(t *testing.T, cfg config.Config) *model {
	t.Helper()
	env := config.Env{ConfigPath: filepath.Join(t.TempDir(), "wallet.json")}
	m := newModel(context.Background(), env, cfg)
	t.Cleanup(func() {
		m.shutdown()
		styles.Use(styles.ThemeDark)
	})
	return m
}

func press(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// nextEvent waits for the wallet side to hand the UI a message
func nextEvent(t *testing.T, m *model) tea.Msg {
	t.Helper()
	select {
	case msg := <-m.events:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no event from the wallet side")
		return nil
	}
}

func TestConnectWithoutProvider(t *testing.T) {
	m := newTestModel(t, config.Config{})
	require.Nil(t, m.prov)

	_, cmd := m.Update(press("c"))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	msg := nextEvent(t, m)
	_, cmd = m.Update(eventMsg{msg: msg})
	assert.NotNil(t, cmd)

	require.Equal(t, 1, m.toasts.Len())
	item := m.toasts.Items()[0]
	assert.Equal(t, "Wallet provider not found", item.Title)
	assert.True(t, item.Destructive)
	assert.False(t, m.conn.Connected())
}

func TestToastsExpire(t *testing.T) {
	m := newTestModel(t, config.Config{})

	_, cmd := m.Update(notificationMsg{n: notify.Notification{Title: "Wallet connected"}})
	assert.NotNil(t, cmd)
	require.Equal(t, 1, m.toasts.Len())

	// still fresh
	m.Update(toastExpireMsg{})
	assert.Equal(t, 1, m.toasts.Len())

	m.toasts.Expire(time.Now().Add(2 * toast.Lifetime))
	m.Update(toastExpireMsg{})
	assert.Equal(t, 0, m.toasts.Len())
}

func TestSavedSettings(t *testing.T) {
	m := newTestModel(t, config.Config{})

	state := settings.DefaultFormState()
	state.Theme = styles.ThemeLight
	_, cmd := m.Update(settings.SavedMsg{State: state})
	assert.NotNil(t, cmd)

	assert.Equal(t, styles.ThemeLight, styles.Current())
	require.Equal(t, 1, m.toasts.Len())
	assert.Equal(t, "Settings saved", m.toasts.Items()[0].Title)
	assert.Equal(t, "Your preferences have been updated", m.toasts.Items()[0].Description)
}

func TestReloadResetsView(t *testing.T) {
	m := newTestModel(t, config.Config{})

	state := settings.DefaultFormState()
	state.Theme = styles.ThemeLight
	state.DisplayName = "satoshi"
	m.Update(settings.SavedMsg{State: state})
	m.settings.State = state
	require.Equal(t, 1, m.toasts.Len())

	_, cmd := m.Update(reloadMsg{})
	require.NotNil(t, cmd)

	assert.Equal(t, settings.DefaultFormState(), m.settings.State)
	assert.Equal(t, styles.ThemeDark, styles.Current())
	assert.Equal(t, 0, m.toasts.Len())

	// the reload re-checks the wallet and reports the fresh state
	cmd()
	msg := nextEvent(t, m)
	assert.IsType(t, stateMsg{}, msg)
}

func TestToggleLogPersists(t *testing.T) {
	m := newTestModel(t, config.Config{})
	require.False(t, m.logEnabled)

	m.Update(press("l"))
	assert.True(t, m.logEnabled)
	assert.True(t, config.Load(m.configPath).Logger)

	m.Update(press("l"))
	assert.False(t, m.logEnabled)
	assert.False(t, config.Load(m.configPath).Logger)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, config.Config{})

	_, cmd := m.Update(press("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestEscGoesHome(t *testing.T) {
	m := newTestModel(t, config.Config{})
	m.activePage = config.PageSettings

	m.Update(press("esc"))
	assert.Equal(t, config.PageHome, m.activePage)
	assert.NotNil(t, m.homeForm)
}

func TestSettingsGateAsksToConnect(t *testing.T) {
	m := newTestModel(t, config.Config{})
	m.activePage = config.PageSettings

	_, cmd := m.Update(press("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, settings.ConnectRequestMsg{}, cmd())

	_, cmd = m.Update(settings.ConnectRequestMsg{})
	assert.NotNil(t, cmd)
}

func TestDeleteAccount(t *testing.T) {
	m := newTestModel(t, config.Config{
		Wallets: []config.WalletEntry{
			{Address: addrA, Name: "first", Active: true},
			{Address: addrB, Name: "second"},
		},
	})
	m.activePage = config.PageAccounts

	m.Update(press("d"))
	require.NotNil(t, m.dialog)
	m.Update(press("n"))
	assert.Nil(t, m.dialog)
	assert.Len(t, m.cfg.Wallets, 2)

	m.Update(press("d"))
	m.Update(press("y"))
	assert.Nil(t, m.dialog)
	require.Len(t, m.cfg.Wallets, 1)
	assert.Equal(t, addrB, m.cfg.Wallets[0].Address)
	assert.True(t, m.cfg.Wallets[0].Active)

	saved := config.Load(m.configPath)
	require.Len(t, saved.Wallets, 1)
	assert.Equal(t, addrB, saved.Wallets[0].Address)
}

func TestActivateAccount(t *testing.T) {
	m := newTestModel(t, config.Config{
		Wallets: []config.WalletEntry{
			{Address: addrA, Active: true},
			{Address: addrB},
		},
	})
	m.activePage = config.PageAccounts

	m.Update(press("j"))
	assert.Equal(t, 1, m.selectedWallet)
	m.Update(press("enter"))

	w, ok := m.cfg.ActiveWallet()
	require.True(t, ok)
	assert.Equal(t, addrB, w.Address)
}

func TestEndpointSwitchResult(t *testing.T) {
	m := newTestModel(t, config.Config{})
	m.switching = true

	_, cmd := m.Update(endpointSwitchedMsg{url: "http://127.0.0.1:1", err: errors.New("dial refused")})
	assert.Nil(t, cmd)
	assert.False(t, m.switching)
	assert.Equal(t, "dial refused", m.endpointErr)

	_, cmd = m.Update(endpointSwitchedMsg{url: "http://127.0.0.1:8545", fresh: true})
	assert.NotNil(t, cmd)
	assert.Empty(t, m.endpointErr)
}

func TestAuthorizedPersists(t *testing.T) {
	m := newTestModel(t, config.Config{})

	m.Update(authorizedMsg{ok: true})
	assert.True(t, m.cfg.Authorized)
	assert.True(t, config.Load(m.configPath).Authorized)
}

func TestView(t *testing.T) {
	m := newTestModel(t, config.Config{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.View()
	assert.Contains(t, out, "No RPC")
	assert.Contains(t, out, "Not connected")
	assert.Contains(t, out, "Main Menu")

	m.activePage = config.PageSettings
	assert.Contains(t, m.View(), "Connect Your Wallet")

	m.dialog = &deleteDialog{label: "the account 0xd8dA…6045"}
	assert.Contains(t, m.View(), "Yes")
}

func TestEndpointsPage(t *testing.T) {
	m := newTestModel(t, config.Config{
		RPCURLs: []config.RPCUrl{
			{Name: "Local", URL: "http://127.0.0.1:8545", Active: true},
			{Name: "Backup", URL: "http://127.0.0.1:8546"},
		},
	})
	require.NotNil(t, m.prov)
	m.activePage = config.PageEndpoints

	m.Update(press("a"))
	require.NotNil(t, m.rpcForm)
	assert.True(t, m.textInputActive())

	// typed text goes to the form, not to the global keys
	m.Update(press("q"))
	assert.NotNil(t, m.rpcForm)

	m.Update(press("esc"))
	assert.Nil(t, m.rpcForm)
	assert.Equal(t, config.PageEndpoints, m.activePage)

	m.Update(press("j"))
	m.Update(press("d"))
	require.NotNil(t, m.dialog)
	_, cmd := m.Update(press("y"))
	assert.Nil(t, cmd)

	require.Len(t, m.cfg.RPCURLs, 1)
	assert.Equal(t, "Local", m.cfg.RPCURLs[0].Name)
	assert.NotNil(t, m.prov)
	assert.Len(t, config.Load(m.configPath).RPCURLs, 1)
}
