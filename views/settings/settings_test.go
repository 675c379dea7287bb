package settings

import (
	"math/big"
	"strings"
	"testing"

	"domestic-wallet/wallet"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var connected = wallet.ConnectionState{
	Address: "0xAbC0000000000000000000000000000000000001",
	Balance: "1.5",
	ChainID: big.NewInt(1),
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestDefaults(t *testing.T) {
	m := New()
	assert.Equal(t, DefaultFormState(), m.State)
	assert.Equal(t, "dark", m.State.Theme)
	assert.Equal(t, "en", m.State.Language)
	assert.True(t, m.State.EmailNotifications)
	assert.True(t, m.State.PushNotifications)
	assert.False(t, m.State.TwoFactor)
	assert.Equal(t, TabAccount, m.Tab())
	assert.False(t, m.Editing())
}

func TestGate(t *testing.T) {
	m := New()

	out := m.View(wallet.ConnectionState{}, "*")
	assert.Contains(t, out, "Connect Your Wallet")
	assert.Contains(t, out, "Please connect your wallet to access settings")

	_, cmd := m.Update(keyPress("enter"), wallet.ConnectionState{})
	assert.Equal(t, ConnectRequestMsg{}, run(t, cmd))

	connecting := wallet.ConnectionState{IsConnecting: true}
	_, cmd = m.Update(keyPress("enter"), connecting)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(connecting, "*"), "Connecting")

	// tab keys do nothing behind the gate
	m, _ = m.Update(keyPress("tab"), wallet.ConnectionState{})
	assert.Equal(t, TabAccount, m.Tab())
}

func TestTabs(t *testing.T) {
	m := New()

	m, _ = m.Update(keyPress("tab"), connected)
	assert.Equal(t, TabAppearance, m.Tab())
	m, _ = m.Update(keyPress("tab"), connected)
	assert.Equal(t, TabSecurity, m.Tab())
	m, _ = m.Update(keyPress("tab"), connected)
	assert.Equal(t, TabAccount, m.Tab())

	m, _ = m.Update(keyPress("shift+tab"), connected)
	assert.Equal(t, TabSecurity, m.Tab())

	m, _ = m.Update(keyPress("2"), connected)
	assert.Equal(t, TabAppearance, m.Tab())
	assert.Equal(t, "Appearance", m.Tab().String())
	assert.Equal(t, "Unknown", Tab(7).String())
}

func TestAccountActions(t *testing.T) {
	m := New()

	_, cmd := m.Update(keyPress("c"), connected)
	assert.Equal(t, CopyRequestMsg{Address: connected.Address}, run(t, cmd))

	_, cmd = m.Update(keyPress("d"), connected)
	assert.Equal(t, DisconnectRequestMsg{}, run(t, cmd))

	_, cmd = m.Update(keyPress("s"), connected)
	assert.Equal(t, SavedMsg{State: DefaultFormState()}, run(t, cmd))
}

func TestCopiedFeedback(t *testing.T) {
	m := New()

	m, cmd := m.Update(CopiedMsg{}, connected)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(connected, ""), "Copied!")

	m, _ = m.Update(clearCopiedMsg{}, connected)
	assert.NotContains(t, m.View(connected, ""), "Copied!")
}

func TestEditing(t *testing.T) {
	t.Run("escape discards the draft", func(t *testing.T) {
		m := New()
		m, _ = m.Update(keyPress("enter"), connected)
		require.True(t, m.Editing())

		m.draft.DisplayName = "satoshi"
		m, _ = m.Update(keyPress("esc"), connected)
		assert.False(t, m.Editing())
		assert.Equal(t, "", m.State.DisplayName)
	})

	t.Run("commit keeps the draft and reports a save", func(t *testing.T) {
		m := New()
		m, _ = m.Update(keyPress("tab"), connected)
		m, _ = m.Update(keyPress("enter"), connected)
		require.True(t, m.Editing())

		m.draft.Theme = "light"
		m.draft.Language = "ja"
		m, cmd := m.commit()
		assert.False(t, m.Editing())
		assert.Equal(t, "light", m.State.Theme)
		assert.Equal(t, "ja", m.State.Language)

		saved, ok := run(t, cmd).(SavedMsg)
		require.True(t, ok)
		assert.Equal(t, m.State, saved.State)
		assert.Contains(t, m.View(connected, ""), "日本語")
	})

	t.Run("disconnect closes the form", func(t *testing.T) {
		m := New()
		m, _ = m.Update(keyPress("enter"), connected)
		require.True(t, m.Editing())

		m, _ = m.Update(keyPress("x"), wallet.ConnectionState{})
		assert.False(t, m.Editing())
	})
}

func TestSecurityView(t *testing.T) {
	m := New()
	m, _ = m.Update(keyPress("3"), connected)

	out := m.View(connected, "")
	assert.Contains(t, out, "Two-Factor Authentication")
	assert.Contains(t, out, "Connected Devices")
	assert.Contains(t, out, "Last active: Just now")
	assert.NotContains(t, out, "Verification Code")

	m.State.TwoFactor = true
	out = m.View(connected, "")
	assert.Contains(t, out, "Verification Code")
	assert.Contains(t, out, "not available")
	qr := strings.Split(TwoFactorQR(connected.Address), "\n")
	require.NotEmpty(t, qr)
	assert.Contains(t, out, qr[len(qr)/2])
}

func TestAccountView(t *testing.T) {
	m := New()
	out := m.View(connected, "")
	assert.Contains(t, out, "Account Information")
	assert.Contains(t, out, connected.Address)
	assert.Contains(t, out, "1.5 ETH")
	assert.Contains(t, out, "Mainnet")
	assert.Contains(t, out, "not set")
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"", true},
		{"  ", true},
		{"me@example.com", true},
		{"first.last+tag@mail.example.org", true},
		{"me@localhost", false},
		{"not-an-email", false},
		{"Me <me@example.com>", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := ValidateEmail(tt.in)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateCode(t *testing.T) {
	assert.NoError(t, validateCode(""))
	assert.NoError(t, validateCode("123456"))
	assert.Error(t, validateCode("12345"))
	assert.Error(t, validateCode("12a456"))
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Deutsch", LanguageName("de"))
	assert.Equal(t, "xx", LanguageName("xx"))
}

func TestTwoFactorQR(t *testing.T) {
	qr := TwoFactorQR(connected.Address)
	assert.NotEmpty(t, qr)
	assert.Contains(t, setupURI(connected.Address), "otpauth://totp/")
}
