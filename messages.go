package main

import (
	"domestic-wallet/notify"
	"domestic-wallet/rpc"
	"domestic-wallet/wallet"

	tea "github.com/charmbracelet/bubbletea"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// eventMsg wraps a message that arrived on the events channel; handling it re-arms the listener
type eventMsg struct {
	msg tea.Msg
}

// stateMsg signals that the wallet manager changed its connection state
type stateMsg struct {
	state wallet.ConnectionState
}

// notificationMsg carries a notification raised by the wallet manager
type notificationMsg struct {
	n notify.Notification
}

// reloadMsg asks the app to start over after the provider switched chains
type reloadMsg struct{}

// authorizedMsg reports that the provider granted or withdrew authorization
type authorizedMsg struct {
	ok bool
}

// providerAttachedMsg reports that a new provider is attached and watched
type providerAttachedMsg struct {
	prov *rpc.Provider
}

// endpointSwitchedMsg contains the result of attaching an RPC endpoint
type endpointSwitchedMsg struct {
	url   string
	fresh bool // first endpoint of a new provider
	err   error
}

// toastExpireMsg asks the toast stack to drop expired entries
type toastExpireMsg struct{}

// logRefreshMsg asks the log panel to pick up new lines
type logRefreshMsg struct{}
