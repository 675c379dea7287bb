package main

import (
	"context"

	"domestic-wallet/config"
	"domestic-wallet/notify"
	"domestic-wallet/rpc"
	"domestic-wallet/styles"
	"domestic-wallet/views/endpoints"
	"domestic-wallet/views/home"
	"domestic-wallet/views/settings"
	"domestic-wallet/views/toast"
	"domestic-wallet/wallet"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// eventBuffer sizes the channel between wallet goroutines and the UI
const eventBuffer = 32

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	ctx    context.Context
	cancel context.CancelFunc

	activePage config.Page
	cfg        config.Config
	configPath string
	env        config.Env

	// wallet side
	mgr      *wallet.Manager
	prov     *rpc.Provider
	stopPoll context.CancelFunc
	conn     wallet.ConnectionState
	events   chan tea.Msg
	done     chan struct{}

	// endpoint attach progress
	switching   bool
	endpointErr string

	// home menu
	homeForm   *huh.Form
	homeChoice config.Page

	// settings page
	settings settings.Model

	// accounts page
	selectedWallet int
	addForm        *huh.Form

	// endpoints page
	endpointMode   endpoints.Mode
	selectedRPCIdx int
	rpcForm        *huh.Form

	// delete confirmation dialog
	dialog *deleteDialog

	toasts toast.Stack
	spin   spinner.Model

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuf      *logBuffer
	logSeen     int
	logViewport viewport.Model

	keys keyMap
	help help.Model
}

// deleteDialog asks to confirm removing an account or endpoint
type deleteDialog struct {
	page  config.Page
	idx   int
	label string
	yes   bool
}

// -------------------- INIT --------------------

// newModel wires the logger, notifier, provider and wallet manager around cfg
func newModel(ctx context.Context, env config.Env, cfg config.Config) *model {
	ctx, cancel := context.WithCancel(ctx)

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// log viewport, resized on the first WindowSizeMsg
	vp := viewport.New(0, 10)
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	buf := &logBuffer{}

	m := &model{
		ctx:          ctx,
		cancel:       cancel,
		activePage:   config.PageHome,
		cfg:          cfg,
		configPath:   env.ConfigPath,
		env:          env,
		events:       make(chan tea.Msg, eventBuffer),
		done:         make(chan struct{}),
		settings:     settings.New(),
		endpointMode: endpoints.ModeList,
		spin:         sp,
		logEnabled:   cfg.Logger,
		logger:       newLogger(buf),
		logBuf:       buf,
		logViewport:  vp,
		keys:         defaultKeyMap(),
		help:         help.New(),
	}
	if w, ok := cfg.ActiveWallet(); ok {
		for i := range cfg.Wallets {
			if cfg.Wallets[i].Address == w.Address {
				m.selectedWallet = i
				break
			}
		}
	}

	var sink notify.Notifier = notify.Func(func(n notify.Notification) {
		m.send(notificationMsg{n: n})
	})
	if cfg.DesktopNotifications {
		sink = notify.Multi(sink, notify.NewDesktop(m.logger.WithPrefix("notify")))
	}

	m.mgr = wallet.NewManager(nil, sink,
		wallet.WithLogger(m.logger.WithPrefix("wallet")),
		wallet.WithStateListener(func(s wallet.ConnectionState) {
			m.send(stateMsg{state: s})
		}),
		wallet.WithReload(func() {
			m.send(reloadMsg{})
		}),
	)

	if _, ok := cfg.ActiveRPC(); ok {
		m.prov = m.newProvider()
	}
	m.homeForm = home.NewForm(&m.homeChoice, false)

	return m
}

// newProvider builds a provider over the configured accounts. It has no endpoint yet.
func (m *model) newProvider() *rpc.Provider {
	addrs, active := accountAddrs(m.cfg.Wallets)
	p := rpc.NewProvider(addrs, active,
		rpc.WithLogger(m.logger.WithPrefix("rpc")),
		rpc.WithAuthorized(m.cfg.Authorized),
		rpc.WithOnAuthorize(func(ok bool) {
			m.send(authorizedMsg{ok: ok})
		}),
	)
	pollCtx, stop := context.WithCancel(m.ctx)
	m.stopPoll = stop
	go p.PollChain(pollCtx, m.env.ChainPoll)
	return p
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, listen(m.events), refreshLog()}
	m.addLog("info", "Starting, config at "+m.configPath)

	if m.prov != nil {
		rpcURL, _ := m.cfg.ActiveRPC()
		m.switching = true
		cmds = append(cmds, tea.Sequence(
			attachProvider(m.ctx, m.mgr, m.prov),
			switchEndpoint(m.ctx, m.prov, rpcURL.URL, true),
		))
	} else {
		m.addLog("warning", "No RPC endpoint configured, wallet provider unavailable")
	}
	return tea.Batch(cmds...)
}

// shutdown stops background work once the program has exited
func (m *model) shutdown() {
	close(m.done)
	m.mgr.Close()
	if m.prov != nil {
		m.prov.Close()
	}
	m.cancel()
}
