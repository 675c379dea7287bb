// Package wallet keeps the connection between the application and a wallet provider:
// which account is connected, its balance and the chain it is on.
package wallet

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sync"

	"domestic-wallet/helpers"
	"domestic-wallet/notify"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"golang.org/x/sync/errgroup"
)

// eventBuffer keeps provider feeds from blocking while a handler is busy connecting
const eventBuffer = 8

var (
	noteProviderMissing = notify.Notification{
		Title:       "Wallet provider not found",
		Description: "Configure an RPC endpoint to connect your wallet",
		Destructive: true,
	}
	noteConnected = notify.Notification{
		Title:       "Wallet connected",
		Description: "Your wallet has been successfully connected",
	}
	noteConnectFailed = notify.Notification{
		Title:       "Connection failed",
		Description: "Failed to connect wallet. Please try again.",
		Destructive: true,
	}
	noteDisconnected = notify.Notification{
		Title:       "Wallet disconnected",
		Description: "Your wallet has been disconnected",
	}
)

// Manager owns the ConnectionState and the operations that change it
type Manager struct {
	mu       sync.Mutex
	provider Provider
	state    ConnectionState
	// gen changes whenever Connect, Disconnect or Reload touch the state
	gen uint64
	// switchPending is set when the provider switched accounts during a connect
	switchPending bool

	notifier notify.Notifier
	logger   *log.Logger
	onChange func(ConnectionState)
	onReload func()

	// watchMu serializes Watch, Close and Attach
	watchMu sync.Mutex
	watch   *watcher
}

type watcher struct {
	parent context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger used for diagnostics
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithStateListener registers fn to be called with a copy of the state after every change.
// fn runs on the goroutine that made the change and must not call back into Watch or Close.
func WithStateListener(fn func(ConnectionState)) Option {
	return func(m *Manager) { m.onChange = fn }
}

// WithReload replaces the default chain-changed behavior (Reload) with fn.
// fn runs on the watch goroutine and must not call Watch or Close.
func WithReload(fn func()) Option {
	return func(m *Manager) { m.onReload = fn }
}

// NewManager creates a Manager over p. A nil p is valid and means no provider was found.
func NewManager(p Provider, n notify.Notifier, opts ...Option) *Manager {
	if n == nil {
		n = notify.Discard
	}
	m := &Manager{
		provider: p,
		notifier: n,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a copy of the current connection state
func (m *Manager) State() ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Connect asks the provider to authorize an account, then reads the address, chain and
// balance and stores them together. Every outcome is reported through the notifier;
// the returned error is informational.
func (m *Manager) Connect(ctx context.Context) error {
	return m.connect(ctx, false)
}

// connect runs Connect. fromSwitch marks a reconnect asked for by an accounts-changed
// event; if it overlaps a running attempt, that attempt re-checks the provider when done.
func (m *Manager) connect(ctx context.Context, fromSwitch bool) error {
	m.mu.Lock()
	p := m.provider
	if p == nil {
		m.mu.Unlock()
		m.logger.Warn("connect requested but no wallet provider is available")
		m.notifier.Notify(noteProviderMissing)
		return ErrProviderUnavailable
	}
	if m.state.IsConnecting {
		if fromSwitch {
			m.switchPending = true
		}
		m.mu.Unlock()
		m.logger.Debug("connect ignored, another attempt is in flight")
		return ErrConnectInProgress
	}
	m.state.IsConnecting = true
	m.gen++
	snap := m.state.clone()
	m.mu.Unlock()
	m.changed(snap)

	next, err := m.authorize(ctx, p)

	m.mu.Lock()
	if err == nil {
		m.state = next
		m.gen++
	}
	m.state.IsConnecting = false
	pending := m.switchPending
	m.switchPending = false
	snap = m.state.clone()
	m.mu.Unlock()
	m.changed(snap)

	if err != nil {
		m.logger.Error("error connecting wallet", "err", err)
		m.notifier.Notify(noteConnectFailed)
		err = fmt.Errorf("connect wallet: %w", err)
	} else {
		m.logger.Info("wallet connected", "address", snap.Address, "chain", snap.ChainID, "balance", snap.Balance)
		m.notifier.Notify(noteConnected)
	}

	if pending {
		m.followSwitch(ctx, p)
	}
	return err
}

// followSwitch applies an account switch that arrived while a connect was running
func (m *Manager) followSwitch(ctx context.Context, p Provider) {
	addrs, err := p.Accounts(ctx)
	if err != nil {
		m.logger.Error("failed to re-check accounts after switch", "err", err)
		return
	}
	if len(addrs) == 0 && !m.State().Connected() {
		return
	}
	m.handleAccountsChanged(ctx, addrs)
}

// Disconnect clears the connection. An in-flight Connect keeps its connecting flag.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.state = ConnectionState{IsConnecting: m.state.IsConnecting}
	m.gen++
	snap := m.state.clone()
	m.mu.Unlock()
	m.changed(snap)

	m.logger.Info("wallet disconnected")
	m.notifier.Notify(noteDisconnected)
}

// Reconcile restores a session the provider already authorized, without prompting
// and without notifications. Failures are logged and returned.
func (m *Manager) Reconcile(ctx context.Context) error {
	p := m.currentProvider()
	if p == nil {
		m.logger.Debug("no wallet provider, skipping session check")
		return ErrProviderUnavailable
	}

	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	addrs, err := p.Accounts(ctx)
	if err != nil {
		m.logger.Error("failed to check wallet connection", "err", err)
		return fmt.Errorf("list accounts: %w", err)
	}
	if len(addrs) == 0 {
		return nil
	}

	next, err := m.describe(ctx, p, addrs[0])
	if err != nil {
		m.logger.Error("failed to check wallet connection", "err", err)
		return err
	}

	m.mu.Lock()
	if m.state.IsConnecting || m.gen != gen {
		// a connect or disconnect happened meanwhile and owns the state now
		m.mu.Unlock()
		return nil
	}
	m.state = next
	snap := m.state.clone()
	m.mu.Unlock()
	m.changed(snap)

	m.logger.Info("restored wallet session", "address", snap.Address, "chain", snap.ChainID)
	return nil
}

// Reload drops all connection state without notifying and checks the provider again,
// as if the application had just started.
func (m *Manager) Reload(ctx context.Context) error {
	m.mu.Lock()
	m.state = ConnectionState{IsConnecting: m.state.IsConnecting}
	m.gen++
	snap := m.state.clone()
	m.mu.Unlock()
	m.changed(snap)

	return m.Reconcile(ctx)
}

// Watch subscribes to the provider's account and chain change events until ctx ends
// or Close is called. A previous subscription is always released first.
func (m *Manager) Watch(ctx context.Context) error {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	m.closeLocked()
	return m.watchLocked(ctx)
}

// Close releases the event subscriptions and waits for the watch loop to exit
func (m *Manager) Close() {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	m.closeLocked()
}

// Attach replaces the provider, moving an active subscription over to it
func (m *Manager) Attach(p Provider) {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	m.mu.Lock()
	m.provider = p
	m.mu.Unlock()

	if m.watch == nil {
		return
	}
	parent := m.watch.parent
	m.closeLocked()
	if err := m.watchLocked(parent); err != nil {
		m.logger.Warn("could not watch new provider", "err", err)
	}
}

func (m *Manager) watchLocked(ctx context.Context) error {
	p := m.currentProvider()
	if p == nil {
		return ErrProviderUnavailable
	}

	accountsCh := make(chan []common.Address, eventBuffer)
	chainCh := make(chan *big.Int, eventBuffer)
	accountsSub := p.SubscribeAccountsChanged(accountsCh)
	chainSub := p.SubscribeChainChanged(chainCh)

	wctx, cancel := context.WithCancel(ctx)
	w := &watcher{parent: ctx, cancel: cancel, done: make(chan struct{})}
	m.watch = w

	go m.loop(wctx, w, accountsSub, chainSub, accountsCh, chainCh)
	return nil
}

func (m *Manager) closeLocked() {
	if m.watch == nil {
		return
	}
	m.watch.cancel()
	<-m.watch.done
	m.watch = nil
}

func (m *Manager) loop(ctx context.Context, w *watcher, accountsSub, chainSub event.Subscription, accountsCh <-chan []common.Address, chainCh <-chan *big.Int) {
	defer close(w.done)
	defer accountsSub.Unsubscribe()
	defer chainSub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case addrs := <-accountsCh:
			m.handleAccountsChanged(ctx, addrs)
		case id := <-chainCh:
			m.handleChainChanged(ctx, id)
		case err := <-accountsSub.Err():
			m.logger.Debug("accounts subscription ended", "err", err)
			return
		case err := <-chainSub.Err():
			m.logger.Debug("chain subscription ended", "err", err)
			return
		}
	}
}

func (m *Manager) handleAccountsChanged(ctx context.Context, addrs []common.Address) {
	if len(addrs) == 0 {
		m.logger.Info("provider reports no accounts")
		m.Disconnect()
		return
	}
	if addrs[0].Hex() == m.State().Address {
		return
	}
	m.logger.Info("provider switched account", "address", addrs[0].Hex())
	_ = m.connect(ctx, true)
}

func (m *Manager) handleChainChanged(ctx context.Context, id *big.Int) {
	m.logger.Info("provider switched chain, reloading", "chain", id)
	if m.onReload != nil {
		m.onReload()
		return
	}
	_ = m.Reload(ctx)
}

// authorize runs the prompting path: request accounts, resolve the signer, describe it
func (m *Manager) authorize(ctx context.Context, p Provider) (ConnectionState, error) {
	addrs, err := p.RequestAccounts(ctx)
	if err != nil {
		return ConnectionState{}, fmt.Errorf("request accounts: %w", err)
	}
	if len(addrs) == 0 {
		return ConnectionState{}, ErrNoAccounts
	}
	signer, err := p.Signer(ctx)
	if err != nil {
		return ConnectionState{}, fmt.Errorf("get signer: %w", err)
	}
	return m.describe(ctx, p, signer.Address)
}

// describe fetches chain and balance for addr and returns a complete connected state
func (m *Manager) describe(ctx context.Context, p Provider, addr common.Address) (ConnectionState, error) {
	var chainID, wei *big.Int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := p.ChainID(gctx)
		if err != nil {
			return fmt.Errorf("query chain id: %w", err)
		}
		chainID = id
		return nil
	})
	g.Go(func() error {
		bal, err := p.BalanceAt(gctx, addr)
		if err != nil {
			return fmt.Errorf("query balance: %w", err)
		}
		wei = bal
		return nil
	})
	if err := g.Wait(); err != nil {
		return ConnectionState{}, err
	}
	if chainID == nil {
		return ConnectionState{}, fmt.Errorf("query chain id: provider returned no chain")
	}

	return ConnectionState{
		Address: addr.Hex(),
		Balance: helpers.FormatEther(wei),
		ChainID: new(big.Int).Set(chainID),
	}, nil
}

func (m *Manager) currentProvider() Provider {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.provider
}

func (m *Manager) changed(s ConnectionState) {
	if m.onChange != nil {
		m.onChange(s)
	}
}
