package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"domestic-wallet/wallet"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

var (
	// ErrNoAccounts is returned when authorization is requested with no accounts configured
	ErrNoAccounts = errors.New("no accounts configured")
	// ErrUnauthorized is returned by Signer before the user authorized the app
	ErrUnauthorized = errors.New("wallet not authorized")
	// ErrNoEndpoint is returned by chain queries when no RPC endpoint is attached
	ErrNoEndpoint = errors.New("no RPC endpoint configured")
)

var _ wallet.Provider = (*Provider)(nil)

// DialFunc opens a backend for url. The returned func releases it.
type DialFunc func(ctx context.Context, url string) (Backend, func(), error)

// Provider is a wallet provider backed by a JSON-RPC node and a configured account list.
// The first account is the active one.
type Provider struct {
	mu         sync.Mutex
	backend    Backend
	release    func()
	url        string
	accounts   []common.Address
	authorized bool
	lastChain  *big.Int

	dial        DialFunc
	onAuthorize func(bool)
	logger      *log.Logger

	accountsFeed event.Feed
	chainFeed    event.Feed
	scope        event.SubscriptionScope
}

// ProviderOption configures a Provider
type ProviderOption func(*Provider)

// WithLogger sets the provider logger
func WithLogger(l *log.Logger) ProviderOption {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithAuthorized restores an authorization granted in an earlier session
func WithAuthorized(ok bool) ProviderOption {
	return func(p *Provider) { p.authorized = ok }
}

// WithOnAuthorize registers fn to persist authorization changes
func WithOnAuthorize(fn func(bool)) ProviderOption {
	return func(p *Provider) { p.onAuthorize = fn }
}

// WithDialer replaces the dialer used by SwitchEndpoint
func WithDialer(d DialFunc) ProviderOption {
	return func(p *Provider) {
		if d != nil {
			p.dial = d
		}
	}
}

// WithEndpoint attaches an already opened backend
func WithEndpoint(url string, b Backend, release func()) ProviderOption {
	return func(p *Provider) {
		p.url = url
		p.backend = b
		p.release = release
	}
}

// NewProvider creates a provider for accts with active moved to the front.
// Without WithEndpoint the provider answers chain queries with ErrNoEndpoint.
func NewProvider(accts []common.Address, active common.Address, opts ...ProviderOption) *Provider {
	p := &Provider{
		accounts: order(accts, active),
		dial:     dialClient,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func dialClient(_ context.Context, url string) (Backend, func(), error) {
	res := Connect(url)
	if res.Error != nil {
		return nil, nil, res.Error
	}
	return res.Client, res.Client.Close, nil
}

// URL returns the endpoint currently attached
func (p *Provider) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

// Authorized reports whether the user has authorized the app
func (p *Provider) Authorized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.authorized
}

// RequestAccounts authorizes the app and returns the accounts, active first
func (p *Provider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	if len(p.accounts) == 0 {
		p.mu.Unlock()
		return nil, ErrNoAccounts
	}
	granted := !p.authorized
	p.authorized = true
	out := copyAddrs(p.accounts)
	hook := p.onAuthorize
	p.mu.Unlock()

	if granted {
		p.logger.Info("accounts authorized", "count", len(out))
		if hook != nil {
			hook(true)
		}
	}
	return out, nil
}

// Accounts returns the authorized accounts, or none when unauthorized
func (p *Provider) Accounts(ctx context.Context) ([]common.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.authorized {
		return nil, nil
	}
	return copyAddrs(p.accounts), nil
}

// Signer returns the active account
func (p *Provider) Signer(context.Context) (accounts.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.authorized || len(p.accounts) == 0 {
		return accounts.Account{}, ErrUnauthorized
	}
	return accounts.Account{Address: p.accounts[0]}, nil
}

// ChainID queries the network id of the attached endpoint
func (p *Provider) ChainID(ctx context.Context) (*big.Int, error) {
	b := p.currentBackend()
	if b == nil {
		return nil, ErrNoEndpoint
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	id, err := b.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	p.mu.Lock()
	if p.lastChain == nil {
		p.lastChain = new(big.Int).Set(id)
	}
	p.mu.Unlock()
	return id, nil
}

// BalanceAt returns the latest balance of account in wei
func (p *Provider) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	b := p.currentBackend()
	if b == nil {
		return nil, ErrNoEndpoint
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	bal, err := b.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get ETH balance: %w", err)
	}
	return bal, nil
}

// SubscribeAccountsChanged delivers the new account list whenever it changes
func (p *Provider) SubscribeAccountsChanged(ch chan<- []common.Address) event.Subscription {
	return p.scope.Track(p.accountsFeed.Subscribe(ch))
}

// SubscribeChainChanged delivers the new chain id whenever the network changes
func (p *Provider) SubscribeChainChanged(ch chan<- *big.Int) event.Subscription {
	return p.scope.Track(p.chainFeed.Subscribe(ch))
}

// SetAccounts replaces the account list. Subscribers hear about it only when the
// app is authorized and the ordered list actually changed.
func (p *Provider) SetAccounts(accts []common.Address, active common.Address) {
	next := order(accts, active)

	p.mu.Lock()
	changed := !sameAddrs(p.accounts, next)
	p.accounts = next
	emit := changed && p.authorized
	out := copyAddrs(next)
	p.mu.Unlock()

	if emit {
		p.logger.Debug("account list changed", "count", len(out))
		p.accountsFeed.Send(out)
	}
}

// SetActive moves addr to the front of the account list
func (p *Provider) SetActive(addr common.Address) {
	p.mu.Lock()
	current := copyAddrs(p.accounts)
	p.mu.Unlock()

	p.SetAccounts(current, addr)
}

// Revoke withdraws the app's authorization and reports an empty account list
func (p *Provider) Revoke() {
	p.mu.Lock()
	was := p.authorized
	p.authorized = false
	hook := p.onAuthorize
	p.mu.Unlock()

	if was && hook != nil {
		hook(false)
	}
	p.logger.Info("authorization revoked")
	p.accountsFeed.Send([]common.Address{})
}

// SwitchEndpoint dials url and replaces the current endpoint with it. When the new
// endpoint is on a different chain, chain-changed subscribers are told.
// On failure the current endpoint stays attached.
func (p *Provider) SwitchEndpoint(ctx context.Context, url string) error {
	b, release, err := p.dial(ctx, url)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}

	cctx, cancel := context.WithTimeout(ctx, callTimeout)
	id, err := b.ChainID(cctx)
	cancel()
	if err != nil {
		if release != nil {
			release()
		}
		return fmt.Errorf("failed to get chain ID: %w", err)
	}

	p.mu.Lock()
	old := p.release
	p.backend, p.release, p.url = b, release, url
	p.mu.Unlock()

	if old != nil {
		old()
	}
	p.logger.Info("switched endpoint", "url", url, "chain", id)
	p.observeChain(id)
	return nil
}

// PollChain queries the chain id every interval until ctx ends, reporting changes.
// A node behind a fixed URL can move between networks.
func (p *Provider) PollChain(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b := p.currentBackend()
			if b == nil {
				continue
			}
			cctx, cancel := context.WithTimeout(ctx, callTimeout)
			id, err := b.ChainID(cctx)
			cancel()
			if err != nil {
				p.logger.Debug("chain poll failed", "err", err)
				continue
			}
			p.observeChain(id)
		}
	}
}

// Close ends every subscription and releases the endpoint
func (p *Provider) Close() {
	p.scope.Close()

	p.mu.Lock()
	release := p.release
	p.backend, p.release = nil, nil
	p.mu.Unlock()

	if release != nil {
		release()
	}
}

// observeChain records id and notifies subscribers when it differs from the last one seen
func (p *Provider) observeChain(id *big.Int) {
	p.mu.Lock()
	changed := p.lastChain != nil && p.lastChain.Cmp(id) != 0
	p.lastChain = new(big.Int).Set(id)
	p.mu.Unlock()

	if changed {
		p.logger.Info("chain changed", "chain", id)
		p.chainFeed.Send(new(big.Int).Set(id))
	}
}

func (p *Provider) currentBackend() Backend {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.backend
}

// order returns a copy of accts without duplicates and with active first.
// An active address missing from accts is not added.
func order(accts []common.Address, active common.Address) []common.Address {
	out := make([]common.Address, 0, len(accts))
	seen := make(map[common.Address]bool, len(accts))
	found := false
	for _, a := range accts {
		if seen[a] {
			continue
		}
		seen[a] = true
		if a == active {
			found = true
			continue
		}
		out = append(out, a)
	}
	if found {
		out = append([]common.Address{active}, out...)
	}
	return out
}

func sameAddrs(a, b []common.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func copyAddrs(a []common.Address) []common.Address {
	return append([]common.Address(nil), a...)
}
