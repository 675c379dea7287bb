package wallet

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

var errRejected = errors.New("user rejected the request")

// fakeProvider is an in-memory Provider. Zero value has no accounts and is unauthorized.
type fakeProvider struct {
	mu         sync.Mutex
	accounts   []common.Address
	authorized bool
	chainID    *big.Int
	balances   map[common.Address]*big.Int

	requestErr error
	chainErr   error
	balanceErr error
	// block, when set, makes RequestAccounts wait until it is closed
	block chan struct{}
	// balanceGate, when set, makes BalanceAt wait until it is closed
	balanceGate chan struct{}

	requestCalls int
	balanceCalls int

	accountsFeed event.Feed
	chainFeed    event.Feed
}

func newFakeProvider(chain int64, accts ...common.Address) *fakeProvider {
	return &fakeProvider{
		accounts: accts,
		chainID:  big.NewInt(chain),
		balances: map[common.Address]*big.Int{},
	}
}

func (f *fakeProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	f.mu.Lock()
	f.requestCalls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.requestErr != nil {
		return nil, f.requestErr
	}
	f.authorized = true
	return append([]common.Address(nil), f.accounts...), nil
}

func (f *fakeProvider) Accounts(context.Context) ([]common.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.authorized {
		return nil, nil
	}
	return append([]common.Address(nil), f.accounts...), nil
}

func (f *fakeProvider) Signer(context.Context) (accounts.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.authorized || len(f.accounts) == 0 {
		return accounts.Account{}, errors.New("unauthorized")
	}
	return accounts.Account{Address: f.accounts[0]}, nil
}

func (f *fakeProvider) ChainID(context.Context) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.chainErr != nil {
		return nil, f.chainErr
	}
	return new(big.Int).Set(f.chainID), nil
}

func (f *fakeProvider) BalanceAt(ctx context.Context, a common.Address) (*big.Int, error) {
	f.mu.Lock()
	f.balanceCalls++
	gate := f.balanceGate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	if b, ok := f.balances[a]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

func (f *fakeProvider) SubscribeAccountsChanged(ch chan<- []common.Address) event.Subscription {
	return f.accountsFeed.Subscribe(ch)
}

func (f *fakeProvider) SubscribeChainChanged(ch chan<- *big.Int) event.Subscription {
	return f.chainFeed.Subscribe(ch)
}

func (f *fakeProvider) setBalance(a common.Address, wei *big.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[a] = wei
}

// switchTo makes a the first account and reports it like a wallet extension would
func (f *fakeProvider) switchTo(a common.Address) int {
	f.mu.Lock()
	f.accounts = []common.Address{a}
	f.mu.Unlock()
	return f.accountsFeed.Send([]common.Address{a})
}

func (f *fakeProvider) revoke() int {
	f.mu.Lock()
	f.authorized = false
	f.mu.Unlock()
	return f.accountsFeed.Send([]common.Address{})
}

func (f *fakeProvider) switchChain(id int64) int {
	f.mu.Lock()
	f.chainID = big.NewInt(id)
	f.mu.Unlock()
	return f.chainFeed.Send(big.NewInt(id))
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requestCalls
}

func (f *fakeProvider) balanceQueries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balanceCalls
}
