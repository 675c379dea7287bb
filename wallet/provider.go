package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// Provider is the wallet capability handed to the Manager. It authorizes accounts,
// answers chain queries and reports account and network changes made outside the app.
type Provider interface {
	// RequestAccounts asks for authorization and may prompt the user
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// Accounts lists already authorized accounts without prompting
	Accounts(ctx context.Context) ([]common.Address, error)
	// Signer returns the account that signs for the authorized session
	Signer(ctx context.Context) (accounts.Account, error)
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)

	SubscribeAccountsChanged(ch chan<- []common.Address) event.Subscription
	SubscribeChainChanged(ch chan<- *big.Int) event.Subscription
}
