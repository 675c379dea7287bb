package wallet

import "errors"

var (
	// ErrProviderUnavailable is returned when no wallet provider is attached
	ErrProviderUnavailable = errors.New("wallet provider not found")
	// ErrConnectInProgress is returned when Connect is called while connecting
	ErrConnectInProgress = errors.New("connect already in progress")
	// ErrNoAccounts is returned when the provider authorized an empty account list
	ErrNoAccounts = errors.New("provider returned no accounts")
)
