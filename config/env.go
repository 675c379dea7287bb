package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Env holds settings read from the environment. Flags on the command line win over these.
type Env struct {
	RPCURL        string        `envconfig:"ETH_RPC_URL"`
	ConfigPath    string        `envconfig:"WALLET_CONFIG"`
	ChainPoll     time.Duration `envconfig:"WALLET_CHAIN_POLL" default:"15s"`
	DesktopNotify bool          `envconfig:"WALLET_DESKTOP_NOTIFY" default:"false"`
}

// LoadEnv processes the environment into an Env
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("failed to process environment: %w", err)
	}
	if env.ConfigPath == "" {
		env.ConfigPath = DefaultPath()
	}
	return env, nil
}

// Apply overlays environment settings on a loaded config.
// An RPC URL from the environment replaces the endpoints of a freshly created
// config and is otherwise only used when the file has none.
func (e Env) Apply(cfg Config, created bool) Config {
	if e.RPCURL != "" && (created || len(cfg.RPCURLs) == 0) {
		cfg.RPCURLs = []RPCUrl{{Name: "Default", URL: e.RPCURL, Active: true}}
	}
	if e.DesktopNotify {
		cfg.DesktopNotifications = true
	}
	return cfg
}

// LoadConfig loads or creates the config file at ConfigPath and applies the environment.
// A first run with an RPC URL saves that endpoint instead of the default one.
func (e Env) LoadConfig() (Config, error) {
	cfg, created := LoadOrCreate(e.ConfigPath)
	if created && e.RPCURL != "" {
		saved := e.Apply(cfg, true)
		saved.DesktopNotifications = cfg.DesktopNotifications
		if err := Save(e.ConfigPath, saved); err != nil {
			return Config{}, fmt.Errorf("failed to save config: %w", err)
		}
	}
	return e.Apply(cfg, created), nil
}
