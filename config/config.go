package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the application configuration.
// It belongs to the wallet provider side: the connection state itself is never saved.
type Config struct {
	RPCURLs              []RPCUrl      `json:"rpc_urls"`
	Wallets              []WalletEntry `json:"wallets"`
	Authorized           bool          `json:"authorized"`
	Logger               bool          `json:"logger"`
	DesktopNotifications bool          `json:"desktop_notifications,omitempty"`
}

// RPCUrl represents an RPC endpoint
type RPCUrl struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// WalletEntry represents an account known to the wallet provider
type WalletEntry struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
	Active  bool   `json:"active"`
}

// DefaultPath returns the config location in the user's home directory
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".domestic-wallet.json")
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		RPCURLs: []RPCUrl{
			{
				Name:   "Public Mainnet",
				URL:    "https://ethereum-rpc.publicnode.com",
				Active: true,
			},
		},
		Wallets: []WalletEntry{
			{
				Name:    "vitalik.eth",
				Address: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
				Active:  true,
			},
		},
		Logger: false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found.
// created reports whether the default was written to path.
func LoadOrCreate(path string) (cfg Config, created bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg = DefaultConfig()
		_ = Save(path, cfg)
		return cfg, true
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		// Invalid config, return default without clobbering the file
		return DefaultConfig(), false
	}

	return cfg, false
}

// ActiveRPC returns the active endpoint, falling back to the first one
func (c Config) ActiveRPC() (RPCUrl, bool) {
	for _, r := range c.RPCURLs {
		if r.Active {
			return r, true
		}
	}
	if len(c.RPCURLs) > 0 {
		return c.RPCURLs[0], true
	}
	return RPCUrl{}, false
}

// ActiveWallet returns the active account entry, falling back to the first one
func (c Config) ActiveWallet() (WalletEntry, bool) {
	for _, w := range c.Wallets {
		if w.Active {
			return w, true
		}
	}
	if len(c.Wallets) > 0 {
		return c.Wallets[0], true
	}
	return WalletEntry{}, false
}

// HasWallet reports whether addr is already in the account list (case-insensitive)
func (c Config) HasWallet(addr string) bool {
	for _, w := range c.Wallets {
		if strings.EqualFold(w.Address, addr) {
			return true
		}
	}
	return false
}

// SetActiveWallet marks the entry at idx as the only active account
func (c *Config) SetActiveWallet(idx int) {
	if idx < 0 || idx >= len(c.Wallets) {
		return
	}
	for i := range c.Wallets {
		c.Wallets[i].Active = i == idx
	}
}

// SetActiveRPC marks the endpoint at idx as the only active endpoint
func (c *Config) SetActiveRPC(idx int) {
	if idx < 0 || idx >= len(c.RPCURLs) {
		return
	}
	for i := range c.RPCURLs {
		c.RPCURLs[i].Active = i == idx
	}
}
