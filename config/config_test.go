package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")

	cfg, created := LoadOrCreate(path)
	assert.True(t, created)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err := os.Stat(path)
	require.NoError(t, err, "default config should be written")

	cfg.Authorized = true
	cfg.Wallets = append(cfg.Wallets, WalletEntry{Address: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"})
	require.NoError(t, Save(path, cfg))

	loaded, created := LoadOrCreate(path)
	assert.False(t, created)
	assert.True(t, loaded.Authorized)
	assert.Len(t, loaded.Wallets, 2)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	assert.Equal(t, Config{}, Load(path))
	cfg, created := LoadOrCreate(path)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data), "broken file must not be overwritten")
}

func TestActiveSelection(t *testing.T) {
	cfg := Config{
		RPCURLs: []RPCUrl{{Name: "a", URL: "http://a"}, {Name: "b", URL: "http://b"}},
		Wallets: []WalletEntry{{Address: "0x1"}, {Address: "0x2"}},
	}

	r, ok := cfg.ActiveRPC()
	require.True(t, ok)
	assert.Equal(t, "a", r.Name, "falls back to first endpoint")

	cfg.SetActiveRPC(1)
	r, _ = cfg.ActiveRPC()
	assert.Equal(t, "b", r.Name)
	assert.False(t, cfg.RPCURLs[0].Active)

	cfg.SetActiveWallet(1)
	w, ok := cfg.ActiveWallet()
	require.True(t, ok)
	assert.Equal(t, "0x2", w.Address)

	cfg.SetActiveWallet(5)
	w, _ = cfg.ActiveWallet()
	assert.Equal(t, "0x2", w.Address, "out of range index is ignored")

	assert.True(t, cfg.HasWallet("0X1"))
	assert.False(t, cfg.HasWallet("0x3"))

	_, ok = Config{}.ActiveRPC()
	assert.False(t, ok)
}

func TestEnvApply(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "http://localhost:8545")
	t.Setenv("WALLET_CONFIG", "/tmp/wallet.json")
	t.Setenv("WALLET_DESKTOP_NOTIFY", "true")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wallet.json", env.ConfigPath)
	assert.Equal(t, "15s", env.ChainPoll.String())

	cfg := env.Apply(Config{}, false)
	require.Len(t, cfg.RPCURLs, 1)
	assert.Equal(t, "http://localhost:8545", cfg.RPCURLs[0].URL)
	assert.True(t, cfg.RPCURLs[0].Active)
	assert.True(t, cfg.DesktopNotifications)

	withFile := env.Apply(Config{RPCURLs: []RPCUrl{{Name: "file", URL: "http://file"}}}, false)
	assert.Equal(t, "file", withFile.RPCURLs[0].Name, "file endpoints win over env")

	fresh := env.Apply(DefaultConfig(), true)
	require.Len(t, fresh.RPCURLs, 1)
	assert.Equal(t, "http://localhost:8545", fresh.RPCURLs[0].URL, "env replaces the default endpoint")
}

func TestLoadConfigFirstRunUsesEnvEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	env := Env{RPCURL: "http://127.0.0.1:8545", ConfigPath: path}

	cfg, err := env.LoadConfig()
	require.NoError(t, err)
	r, ok := cfg.ActiveRPC()
	require.True(t, ok)
	assert.Equal(t, "http://127.0.0.1:8545", r.URL)
	assert.Len(t, cfg.RPCURLs, 1)

	saved := Load(path)
	require.Len(t, saved.RPCURLs, 1)
	assert.Equal(t, "http://127.0.0.1:8545", saved.RPCURLs[0].URL)
	assert.Equal(t, DefaultConfig().Wallets, saved.Wallets)

	// a second run keeps what is on disk
	saved.RPCURLs = []RPCUrl{{Name: "mine", URL: "http://node:8545", Active: true}}
	require.NoError(t, Save(path, saved))
	cfg, err = env.LoadConfig()
	require.NoError(t, err)
	r, _ = cfg.ActiveRPC()
	assert.Equal(t, "http://node:8545", r.URL)
}

func TestLoadConfigWithoutEnvEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")

	cfg, err := Env{ConfigPath: path}.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv("WALLET_CHAIN_POLL", "soon")
	_, err := LoadEnv()
	assert.Error(t, err)
}
