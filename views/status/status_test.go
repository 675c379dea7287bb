package status

import (
	"math/big"
	"testing"

	"domestic-wallet/config"
	"domestic-wallet/wallet"

	"github.com/stretchr/testify/assert"
)

const addr = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"

func TestBadge(t *testing.T) {
	assert.Contains(t, Badge(wallet.ConnectionState{}), "Not connected")
	assert.Contains(t, Badge(wallet.ConnectionState{IsConnecting: true}), "Connecting...")

	out := Badge(wallet.ConnectionState{Address: addr, Balance: "1", ChainID: big.NewInt(1)})
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "Mainnet")
}

func TestRender(t *testing.T) {
	assert.Contains(t, Render(wallet.ConnectionState{}, nil, "*"), "No wallet connected.")
	assert.Contains(t, Render(wallet.ConnectionState{IsConnecting: true}, nil, "*"), "waiting for the wallet provider")

	s := wallet.ConnectionState{Address: addr, Balance: "1.5", ChainID: big.NewInt(1)}
	out := Render(s, []config.WalletEntry{{Address: addr, Name: "vitalik.eth"}}, "*")
	assert.Contains(t, out, "vitalik.eth")
	assert.Contains(t, out, "1.5")
	assert.Contains(t, out, "etherscan.io/address/"+addr)
	assert.Contains(t, out, "Mainnet (1)")
}
