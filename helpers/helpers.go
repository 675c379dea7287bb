package helpers

import (
	"image/color"
	"math/big"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/params"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
)

var ethAddressRe = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

// ShortenAddr shortens an Ethereum address for display
func ShortenAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// IsValidEthAddress checks if a string is a valid Ethereum address
func IsValidEthAddress(s string) bool {
	return ethAddressRe.MatchString(s)
}

// FormatEther renders a wei amount as a whole-ether decimal string.
// The result is exact, with trailing zeros trimmed and at least one fractional
// digit: 1.5 ether is "1.5", zero is "0.0".
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	neg := wei.Sign() < 0
	abs := new(big.Int).Abs(wei)

	whole, frac := new(big.Int).QuoRem(abs, big.NewInt(params.Ether), new(big.Int))

	fracStr := frac.String()
	fracStr = strings.Repeat("0", 18-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		fracStr = "0"
	}

	out := whole.String() + "." + fracStr
	if neg {
		out = "-" + out
	}
	return out
}

// ChainName returns a human name for well-known chain ids
func ChainName(id *big.Int) string {
	if id == nil {
		return "—"
	}
	switch id.Uint64() {
	case 1:
		return "Mainnet"
	case 10:
		return "Optimism"
	case 137:
		return "Polygon"
	case 8453:
		return "Base"
	case 42161:
		return "Arbitrum One"
	case 11155111:
		return "Sepolia"
	case 17000:
		return "Holesky"
	case 31337:
		return "Local"
	}
	return "Chain " + id.String()
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	if s == "" {
		return ""
	}
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), len(s))
	return rainbow(lipgloss.NewStyle(), s, blends)
}

func rainbow(baseStyle lipgloss.Style, str string, colors []color.Color) string {
	var b strings.Builder
	for i, c := range str {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		b.WriteString(baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c)))
	}
	return b.String()
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
