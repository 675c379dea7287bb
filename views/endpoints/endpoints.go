package endpoints

import (
	"errors"
	"math/big"
	"net/url"
	"strings"

	"domestic-wallet/config"
	"domestic-wallet/helpers"
	"domestic-wallet/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Mode is what the endpoints page is doing
type Mode string

const (
	ModeList Mode = "list"
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// Nav returns the navigation bar for the endpoints view
func Nav(width int, mode Mode) string {
	var left string
	if mode == ModeAdd || mode == ModeEdit {
		left = strings.Join([]string{
			styles.Key("Enter") + " next/save",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " select",
			styles.Key("Enter") + " activate",
			styles.Key("a") + " add",
			styles.Key("e") + " edit",
			styles.Key("d") + " delete",
			styles.Key("l") + " log",
			styles.Key("Esc") + " back",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Status describes the endpoint the provider is attached to
type Status struct {
	URL        string
	Switching  bool
	ChainID    *big.Int
	LastErrMsg string
}

// Render renders the endpoint list
func Render(rpcURLs []config.RPCUrl, selectedIdx int, st Status) string {
	h := styles.TitleStyle.Render("RPC Endpoints")
	sub := styles.Muted("The wallet provider reads chain and balance through the active endpoint")

	lines := []string{h, sub, ""}

	if len(rpcURLs) == 0 {
		lines = append(lines, styles.Muted("No RPC endpoints configured."))
		lines = append(lines, "")
		lines = append(lines, styles.Muted("Press ")+styles.Key("a")+styles.Muted(" to add your first endpoint."))
		return strings.Join(lines, "\n")
	}

	for i, rpc := range rpcURLs {
		var marker string
		if rpc.Active {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		} else {
			marker = styles.Muted("○ ")
		}

		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		urlStyle := lipgloss.NewStyle().Foreground(styles.CMuted)

		if i == selectedIdx {
			nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
			urlStyle = urlStyle.Background(styles.CPanel)
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
		}

		line := marker + nameStyle.Render(rpc.Name)
		if rpc.URL == st.URL && st.URL != "" {
			line += "  " + attachedBadge(st)
		}
		lines = append(lines, line)
		lines = append(lines, "  "+urlStyle.Render(rpc.URL))
		lines = append(lines, "")
	}

	if st.LastErrMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CWarn).Render("⚠ "+st.LastErrMsg))
	}

	return strings.Join(lines, "\n")
}

func attachedBadge(st Status) string {
	if st.Switching {
		return styles.Muted("connecting…")
	}
	text := "attached"
	if st.ChainID != nil {
		text += " · " + helpers.ChainName(st.ChainID)
	}
	return lipgloss.NewStyle().Foreground(styles.CAccent).Render(text)
}

// NewForm builds the add/edit form bound to name and rawURL
func NewForm(title string, name, rawURL *string) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC Name").
				Description("A friendly name for this RPC endpoint").
				Value(name).
				Placeholder("My Infura Node").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("RPC URL").
				Description("The complete RPC URL (https://, wss:// or an IPC path)").
				Value(rawURL).
				Placeholder("https://mainnet.infura.io/v3/...").
				Validate(ValidateURL),
		).Title(title),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// ValidateURL accepts http(s) and ws(s) URLs and absolute IPC paths
func ValidateURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("URL is required")
	}
	if strings.HasPrefix(s, "/") && strings.HasSuffix(s, ".ipc") {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("invalid URL")
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return errors.New("URL must start with http://, https://, ws:// or wss://")
	}
	if u.Host == "" {
		return errors.New("URL has no host")
	}
	return nil
}
