package styles

import "github.com/charmbracelet/lipgloss"

// Theme names accepted by Use
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme colors
var (
	CBg      lipgloss.Color
	CPanel   lipgloss.Color
	CBorder  lipgloss.Color
	CMuted   lipgloss.Color
	CText    lipgloss.Color
	CAccent  lipgloss.Color
	CAccent2 lipgloss.Color
	CWarn    lipgloss.Color
	CDanger  lipgloss.Color
)

// Shared styles
var (
	AppStyle       lipgloss.Style
	TitleStyle     lipgloss.Style
	PanelStyle     lipgloss.Style
	NavStyle       lipgloss.Style
	HotkeyStyle    lipgloss.Style
	HotkeyKeyStyle lipgloss.Style
	HelpRightStyle lipgloss.Style
	MutedStyle     lipgloss.Style
)

var current string

func init() {
	Use(ThemeDark)
}

// Use switches the palette and rebuilds the shared styles. Unknown names fall back to dark.
func Use(theme string) {
	switch theme {
	case ThemeLight:
		CBg = lipgloss.Color("#F6F8FA")
		CPanel = lipgloss.Color("#FFFFFF")
		CBorder = lipgloss.Color("#8250DF")
		CMuted = lipgloss.Color("#57606A")
		CText = lipgloss.Color("#1F2328")
		CAccent = lipgloss.Color("#1A7F37")
		CAccent2 = lipgloss.Color("#0969DA")
		CWarn = lipgloss.Color("#BC4C00")
		CDanger = lipgloss.Color("#CF222E")
		current = ThemeLight
	default:
		CBg = lipgloss.Color("#0B0F14")
		CPanel = lipgloss.Color("#0F1720")
		CBorder = lipgloss.Color("#874BFD")
		CMuted = lipgloss.Color("#8AA0B6")
		CText = lipgloss.Color("#D6E2F0")
		CAccent = lipgloss.Color("#7EE787")
		CAccent2 = lipgloss.Color("#79C0FF")
		CWarn = lipgloss.Color("#FFA657")
		CDanger = lipgloss.Color("#c01c28")
		current = ThemeDark
	}

	AppStyle = lipgloss.NewStyle().
		Background(CBg).
		Foreground(CText)

	TitleStyle = lipgloss.NewStyle().
		Foreground(CAccent2).
		Bold(true)

	PanelStyle = lipgloss.NewStyle().
		Background(CPanel).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(CBorder).
		Padding(1, 2)

	NavStyle = lipgloss.NewStyle().
		Background(CPanel).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(CBorder).
		Padding(0, 1)

	HotkeyStyle = lipgloss.NewStyle().
		Foreground(CMuted)

	HotkeyKeyStyle = lipgloss.NewStyle().
		Foreground(CAccent).
		Bold(true)

	HelpRightStyle = lipgloss.NewStyle().
		Foreground(CMuted)

	MutedStyle = lipgloss.NewStyle().
		Foreground(CMuted)
}

// Current returns the active theme name
func Current() string {
	return current
}

// Key renders a key with accent styling
func Key(s string) string {
	return HotkeyKeyStyle.Render(s)
}

// Muted renders s in the muted color
func Muted(s string) string {
	return MutedStyle.Render(s)
}
