package main

import (
	"io"

	"domestic-wallet/styles"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- THEME (Lip Gloss) --------------------
// Palette and shared styles come from the styles package and follow the selected theme

var (
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(lipgloss.Color("#888B7E")).
			Padding(0, 3).
			MarginTop(1)

	activeButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(lipgloss.Color("#F25D94")).
				MarginRight(2).
				Underline(true)
)

// dialogBoxStyle frames the confirmation dialog in the current border color
func dialogBoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(1, 0)
}

// newLogger creates the application logger writing to w
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           log.DebugLevel,
	})
	applyLogStyles(logger)
	return logger
}

// applyLogStyles colors the log output with the current palette
func applyLogStyles(logger *log.Logger) {
	logger.SetStyles(&log.Styles{
		Timestamp: lipgloss.NewStyle().Foreground(styles.CMuted),
		Caller:    lipgloss.NewStyle().Faint(true),
		Prefix:    lipgloss.NewStyle().Bold(true).Foreground(styles.CAccent2),
		Message:   lipgloss.NewStyle().Foreground(styles.CText),
		Key:       lipgloss.NewStyle().Foreground(styles.CAccent),
		Value:     lipgloss.NewStyle().Foreground(styles.CText),
		Separator: lipgloss.NewStyle().Faint(true),
		Levels: map[log.Level]lipgloss.Style{
			log.DebugLevel: lipgloss.NewStyle().Foreground(styles.CMuted).SetString("DEBUG"),
			log.InfoLevel:  lipgloss.NewStyle().Foreground(styles.CAccent2).SetString("INFO"),
			log.WarnLevel:  lipgloss.NewStyle().Foreground(styles.CWarn).SetString("WARN"),
			log.ErrorLevel: lipgloss.NewStyle().Foreground(styles.CDanger).SetString("ERROR"),
		},
	})
}

// -------------------- KEYS --------------------

// keyMap holds the bindings that work on every page
type keyMap struct {
	Quit      key.Binding
	ToggleLog key.Binding
	ScrollLog key.Binding
	Home      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("l", "L"),
			key.WithHelp("l", "toggle log"),
		),
		ScrollLog: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "scroll log"),
		),
		Home: key.NewBinding(
			key.WithKeys("esc", "h"),
			key.WithHelp("esc", "home"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ScrollLog, k.ToggleLog, k.Home, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
