package log

import (
	"fmt"

	"domestic-wallet/helpers"
	"domestic-wallet/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// reservedHeight covers the header, toast line, nav and panel borders
const reservedHeight = 10

// Height returns how many log lines fit on a screen of the given height.
// The panel takes at most a third of the screen and never more than 15 lines.
func Height(screenHeight int) int {
	available := helpers.Max(5, screenHeight-reservedHeight)
	return helpers.Min(available, helpers.Max(3, helpers.Min(screenHeight/3, 15)))
}

// Render renders the log panel around vp
func Render(width int, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2))

	if vp.TotalLineCount() > vp.Height {
		title += lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}

	content := vp.View()
	if vp.TotalLineCount() == 0 {
		content = styles.Muted("nothing logged yet")
	}

	return border.Render(title + "\n" + content)
}
