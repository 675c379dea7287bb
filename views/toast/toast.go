// Package toast renders short-lived notifications under the header.
package toast

import (
	"strings"
	"time"

	"domestic-wallet/notify"
	"domestic-wallet/styles"

	"github.com/charmbracelet/lipgloss"
)

// Lifetime is how long a toast stays on screen
const Lifetime = 4 * time.Second

// MaxVisible caps how many toasts are stacked at once
const MaxVisible = 3

// Toast is a notification with an expiry
type Toast struct {
	notify.Notification
	ID      int
	Expires time.Time
}

// Stack holds the visible toasts, oldest first
type Stack struct {
	items []Toast
	next  int
}

// Push adds n and returns the new toast. The oldest toast is dropped past MaxVisible.
func (s *Stack) Push(n notify.Notification, now time.Time) Toast {
	s.next++
	t := Toast{Notification: n, ID: s.next, Expires: now.Add(Lifetime)}
	s.items = append(s.items, t)
	if len(s.items) > MaxVisible {
		s.items = s.items[len(s.items)-MaxVisible:]
	}
	return t
}

// Expire removes every toast that expired at or before now
func (s *Stack) Expire(now time.Time) {
	kept := s.items[:0]
	for _, t := range s.items {
		if now.Before(t.Expires) {
			kept = append(kept, t)
		}
	}
	s.items = kept
}

// Clear drops all toasts
func (s *Stack) Clear() {
	s.items = nil
}

// Items returns a copy of the visible toasts
func (s *Stack) Items() []Toast {
	return append([]Toast(nil), s.items...)
}

// Len returns the number of visible toasts
func (s *Stack) Len() int {
	return len(s.items)
}

// Render draws the stack right-aligned within width. Empty stacks render as "".
func Render(s *Stack, width int) string {
	if s == nil || len(s.items) == 0 {
		return ""
	}

	var boxes []string
	for _, t := range s.items {
		boxes = append(boxes, renderOne(t))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, strings.Join(boxes, "\n"))
}

func renderOne(t Toast) string {
	accent := styles.CAccent
	icon := "✓"
	if t.Destructive {
		accent = styles.CDanger
		icon = "✗"
	}

	title := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(icon + " " + t.Title)
	body := title
	if t.Description != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(styles.CText).Render(t.Description)
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Render(body)
}
