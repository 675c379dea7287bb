// Package notify is the notification surface: short user-facing messages with a
// title, a description and an optional destructive styling flag.
package notify

import "sync"

// Notification is a single fire-and-forget message for the user
type Notification struct {
	Title       string
	Description string
	Destructive bool
}

// Notifier accepts notifications. Implementations must not block for long.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a plain function to a Notifier
type Func func(Notification)

// Notify calls f(n)
func (f Func) Notify(n Notification) {
	if f != nil {
		f(n)
	}
}

// Discard drops every notification
var Discard Notifier = Func(nil)

type multi []Notifier

// Multi fans a notification out to every non-nil notifier in order
func Multi(notifiers ...Notifier) Notifier {
	var out multi
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m multi) Notify(n Notification) {
	for _, nn := range m {
		nn.Notify(n)
	}
}

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu  sync.Mutex
	got []Notification
}

// Notify records n
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

// All returns a copy of the recorded notifications
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.got))
	copy(out, r.got)
	return out
}

// Len returns how many notifications were recorded
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

// Reset forgets everything recorded so far
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = nil
}
