package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiFanOut(t *testing.T) {
	var a, b Recorder
	n := Multi(&a, nil, &b)

	n.Notify(Notification{Title: "Wallet connected"})
	n.Notify(Notification{Title: "Connection failed", Destructive: true})

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, a.All(), b.All())
	assert.True(t, b.All()[1].Destructive)
}

func TestFuncAndDiscard(t *testing.T) {
	var got []string
	Func(func(n Notification) { got = append(got, n.Title) }).Notify(Notification{Title: "x"})
	assert.Equal(t, []string{"x"}, got)

	assert.NotPanics(t, func() { Discard.Notify(Notification{Title: "dropped"}) })
}

func TestRecorderReset(t *testing.T) {
	var r Recorder
	r.Notify(Notification{Title: "a"})
	all := r.All()
	all[0].Title = "mutated"
	assert.Equal(t, "a", r.All()[0].Title, "All returns a copy")

	r.Reset()
	assert.Zero(t, r.Len())
}

func TestDesktopRoutesByVariant(t *testing.T) {
	var (
		mu       sync.Mutex
		notified []string
		alerted  []string
	)
	d := &Desktop{
		notify: func(title, _, _ string) error {
			mu.Lock()
			defer mu.Unlock()
			notified = append(notified, title)
			return nil
		},
		alert: func(title, _, _ string) error {
			mu.Lock()
			defer mu.Unlock()
			alerted = append(alerted, title)
			return errors.New("no notification daemon")
		},
	}

	d.Notify(Notification{Title: "Wallet connected"})
	d.Notify(Notification{Title: "Connection failed", Destructive: true})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(notified) == 1 && len(alerted) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"Wallet connected"}, notified)
	assert.Equal(t, []string{"Connection failed"}, alerted)
}
