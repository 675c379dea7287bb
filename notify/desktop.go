package notify

import (
	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"
)

// Desktop forwards notifications to the operating system notification center.
// Destructive notifications are raised as alerts.
type Desktop struct {
	AppIcon string
	Logger  *log.Logger

	notify func(title, message, appIcon string) error
	alert  func(title, message, appIcon string) error
}

// NewDesktop returns a Desktop notifier backed by beeep
func NewDesktop(logger *log.Logger) *Desktop {
	return &Desktop{
		Logger: logger,
		notify: beeep.Notify,
		alert:  beeep.Alert,
	}
}

// Notify sends n without waiting for the user. Delivery errors are only logged.
func (d *Desktop) Notify(n Notification) {
	send := d.notify
	if n.Destructive {
		send = d.alert
	}
	if send == nil {
		return
	}
	go func() {
		if err := send(n.Title, n.Description, d.AppIcon); err != nil && d.Logger != nil {
			d.Logger.Warn("desktop notification failed", "title", n.Title, "err", err)
		}
	}()
}
