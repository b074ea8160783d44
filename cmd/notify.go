package cmd

import (
	"github.com/0xAX/notificator"

	"github.com/nibzard/checklist-go/internal/reminder"
)

// desktopNotifier delivers reminders through the OS notification
// facility (notify-send, growlnotify, or toasts depending on platform).
type desktopNotifier struct {
	n *notificator.Notificator
}

func newDesktopNotifier() reminder.Notifier {
	return &desktopNotifier{
		n: notificator.New(notificator.Options{AppName: "Checklist"}),
	}
}

func (d *desktopNotifier) Notify(title, message string) error {
	return d.n.Push(title, message, "", notificator.UR_NORMAL)
}
