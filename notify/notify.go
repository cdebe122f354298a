// Package notify sends desktop notifications for mount results.
package notify

import (
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/yllada/sshfs-manager/common"
)

// maxMessageLen, in runes, keeps long mount errors from overflowing notification bubbles.
const maxMessageLen = 800

type sendFunc func(title, message string) error

// Desktop delivers notifications through the desktop's notification service.
type Desktop struct {
	enabled bool
	send    sendFunc
}

// NewDesktop returns a notifier that is silent unless enabled is true.
func NewDesktop(enabled bool) *Desktop {
	return &Desktop{
		enabled: enabled,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Notify shows a notification. It is a no-op when notifications are disabled.
func (d *Desktop) Notify(title, message string) error {
	if !d.enabled {
		return nil
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = common.AppName
	}
	message = strings.TrimSpace(message)
	if runes := []rune(message); len(runes) > maxMessageLen {
		message = string(runes[:maxMessageLen]) + "..."
	}

	if err := d.send(title, message); err != nil {
		common.LogWarn("Could not show notification: %v", err)
		return err
	}
	return nil
}

// MountSucceeded reports a completed mount.
func MountSucceeded(n common.Notifier, host, mountPoint string) {
	_ = n.Notify("Mounted "+host, "Mounted "+host+" at "+mountPoint)
}

// MountFailed reports a failed mount with the error text.
func MountFailed(n common.Notifier, host string, err error) {
	_ = n.Notify("Mount failed", host+": "+err.Error())
}
