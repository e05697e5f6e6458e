package tui

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// Notifier handles notifications for foreground and backgrounded terminals.
// In the foreground it rings the terminal bell; otherwise it uses OS-native
// notifications.
type Notifier struct {
	out io.Writer
}

// NewNotifier creates a Notifier that writes bell to the given output.
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// Bell writes the terminal bell character to output.
func (n *Notifier) Bell() {
	fmt.Fprint(n.out, Bell)
}

// NotifyOS sends an OS-native notification.
// On macOS, this uses osascript to display a notification.
// On other platforms, this is a no-op.
func (n *Notifier) NotifyOS(title, message string) error {
	if runtime.GOOS != "darwin" {
		return nil
	}
	return notifyMacOS(title, message)
}

// NotifyAttention rings the bell when isForeground is true and sends an OS
// notification otherwise.
func (n *Notifier) NotifyAttention(title, message string, isForeground bool) error {
	if isForeground {
		n.Bell()
		return nil
	}
	return n.NotifyOS(title, message)
}

func notifyMacOS(title, message string) error {
	script := fmt.Sprintf(`display notification %q with title %q`, message, title)
	cmd := exec.Command("osascript", "-e", script)
	return cmd.Run()
}

// NotificationReason represents why a notification is being sent.
type NotificationReason int

const (
	NotifyReasonETAReached NotificationReason = iota
	NotifyReasonFinished
)

// String returns a human-readable title for the notification reason.
func (r NotificationReason) String() string {
	switch r {
	case NotifyReasonETAReached:
		return "ETA Reached"
	case NotifyReasonFinished:
		return "Completed"
	default:
		return "Burndown"
	}
}

// DefaultMessage returns a default notification message for the reason.
func (r NotificationReason) DefaultMessage(runID string) string {
	switch r {
	case NotifyReasonETAReached:
		return fmt.Sprintf("Run %s reached its projected completion time", runID)
	case NotifyReasonFinished:
		return fmt.Sprintf("Run %s processed all units", runID)
	default:
		return fmt.Sprintf("Run %s needs attention", runID)
	}
}

// NotifyForReason sends a notification for the given reason.
func (n *Notifier) NotifyForReason(reason NotificationReason, runID string, isForeground bool) error {
	title := "burndown: " + reason.String()
	return n.NotifyAttention(title, reason.DefaultMessage(runID), isForeground)
}
