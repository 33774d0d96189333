package cmd

import (
	"fmt"
	"io"

	"github.com/felora-io/felora-cli/internal/application"
	"github.com/felora-io/felora-cli/internal/ports"
)

// flushNotifications drains every queued workflow notification to the given
// writer. A CLI invocation ends before the on-screen TTL matters, so
// everything still queued gets printed.
func flushNotifications(out io.Writer, queue *application.NotificationQueue) {
	for _, notification := range queue.Drain() {
		prefix := "•"
		switch notification.Level {
		case ports.NotifySuccess:
			prefix = "✓"
		case ports.NotifyError:
			prefix = "✗"
		}

		_, _ = fmt.Fprintf(out, "%s %s\n", prefix, notification.Message)
	}
}
