package application

import (
	"sync"
	"time"

	"github.com/felora-io/felora-cli/internal/ports"
)

const notificationTTL = 3 * time.Second

type Notification struct {
	Level   ports.NotificationLevel
	Message string
	At      time.Time
}

// NotificationQueue is the toast sink passed explicitly into every workflow.
// Entries expire after a fixed TTL; expired entries are pruned on read.
type NotificationQueue struct {
	mu      sync.Mutex
	clock   ports.Clock
	ttl     time.Duration
	entries []Notification
}

var _ ports.Notifier = (*NotificationQueue)(nil)

func NewNotificationQueue(clock ports.Clock) *NotificationQueue {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &NotificationQueue{clock: clock, ttl: notificationTTL}
}

func (q *NotificationQueue) Push(level ports.NotificationLevel, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = append(q.entries, Notification{
		Level:   level,
		Message: message,
		At:      q.clock.Now(),
	})
}

// Active prunes expired entries and returns the rest, oldest first.
func (q *NotificationQueue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.clock.Now()
	kept := q.entries[:0]
	for _, entry := range q.entries {
		if now.Sub(entry.At) < q.ttl {
			kept = append(kept, entry)
		}
	}
	q.entries = kept

	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

// Drain returns all active entries and empties the queue.
func (q *NotificationQueue) Drain() []Notification {
	active := q.Active()

	q.mu.Lock()
	q.entries = nil
	q.mu.Unlock()

	return active
}
