package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felora-io/felora-cli/internal/ports"
)

func TestNotificationQueueActivePrunesExpired(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)}
	queue := NewNotificationQueue(clock)

	queue.Push(ports.NotifySuccess, "first")
	clock.advance(2 * time.Second)
	queue.Push(ports.NotifyError, "second")

	active := queue.Active()
	require.Len(t, active, 2)

	// The first entry crosses the 3s TTL, the second does not.
	clock.advance(1500 * time.Millisecond)
	active = queue.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "second", active[0].Message)

	clock.advance(3 * time.Second)
	assert.Empty(t, queue.Active())
}

func TestNotificationQueueDrainEmptiesEverything(t *testing.T) {
	t.Parallel()

	queue := NewNotificationQueue(&fixedClock{now: time.Now()})
	queue.Push(ports.NotifySuccess, "one")
	queue.Push(ports.NotifyInfo, "two")

	drained := queue.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, "one", drained[0].Message)
	assert.Equal(t, ports.NotifyInfo, drained[1].Level)

	assert.Empty(t, queue.Drain())
	assert.Empty(t, queue.Active())
}

func TestNotificationQueueNilClockDefaultsToSystem(t *testing.T) {
	t.Parallel()

	queue := NewNotificationQueue(nil)
	queue.Push(ports.NotifySuccess, "hello")
	assert.Len(t, queue.Active(), 1)
}
