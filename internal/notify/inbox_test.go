package notify_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/phrazzld/swipefeed/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(toasts []notify.Toast) []string {
	out := make([]string, len(toasts))
	for i, t := range toasts {
		out[i] = t.Message
	}
	return out
}

func TestInboxDrainIsFIFO(t *testing.T) {
	inbox := notify.NewInbox(5, nil)

	inbox.Push(notify.NewToast(notify.LevelInfo, "one"))
	inbox.Push(notify.NewToast(notify.LevelInfo, "two"))
	assert.Equal(t, 2, inbox.Len())

	assert.Equal(t, []string{"one", "two"}, messages(inbox.Drain()))
	assert.Zero(t, inbox.Len())
	assert.Empty(t, inbox.Drain())
}

func TestInboxDropsOldestWhenFull(t *testing.T) {
	inbox := notify.NewInbox(3, nil)

	for i := 1; i <= 5; i++ {
		inbox.Push(notify.NewToast(notify.LevelInfo, fmt.Sprint(i)))
	}

	assert.Equal(t, 3, inbox.Len())
	assert.Equal(t, []string{"3", "4", "5"}, messages(inbox.Drain()))
}

func TestInboxDefaultCapacity(t *testing.T) {
	assert.Equal(t, notify.DefaultCapacity, notify.NewInbox(0, nil).Cap())
	assert.Equal(t, 7, notify.NewInbox(7, nil).Cap())
}

func TestInboxConcurrentPush(t *testing.T) {
	inbox := notify.NewInbox(10, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inbox.Push(notify.NewToast(notify.LevelSuccess, "hi"))
		}()
	}
	wg.Wait()

	drained := inbox.Drain()
	require.Len(t, drained, 10)
}

func TestNewToast(t *testing.T) {
	toast := notify.NewToast(notify.LevelError, "boom")

	assert.NotEmpty(t, toast.ID.String())
	assert.Equal(t, notify.LevelError, toast.Level)
	assert.Equal(t, notify.DefaultDuration.Milliseconds(), toast.DurationMS)
	assert.False(t, toast.CreatedAt.IsZero())
}
