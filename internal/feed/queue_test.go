package feed

import (
	"sync"
	"testing"

	"github.com/phrazzld/swipefeed/internal/domain"
	"github.com/phrazzld/swipefeed/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardQueueVisibleWindow(t *testing.T) {
	q := NewCardQueue(3)
	assert.Empty(t, q.VisibleWindow())

	q.Append(mocks.Candidates("a", "b")...)
	assert.Equal(t, []string{"a", "b"}, ids(q.VisibleWindow()))

	q.Append(mocks.Candidates("c", "d", "e")...)
	assert.Equal(t, []string{"a", "b", "c"}, ids(q.VisibleWindow()))
	assert.Equal(t, 5, q.Len(), "window does not mutate the queue")
}

func TestCardQueuePeekAndPop(t *testing.T) {
	q := NewCardQueue(0)
	q.Append(mocks.Candidates("a", "b")...)

	top, ok := q.PeekTop()
	require.True(t, ok)
	assert.Equal(t, "a", top.ID)
	assert.Equal(t, 2, q.Len(), "peek does not mutate")

	popped, err := q.PopFront()
	require.NoError(t, err)
	assert.Equal(t, "a", popped.ID)

	popped, err = q.PopFront()
	require.NoError(t, err)
	assert.Equal(t, "b", popped.ID)

	_, ok = q.PeekTop()
	assert.False(t, ok)

	_, err = q.PopFront()
	assert.ErrorIs(t, err, ErrEmptyQueue)
}

func TestCardQueueRejectsDuplicatesAndConsumed(t *testing.T) {
	q := NewCardQueue(3)

	added := q.Append(mocks.Candidates("a", "b", "a")...)
	assert.Equal(t, 2, added)

	_, err := q.PopFront()
	require.NoError(t, err)

	added = q.Append(mocks.Candidates("a", "c")...)
	assert.Equal(t, 1, added, "consumed candidate is never re-inserted")
	assert.Equal(t, []string{"b", "c"}, q.IDs())
}

func TestCardQueueSkipsInvalid(t *testing.T) {
	q := NewCardQueue(3)

	added := q.Append(domain.Candidate{}, domain.Candidate{ID: "ok"})

	assert.Equal(t, 1, added)
	assert.Equal(t, []string{"ok"}, q.IDs())
}

func TestCardQueueReturnsCopies(t *testing.T) {
	q := NewCardQueue(3)
	q.Append(domain.Candidate{ID: "a", Skills: []string{"go"}})

	window := q.VisibleWindow()
	window[0].Skills[0] = "mutated"

	top, _ := q.PeekTop()
	assert.Equal(t, "go", top.Skills[0])
}

func TestCardQueueConcurrentReaders(t *testing.T) {
	q := NewCardQueue(3)
	q.Append(mocks.Candidates("a", "b", "c", "d")...)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = q.VisibleWindow()
				_, _ = q.PeekTop()
			}
		}()
	}
	for i := 0; i < 4; i++ {
		_, err := q.PopFront()
		require.NoError(t, err)
	}
	wg.Wait()

	assert.Equal(t, 0, q.Len())
}

func ids(cs []domain.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
