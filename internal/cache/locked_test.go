package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLocked_ConcurrentAccess(t *testing.T) {
	evictions := 0
	c, err := NewLocked[int, int](Config{Capacity: 16}, WithEvictionListener(func(int, int, int) {
		evictions++ // runs under the cache lock
	}))
	require.NoError(t, err)
	defer c.Close()

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < 200; i++ {
				k := (w*31 + i) % 64
				if err := c.Put(k, i); err != nil {
					return fmt.Errorf("put %d: %w", k, err)
				}
				c.Get(k)
				c.Peek(k + 1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.LessOrEqual(t, c.Len(), c.Cap())
	assert.Len(t, c.Snapshot(), c.Len())

	st := c.Stats()
	assert.Equal(t, uint64(8*200), st.Hits+st.Misses)
	assert.Equal(t, uint64(evictions), st.Evictions)
	assert.Equal(t, st.Inserts-st.Evictions, uint64(c.Len()))
}

func TestLocked_InvalidConfig(t *testing.T) {
	_, err := NewLocked[string, string](Config{})
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestLocked_Close(t *testing.T) {
	c, err := NewLocked[string, string](Config{Capacity: 1})
	require.NoError(t, err)

	require.NoError(t, c.Put("a", "A"))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Put("a", "A"), ErrClosed)
	_, ok := c.Get("a")
	assert.False(t, ok)
}
