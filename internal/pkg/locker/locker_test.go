package locker

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSerializesSameKey(t *testing.T) {
	l := NewLocal()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "lock:account:1")
			if err != nil {
				return
			}
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, counter)
}

func TestLocalIndependentKeys(t *testing.T) {
	l := NewLocal()

	unlock, err := l.Lock(context.Background(), "lock:account:1")
	require.NoError(t, err)
	defer unlock()

	other, err := l.Lock(context.Background(), "lock:account:2")
	require.NoError(t, err)
	other()
}

func TestLocalCanceledContext(t *testing.T) {
	l := NewLocal()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Lock(ctx, "lock:account:1")
	require.ErrorIs(t, err, context.Canceled)
}
