package optimistic

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func cloneInts(v []int) []int {
	return append([]int(nil), v...)
}

func TestApplyPublishesBeforePersist(t *testing.T) {
	store := NewStore([]int{1, 2, 3}, cloneInts)

	var seenDuringPersist []int
	out, err := store.Apply(context.Background(),
		func(v []int) ([]int, error) { return append(v, 4), nil },
		func(ctx context.Context, next []int) error {
			seenDuringPersist = store.Get()
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, out)
	assert.Equal(t, []int{1, 2, 3, 4}, seenDuringPersist)
	assert.Equal(t, []int{1, 2, 3, 4}, store.Get())
}

func TestApplyRevertsOnPersistFailure(t *testing.T) {
	store := NewStore([]int{1, 2, 3}, cloneInts)
	boom := errors.New("boom")

	out, err := store.Apply(context.Background(),
		func(v []int) ([]int, error) {
			v[0] = 99
			return v, nil
		},
		func(context.Context, []int) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 2, 3}, out)
	assert.Equal(t, []int{1, 2, 3}, store.Get())
}

func TestApplyMutateErrorLeavesState(t *testing.T) {
	store := NewStore([]int{1}, cloneInts)
	persisted := false

	_, err := store.Apply(context.Background(),
		func(v []int) ([]int, error) { return nil, errors.New("bad input") },
		func(context.Context, []int) error { persisted = true; return nil })
	require.Error(t, err)
	assert.False(t, persisted)
	assert.Equal(t, []int{1}, store.Get())
}

func TestApplyFailureDoesNotClobberNewerSet(t *testing.T) {
	store := NewStore([]int{1}, cloneInts)

	_, err := store.Apply(context.Background(),
		func(v []int) ([]int, error) { return []int{2}, nil },
		func(context.Context, []int) error {
			store.Set([]int{7})
			return errors.New("late failure")
		})
	require.Error(t, err)
	assert.Equal(t, []int{7}, store.Get())
}

func TestConcurrentReaders(t *testing.T) {
	store := NewStore([]int{0}, cloneInts)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Set([]int{n})
			_ = store.Get()
		}(i)
	}
	wg.Wait()
	assert.Len(t, store.Get(), 1)
}
