package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoRunsFunctionAndReturnsItsError(t *testing.T) {
	pool := New(2)

	ran := false
	err := pool.Do(context.Background(), func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)

	wantErr := errors.New("boom")
	err = pool.Do(context.Background(), func() error { return wantErr })
	require.ErrorIs(t, err, wantErr)
}

func TestDoRespectsContextWhenPoolIsFull(t *testing.T) {
	pool := New(1)

	occupied := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = pool.Do(context.Background(), func() error {
			close(occupied)
			<-release
			return nil
		})
	}()
	<-occupied

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Do(ctx, func() error {
		t.Error("function must not run after cancellation")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	close(release)
}

func TestDoRejectsCancelledContextEvenWithFreeSlot(t *testing.T) {
	pool := New(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Do(ctx, func() error {
		t.Error("function must not run after cancellation")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDoReleasesSlotAfterCompletion(t *testing.T) {
	pool := New(1)

	for i := 0; i < 3; i++ {
		err := pool.Do(context.Background(), func() error { return nil })
		require.NoError(t, err)
	}
}
